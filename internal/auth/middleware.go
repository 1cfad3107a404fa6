package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"lms/internal/handlers"
	"lms/package/client/database"
	"lms/package/logger"
)

// Handle is an httprouter.Handle that additionally receives the requester's
// principal. A nil principal is only ever passed by Optional.
type Handle func(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *Principal)

// Authenticator resolves bearer tokens into principals.
type Authenticator struct {
	tokens *TokenService
	users  UserStore
}

func NewAuthenticator(tokens *TokenService, users UserStore) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Require rejects the request with 401 unless a valid access token for an
// active account is presented.
func (a *Authenticator) Require(next Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		p, err := a.principal(r)
		if err != nil {
			handlers.WriteError(w, http.StatusUnauthorized, "Authentication credentials were not provided or are invalid.")
			return
		}
		next(w, r, params, p)
	}
}

func (a *Authenticator) principal(r *http.Request) (*Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrInvalidToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrInvalidToken
	}

	claims, err := a.tokens.ParseAccess(parts[1])
	if err != nil {
		return nil, err
	}

	u, err := a.users.UserByID(r.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			logger.Log.Error("Can not load token user: " + err.Error())
		}
		return nil, ErrInvalidToken
	}
	if !u.IsActive {
		return nil, ErrInvalidToken
	}
	return principalFromUser(u), nil
}
