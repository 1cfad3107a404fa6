package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"lms/internal/handlers"
	"lms/package/client/database"
	"lms/package/logger"
)

const (
	signUpURL = "/auth/sign-up/"
	signInURL = "/auth/sign-in/"
	meURL     = "/auth/users/me/"
)

type handler struct {
	users         UserStore
	tokens        *TokenService
	authenticator *Authenticator
}

func NewHandler(users UserStore, tokens *TokenService, authenticator *Authenticator) handlers.Handler {
	return &handler{users: users, tokens: tokens, authenticator: authenticator}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(signUpURL, h.SignUp)
	router.POST(signInURL, h.SignIn)
	router.GET(meURL, h.authenticator.Require(h.Me))
}

func (h *handler) SignUp(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}

	req.Name = sanitizeString(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		handlers.WriteError(w, http.StatusBadRequest, "Name, email, and password are required.")
		return
	}

	if _, err := h.users.UserByEmail(r.Context(), req.Email); err == nil {
		handlers.WriteError(w, http.StatusBadRequest, "A user with this email already exists.")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		handlers.WriteStorageError(w, err, "")
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Log.Error("Can not hash password: " + err.Error())
		handlers.WriteError(w, http.StatusBadRequest, "Failed to create user")
		return
	}

	u, err := h.users.CreateUser(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		logger.Log.Error("Can not create user: " + err.Error())
		handlers.WriteError(w, http.StatusBadRequest, "Failed to create user")
		return
	}

	pair, err := h.tokens.IssuePair(u)
	if err != nil {
		handlers.WriteStorageError(w, err, "")
		return
	}

	logger.Log.Info("Signed up user " + u.Email)
	handlers.WriteJSON(w, http.StatusCreated, signUpResponse{
		User:    userSummary{ID: u.ID, Name: u.Name, Email: u.Email},
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

func (h *handler) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}

	u, err := h.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Same answer for unknown email, wrong password and disabled
			// accounts so the endpoint does not leak which one happened.
			handlers.WriteError(w, http.StatusBadRequest, "Invalid email or password.")
			return
		}
		handlers.WriteStorageError(w, err, "")
		return
	}

	if !u.IsActive || !CheckPassword(u.Password, req.Password) {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid email or password.")
		return
	}

	pair, err := h.tokens.IssuePair(u)
	if err != nil {
		handlers.WriteStorageError(w, err, "")
		return
	}

	logger.Log.Info("Signed in user " + u.Email)
	handlers.WriteJSON(w, http.StatusOK, signInResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    signInUser{Email: u.Email, Name: u.Name, IsStaff: u.IsStaff},
	})
}

func (h *handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params, p *Principal) {
	handlers.WriteJSON(w, http.StatusOK, meResponse{
		Email:   p.Email,
		Name:    p.Name,
		IsStaff: p.IsStaff,
	})
}
