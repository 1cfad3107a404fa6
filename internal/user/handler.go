package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"lms/internal/auth"
	"lms/internal/handlers"
	"lms/package/logger"
)

const (
	usersURL = "/users/"
	userURL  = "/users/:user_id/"
)

type handler struct {
	storage       Storage
	authenticator *auth.Authenticator
}

func NewHandler(storage Storage, authenticator *auth.Authenticator) handlers.Handler {
	return &handler{storage: storage, authenticator: authenticator}
}

func (h *handler) Register(router *httprouter.Router) {
	router.GET(usersURL, h.authenticator.Require(h.List))
	router.GET(userURL, h.authenticator.Require(h.Retrieve))
	router.PUT(userURL, h.authenticator.Require(h.Update))
	router.DELETE(userURL, h.authenticator.Require(h.Delete))
}

type listItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params, p *auth.Principal) {
	if !auth.StaffOnly(p) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	users, err := h.storage.ListNonStaff(r.Context())
	if err != nil {
		handlers.WriteStorageError(w, err, "")
		return
	}

	items := make([]listItem, 0, len(users))
	for _, u := range users {
		items = append(items, listItem{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	handlers.WriteJSON(w, http.StatusOK, items)
}

func (h *handler) Retrieve(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	u, ok := h.lookup(w, r, params)
	if !ok {
		return
	}
	if !auth.OwnerOrStaff(p, u) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, profileResponse{Name: u.Name, Email: u.Email})
}

func (h *handler) Update(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	u, ok := h.lookup(w, r, params)
	if !ok {
		return
	}
	if !auth.OwnerOrStaff(p, u) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		taken, err := h.storage.EmailTakenByOther(r.Context(), req.Email, u.ID)
		if err != nil {
			handlers.WriteStorageError(w, err, "")
			return
		}
		if taken {
			handlers.WriteError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		u.Email = req.Email
	}

	if err := h.storage.Update(r.Context(), u); err != nil {
		handlers.WriteStorageError(w, err, "User not found")
		return
	}

	logger.Log.Info("Updated user " + strconv.Itoa(u.ID))
	handlers.WriteJSON(w, http.StatusOK, profileResponse{Name: u.Name, Email: u.Email})
}

func (h *handler) Delete(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	if !auth.StaffOnly(p) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	u, ok := h.lookup(w, r, params)
	if !ok {
		return
	}

	if err := h.storage.Delete(r.Context(), u.ID); err != nil {
		handlers.WriteStorageError(w, err, "User not found")
		return
	}

	logger.Log.Info("Deleted user " + strconv.Itoa(u.ID))
	handlers.WriteMessage(w, http.StatusOK, "User deleted successfully.")
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request, params httprouter.Params) (*auth.User, bool) {
	id, err := strconv.Atoi(params.ByName("user_id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: invalid user id")
		return nil, false
	}

	u, err := h.storage.UserByID(r.Context(), id)
	if err != nil {
		handlers.WriteStorageError(w, err, "User not found")
		return nil, false
	}
	return u, true
}
