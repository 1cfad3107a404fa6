package reservation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"lms/internal/auth"
	"lms/internal/handlers"
	"lms/package/logger"
)

const (
	reservationsURL      = "/reservations/"
	reservationURL       = "/reservations/:id/"
	reservationExtendURL = "/reservations/:id/extend/"

	loanDays = 7
)

type handler struct {
	storage       Storage
	users         auth.UserStore
	authenticator *auth.Authenticator
}

func NewHandler(storage Storage, users auth.UserStore, authenticator *auth.Authenticator) handlers.Handler {
	return &handler{storage: storage, users: users, authenticator: authenticator}
}

func (h *handler) Register(router *httprouter.Router) {
	router.GET(reservationsURL, h.authenticator.Require(h.List))
	router.POST(reservationsURL, h.authenticator.Require(h.Create))
	router.PUT(reservationURL, h.authenticator.Require(h.Return))
	router.PUT(reservationExtendURL, h.authenticator.Require(h.Extend))
}

// List shows staff everything and everyone else only their own reservations.
func (h *handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params, p *auth.Principal) {
	f := Filter{}
	if !auth.StaffOnly(p) {
		f.UserID = &p.ID
	}

	query := r.URL.Query()
	if raw := query.Get("book_id"); raw != "" {
		bookID, err := strconv.Atoi(raw)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "Bad request: invalid book_id")
			return
		}
		f.BookID = &bookID
	}
	if raw := query.Get("returned"); raw != "" {
		returned, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "Bad request: invalid returned flag")
			return
		}
		f.Returned = &returned
	}

	reservations, err := h.storage.List(r.Context(), f)
	if err != nil {
		handlers.WriteStorageError(w, err, "")
		return
	}

	items := make([]reservationResponse, 0, len(reservations))
	for _, res := range reservations {
		items = append(items, newReservationResponse(res))
	}
	handlers.WriteJSON(w, http.StatusOK, items)
}

func (h *handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params, p *auth.Principal) {
	if !auth.StaffOnly(p) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}

	if req.UserEmail == "" || req.BookID == 0 || req.CopyID == 0 || req.StartDate == "" {
		handlers.WriteError(w, http.StatusBadRequest, "user_email, book_id, copy_id and start_date are required.")
		return
	}

	u, err := h.users.UserByEmail(r.Context(), req.UserEmail)
	if err != nil {
		handlers.WriteStorageError(w, err, "User not found")
		return
	}

	start, err := handlers.ParseDate(req.StartDate)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid start_date. Use YYYY-MM-DD.")
		return
	}

	res, err := h.storage.Create(r.Context(), u.ID, req.BookID, req.CopyID, start, start.AddDays(loanDays))
	if err != nil {
		handlers.WriteStorageError(w, err, "Book copy not found")
		return
	}

	logger.Log.Info("Created reservation " + strconv.Itoa(res.ID) + " for " + u.Email)
	handlers.WriteJSON(w, http.StatusCreated, newReservationResponse(res))
}

func (h *handler) Return(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	if !auth.StaffOnly(p) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	id, ok := reservationID(w, params)
	if !ok {
		return
	}

	copyID, err := h.storage.Return(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAlreadyReturned) {
			handlers.WriteError(w, http.StatusBadRequest, "Reservation already returned.")
			return
		}
		handlers.WriteStorageError(w, err, "Reservation not found")
		return
	}

	logger.Log.Info("Returned reservation " + strconv.Itoa(id))
	handlers.WriteJSON(w, http.StatusOK, returnResponse{
		Message: "Reservation returned.",
		Copy:    copyState{CopyID: copyID, IsAvailable: true},
	})
}

// Extend pushes the due date out another loan period. Staff may extend any
// reservation, other requesters only their own.
func (h *handler) Extend(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	id, ok := reservationID(w, params)
	if !ok {
		return
	}

	res, err := h.storage.ByID(r.Context(), id)
	if err != nil {
		handlers.WriteStorageError(w, err, "Reservation not found")
		return
	}
	if !auth.OwnerOrStaff(p, res) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	due, err := h.storage.Extend(r.Context(), id, loanDays)
	if err != nil {
		handlers.WriteStorageError(w, err, "Reservation not found")
		return
	}

	logger.Log.Info("Extended reservation " + strconv.Itoa(id) + " to " + due.String())
	handlers.WriteJSON(w, http.StatusOK, extendResponse{ReservationID: id, DueDate: due})
}

func reservationID(w http.ResponseWriter, params httprouter.Params) (int, bool) {
	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: invalid reservation id")
		return 0, false
	}
	return id, true
}
