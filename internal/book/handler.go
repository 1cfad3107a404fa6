package book

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"lms/internal/auth"
	"lms/internal/handlers"
	"lms/package/client/database"
	"lms/package/logger"
)

const (
	booksURL    = "/books/"
	bookURL     = "/books/:book_id/"
	bookCopyURL = "/books/:book_id/copies/:copy_number/"
)

// ReservationCloser closes the most recent active reservation on a copy and
// flips the copy back to available. internal/reservation implements it.
type ReservationCloser interface {
	CloseActiveByCopy(ctx context.Context, copyID int) (int, error)
}

type handler struct {
	storage       Storage
	reservations  ReservationCloser
	authenticator *auth.Authenticator
}

func NewHandler(storage Storage, reservations ReservationCloser, authenticator *auth.Authenticator) handlers.Handler {
	return &handler{storage: storage, reservations: reservations, authenticator: authenticator}
}

func (h *handler) Register(router *httprouter.Router) {
	router.GET(booksURL, h.List)
	router.POST(booksURL, h.authenticator.Require(h.Create))
	router.GET(bookURL, h.Retrieve)
	router.PUT(bookURL, h.authenticator.Require(h.Update))
	router.DELETE(bookURL, h.authenticator.Require(h.Delete))
	router.PUT(bookCopyURL, h.authenticator.Require(h.ReturnCopy))
}

func (h *handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query().Get("q")
	books, err := h.storage.List(r.Context(), query)
	if err != nil {
		handlers.WriteStorageError(w, err, "")
		return
	}

	items := make([]bookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, newBookResponse(b))
	}
	handlers.WriteJSON(w, http.StatusOK, items)
}

func (h *handler) Retrieve(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, ok := bookID(w, params)
	if !ok {
		return
	}
	b, err := h.storage.ByID(r.Context(), id)
	if err != nil {
		handlers.WriteStorageError(w, err, "Book not found")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, newBookResponse(b))
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

	if strings.TrimSpace(req.AuthorName) == "" {
		handlers.WriteError(w, http.StatusBadRequest, "Author name cannot be empty.")
		return
	}
	if strings.TrimSpace(req.GenreName) == "" {
		handlers.WriteError(w, http.StatusBadRequest, "Genre name cannot be empty.")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		handlers.WriteError(w, http.StatusBadRequest, "Title cannot be empty.")
		return
	}

	copies := 1
	if req.CopyNumber != nil {
		copies = *req.CopyNumber
	}
	if copies < 1 {
		handlers.WriteError(w, http.StatusBadRequest, "Number of copies must be at least 1.")
		return
	}

	isbn, err := NormalizeISBN(req.ISBN)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid ISBN format.")
		return
	}

	b, err := h.storage.CreateWithCopies(r.Context(), NewBook{
		Title:      req.Title,
		ISBN:       isbn,
		AuthorName: req.AuthorName,
		GenreName:  req.GenreName,
		Copies:     copies,
	})
	if err != nil {
		handlers.WriteStorageError(w, err, "")
		return
	}

	logger.Log.Info("Created book " + strconv.Itoa(b.ID) + " with " + strconv.Itoa(copies) + " copies")
	handlers.WriteJSON(w, http.StatusCreated, newBookResponse(b))
}

func (h *handler) Update(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	if !auth.StaffOrReadOnly(p, r.Method) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	id, ok := bookID(w, params)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}

	upd := BookUpdate{
		Title:      req.Title,
		AuthorName: req.AuthorName,
		GenreName:  req.GenreName,
	}
	if req.ISBN != nil {
		isbn, err := NormalizeISBN(*req.ISBN)
		if err != nil {
			handlers.WriteError(w, http.StatusBadRequest, "Invalid ISBN format.")
			return
		}
		upd.ISBN = &isbn
	}

	b, err := h.storage.Update(r.Context(), id, upd)
	if err != nil {
		handlers.WriteStorageError(w, err, "Book not found")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, newBookResponse(b))
}

func (h *handler) Delete(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	if !auth.StaffOrReadOnly(p, r.Method) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	id, ok := bookID(w, params)
	if !ok {
		return
	}

	if err := h.storage.Delete(r.Context(), id); err != nil {
		handlers.WriteStorageError(w, err, "Book not found")
		return
	}

	logger.Log.Info("Deleted book " + strconv.Itoa(id))
	handlers.WriteMessage(w, http.StatusOK, "Book deleted successfully.")
}

// ReturnCopy flips a checked-out copy back to available, addressed by its
// 1-based position among the book's copies ordered by copy_id.
func (h *handler) ReturnCopy(w http.ResponseWriter, r *http.Request, params httprouter.Params, p *auth.Principal) {
	if !auth.StaffOnly(p) {
		handlers.WriteError(w, http.StatusForbidden, "Permission denied")
		return
	}

	id, ok := bookID(w, params)
	if !ok {
		return
	}

	b, err := h.storage.ByID(r.Context(), id)
	if err != nil {
		handlers.WriteStorageError(w, err, "Book not found")
		return
	}

	number, err := strconv.Atoi(params.ByName("copy_number"))
	if err != nil || number < 1 || number > len(b.Copies) {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid copy number.")
		return
	}
	copyID := b.Copies[number-1].ID

	reservationID, err := h.reservations.CloseActiveByCopy(r.Context(), copyID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			handlers.WriteJSON(w, http.StatusOK, copyReturnResponse{
				CopyID:  copyID,
				Message: "No active reservation for this copy.",
			})
			return
		}
		handlers.WriteStorageError(w, err, "")
		return
	}

	logger.Log.Info("Returned copy " + strconv.Itoa(copyID) + " closing reservation " + strconv.Itoa(reservationID))
	handlers.WriteJSON(w, http.StatusOK, copyReturnResponse{
		CopyID:        copyID,
		ReservationID: &reservationID,
		Message:       "Copy returned.",
	})
}

func bookID(w http.ResponseWriter, params httprouter.Params) (int, bool) {
	id, err := strconv.Atoi(params.ByName("book_id"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Bad request: invalid book id")
		return 0, false
	}
	return id, true
}
