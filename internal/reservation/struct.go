package reservation

import "lms/internal/handlers"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
)

// Reservation is a checkout record. Status is the canonical returned/active
// representation; the copy's availability flag is kept consistent with it by
// the storage transitions, never read to derive it.
type Reservation struct {
	ID        int
	UserID    int
	BookID    int
	CopyID    int
	UserEmail string
	BookTitle string
	StartDate handlers.Date
	DueDate   handlers.Date
	Status    Status
}

func (r *Reservation) OwnerID() int { return r.UserID }

func (r *Reservation) Returned() bool { return r.Status == StatusReturned }

// Filter narrows List; nil fields match everything.
type Filter struct {
	UserID   *int
	BookID   *int
	Returned *bool
}

type createRequest struct {
	UserEmail string `json:"user_email"`
	BookID    int    `json:"book_id"`
	CopyID    int    `json:"copy_id"`
	StartDate string `json:"start_date"`
}

type reservationResponse struct {
	ReservationID int           `json:"reservation_id"`
	UserID        int           `json:"user_id"`
	BookID        int           `json:"book_id"`
	CopyID        int           `json:"copy_id"`
	UserEmail     string        `json:"user_email"`
	BookTitle     string        `json:"book_title"`
	StartDate     handlers.Date `json:"start_date"`
	DueDate       handlers.Date `json:"due_date"`
	Returned      bool          `json:"returned"`
}

func newReservationResponse(r *Reservation) reservationResponse {
	return reservationResponse{
		ReservationID: r.ID,
		UserID:        r.UserID,
		BookID:        r.BookID,
		CopyID:        r.CopyID,
		UserEmail:     r.UserEmail,
		BookTitle:     r.BookTitle,
		StartDate:     r.StartDate,
		DueDate:       r.DueDate,
		Returned:      r.Returned(),
	}
}

type copyState struct {
	CopyID      int  `json:"copy_id"`
	IsAvailable bool `json:"is_available"`
}

type returnResponse struct {
	Message string    `json:"message"`
	Copy    copyState `json:"copy"`
}

type extendResponse struct {
	ReservationID int           `json:"reservation_id"`
	DueDate       handlers.Date `json:"due_date"`
}
