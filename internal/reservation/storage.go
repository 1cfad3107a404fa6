package reservation

import (
	"context"
	"database/sql"
	"errors"

	"lms/internal/handlers"
	"lms/package/client/database"
)

// ErrAlreadyReturned rejects a second return of the same reservation.
var ErrAlreadyReturned = errors.New("reservation already returned")

type Storage interface {
	List(ctx context.Context, f Filter) ([]*Reservation, error)
	ByID(ctx context.Context, id int) (*Reservation, error)
	Create(ctx context.Context, userID, bookID, copyID int, start, due handlers.Date) (*Reservation, error)
	Return(ctx context.Context, id int) (int, error)
	Extend(ctx context.Context, id, days int) (handlers.Date, error)
	CloseActiveByCopy(ctx context.Context, copyID int) (int, error)
}

type postgresStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &postgresStorage{db: db}
}

const reservationSelect = `
	SELECT r.reservation_id, r.user_id, r.book_id, r.copy_id,
	       u.email, b.title, r.start_date, r.due_date, r.status
	FROM reservations r
	JOIN "user" u ON u.user_id = r.user_id
	JOIN book b ON b.book_id = r.book_id`

func scanReservation(row interface{ Scan(...interface{}) error }) (*Reservation, error) {
	r := &Reservation{}
	err := row.Scan(&r.ID, &r.UserID, &r.BookID, &r.CopyID,
		&r.UserEmail, &r.BookTitle, &r.StartDate, &r.DueDate, &r.Status)
	if err != nil {
		return nil, database.MapNoRows(err)
	}
	return r, nil
}

func (s *postgresStorage) List(ctx context.Context, f Filter) ([]*Reservation, error) {
	status := ""
	if f.Returned != nil {
		status = string(StatusActive)
		if *f.Returned {
			status = string(StatusReturned)
		}
	}
	var userID, bookID int
	if f.UserID != nil {
		userID = *f.UserID
	}
	if f.BookID != nil {
		bookID = *f.BookID
	}

	rows, err := s.db.QueryContext(ctx, reservationSelect+`
		WHERE ($1 = 0 OR r.user_id = $1)
		  AND ($2 = 0 OR r.book_id = $2)
		  AND ($3 = '' OR r.status = $3)
		ORDER BY r.reservation_id`, userID, bookID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []*Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func (s *postgresStorage) ByID(ctx context.Context, id int) (*Reservation, error) {
	return scanReservation(s.db.QueryRowContext(ctx, reservationSelect+` WHERE r.reservation_id = $1`, id))
}

// Create inserts the reservation and flips the copy to unavailable in one
// transaction so the two can never drift apart.
func (s *postgresStorage) Create(ctx context.Context, userID, bookID, copyID int, start, due handlers.Date) (*Reservation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE book_copy SET is_available = false WHERE copy_id = $1 AND book_id = $2`,
		copyID, bookID)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, database.ErrNotFound
	}

	var id int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO reservations (user_id, book_id, copy_id, start_date, due_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING reservation_id`,
		userID, bookID, copyID, start, due, StatusActive).Scan(&id)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.ByID(ctx, id)
}

// Return marks the reservation returned and the copy available. It reports
// ErrAlreadyReturned when the transition already happened.
func (s *postgresStorage) Return(ctx context.Context, id int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var status Status
	var copyID int
	err = tx.QueryRowContext(ctx,
		`SELECT status, copy_id FROM reservations WHERE reservation_id = $1 FOR UPDATE`, id).
		Scan(&status, &copyID)
	if err != nil {
		return 0, database.MapNoRows(err)
	}
	if status == StatusReturned {
		return 0, ErrAlreadyReturned
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = $1 WHERE reservation_id = $2`, StatusReturned, id); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE book_copy SET is_available = true WHERE copy_id = $1`, copyID); err != nil {
		return 0, err
	}
	return copyID, tx.Commit()
}

func (s *postgresStorage) Extend(ctx context.Context, id, days int) (handlers.Date, error) {
	var due handlers.Date
	err := s.db.QueryRowContext(ctx,
		`UPDATE reservations SET due_date = due_date + $1 * INTERVAL '1 day'
		 WHERE reservation_id = $2 RETURNING due_date`, days, id).Scan(&due)
	if err != nil {
		return handlers.Date{}, database.MapNoRows(err)
	}
	return due, nil
}

// CloseActiveByCopy closes the most recent active reservation on the copy
// and flips it back to available, for the book copy-return endpoint.
func (s *postgresStorage) CloseActiveByCopy(ctx context.Context, copyID int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx,
		`SELECT reservation_id FROM reservations
		 WHERE copy_id = $1 AND status = $2
		 ORDER BY reservation_id DESC LIMIT 1 FOR UPDATE`, copyID, StatusActive).Scan(&id)
	if err != nil {
		return 0, database.MapNoRows(err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = $1 WHERE reservation_id = $2`, StatusReturned, id); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE book_copy SET is_available = true WHERE copy_id = $1`, copyID); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}
