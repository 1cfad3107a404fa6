// Package waitlist persists the queue of users awaiting an unavailable book.
// The entity has no HTTP surface; it is populated by fixtures and kept for
// the lending workflow built on top of this API.
package waitlist

import (
	"context"
	"database/sql"

	"lms/internal/handlers"
)

type Entry struct {
	ID         int           `json:"queue_id"`
	UserID     int           `json:"user_id"`
	BookID     int           `json:"book_id"`
	DatePlaced handlers.Date `json:"date_placed"`
	LimitDate  handlers.Date `json:"limit_date"`
	BookLent   bool          `json:"book_lent"`
}

type Storage interface {
	Create(ctx context.Context, userID, bookID int, placed, limit handlers.Date) (*Entry, error)
	ListByBook(ctx context.Context, bookID int) ([]*Entry, error)
}

type postgresStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &postgresStorage{db: db}
}

func (s *postgresStorage) Create(ctx context.Context, userID, bookID int, placed, limit handlers.Date) (*Entry, error) {
	e := &Entry{UserID: userID, BookID: bookID, DatePlaced: placed, LimitDate: limit}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO waitlist (user_id, book_id, date_placed, limit_date, book_lent)
		 VALUES ($1, $2, $3, $4, false) RETURNING queue_id`,
		userID, bookID, placed, limit).Scan(&e.ID)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *postgresStorage) ListByBook(ctx context.Context, bookID int) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT queue_id, user_id, book_id, date_placed, limit_date, book_lent
		 FROM waitlist WHERE book_id = $1 ORDER BY queue_id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err = rows.Scan(&e.ID, &e.UserID, &e.BookID, &e.DatePlaced, &e.LimitDate, &e.BookLent); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
