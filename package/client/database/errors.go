package database

import (
	"database/sql"
	"errors"
)

// ErrNotFound is what storage implementations return instead of leaking
// sql.ErrNoRows to handlers.
var ErrNotFound = errors.New("not found")

func MapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
