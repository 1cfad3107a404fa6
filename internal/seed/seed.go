// Package seed loads the sample library fixtures: staff and customer
// accounts, authors, genres, books with their copies, and waitlist entries.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"lms/internal/auth"
	"lms/internal/handlers"
	"lms/internal/waitlist"
	"lms/package/logger"
)

// Run loads all fixtures. It is a no-op when books already exist, so it can
// be re-run safely.
func Run(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM book`).Scan(&count); err != nil {
		return fmt.Errorf("seed: check books: %w", err)
	}
	if count > 0 {
		logger.Log.Info("Seed skipped, books already present")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	userIDs, err := seedUsers(ctx, tx)
	if err != nil {
		return fmt.Errorf("seed: users: %w", err)
	}

	authorIDs, err := seedNames(ctx, tx, "author", "author_id", authorFixtures)
	if err != nil {
		return fmt.Errorf("seed: authors: %w", err)
	}
	genreIDs, err := seedNames(ctx, tx, "genre", "genre_id", genreFixtures)
	if err != nil {
		return fmt.Errorf("seed: genres: %w", err)
	}

	bookIDs, err := seedBooks(ctx, tx, authorIDs, genreIDs)
	if err != nil {
		return fmt.Errorf("seed: books: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	if err = seedWaitlist(ctx, db, userIDs, bookIDs); err != nil {
		return fmt.Errorf("seed: waitlist: %w", err)
	}
	logger.Log.Info(fmt.Sprintf("Seeded %d users, %d authors, %d genres, %d books",
		len(userIDs), len(authorIDs), len(genreIDs), len(bookIDs)))
	return nil
}

func seedUsers(ctx context.Context, tx *sql.Tx) ([]int, error) {
	ids := make([]int, 0, len(userFixtures))
	for _, f := range userFixtures {
		hash, err := auth.HashPassword(f.Password)
		if err != nil {
			return nil, err
		}
		var id int
		err = tx.QueryRowContext(ctx,
			`INSERT INTO "user" (name, email, password, is_staff, is_active)
			 VALUES ($1, $2, $3, $4, true)
			 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			 RETURNING user_id`,
			f.Name, f.Email, hash, f.IsStaff).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedNames(ctx context.Context, tx *sql.Tx, table, idColumn string, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		var id int
		err := tx.QueryRowContext(ctx,
			`INSERT INTO `+table+` (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING `+idColumn, name).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedBooks(ctx context.Context, tx *sql.Tx, authorIDs, genreIDs []int) ([]int, error) {
	ids := make([]int, 0, len(bookFixtures))
	for _, f := range bookFixtures {
		var id int
		err := tx.QueryRowContext(ctx,
			`INSERT INTO book (title, isbn, quantity, author_id, genre_id)
			 VALUES ($1, $2, $3, $4, $5) RETURNING book_id`,
			f.Title, f.ISBN, f.Quantity, authorIDs[f.Author-1], genreIDs[f.Genre-1]).Scan(&id)
		if err != nil {
			return nil, err
		}
		for i := 0; i < f.Quantity; i++ {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO book_copy (book_id, is_available) VALUES ($1, true)`, id); err != nil {
				return nil, err
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedWaitlist(ctx context.Context, db *sql.DB, userIDs, bookIDs []int) error {
	storage := waitlist.NewStorage(db)
	for _, f := range waitlistFixtures {
		placed, err := handlers.ParseDate(f.DatePlaced)
		if err != nil {
			return err
		}
		limit, err := handlers.ParseDate(f.LimitDate)
		if err != nil {
			return err
		}
		if _, err = storage.Create(ctx, userIDs[f.User-1], bookIDs[f.Book-1], placed, limit); err != nil {
			return err
		}
	}
	return nil
}
