package book

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"lms/package/client/database"
)

type Storage interface {
	List(ctx context.Context, query string) ([]*Book, error)
	ByID(ctx context.Context, id int) (*Book, error)
	CreateWithCopies(ctx context.Context, nb NewBook) (*Book, error)
	Update(ctx context.Context, id int, upd BookUpdate) (*Book, error)
	Delete(ctx context.Context, id int) error
}

type postgresStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &postgresStorage{db: db}
}

const bookSelect = `
	SELECT b.book_id, b.title, b.isbn, b.quantity,
	       a.author_id, a.name, g.genre_id, g.name
	FROM book b
	JOIN author a ON a.author_id = b.author_id
	JOIN genre g ON g.genre_id = b.genre_id`

func (s *postgresStorage) List(ctx context.Context, query string) ([]*Book, error) {
	rows, err := s.db.QueryContext(ctx, bookSelect+`
		WHERE $1 = '' OR b.title ILIKE '%' || $1 || '%' OR a.name ILIKE '%' || $1 || '%'
		ORDER BY b.book_id`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err = rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.Quantity,
			&b.AuthorID, &b.AuthorName, &b.GenreID, &b.GenreName); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = s.attachCopies(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *postgresStorage) ByID(ctx context.Context, id int) (*Book, error) {
	b := &Book{}
	err := s.db.QueryRowContext(ctx, bookSelect+` WHERE b.book_id = $1`, id).
		Scan(&b.ID, &b.Title, &b.ISBN, &b.Quantity,
			&b.AuthorID, &b.AuthorName, &b.GenreID, &b.GenreName)
	if err != nil {
		return nil, database.MapNoRows(err)
	}
	if err = s.attachCopies(ctx, []*Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// attachCopies loads the copies of every listed book in one query, ordered by
// copy_id so the 1-based copy number is stable.
func (s *postgresStorage) attachCopies(ctx context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(books))
	byID := make(map[int]*Book, len(books))
	for _, b := range books {
		ids = append(ids, int64(b.ID))
		byID[b.ID] = b
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT copy_id, book_id, is_available FROM book_copy
		 WHERE book_id = ANY($1) ORDER BY copy_id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c Copy
		var bookID int
		if err = rows.Scan(&c.ID, &bookID, &c.IsAvailable); err != nil {
			return err
		}
		if b := byID[bookID]; b != nil {
			b.Copies = append(b.Copies, c)
		}
	}
	return rows.Err()
}

func (s *postgresStorage) CreateWithCopies(ctx context.Context, nb NewBook) (*Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	authorID, err := upsertName(ctx, tx, "author", "author_id", nb.AuthorName)
	if err != nil {
		return nil, err
	}
	genreID, err := upsertName(ctx, tx, "genre", "genre_id", nb.GenreName)
	if err != nil {
		return nil, err
	}

	var bookID int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO book (title, isbn, quantity, author_id, genre_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING book_id`,
		nb.Title, nb.ISBN, nb.Copies, authorID, genreID).Scan(&bookID)
	if err != nil {
		return nil, err
	}

	for i := 0; i < nb.Copies; i++ {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO book_copy (book_id, is_available) VALUES ($1, true)`, bookID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.ByID(ctx, bookID)
}

func (s *postgresStorage) Update(ctx context.Context, id int, upd BookUpdate) (*Book, error) {
	current, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	title, isbn := current.Title, current.ISBN
	authorID, genreID := current.AuthorID, current.GenreID

	if upd.Title != nil {
		title = *upd.Title
	}
	if upd.ISBN != nil {
		isbn = *upd.ISBN
	}
	if upd.AuthorName != nil {
		if authorID, err = upsertName(ctx, tx, "author", "author_id", *upd.AuthorName); err != nil {
			return nil, err
		}
	}
	if upd.GenreName != nil {
		if genreID, err = upsertName(ctx, tx, "genre", "genre_id", *upd.GenreName); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE book SET title = $1, isbn = $2, author_id = $3, genre_id = $4 WHERE book_id = $5`,
		title, isbn, authorID, genreID, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return s.ByID(ctx, id)
}

func (s *postgresStorage) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM book WHERE book_id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// upsertName is the single conditional insert behind get-or-create-by-name.
// The DO UPDATE arm makes RETURNING yield the id of a pre-existing row too.
func upsertName(ctx context.Context, tx *sql.Tx, table, idColumn, name string) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx,
		`INSERT INTO `+table+` (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING `+idColumn, name).Scan(&id)
	return id, err
}
