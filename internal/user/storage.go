package user

import (
	"context"
	"database/sql"

	"lms/internal/auth"
	"lms/package/client/database"
)

// Storage is the slice of user persistence the handlers need; the postgres
// implementation also satisfies auth.UserStore.
type Storage interface {
	auth.UserStore
	ListNonStaff(ctx context.Context) ([]*auth.User, error)
	Update(ctx context.Context, u *auth.User) error
	Delete(ctx context.Context, id int) error
	EmailTakenByOther(ctx context.Context, email string, userID int) (bool, error)
}

type postgresStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &postgresStorage{db: db}
}

const userColumns = `user_id, name, email, password, is_staff, is_active`

func scanUser(row *sql.Row) (*auth.User, error) {
	u := &auth.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsStaff, &u.IsActive)
	if err != nil {
		return nil, database.MapNoRows(err)
	}
	return u, nil
}

func (s *postgresStorage) UserByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`, email)
	return scanUser(row)
}

func (s *postgresStorage) UserByID(ctx context.Context, id int) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE user_id = $1`, id)
	return scanUser(row)
}

func (s *postgresStorage) CreateUser(ctx context.Context, name, email, passwordHash string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO "user" (name, email, password, is_staff, is_active)
		 VALUES ($1, $2, $3, false, true)
		 RETURNING `+userColumns, name, email, passwordHash)
	return scanUser(row)
}

func (s *postgresStorage) ListNonStaff(ctx context.Context) ([]*auth.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE is_staff = false ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		u := &auth.User{}
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsStaff, &u.IsActive); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *postgresStorage) Update(ctx context.Context, u *auth.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE "user" SET name = $1, email = $2 WHERE user_id = $3`,
		u.Name, u.Email, u.ID)
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

func (s *postgresStorage) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM "user" WHERE user_id = $1`, id)
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

func (s *postgresStorage) EmailTakenByOther(ctx context.Context, email string, userID int) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM "user" WHERE email = $1 AND user_id <> $2`,
		email, userID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
