package auth

import "context"

// User is the account record behind both authentication and the /users/
// resource. Password holds the bcrypt hash, never the plain credential.
type User struct {
	ID       int    `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsStaff  bool   `json:"is_staff"`
	IsActive bool   `json:"is_active"`
}

func (u *User) OwnerID() int { return u.ID }

// UserStore is the slice of user persistence the auth surface needs.
// internal/user's postgres storage implements it.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id int) (*User, error)
	CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error)
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signUpResponse struct {
	User    userSummary `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

type signInUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsStaff bool   `json:"is_staff"`
}

type signInResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    signInUser `json:"user"`
}

type meResponse struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsStaff bool   `json:"is_staff"`
}
