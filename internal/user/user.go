package user

import (
	"context"
	"errors"
	"time"
)

// Roles known to the system. Role is fixed at creation and never changes.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var (
	// ErrNotFound is returned when a user id or username does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrMissingCredentials is returned when a registration form omits the
	// username or password.
	ErrMissingCredentials = errors.New("username and password required")
	// ErrInvalidLogin covers unknown usernames, wrong passwords and
	// unapproved accounts alike; callers must not learn which one applied.
	ErrInvalidLogin = errors.New("invalid credentials or unapproved account")
)

// User is an account. Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository persists users. Find methods return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]User, error)
	ListApprovedStudents(ctx context.Context) ([]User, error)
}
