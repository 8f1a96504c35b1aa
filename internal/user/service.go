package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service implements account registration, login checks and approval.
type Service struct {
	repo Repository
}

// NewService creates a service backed by a repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates an unapproved student account.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if username == "" || password == "" {
		return User{}, ErrMissingCredentials
	}
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, User{
		Username: username,
		Password: string(hash),
		Role:     RoleStudent,
		Approved: false,
	})
}

// Authenticate verifies credentials and approval. Every failure mode maps to
// ErrInvalidLogin so the response never reveals which check rejected the login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	if u == nil {
		return User{}, ErrInvalidLogin
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidLogin
	}
	if !u.Approved {
		return User{}, ErrInvalidLogin
	}
	return *u, nil
}

// Approve activates a pending account.
func (s *Service) Approve(ctx context.Context, id int64) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	return s.repo.Approve(ctx, id)
}

// Reject deletes a pending account permanently.
func (s *Service) Reject(ctx context.Context, id int64) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Pending lists accounts awaiting approval.
func (s *Service) Pending(ctx context.Context) ([]User, error) {
	return s.repo.ListPending(ctx)
}

// ApprovedStudents lists active student accounts.
func (s *Service) ApprovedStudents(ctx context.Context) ([]User, error) {
	return s.repo.ListApprovedStudents(ctx)
}

// SeedTeacher creates the bootstrap teacher account if it does not exist yet.
func (s *Service) SeedTeacher(ctx context.Context, username, password string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.repo.Create(ctx, User{
		Username: username,
		Password: string(hash),
		Role:     RoleTeacher,
		Approved: true,
	})
	return err
}
