package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a user and returns it with the assigned id.
func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, role, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Username, u.Password, u.Role, u.Approved, u.CreatedAt)
	if err := row.Scan(&u.ID); err != nil {
		return User{}, err
	}
	return u, nil
}

// FindByID returns a user by id, or nil when absent.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password, role, approved, created_at
		FROM users WHERE id = $1
	`, id)
}

// FindByUsername returns a user by username, or nil when absent.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password, role, approved, created_at
		FROM users WHERE username = $1
	`, username)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Approved, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Approve flips the approved flag to true.
func (r *PostgresRepository) Approve(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET approved = TRUE WHERE id = $1`, id)
	return err
}

// Delete removes a user row.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// ListPending returns accounts with approved = false.
func (r *PostgresRepository) ListPending(ctx context.Context) ([]User, error) {
	return r.list(ctx, `
		SELECT id, username, password, role, approved, created_at
		FROM users WHERE approved = FALSE ORDER BY created_at
	`)
}

// ListApprovedStudents returns active student accounts ordered by username.
func (r *PostgresRepository) ListApprovedStudents(ctx context.Context) ([]User, error) {
	return r.list(ctx, `
		SELECT id, username, password, role, approved, created_at
		FROM users WHERE role = 'student' AND approved = TRUE ORDER BY username
	`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.Approved, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}
