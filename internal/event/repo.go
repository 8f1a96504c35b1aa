package event

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepository persists events in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an event and returns it with the assigned id.
func (r *PostgresRepository) Create(ctx context.Context, e Event) (Event, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO events (title, date, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, e.Title, e.Date, e.Description)
	if err := row.Scan(&e.ID); err != nil {
		return Event{}, err
	}
	return e, nil
}

// FindByID returns an event by id, or nil when absent.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, date, description FROM events WHERE id = $1
	`, id)
	var e Event
	if err := row.Scan(&e.ID, &e.Title, &e.Date, &e.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListByDate returns all events ordered by date ascending.
func (r *PostgresRepository) ListByDate(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, date, description FROM events ORDER BY date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Description); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
