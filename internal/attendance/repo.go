package attendance

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepository persists attendance records in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Find returns the record for a (user, event) pair, or nil when absent.
func (r *PostgresRepository) Find(ctx context.Context, userID, eventID int64) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, event_id, intending, present
		FROM attendance WHERE user_id = $1 AND event_id = $2
	`, userID, eventID)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.EventID, &rec.Intending, &rec.Present); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Insert writes a new record and returns it with the assigned id.
func (r *PostgresRepository) Insert(ctx context.Context, rec Record) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (user_id, event_id, intending, present)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rec.UserID, rec.EventID, rec.Intending, rec.Present)
	if err := row.Scan(&rec.ID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update rewrites both flags of an existing record.
func (r *PostgresRepository) Update(ctx context.Context, rec Record) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE attendance SET intending = $2, present = $3 WHERE id = $1
	`, rec.ID, rec.Intending, rec.Present)
	return err
}

// ListByEvent returns all records for one event.
func (r *PostgresRepository) ListByEvent(ctx context.Context, eventID int64) ([]Record, error) {
	return r.list(ctx, `
		SELECT id, user_id, event_id, intending, present
		FROM attendance WHERE event_id = $1
	`, eventID)
}

// ListByUser returns all records for one user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	return r.list(ctx, `
		SELECT id, user_id, event_id, intending, present
		FROM attendance WHERE user_id = $1
	`, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.EventID, &rec.Intending, &rec.Present); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
