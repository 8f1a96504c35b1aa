package content

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresRepository persists content, photos and grants in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateContent inserts a content row and returns it with the assigned id.
func (r *PostgresRepository) CreateContent(ctx context.Context, c Content) (Content, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO contents (event_id, content, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.EventID, c.Content, c.Description)
	if err := row.Scan(&c.ID); err != nil {
		return Content{}, err
	}
	return c, nil
}

// FindContent returns a content row by id, or nil when absent.
func (r *PostgresRepository) FindContent(ctx context.Context, id int64) (*Content, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, event_id, content, description FROM contents WHERE id = $1
	`, id)
	var c Content
	if err := row.Scan(&c.ID, &c.EventID, &c.Content, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListByEvent returns all content rows for one event.
func (r *PostgresRepository) ListByEvent(ctx context.Context, eventID int64) ([]Content, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, content, description FROM contents WHERE event_id = $1 ORDER BY id
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Content
	for rows.Next() {
		var c Content
		if err := rows.Scan(&c.ID, &c.EventID, &c.Content, &c.Description); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// DeleteContent removes a content row.
func (r *PostgresRepository) DeleteContent(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contents WHERE id = $1`, id)
	return err
}

// AddPhoto inserts a photo row and returns it with the assigned id.
func (r *PostgresRepository) AddPhoto(ctx context.Context, p Photo) (Photo, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO content_photos (content_id, photo_path)
		VALUES ($1, $2)
		RETURNING id
	`, p.ContentID, p.PhotoPath)
	if err := row.Scan(&p.ID); err != nil {
		return Photo{}, err
	}
	return p, nil
}

// ListPhotos returns all photos attached to a content item.
func (r *PostgresRepository) ListPhotos(ctx context.Context, contentID int64) ([]Photo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content_id, photo_path FROM content_photos WHERE content_id = $1 ORDER BY id
	`, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.ContentID, &p.PhotoPath); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// DeletePhotos removes all photo rows for a content item.
func (r *PostgresRepository) DeletePhotos(ctx context.Context, contentID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM content_photos WHERE content_id = $1`, contentID)
	return err
}

// Grant records that one user may view one content item.
func (r *PostgresRepository) Grant(ctx context.Context, contentID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_grants (content_id, user_id) VALUES ($1, $2)
	`, contentID, userID)
	return err
}

// HasAccess reports whether a grant exists for the (content, user) pair.
func (r *PostgresRepository) HasAccess(ctx context.Context, contentID, userID int64) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM access_grants WHERE content_id = $1 AND user_id = $2)
	`, contentID, userID)
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// DeleteGrants removes all grants for a content item.
func (r *PostgresRepository) DeleteGrants(ctx context.Context, contentID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM access_grants WHERE content_id = $1`, contentID)
	return err
}
