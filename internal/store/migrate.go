package store

import "database/sql"

// Migrate applies the schema. Statements are idempotent so this runs on every start.
func Migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		username   TEXT UNIQUE NOT NULL,
		password   TEXT NOT NULL,
		role       TEXT NOT NULL,
		approved   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS events (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		date        TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id        BIGSERIAL PRIMARY KEY,
		user_id   BIGINT NOT NULL REFERENCES users(id),
		event_id  BIGINT NOT NULL REFERENCES events(id),
		intending BOOLEAN NOT NULL DEFAULT FALSE,
		present   BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (user_id, event_id)
	);

	CREATE TABLE IF NOT EXISTS contents (
		id          BIGSERIAL PRIMARY KEY,
		event_id    BIGINT NOT NULL REFERENCES events(id),
		content     TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS content_photos (
		id         BIGSERIAL PRIMARY KEY,
		content_id BIGINT NOT NULL REFERENCES contents(id),
		photo_path TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS access_grants (
		id         BIGSERIAL PRIMARY KEY,
		content_id BIGINT NOT NULL REFERENCES contents(id),
		user_id    BIGINT NOT NULL REFERENCES users(id)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_event ON attendance(event_id);
	CREATE INDEX IF NOT EXISTS idx_contents_event   ON contents(event_id);
	CREATE INDEX IF NOT EXISTS idx_photos_content   ON content_photos(content_id);
	CREATE INDEX IF NOT EXISTS idx_access_content   ON access_grants(content_id);
	`
	_, err := db.Exec(schema)
	return err
}
