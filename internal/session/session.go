// Package session implements server-side sessions. The browser cookie carries
// a signed token whose subject is the session id; the identity itself lives in
// the backend and disappears on logout.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie.
const CookieName = "clubtrack_session"

// ErrNoSession is returned when a token is invalid or its session is gone.
var ErrNoSession = errors.New("no active session")

// Identity is who the request is acting as.
type Identity struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// Session is the server-side record. Flashes are one-shot messages queued by
// mutations and drained by the next rendered view.
type Session struct {
	Identity
	ID      string   `json:"id"`
	Flashes []string `json:"flashes,omitempty"`
}

// Backend stores session records. Get returns (nil, nil) when the id is
// unknown or expired.
type Backend interface {
	Put(ctx context.Context, sess Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues, resolves and ends sessions.
type Manager struct {
	backend Backend
	secret  string
	issuer  string
	ttl     time.Duration
}

// NewManager creates a manager over the given backend.
func NewManager(backend Backend, secret, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{backend: backend, secret: secret, issuer: issuer, ttl: ttl}
}

// TTL returns the session lifetime, which doubles as the cookie max-age.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Start creates a session for the identity and returns the cookie token.
func (m *Manager) Start(ctx context.Context, ident Identity) (string, error) {
	sess := Session{ID: uuid.NewString(), Identity: ident}
	if err := m.backend.Put(ctx, sess, m.ttl); err != nil {
		return "", err
	}
	return issueToken(sess.ID, m.issuer, m.secret, m.ttl)
}

// Resolve validates a cookie token and loads its session.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	id, err := parseToken(token, m.secret, m.issuer)
	if err != nil {
		return nil, ErrNoSession
	}
	sess, err := m.backend.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Promote replaces an anonymous session with an authenticated one under a
// fresh id, carrying pending flashes over. The old record is deleted.
func (m *Manager) Promote(ctx context.Context, old *Session, ident Identity) (string, error) {
	sess := Session{ID: uuid.NewString(), Identity: ident, Flashes: old.Flashes}
	if err := m.backend.Put(ctx, sess, m.ttl); err != nil {
		return "", err
	}
	_ = m.backend.Delete(ctx, old.ID)
	return issueToken(sess.ID, m.issuer, m.secret, m.ttl)
}

// End deletes the server-side record; the cookie token is useless afterwards.
func (m *Manager) End(ctx context.Context, token string) error {
	id, err := parseToken(token, m.secret, m.issuer)
	if err != nil {
		return nil
	}
	return m.backend.Delete(ctx, id)
}

// Flash queues a one-shot message on the session.
func (m *Manager) Flash(ctx context.Context, sessID, msg string) error {
	sess, err := m.backend.Get(ctx, sessID)
	if err != nil || sess == nil {
		return err
	}
	sess.Flashes = append(sess.Flashes, msg)
	return m.backend.Put(ctx, *sess, m.ttl)
}

// PopFlashes drains and returns the queued messages.
func (m *Manager) PopFlashes(ctx context.Context, sessID string) ([]string, error) {
	sess, err := m.backend.Get(ctx, sessID)
	if err != nil || sess == nil {
		return nil, err
	}
	msgs := sess.Flashes
	if len(msgs) == 0 {
		return nil, nil
	}
	sess.Flashes = nil
	if err := m.backend.Put(ctx, *sess, m.ttl); err != nil {
		return nil, err
	}
	return msgs, nil
}
