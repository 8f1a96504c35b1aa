package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return NewManager(NewMemoryBackend(), "test-secret", "clubtrack-test", time.Hour)
}

func TestStartResolveEnd(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	token, err := m.Start(ctx, Identity{UserID: 7, Role: "teacher"})
	require.NoError(t, err)

	sess, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, "teacher", sess.Role)

	require.NoError(t, m.End(ctx, token))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession, "token must be dead after logout")
}

func TestResolveRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	_, err := m.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)

	// a token signed with a different secret must not resolve
	other := NewManager(NewMemoryBackend(), "other-secret", "clubtrack-test", time.Hour)
	token, err := other.Start(ctx, Identity{UserID: 1})
	require.NoError(t, err)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPromoteCarriesFlashes(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	token, err := m.Start(ctx, Identity{})
	require.NoError(t, err)
	anon, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	require.NoError(t, m.Flash(ctx, anon.ID, "hello"))

	anon, err = m.Resolve(ctx, token)
	require.NoError(t, err)
	newToken, err := m.Promote(ctx, anon, Identity{UserID: 3, Role: "student"})
	require.NoError(t, err)
	assert.NotEqual(t, token, newToken)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession, "old session must be gone")

	sess, err := m.Resolve(ctx, newToken)
	require.NoError(t, err)
	msgs, err := m.PopFlashes(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, msgs)
}

func TestFlashesAreOneShot(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	token, err := m.Start(ctx, Identity{UserID: 1})
	require.NoError(t, err)
	sess, err := m.Resolve(ctx, token)
	require.NoError(t, err)

	require.NoError(t, m.Flash(ctx, sess.ID, "one"))
	require.NoError(t, m.Flash(ctx, sess.ID, "two"))

	msgs, err := m.PopFlashes(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, msgs)

	msgs, err = m.PopFlashes(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMemoryBackendExpiry(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Put(ctx, Session{ID: "x"}, -time.Second))
	sess, err := b.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
