package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateParsesFormDate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	ev, err := svc.Create(ctx, "Club Meeting", "2026-09-01T17:30", "weekly meetup")
	require.NoError(t, err)
	assert.Equal(t, 2026, ev.Date.Year())
	assert.Equal(t, 17, ev.Date.Hour())

	_, err = svc.Create(ctx, "Bad", "01.09.2026 17:30", "")
	assert.ErrorIs(t, err, ErrBadDate)

	_, err = svc.Create(ctx, "", "2026-09-01T17:30", "")
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestListOrderedByDate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	_, err := svc.Create(ctx, "Later", "2026-10-01T10:00", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Sooner", "2026-09-01T10:00", "")
	require.NoError(t, err)

	events, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Title)
	assert.Equal(t, "Later", events[1].Title)
}

func TestGetMissing(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ev, err := svc.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, ev)
}
