package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubtrack/internal/upload"
	"clubtrack/internal/user"
)

func newService(t *testing.T) (*Service, *MemoryRepository, string) {
	t.Helper()
	dir := t.TempDir()
	files, err := upload.New(dir)
	require.NoError(t, err)
	repo := NewMemoryRepository()
	return NewService(repo, files), repo, dir
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	svc, repo, dir := newService(t)

	uploads := []Upload{
		{Name: "board.jpg", Data: strings.NewReader("img1")},
		{Name: "", Data: nil}, // empty file inputs are skipped
		{Name: "notes.png", Data: strings.NewReader("img2")},
	}
	c, err := svc.Publish(ctx, 1, "Meeting notes", "We discussed...", uploads, []int64{10, 11})
	require.NoError(t, err)
	require.NotZero(t, c.ID)

	photos, err := repo.ListPhotos(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	for _, p := range photos {
		_, err := os.Stat(filepath.Join(dir, p.PhotoPath))
		assert.NoError(t, err, "photo file must exist on disk")
	}

	for _, uid := range []int64{10, 11} {
		ok, err := repo.HasAccess(ctx, c.ID, uid)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := repo.HasAccess(ctx, c.ID, 12)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestViewFiltersByAccess(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	granted, err := svc.Publish(ctx, 1, "for alice", "", nil, []int64{10})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, 1, "teacher only", "", nil, nil)
	require.NoError(t, err)

	// the student with a grant sees exactly one item
	visible, err := svc.View(ctx, 1, 10, user.RoleStudent)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, granted.ID, visible[0].ID)

	// a student without grants sees nothing
	visible, err = svc.View(ctx, 1, 12, user.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, visible)

	// teachers bypass the access check entirely
	visible, err = svc.View(ctx, 1, 99, user.RoleTeacher)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	svc, repo, dir := newService(t)

	c, err := svc.Publish(ctx, 7, "notes", "", []Upload{
		{Name: "pic.jpg", Data: strings.NewReader("img")},
	}, []int64{10})
	require.NoError(t, err)

	photos, err := repo.ListPhotos(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	path := filepath.Join(dir, photos[0].PhotoPath)

	// a pre-deleted backing file must not make the cascade fail
	require.NoError(t, os.Remove(path))

	eventID, err := svc.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), eventID)

	photos, err = repo.ListPhotos(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)
	ok, err := repo.HasAccess(ctx, c.ID, 10)
	require.NoError(t, err)
	assert.False(t, ok)

	visible, err := svc.View(ctx, 7, 99, user.RoleTeacher)
	require.NoError(t, err)
	assert.Empty(t, visible)

	_, err = svc.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
