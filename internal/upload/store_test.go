package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"/absolute/path/pic.png", "pic.png"},
		{"....jpg", "jpg"},
		// non-ascii runes are dropped, and so is the then-leading dot
		{"отчёт.pdf", "pdf"},
		{"", ""},
		{"..", ""},
		{"///", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "/")
			assert.NotContains(t, got, "..")
		})
	}
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	name, err := store.Save("notes photo.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.Equal(t, "notes_photo.jpg", name)

	path, err := store.Path(name)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// removing again is not an error
	require.NoError(t, store.Remove(name))
}

func TestSaveGeneratesNameWhenSanitizedAway(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("..", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestPathRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../secret", "a/b.jpg", "..", ""} {
		_, err := store.Path(name)
		assert.Error(t, err, name)
	}
}
