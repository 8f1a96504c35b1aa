// Package upload stores photo files in a single flat directory, addressed by
// sanitized filename.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes and serves files out of one directory.
type Store struct {
	dir string
}

// New creates the directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the file under a sanitized version of name and returns the
// stored name, which is the durable reference kept in the database. A name
// that sanitizes to nothing gets a generated one, preserving the extension
// when it survives sanitization.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	stored := Sanitize(name)
	if stored == "" {
		stored = uuid.NewString() + filepath.Ext(Sanitize(filepath.Base(name)))
	}
	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", stored, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write %s: %w", stored, err)
	}
	return stored, nil
}

// Path resolves a stored name to a path inside the directory. The name is
// re-sanitized so a crafted request cannot escape the directory.
func (s *Store) Path(name string) (string, error) {
	clean := Sanitize(name)
	if clean == "" || clean != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(s.dir, clean), nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(name string) error {
	clean := Sanitize(name)
	if clean == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, clean)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Sanitize reduces a client-supplied filename to a safe flat name: path
// components are dropped, spaces become underscores, anything outside
// [A-Za-z0-9._-] is removed, and leading dots are stripped so the result can
// never traverse upward or hide as a dotfile. Returns "" when nothing is left.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" || out == "_" {
		return ""
	}
	return out
}
