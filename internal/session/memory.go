package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	sess    Session
	expires time.Time
}

// MemoryBackend is a map-backed session store for dev mode and tests.
type MemoryBackend struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Put(_ context.Context, sess Session, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[sess.ID] = memoryEntry{sess: sess, expires: time.Now().Add(ttl)}
	return nil
}

func (b *MemoryBackend) Get(_ context.Context, id string) (*Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expires) {
		delete(b.sessions, id)
		return nil, nil
	}
	sess := entry.sess
	return &sess, nil
}

func (b *MemoryBackend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, id)
	return nil
}
