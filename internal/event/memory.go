package event

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is a map-backed repository for dev mode and tests.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]Event
}

// NewMemoryRepository creates an empty in-memory repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{events: make(map[int64]Event)}
}

func (r *MemoryRepository) Create(_ context.Context, e Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	e.ID = r.nextID
	r.events[e.ID] = e
	return e, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.events[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListByDate(_ context.Context) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		res = append(res, e)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res, nil
}
