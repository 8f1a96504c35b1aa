package attendance

import (
	"context"
	"sort"
	"sync"
)

type pairKey struct {
	userID  int64
	eventID int64
}

// MemoryRepository is a map-backed repository for dev mode and tests. Records
// are keyed by (user, event), so duplicates cannot exist here by construction.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byPair map[pairKey]Record
}

// NewMemoryRepository creates an empty in-memory repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byPair: make(map[pairKey]Record)}
}

func (r *MemoryRepository) Find(_ context.Context, userID, eventID int64) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.byPair[pairKey{userID, eventID}]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *MemoryRepository) Insert(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	r.byPair[pairKey{rec.UserID, rec.EventID}] = rec
	return rec, nil
}

func (r *MemoryRepository) Update(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, existing := range r.byPair {
		if existing.ID == rec.ID {
			rec.UserID = existing.UserID
			rec.EventID = existing.EventID
			r.byPair[key] = rec
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) ListByEvent(_ context.Context, eventID int64) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Record
	for _, rec := range r.byPair {
		if rec.EventID == eventID {
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Record
	for _, rec := range r.byPair {
		if rec.UserID == userID {
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}
