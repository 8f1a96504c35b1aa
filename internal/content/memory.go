package content

import (
	"context"
	"sort"
	"sync"
)

type grantKey struct {
	contentID int64
	userID    int64
}

// MemoryRepository is a map-backed repository for dev mode and tests.
type MemoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	contents map[int64]Content
	photos   map[int64]Photo
	grants   map[grantKey]struct{}
}

// NewMemoryRepository creates an empty in-memory repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		contents: make(map[int64]Content),
		photos:   make(map[int64]Photo),
		grants:   make(map[grantKey]struct{}),
	}
}

func (r *MemoryRepository) CreateContent(_ context.Context, c Content) (Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.contents[c.ID] = c
	return c, nil
}

func (r *MemoryRepository) FindContent(_ context.Context, id int64) (*Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contents[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryRepository) ListByEvent(_ context.Context, eventID int64) ([]Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Content
	for _, c := range r.contents {
		if c.EventID == eventID {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *MemoryRepository) DeleteContent(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contents, id)
	return nil
}

func (r *MemoryRepository) AddPhoto(_ context.Context, p Photo) (Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.photos[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) ListPhotos(_ context.Context, contentID int64) ([]Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []Photo
	for _, p := range r.photos {
		if p.ContentID == contentID {
			res = append(res, p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *MemoryRepository) DeletePhotos(_ context.Context, contentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.photos {
		if p.ContentID == contentID {
			delete(r.photos, id)
		}
	}
	return nil
}

func (r *MemoryRepository) Grant(_ context.Context, contentID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants[grantKey{contentID, userID}] = struct{}{}
	return nil
}

func (r *MemoryRepository) HasAccess(_ context.Context, contentID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.grants[grantKey{contentID, userID}]
	return ok, nil
}

func (r *MemoryRepository) DeleteGrants(_ context.Context, contentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.grants {
		if key.contentID == contentID {
			delete(r.grants, key)
		}
	}
	return nil
}
