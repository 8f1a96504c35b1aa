package attendance

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a referenced user or event does not exist.
var ErrNotFound = errors.New("attendance subject not found")

// Record tracks one student's relationship to one event. Intending is set by
// the student, present by a teacher; the two fields never clobber each other.
// At most one record exists per (user, event) pair.
type Record struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	EventID   int64 `json:"event_id"`
	Intending bool  `json:"intending"`
	Present   bool  `json:"present"`
}

// Repository persists attendance records. Find returns (nil, nil) when the
// pair has no record yet; callers treat that as both flags false.
type Repository interface {
	Find(ctx context.Context, userID, eventID int64) (*Record, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	Update(ctx context.Context, rec Record) error
	ListByEvent(ctx context.Context, eventID int64) ([]Record, error)
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
}
