package event

import (
	"context"
	"errors"
	"time"
)

// DateFormat is the form input layout for event dates (datetime-local).
const DateFormat = "2006-01-02T15:04"

var (
	// ErrNotFound is returned when an event id does not exist.
	ErrNotFound = errors.New("event not found")
	// ErrBadDate is returned when the submitted date does not match DateFormat.
	ErrBadDate = errors.New("invalid date format")
	// ErrMissingTitle is returned when the event form omits the title.
	ErrMissingTitle = errors.New("title required")
)

// Event is a scheduled club meeting or activity.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Repository persists events. FindByID returns (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)
	FindByID(ctx context.Context, id int64) (*Event, error)
	ListByDate(ctx context.Context) ([]Event, error)
}

// Service implements event creation and listing.
type Service struct {
	repo Repository
}

// NewService creates a service backed by a repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create parses the form date and stores a new event.
func (s *Service) Create(ctx context.Context, title, dateStr, description string) (Event, error) {
	if title == "" {
		return Event{}, ErrMissingTitle
	}
	date, err := time.Parse(DateFormat, dateStr)
	if err != nil {
		return Event{}, ErrBadDate
	}
	return s.repo.Create(ctx, Event{Title: title, Date: date, Description: description})
}

// Get returns an event by id, or nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Event, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all events ordered by date.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.ListByDate(ctx)
}
