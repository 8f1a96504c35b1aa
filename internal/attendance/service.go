package attendance

import (
	"context"
	"sort"

	"clubtrack/internal/event"
	"clubtrack/internal/user"
)

// UserDirectory is the slice of the user repository the service needs.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
	ListApprovedStudents(ctx context.Context) ([]user.User, error)
}

// EventLister is the slice of the event repository the service needs.
type EventLister interface {
	ListByDate(ctx context.Context) ([]event.Event, error)
}

// Service coordinates intent/presence upserts and statistics rollups.
type Service struct {
	repo   Repository
	users  UserDirectory
	events EventLister
}

// NewService creates a service backed by the given stores.
func NewService(repo Repository, users UserDirectory, events EventLister) *Service {
	return &Service{repo: repo, users: users, events: events}
}

// SetIntent records a student's plan to attend an event. The upsert is
// find-then-write; presence set earlier on the same record is preserved.
func (s *Service) SetIntent(ctx context.Context, userID, eventID int64, intending bool) error {
	rec, err := s.repo.Find(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if rec == nil {
		_, err = s.repo.Insert(ctx, Record{UserID: userID, EventID: eventID, Intending: intending})
		return err
	}
	rec.Intending = intending
	return s.repo.Update(ctx, *rec)
}

// SetPresence records a teacher's confirmation that a student attended.
// Same upsert shape as SetIntent; intent is preserved.
func (s *Service) SetPresence(ctx context.Context, userID, eventID int64, present bool) error {
	rec, err := s.repo.Find(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if rec == nil {
		_, err = s.repo.Insert(ctx, Record{UserID: userID, EventID: eventID, Present: present})
		return err
	}
	rec.Present = present
	return s.repo.Update(ctx, *rec)
}

// SheetEntry is one row of the presence-marking view.
type SheetEntry struct {
	Student   user.User `json:"student"`
	Intending bool      `json:"intending"`
	Present   bool      `json:"present"`
}

// Sheet lists every approved student with their flags for one event. Students
// with no record yet appear with both flags false rather than being omitted.
func (s *Service) Sheet(ctx context.Context, eventID int64) ([]SheetEntry, error) {
	students, err := s.users.ListApprovedStudents(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	byUser := make(map[int64]Record, len(recs))
	for _, rec := range recs {
		byUser[rec.UserID] = rec
	}
	entries := make([]SheetEntry, 0, len(students))
	for _, st := range students {
		rec := byUser[st.ID]
		entries = append(entries, SheetEntry{Student: st, Intending: rec.Intending, Present: rec.Present})
	}
	return entries, nil
}

// EventStats is the per-event rollup.
type EventStats struct {
	Event          event.Event `json:"event"`
	IntendingCount int         `json:"intending_count"`
	IntendingNames []string    `json:"intending_names"`
	PresentCount   int         `json:"present_count"`
	PresentNames   []string    `json:"present_names"`
}

// StudentStats is the per-student rollup.
type StudentStats struct {
	Student        user.User `json:"student"`
	IntendingCount int       `json:"intending_count"`
	PresentCount   int       `json:"present_count"`
}

// Statistics recomputes both rollups by scanning attendance. No caching;
// the expected data volume is a club roster, not an org chart.
func (s *Service) Statistics(ctx context.Context) ([]EventStats, []StudentStats, error) {
	events, err := s.events.ListByDate(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := map[int64]string{}
	lookup := func(id int64) (string, error) {
		if name, ok := names[id]; ok {
			return name, nil
		}
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		if u == nil {
			return "", nil
		}
		names[id] = u.Username
		return u.Username, nil
	}

	eventStats := make([]EventStats, 0, len(events))
	for _, ev := range events {
		recs, err := s.repo.ListByEvent(ctx, ev.ID)
		if err != nil {
			return nil, nil, err
		}
		stats := EventStats{Event: ev}
		for _, rec := range recs {
			name, err := lookup(rec.UserID)
			if err != nil {
				return nil, nil, err
			}
			if name == "" {
				continue
			}
			if rec.Intending {
				stats.IntendingCount++
				stats.IntendingNames = append(stats.IntendingNames, name)
			}
			if rec.Present {
				stats.PresentCount++
				stats.PresentNames = append(stats.PresentNames, name)
			}
		}
		sort.Strings(stats.IntendingNames)
		sort.Strings(stats.PresentNames)
		eventStats = append(eventStats, stats)
	}

	students, err := s.users.ListApprovedStudents(ctx)
	if err != nil {
		return nil, nil, err
	}
	studentStats := make([]StudentStats, 0, len(students))
	for _, st := range students {
		recs, err := s.repo.ListByUser(ctx, st.ID)
		if err != nil {
			return nil, nil, err
		}
		stats := StudentStats{Student: st}
		for _, rec := range recs {
			if rec.Intending {
				stats.IntendingCount++
			}
			if rec.Present {
				stats.PresentCount++
			}
		}
		studentStats = append(studentStats, stats)
	}
	return eventStats, studentStats, nil
}
