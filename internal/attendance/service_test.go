package attendance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubtrack/internal/event"
	"clubtrack/internal/user"
)

type fixture struct {
	svc    *Service
	repo   *MemoryRepository
	users  *user.MemoryRepository
	events *event.MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := NewMemoryRepository()
	users := user.NewMemoryRepository()
	events := event.NewMemoryRepository()
	return &fixture{
		svc:    NewService(repo, users, events),
		repo:   repo,
		users:  users,
		events: events,
	}
}

func (f *fixture) addStudent(t *testing.T, name string) user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.User{
		Username: name, Role: user.RoleStudent, Approved: true,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) addEvent(t *testing.T, title string) event.Event {
	t.Helper()
	ev, err := f.events.Create(context.Background(), event.Event{Title: title})
	require.NoError(t, err)
	return ev
}

func TestSetIntentUpserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	st := f.addStudent(t, "alice")
	ev := f.addEvent(t, "meeting")

	require.NoError(t, f.svc.SetIntent(ctx, st.ID, ev.ID, true))
	require.NoError(t, f.svc.SetIntent(ctx, st.ID, ev.ID, false))

	recs, err := f.repo.ListByUser(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1, "sequential calls must not create a second row")
	assert.False(t, recs[0].Intending)
}

func TestIntentAndPresenceAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	st := f.addStudent(t, "alice")
	ev := f.addEvent(t, "meeting")

	require.NoError(t, f.svc.SetIntent(ctx, st.ID, ev.ID, true))
	require.NoError(t, f.svc.SetPresence(ctx, st.ID, ev.ID, true))

	rec, err := f.repo.Find(ctx, st.ID, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Intending, "presence update must not clobber intent")
	assert.True(t, rec.Present)

	require.NoError(t, f.svc.SetIntent(ctx, st.ID, ev.ID, false))
	rec, err = f.repo.Find(ctx, st.ID, ev.ID)
	require.NoError(t, err)
	assert.True(t, rec.Present, "intent update must not clobber presence")
}

func TestSheetIncludesStudentsWithoutRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addStudent(t, "alice")
	f.addStudent(t, "bob")
	ev := f.addEvent(t, "meeting")

	require.NoError(t, f.svc.SetIntent(ctx, alice.ID, ev.ID, true))

	sheet, err := f.svc.Sheet(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, sheet, 2)

	byName := map[string]SheetEntry{}
	for _, entry := range sheet {
		byName[entry.Student.Username] = entry
	}
	assert.True(t, byName["alice"].Intending)
	assert.False(t, byName["bob"].Intending, "missing record shows as no data, not an error")
	assert.False(t, byName["bob"].Present)
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.addStudent(t, "alice")
	bob := f.addStudent(t, "bob")
	carol := f.addStudent(t, "carol")
	ev := f.addEvent(t, "meeting")

	require.NoError(t, f.svc.SetIntent(ctx, alice.ID, ev.ID, true))
	require.NoError(t, f.svc.SetIntent(ctx, bob.ID, ev.ID, true))
	require.NoError(t, f.svc.SetIntent(ctx, carol.ID, ev.ID, false))
	require.NoError(t, f.svc.SetPresence(ctx, alice.ID, ev.ID, true))

	eventStats, studentStats, err := f.svc.Statistics(ctx)
	require.NoError(t, err)
	require.Len(t, eventStats, 1)
	assert.Equal(t, 2, eventStats[0].IntendingCount)
	assert.ElementsMatch(t, []string{"alice", "bob"}, eventStats[0].IntendingNames)
	assert.Equal(t, 1, eventStats[0].PresentCount)
	assert.ElementsMatch(t, []string{"alice"}, eventStats[0].PresentNames)

	require.Len(t, studentStats, 3)
	byName := map[string]StudentStats{}
	for _, st := range studentStats {
		byName[st.Student.Username] = st
	}
	assert.Equal(t, 1, byName["alice"].IntendingCount)
	assert.Equal(t, 1, byName["alice"].PresentCount)
	assert.Equal(t, 1, byName["bob"].IntendingCount)
	assert.Equal(t, 0, byName["bob"].PresentCount)
	assert.Equal(t, 0, byName["carol"].IntendingCount)
}
