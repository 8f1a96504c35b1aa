package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryRepository())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, u.Role)
	assert.False(t, u.Approved)
	assert.NotEqual(t, "secret", u.Password, "password must be stored hashed")

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Register(ctx, "dave", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	pending, err := svc.Register(ctx, "bob", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "secret"},
		{"wrong password", "bob", "nope"},
		{"unapproved account", "bob", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidLogin, "all failures must look identical")
		})
	}

	require.NoError(t, svc.Approve(ctx, pending.ID))
	u, err := svc.Authenticate(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.True(t, u.Approved)
}

func TestApproveAndReject(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	u, err := svc.Register(ctx, "carol", "secret")
	require.NoError(t, err)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.Approve(ctx, u.ID))
	pending, err = svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	students, err := svc.ApprovedStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "carol", students[0].Username)

	require.NoError(t, svc.Reject(ctx, u.ID))
	_, err = svc.Authenticate(ctx, "carol", "secret")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	assert.ErrorIs(t, svc.Approve(ctx, 999), ErrNotFound)
	assert.ErrorIs(t, svc.Reject(ctx, 999), ErrNotFound)
}

func TestSeedTeacher(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.SeedTeacher(ctx, "teacher", "password"))
	require.NoError(t, svc.SeedTeacher(ctx, "teacher", "password"), "seeding twice must not duplicate")

	u, err := svc.Authenticate(ctx, "teacher", "password")
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, u.Role)
	assert.True(t, u.Approved)
}
