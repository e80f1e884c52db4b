package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, f *fixture, people ...[3]string) []UserView {
	t.Helper()
	out := make([]UserView, 0, len(people))
	for _, p := range people {
		res := f.svc.SignUp(context.Background(), SignUpCommand{
			Email: p[0], Password: "SecurePassword123!", FirstName: p[1], LastName: p[2],
		})
		require.True(t, res.IsSuccess(), "errors: %v", res.Errors)
		out = append(out, res.Data.User)
	}
	return out
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	empty := f.svc.ListUsers(ctx, ListUsersQuery{})
	require.True(t, empty.IsSuccess())
	assert.NotNil(t, empty.Data)
	assert.Empty(t, empty.Data)

	users := seedUsers(t, f,
		[3]string{"a@example.com", "Ana", "Lima"},
		[3]string{"b@example.com", "Bruno", "Costa"},
		[3]string{"c@example.com", "Carla", "Dias"},
	)
	require.True(t, f.svc.SetActive(ctx, SetActiveCommand{UserID: users[1].ID, Active: false}).IsSuccess())

	all := f.svc.ListUsers(ctx, ListUsersQuery{})
	require.True(t, all.IsSuccess())
	require.Len(t, all.Data, 3)
	assert.Equal(t, "a@example.com", all.Data[0].Email)
	assert.Equal(t, "b@example.com", all.Data[1].Email)
	assert.False(t, all.Data[1].IsActive)
	assert.Equal(t, "c@example.com", all.Data[2].Email)

	active := f.svc.ListUsers(ctx, ListUsersQuery{ActiveOnly: true})
	require.True(t, active.IsSuccess())
	require.Len(t, active.Data, 2)
	assert.Equal(t, users[0].ID, active.Data[0].ID)
	assert.Equal(t, users[2].ID, active.Data[1].ID)
}

func TestListUsers_StoreFailure(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.repo.getAllErr = errBoom

	res := f.svc.ListUsers(context.Background(), ListUsersQuery{})
	assert.Equal(t, KindInternal, res.Kind)
	assert.Equal(t, []string{MsgInternal}, res.Errors)
}

func TestListUsers_PanicBecomesInternal(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.repo.panicOnGetAll = true

	res := f.svc.ListUsers(context.Background(), ListUsersQuery{})
	assert.Equal(t, KindInternal, res.Kind)
	assert.Equal(t, []string{MsgInternal}, res.Errors)
}

func TestSearchUsers(t *testing.T) {
	t.Parallel()
	idx := &sliceIndex{}
	f := newFixture(WithUserIndex(idx))
	ctx := context.Background()
	seedUsers(t, f,
		[3]string{"ana@example.com", "Ana", "Lima"},
		[3]string{"bruno@example.com", "Bruno", "Lima"},
		[3]string{"carla@example.com", "Carla", "Dias"},
	)

	res := f.svc.SearchUsers(ctx, SearchUsersQuery{Query: "lima"})
	require.True(t, res.IsSuccess())
	require.Len(t, res.Data, 2)
	assert.Equal(t, defaultSearchSize, idx.lastSize)

	blank := f.svc.SearchUsers(ctx, SearchUsersQuery{Query: "   "})
	require.True(t, blank.IsSuccess())
	assert.Empty(t, blank.Data)

	none := f.svc.SearchUsers(ctx, SearchUsersQuery{Query: "zzz", Size: 500})
	require.True(t, none.IsSuccess())
	assert.NotNil(t, none.Data)
	assert.Empty(t, none.Data)
	assert.Equal(t, defaultSearchSize, idx.lastSize)

	idx.err = errBoom
	failed := f.svc.SearchUsers(ctx, SearchUsersQuery{Query: "ana", Size: 5})
	assert.Equal(t, KindInternal, failed.Kind)
	assert.Equal(t, 5, idx.lastSize)
}

func TestSearchUsers_WithoutIndex(t *testing.T) {
	t.Parallel()
	f := newFixture()
	seedUsers(t, f, [3]string{"ana@example.com", "Ana", "Lima"})

	res := f.svc.SearchUsers(context.Background(), SearchUsersQuery{Query: "ana"})
	require.True(t, res.IsSuccess())
	assert.Empty(t, res.Data)
}

func TestSyncDirectory(t *testing.T) {
	t.Parallel()
	idx := &sliceIndex{}
	f := newFixture()
	ctx := context.Background()
	u := seedUsers(t, f, [3]string{"ana@example.com", "Ana", "Lima"})[0]

	// Without an index nothing is written but the user still resolves.
	res := f.svc.SyncDirectory(ctx, u.ID)
	require.True(t, res.IsSuccess())

	f.svc.Index = idx
	res = f.svc.SyncDirectory(ctx, u.ID)
	require.True(t, res.IsSuccess())
	assert.Equal(t, u, idx.docs[u.ID])

	assert.Equal(t, KindUserNotFound, f.svc.SyncDirectory(ctx, "ghost").Kind)

	idx.err = errBoom
	assert.Equal(t, KindInternal, f.svc.SyncDirectory(ctx, u.ID).Kind)
}
