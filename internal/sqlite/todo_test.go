package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/sqlite"
)

func newTodo(t *testing.T) *sqlite.Todo {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.Migrate(db))

	return sqlite.NewTodo(db)
}

func TestTodo_All(t *testing.T) {
	store := newTodo(t)
	ctx := context.Background()

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	first, second := "first", "second"

	for _, description := range []*string{&first, &second, &first} {
		_, err := store.Create(ctx, internal.CreateParams{Description: description})
		require.NoError(t, err)
	}

	all, err = store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "first", *all[0].Description)
	assert.Equal(t, "second", *all[1].Description)
	assert.Equal(t, "first", *all[2].Description)
	assert.Less(t, all[0].ID, all[1].ID)
}

func TestTodo_Create(t *testing.T) {
	store := newTodo(t)
	ctx := context.Background()

	description := "Buy milk"

	created, err := store.Create(ctx, internal.CreateParams{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	require.NotNil(t, created.Description)
	assert.Equal(t, description, *created.Description)
	assert.False(t, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	empty, err := store.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), empty.ID)
	assert.Nil(t, empty.Description)
}

func TestTodo_Update(t *testing.T) {
	store := newTodo(t)
	ctx := context.Background()

	created, err := store.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		updated, err := store.Update(ctx, created.ID, internal.UpdateParams{Status: true})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, updated.Status)
	}

	found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found.Status)

	_, err = store.Update(ctx, 100, internal.UpdateParams{Status: true})
	assertCode(t, err, internal.ErrorCodeNotFound)
}

func TestTodo_Delete(t *testing.T) {
	store := newTodo(t)
	ctx := context.Background()

	created, err := store.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Find(ctx, created.ID)
	assertCode(t, err, internal.ErrorCodeNotFound)

	assertCode(t, store.Delete(ctx, created.ID), internal.ErrorCodeNotFound)

	// ids are never reused
	next, err := store.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)
	assert.Greater(t, next.ID, created.ID)
}

func assertCode(t *testing.T, err error, code internal.ErrorCode) {
	t.Helper()

	var ierr *internal.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, code, ierr.Code())
}
