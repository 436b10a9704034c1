package memcached_test

import (
	"context"
	"os"
	"testing"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/memcached"
)

type fakeStore struct {
	todos map[int64]internal.Todo
	finds int
}

func (f *fakeStore) All(_ context.Context) ([]internal.Todo, error) {
	res := make([]internal.Todo, 0, len(f.todos))
	for _, todo := range f.todos {
		res = append(res, todo)
	}

	return res, nil
}

func (f *fakeStore) Create(_ context.Context, params internal.CreateParams) (internal.Todo, error) {
	todo := internal.Todo{ID: int64(len(f.todos) + 1), Description: params.Description, Status: params.Status}
	f.todos[todo.ID] = todo

	return todo, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.todos[id]; !ok {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "not found")
	}

	delete(f.todos, id)

	return nil
}

func (f *fakeStore) Find(_ context.Context, id int64) (internal.Todo, error) {
	f.finds++

	todo, ok := f.todos[id]
	if !ok {
		return internal.Todo{}, internal.NewErrorf(internal.ErrorCodeNotFound, "not found")
	}

	return todo, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, params internal.UpdateParams) (internal.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return internal.Todo{}, internal.NewErrorf(internal.ErrorCodeNotFound, "not found")
	}

	todo.Status = params.Status
	f.todos[id] = todo

	return todo, nil
}

// Nothing listens on the address, every cache call fails and the store is used instead.
func TestTodo_CacheUnavailable(t *testing.T) {
	client := memcache.New("127.0.0.1:1")

	store := &fakeStore{todos: map[int64]internal.Todo{}}
	todo := memcached.NewTodo(client, store, zaptest.NewLogger(t))
	ctx := context.Background()

	created, err := todo.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)

	found, err := todo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.Equal(t, 1, store.finds)

	updated, err := todo.Update(ctx, created.ID, internal.UpdateParams{Status: true})
	require.NoError(t, err)
	assert.True(t, updated.Status)

	all, err := todo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, todo.Delete(ctx, created.ID))

	var ierr *internal.Error

	_, err = todo.Find(ctx, created.ID)
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, internal.ErrorCodeNotFound, ierr.Code())

	err = todo.Delete(ctx, created.ID)
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, internal.ErrorCodeNotFound, ierr.Code())
}

func newClient(t *testing.T) *memcache.Client {
	t.Helper()

	host := os.Getenv("MEMCACHED_HOST")
	if host == "" {
		t.Skip("MEMCACHED_HOST not set, skipping Memcached tests")
	}

	client := memcache.New(host)
	require.NoError(t, client.Ping())

	require.NoError(t, client.DeleteAll())

	return client
}

func TestTodo_Cached(t *testing.T) {
	client := newClient(t)

	store := &fakeStore{todos: map[int64]internal.Todo{}}
	todo := memcached.NewTodo(client, store, zaptest.NewLogger(t))
	ctx := context.Background()

	description := "Buy milk"

	created, err := todo.Create(ctx, internal.CreateParams{Description: &description})
	require.NoError(t, err)

	_, err = client.Get("todo:1")
	require.NoError(t, err)

	found, err := todo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.Zero(t, store.finds)

	store.todos[created.ID] = internal.Todo{ID: created.ID}

	found, err = todo.Find(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Description)
	assert.Equal(t, description, *found.Description)
	assert.Zero(t, store.finds)

	store.todos[created.ID] = created

	updated, err := todo.Update(ctx, created.ID, internal.UpdateParams{Status: true})
	require.NoError(t, err)
	assert.True(t, updated.Status)

	found, err = todo.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found.Status)
	assert.Zero(t, store.finds)

	require.NoError(t, todo.Delete(ctx, created.ID))

	_, err = client.Get("todo:1")
	require.ErrorIs(t, err, memcache.ErrCacheMiss)

	var ierr *internal.Error

	_, err = todo.Find(ctx, created.ID)
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, internal.ErrorCodeNotFound, ierr.Code())
	assert.Equal(t, 1, store.finds)
}

func TestTodo_FindPopulatesCache(t *testing.T) {
	client := newClient(t)

	store := &fakeStore{todos: map[int64]internal.Todo{7: {ID: 7, Status: true}}}
	todo := memcached.NewTodo(client, store, zaptest.NewLogger(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		found, err := todo.Find(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), found.ID)
	}

	assert.Equal(t, 1, store.finds)

	_, err := todo.Find(ctx, 8)
	require.Error(t, err)

	_, err = client.Get("todo:8")
	require.ErrorIs(t, err, memcache.ErrCacheMiss)
}
