package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/service"
)

// fakeRepo is an in-memory TodoRepository.
type fakeRepo struct {
	todos  map[int64]internal.Todo
	nextID int64
	err    error
	calls  []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{todos: map[int64]internal.Todo{}}
}

func (f *fakeRepo) All(_ context.Context) ([]internal.Todo, error) {
	f.calls = append(f.calls, "All")

	if f.err != nil {
		return nil, f.err
	}

	res := []internal.Todo{}
	for id := int64(1); id <= f.nextID; id++ {
		if todo, ok := f.todos[id]; ok {
			res = append(res, todo)
		}
	}

	return res, nil
}

func (f *fakeRepo) Create(_ context.Context, params internal.CreateParams) (internal.Todo, error) {
	f.calls = append(f.calls, "Create")

	if f.err != nil {
		return internal.Todo{}, f.err
	}

	f.nextID++
	todo := internal.Todo{ID: f.nextID, Description: params.Description, Status: params.Status}
	f.todos[todo.ID] = todo

	return todo, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.calls = append(f.calls, "Delete")

	if f.err != nil {
		return f.err
	}

	if _, ok := f.todos[id]; !ok {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "not found")
	}

	delete(f.todos, id)

	return nil
}

func (f *fakeRepo) Find(_ context.Context, id int64) (internal.Todo, error) {
	f.calls = append(f.calls, "Find")

	if f.err != nil {
		return internal.Todo{}, f.err
	}

	todo, ok := f.todos[id]
	if !ok {
		return internal.Todo{}, internal.NewErrorf(internal.ErrorCodeNotFound, "not found")
	}

	return todo, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, params internal.UpdateParams) (internal.Todo, error) {
	f.calls = append(f.calls, "Update")

	if f.err != nil {
		return internal.Todo{}, f.err
	}

	todo, ok := f.todos[id]
	if !ok {
		return internal.Todo{}, internal.NewErrorf(internal.ErrorCodeNotFound, "not found")
	}

	todo.Status = params.Status
	f.todos[id] = todo

	return todo, nil
}

type fakeBroker struct {
	events []string
	err    error
}

func (f *fakeBroker) Created(_ context.Context, _ internal.Todo) error {
	f.events = append(f.events, "created")
	return f.err
}

func (f *fakeBroker) Deleted(_ context.Context, _ int64) error {
	f.events = append(f.events, "deleted")
	return f.err
}

func (f *fakeBroker) Updated(_ context.Context, _ internal.Todo) error {
	f.events = append(f.events, "updated")
	return f.err
}

type fakeSearch struct {
	results internal.SearchResults
	err     error
	calls   int
}

func (f *fakeSearch) Search(_ context.Context, _ internal.SearchParams) (internal.SearchResults, error) {
	f.calls++
	return f.results, f.err
}

func ptr[T any](v T) *T {
	return &v
}

func assertCode(t *testing.T, err error, code internal.ErrorCode) {
	t.Helper()

	var ierr *internal.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, code, ierr.Code())
}

func TestTodo_CreateThenAll(t *testing.T) {
	repo := newFakeRepo()
	broker := &fakeBroker{}
	svc := service.NewTodo(zaptest.NewLogger(t), repo, nil, broker)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	created, err := svc.Create(ctx, internal.CreateParams{Description: ptr("Buy milk")})
	require.NoError(t, err)

	all, err = svc.All(ctx)
	require.NoError(t, err)

	expected := []internal.Todo{{ID: created.ID, Description: ptr("Buy milk"), Status: false}}
	if diff := cmp.Diff(expected, all); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"created"}, broker.events)
}

func TestTodo_Complete(t *testing.T) {
	repo := newFakeRepo()
	broker := &fakeBroker{}
	svc := service.NewTodo(zaptest.NewLogger(t), repo, nil, broker)
	ctx := context.Background()

	created, err := svc.Create(ctx, internal.CreateParams{Description: ptr("Walk the dog")})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		completed, err := svc.Complete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, completed.Status)
		assert.Equal(t, created.ID, completed.ID)
	}

	assert.Equal(t, []string{"created", "updated", "updated"}, broker.events)

	_, err = svc.Complete(ctx, 404)
	assertCode(t, err, internal.ErrorCodeNotFound)
	assert.Equal(t, "Find", repo.calls[len(repo.calls)-1])
}

func TestTodo_Delete(t *testing.T) {
	repo := newFakeRepo()
	broker := &fakeBroker{}
	svc := service.NewTodo(zaptest.NewLogger(t), repo, nil, broker)
	ctx := context.Background()

	created, err := svc.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	assertCode(t, svc.Delete(ctx, created.ID), internal.ErrorCodeNotFound)

	_, err = svc.Complete(ctx, created.ID)
	assertCode(t, err, internal.ErrorCodeNotFound)

	assert.Equal(t, []string{"created", "deleted"}, broker.events)
}

func TestTodo_StoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection refused")

	svc := service.NewTodo(zaptest.NewLogger(t), repo, nil, nil)
	ctx := context.Background()

	_, err := svc.All(ctx)
	require.ErrorIs(t, err, repo.err)

	_, err = svc.Create(ctx, internal.CreateParams{})
	require.ErrorIs(t, err, repo.err)

	_, err = svc.Complete(ctx, 1)
	require.ErrorIs(t, err, repo.err)

	require.ErrorIs(t, svc.Delete(ctx, 1), repo.err)
}

func TestTodo_BrokerFailureIsIgnored(t *testing.T) {
	repo := newFakeRepo()
	broker := &fakeBroker{err: errors.New("broker down")}
	svc := service.NewTodo(zaptest.NewLogger(t), repo, nil, broker)
	ctx := context.Background()

	created, err := svc.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestTodo_By(t *testing.T) {
	ctx := context.Background()

	t.Run("OK", func(t *testing.T) {
		search := &fakeSearch{results: internal.SearchResults{Todos: []internal.Todo{{ID: 1}}, Total: 1}}
		svc := service.NewTodo(zaptest.NewLogger(t), newFakeRepo(), search, nil)

		res, err := svc.By(ctx, internal.SearchParams{Description: ptr("milk")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Total)
	})

	t.Run("ERR: not configured", func(t *testing.T) {
		svc := service.NewTodo(zaptest.NewLogger(t), newFakeRepo(), nil, nil)

		_, err := svc.By(ctx, internal.SearchParams{Status: ptr(true)})
		assertCode(t, err, internal.ErrorCodeUnknown)
	})

	t.Run("ERR: invalid arguments", func(t *testing.T) {
		search := &fakeSearch{}
		svc := service.NewTodo(zaptest.NewLogger(t), newFakeRepo(), search, nil)

		_, err := svc.By(ctx, internal.SearchParams{Description: ptr("")})
		assertCode(t, err, internal.ErrorCodeInvalidArgument)
		assert.Zero(t, search.calls)
	})

	t.Run("ERR: breaker opens", func(t *testing.T) {
		search := &fakeSearch{err: errors.New("search down")}
		svc := service.NewTodo(zaptest.NewLogger(t), newFakeRepo(), search, nil)

		for i := 0; i < 5; i++ {
			_, err := svc.By(ctx, internal.SearchParams{Status: ptr(false)})
			require.Error(t, err)
		}

		assert.Less(t, search.calls, 5)
	})
}
