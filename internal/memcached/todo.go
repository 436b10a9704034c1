package memcached

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/internal"
)

// Todo is a cache-aside decorator of the Todo store, records found by id are cached until they change.
type Todo struct {
	client     *memcache.Client
	orig       TodoStore
	expiration time.Duration
	logger     *zap.Logger
}

// TodoStore defines the datastore being decorated.
type TodoStore interface {
	All(ctx context.Context) ([]internal.Todo, error)
	Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error)
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, id int64) (internal.Todo, error)
	Update(ctx context.Context, id int64, params internal.UpdateParams) (internal.Todo, error)
}

// NewTodo instantiates the caching Todo store.
func NewTodo(client *memcache.Client, orig TodoStore, logger *zap.Logger) *Todo {
	return &Todo{
		client:     client,
		orig:       orig,
		expiration: 15 * time.Minute,
		logger:     logger,
	}
}

// All is not cached, it always reaches the original store.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	return t.orig.All(ctx)
}

// Create stores the record and caches it.
func (t *Todo) Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Create").End()

	todo, err := t.orig.Create(ctx, params)
	if err != nil {
		return internal.Todo{}, fmt.Errorf("orig.Create: %w", err)
	}

	setTodo(ctx, t.client, key(todo.ID), &todo, t.expiration)

	return todo, nil
}

// Delete removes the record and its cached value.
func (t *Todo) Delete(ctx context.Context, id int64) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	deleteTodo(ctx, t.client, key(id))

	if err := t.orig.Delete(ctx, id); err != nil {
		return fmt.Errorf("orig.Delete: %w", err)
	}

	return nil
}

// Find returns the cached record, the original store is used on cache misses.
func (t *Todo) Find(ctx context.Context, id int64) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Find").End()

	var res internal.Todo

	if err := getTodo(ctx, t.client, key(id), &res); err == nil {
		return res, nil
	}

	t.logger.Debug("Find: cache miss", zap.Int64("id", id))

	res, err := t.orig.Find(ctx, id)
	if err != nil {
		return res, fmt.Errorf("orig.Find: %w", err)
	}

	setTodo(ctx, t.client, key(res.ID), &res, t.expiration)

	return res, nil
}

// Update updates the record and refreshes the cached value.
func (t *Todo) Update(ctx context.Context, id int64, params internal.UpdateParams) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Update").End()

	deleteTodo(ctx, t.client, key(id))

	todo, err := t.orig.Update(ctx, id, params)
	if err != nil {
		return internal.Todo{}, fmt.Errorf("orig.Update: %w", err)
	}

	setTodo(ctx, t.client, key(todo.ID), &todo, t.expiration)

	return todo, nil
}

func key(id int64) string {
	return "todo:" + strconv.FormatInt(id, 10)
}
