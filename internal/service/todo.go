package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mercari/go-circuitbreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/internal"
)

const otelName = "github.com/sanLimbu/todo-list/internal/service"

// TodoRepository defines the datastore handling persisting Todo records.
type TodoRepository interface {
	All(ctx context.Context) ([]internal.Todo, error)
	Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error)
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, id int64) (internal.Todo, error)
	Update(ctx context.Context, id int64, params internal.UpdateParams) (internal.Todo, error)
}

// TodoSearchRepository defines the datastore handling searching Todo records.
type TodoSearchRepository interface {
	Search(ctx context.Context, args internal.SearchParams) (internal.SearchResults, error)
}

// TodoMessageBrokerRepository defines the messaging broker publishing Todo events.
type TodoMessageBrokerRepository interface {
	Created(ctx context.Context, todo internal.Todo) error
	Deleted(ctx context.Context, id int64) error
	Updated(ctx context.Context, todo internal.Todo) error
}

// Todo defines the application service in charge of interacting with Todos.
type Todo struct {
	logger    *zap.Logger
	repo      TodoRepository
	search    TodoSearchRepository
	msgBroker TodoMessageBrokerRepository
	cb        *circuitbreaker.CircuitBreaker
}

// NewTodo instantiates the Todo service, search and msgBroker are optional.
func NewTodo(logger *zap.Logger, repo TodoRepository, search TodoSearchRepository, msgBroker TodoMessageBrokerRepository) *Todo {
	return &Todo{
		logger:    logger,
		repo:      repo,
		search:    search,
		msgBroker: msgBroker,
		cb: circuitbreaker.New(
			circuitbreaker.WithOpenTimeout(30*time.Second),
			circuitbreaker.WithTripFunc(circuitbreaker.NewTripFuncConsecutiveFailures(3)),
		),
	}
}

// All returns every stored Todo.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Todo.All")
	defer span.End()

	res, err := t.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo all: %w", err)
	}

	return res, nil
}

// By searches Todos matching the received values.
func (t *Todo) By(ctx context.Context, args internal.SearchParams) (internal.SearchResults, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Todo.By")
	defer span.End()

	if t.search == nil {
		return internal.SearchResults{}, internal.NewErrorf(internal.ErrorCodeUnknown, "search is not configured")
	}

	if err := args.Validate(); err != nil {
		return internal.SearchResults{}, fmt.Errorf("validate: %w", err)
	}

	res, err := t.cb.Do(ctx, func() (interface{}, error) {
		return t.search.Search(ctx, args)
	})
	if err != nil {
		return internal.SearchResults{}, fmt.Errorf("search: %w", err)
	}

	return res.(internal.SearchResults), nil
}

// Create stores a new record.
func (t *Todo) Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Todo.Create")
	defer span.End()

	todo, err := t.repo.Create(ctx, params)
	if err != nil {
		return internal.Todo{}, fmt.Errorf("repo create: %w", err)
	}

	if t.msgBroker != nil {
		if err := t.msgBroker.Created(ctx, todo); err != nil {
			t.logger.Warn("publishing created event failed", zap.Int64("id", todo.ID), zap.Error(err))
		}
	}

	return todo, nil
}

// Complete marks an existing Todo as done, completing an already completed Todo succeeds.
func (t *Todo) Complete(ctx context.Context, id int64) (internal.Todo, error) {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Todo.Complete")
	defer span.End()

	if _, err := t.repo.Find(ctx, id); err != nil {
		return internal.Todo{}, fmt.Errorf("repo find: %w", err)
	}

	todo, err := t.repo.Update(ctx, id, internal.UpdateParams{Status: true})
	if err != nil {
		return internal.Todo{}, fmt.Errorf("repo update: %w", err)
	}

	if t.msgBroker != nil {
		if err := t.msgBroker.Updated(ctx, todo); err != nil {
			t.logger.Warn("publishing updated event failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return todo, nil
}

// Delete removes an existing Todo from the datastore.
func (t *Todo) Delete(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer(otelName).Start(ctx, "Todo.Delete")
	defer span.End()

	if _, err := t.repo.Find(ctx, id); err != nil {
		return fmt.Errorf("repo find: %w", err)
	}

	if err := t.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("repo delete: %w", err)
	}

	if t.msgBroker != nil {
		if err := t.msgBroker.Deleted(ctx, id); err != nil {
			t.logger.Warn("publishing deleted event failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	return nil
}
