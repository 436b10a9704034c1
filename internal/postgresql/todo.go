package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/postgresql/db"
)

// Todo represents the repository used for interacting with Todo records.
type Todo struct {
	q *db.Queries
}

// NewTodo instantiates the Todo repository.
func NewTodo(d db.DBTX) *Todo {
	return &Todo{
		q: db.New(d),
	}
}

// All returns every Todo record.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.All").End()

	rows, err := t.q.SelectTodos(ctx)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select todos")
	}

	res := make([]internal.Todo, len(rows))
	for i, row := range rows {
		res[i] = convertTodo(row)
	}

	return res, nil
}

// Create inserts a new todo record.
func (t *Todo) Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Create").End()

	row, err := t.q.InsertTodo(ctx, db.InsertTodoParams{
		Description: newText(params.Description),
		Status:      params.Status,
	})
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "insert todo")
	}

	return convertTodo(row), nil
}

// Find returns the requested todo by searching its id.
func (t *Todo) Find(ctx context.Context, id int64) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Find").End()

	row, err := t.q.SelectTodo(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "todo not found")
		}

		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select todo")
	}

	return convertTodo(row), nil
}

// Update updates the existing record with new values.
func (t *Todo) Update(ctx context.Context, id int64, params internal.UpdateParams) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Update").End()

	row, err := t.q.UpdateTodo(ctx, db.UpdateTodoParams{
		ID:     id,
		Status: params.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "todo not found")
		}

		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "update todo")
	}

	return convertTodo(row), nil
}

// Delete deletes the existing record matching the id.
func (t *Todo) Delete(ctx context.Context, id int64) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	count, err := t.q.DeleteTodo(ctx, id)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "delete todo")
	}

	if count == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "todo not found")
	}

	return nil
}
