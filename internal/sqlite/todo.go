package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sanLimbu/todo-list/internal"
)

const selectColumns = `SELECT id, description, status, created_at, updated_at FROM todos`

// Todo represents the repository used for interacting with Todo records.
type Todo struct {
	db *sql.DB
}

// NewTodo instantiates the Todo repository.
func NewTodo(db *sql.DB) *Todo {
	return &Todo{
		db: db,
	}
}

// All returns every Todo record.
func (t *Todo) All(ctx context.Context) ([]internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.All").End()

	rows, err := t.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "db.QueryContext")
	}
	defer rows.Close()

	res := []internal.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rows.Scan")
		}

		res = append(res, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rows.Err")
	}

	return res, nil
}

// Create inserts a new todo record.
func (t *Todo) Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Create").End()

	var description sql.NullString
	if params.Description != nil {
		description = sql.NullString{String: *params.Description, Valid: true}
	}

	result, err := t.db.ExecContext(ctx,
		`INSERT INTO todos (description, status) VALUES (?, ?)`,
		description, params.Status)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "insert todo")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "result.LastInsertId")
	}

	return t.find(ctx, id)
}

// Find returns the requested todo by searching its id.
func (t *Todo) Find(ctx context.Context, id int64) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Find").End()

	return t.find(ctx, id)
}

// Update updates the existing record with new values.
func (t *Todo) Update(ctx context.Context, id int64, params internal.UpdateParams) (internal.Todo, error) {
	defer newOTELSpan(ctx, "Todo.Update").End()

	result, err := t.db.ExecContext(ctx,
		`UPDATE todos SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		params.Status, id)
	if err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "update todo")
	}

	if err := checkRowsAffected(result); err != nil {
		return internal.Todo{}, err
	}

	return t.find(ctx, id)
}

// Delete deletes the existing record matching the id.
func (t *Todo) Delete(ctx context.Context, id int64) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	result, err := t.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "delete todo")
	}

	return checkRowsAffected(result)
}

func (t *Todo) find(ctx context.Context, id int64) (internal.Todo, error) {
	todo, err := scanTodo(t.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "todo not found")
		}

		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select todo")
	}

	return todo, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(s scanner) (internal.Todo, error) {
	var (
		res         internal.Todo
		description sql.NullString
	)

	if err := s.Scan(&res.ID, &description, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return internal.Todo{}, err
	}

	if description.Valid {
		res.Description = &description.String
	}

	return res, nil
}

func checkRowsAffected(result sql.Result) error {
	count, err := result.RowsAffected()
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "result.RowsAffected")
	}

	if count == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "todo not found")
	}

	return nil
}
