package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/postgresql/db"
)

//go:generate sqlc generate

const otelName = "github.com/sanLimbu/todo-list/internal/postgresql"

func convertTodo(t db.Todos) internal.Todo {
	res := internal.Todo{
		ID:        t.ID,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.Time,
		UpdatedAt: t.UpdatedAt.Time,
	}

	if t.Description.Valid {
		description := t.Description.String
		res.Description = &description
	}

	return res
}

// newText creates a pgtype.Text from a string pointer, nil means NULL.
func newText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{
		String: *s,
		Valid:  true,
	}
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemPostgreSQL)

	return span
}
