package sqlite

import (
	"context"
	"database/sql"
	"embed"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-list/internal"
)

const otelName = "github.com/sanLimbu/todo-list/internal/sqlite"

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens the database file at path, ":memory:" is supported.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "sql.Open")
	}

	// Writes are serialized by SQLite anyway, one connection also keeps in-memory databases alive.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "db.Ping")
	}

	return db, nil
}

// Migrate brings the database schema up to date.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "goose.SetDialect")
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "goose.Up")
	}

	return nil
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemKey.String("sqlite"), semconv.DBOperationKey.String(name))

	return span
}
