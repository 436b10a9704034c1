package postgresql

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"

	"github.com/sanLimbu/todo-list/internal"
)

const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the database schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "pool.Acquire")
	}
	defer conn.Release()

	m, err := migrate.NewMigrator(ctx, conn.Conn(), versionTable)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "migrate.NewMigrator")
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "fs.Sub")
	}

	if err := m.LoadMigrations(fsys); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "m.LoadMigrations")
	}

	if err := m.Migrate(ctx); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "m.Migrate")
	}

	return nil
}
