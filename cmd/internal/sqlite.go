package internal

import (
	"database/sql"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
	"github.com/sanLimbu/todo-list/internal/sqlite"
)

// NewSQLite opens the SQLite database file defined in DATABASE_PATH, todos.db by default.
func NewSQLite(conf *envvar.Configuration) (*sql.DB, error) {
	db, err := sqlite.Open(conf.Default("DATABASE_PATH", "todos.db"))
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "sqlite.Open")
	}

	return db, nil
}
