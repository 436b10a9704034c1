package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/postgresql"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL tests")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)

	t.Cleanup(pool.Close)

	require.NoError(t, postgresql.Migrate(ctx, pool))

	_, err = pool.Exec(ctx, "TRUNCATE todos RESTART IDENTITY")
	require.NoError(t, err)

	return pool
}

func TestTodo_Lifecycle(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()

	store := postgresql.NewTodo(pool)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	description := "Buy milk"

	created, err := store.Create(ctx, internal.CreateParams{Description: &description})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.Description)
	assert.Equal(t, description, *created.Description)
	assert.False(t, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	updated, err := store.Update(ctx, created.ID, internal.UpdateParams{Status: true})
	require.NoError(t, err)
	assert.True(t, updated.Status)

	updated, err = store.Update(ctx, created.ID, internal.UpdateParams{Status: true})
	require.NoError(t, err)
	assert.True(t, updated.Status)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Find(ctx, created.ID)
	assertCode(t, err, internal.ErrorCodeNotFound)

	err = store.Delete(ctx, created.ID)
	assertCode(t, err, internal.ErrorCodeNotFound)

	_, err = store.Update(ctx, created.ID, internal.UpdateParams{Status: true})
	assertCode(t, err, internal.ErrorCodeNotFound)
}

func TestTodo_CreateNullDescription(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()

	store := postgresql.NewTodo(pool)

	created, err := store.Create(ctx, internal.CreateParams{})
	require.NoError(t, err)
	assert.Nil(t, created.Description)

	found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Description)
}

func assertCode(t *testing.T, err error, code internal.ErrorCode) {
	t.Helper()

	var ierr *internal.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, code, ierr.Code())
}
