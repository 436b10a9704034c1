package envvar_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
)

type fakeProvider struct {
	values map[string]string
	err    error
}

func (f fakeProvider) Get(key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return f.values[key], nil
}

func TestConfiguration_Get(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setup    func(t *testing.T)
		provider envvar.Provider
		output   string
		withErr  bool
	}{
		{
			"OK: plain value",
			"DATABASE_HOST",
			func(t *testing.T) {
				t.Setenv("DATABASE_HOST", "localhost")
			},
			nil,
			"localhost",
			false,
		},
		{
			"OK: secure value",
			"DATABASE_PASSWORD",
			func(t *testing.T) {
				t.Setenv("DATABASE_PASSWORD", "ignored")
				t.Setenv("DATABASE_PASSWORD_SECURE", "db_password")
			},
			fakeProvider{values: map[string]string{"db_password": "s3cr3t"}},
			"s3cr3t",
			false,
		},
		{
			"ERR: provider failed",
			"DATABASE_PASSWORD",
			func(t *testing.T) {
				t.Setenv("DATABASE_PASSWORD_SECURE", "db_password")
			},
			fakeProvider{err: errors.New("sealed")},
			"",
			true,
		},
		{
			"ERR: no provider",
			"DATABASE_PASSWORD",
			func(t *testing.T) {
				t.Setenv("DATABASE_PASSWORD_SECURE", "db_password")
			},
			nil,
			"",
			true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			actual, err := envvar.New(tt.provider).Get(tt.key)
			if tt.withErr {
				var ierr *internal.Error
				require.ErrorAs(t, err, &ierr)
				assert.Equal(t, internal.ErrorCodeInvalidArgument, ierr.Code())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.output, actual)
		})
	}
}

func TestConfiguration_Default(t *testing.T) {
	t.Setenv("MESSAGE_BROKER", "")

	conf := envvar.New(nil)
	assert.Equal(t, "postgres", conf.Default("DATABASE_DRIVER_UNSET", "postgres"))
	assert.Equal(t, "none", conf.Default("MESSAGE_BROKER", "none"))

	t.Setenv("MESSAGE_BROKER", "kafka")
	assert.Equal(t, "kafka", conf.Default("MESSAGE_BROKER", "none"))
}

func TestLoad(t *testing.T) {
	require.NoError(t, envvar.Load(""))

	filename := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(filename, []byte("TODO_LIST_TEST_KEY=value\n"), 0o600))

	t.Cleanup(func() { os.Unsetenv("TODO_LIST_TEST_KEY") })

	require.NoError(t, envvar.Load(filename))
	assert.Equal(t, "value", os.Getenv("TODO_LIST_TEST_KEY"))

	err := envvar.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
