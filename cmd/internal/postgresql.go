package internal

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
)

type postgreSQLConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

func (c postgreSQLConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.SSLMode, validation.In("disable", "allow", "prefer", "require", "verify-ca", "verify-full")),
	)
}

// NewPostgreSQL instantiates the PostgreSQL database using configuration defined in environment variables.
func NewPostgreSQL(ctx context.Context, conf *envvar.Configuration) (*pgxpool.Pool, error) {
	var (
		cfg postgreSQLConfig
		err error
	)

	for key, target := range map[string]*string{
		"DATABASE_HOST":     &cfg.Host,
		"DATABASE_PORT":     &cfg.Port,
		"DATABASE_USERNAME": &cfg.Username,
		"DATABASE_PASSWORD": &cfg.Password,
		"DATABASE_NAME":     &cfg.Name,
		"DATABASE_SSLMODE":  &cfg.SSLMode,
	} {
		if *target, err = conf.Get(key); err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "conf.Get %s", key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "cfg.Validate")
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:   cfg.Name,
	}

	q := dsn.Query()
	if cfg.SSLMode != "" {
		q.Add("sslmode", cfg.SSLMode)
	}

	dsn.RawQuery = q.Encode()

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "pgxpool.New")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "pool.Ping")
	}

	return pool, nil
}
