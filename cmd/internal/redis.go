package internal

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
)

// NewRedis instantiates the Redis client using configuration defined in environment variables.
func NewRedis(ctx context.Context, conf *envvar.Configuration) (*redis.Client, error) {
	host, err := conf.Get("REDIS_HOST")
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "conf.Get REDIS_HOST")
	}

	db, err := strconv.Atoi(conf.Default("REDIS_DB", "0"))
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "strconv.Atoi REDIS_DB")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: host,
		DB:   db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rdb.Ping")
	}

	return rdb, nil
}
