package internal

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
)

// NewMemcached instantiates the Memcached client using configuration defined in environment variables,
// nil is returned when MEMCACHED_HOST is not set.
func NewMemcached(conf *envvar.Configuration) (*memcache.Client, error) {
	host := conf.Default("MEMCACHED_HOST", "")
	if host == "" {
		return nil, nil
	}

	client := memcache.New(host)

	if err := client.Ping(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Ping")
	}

	client.Timeout = 100 * time.Millisecond
	client.MaxIdleConns = 100

	return client, nil
}
