package memcached

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-list/internal"
)

const otelName = "github.com/sanLimbu/todo-list/internal/memcached"

// Cache failures are never surfaced: the original store remains the source of truth.

func deleteTodo(ctx context.Context, client *memcache.Client, key string) {
	defer newOTELSpan(ctx, "deleteTodo").End()

	_ = client.Delete(key)
}

func getTodo(ctx context.Context, client *memcache.Client, key string, target *internal.Todo) error {
	defer newOTELSpan(ctx, "getTodo").End()

	item, err := client.Get(key)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Get")
	}

	if err := gob.NewDecoder(bytes.NewReader(item.Value)).Decode(target); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.Decode")
	}

	return nil
}

func setTodo(ctx context.Context, client *memcache.Client, key string, value *internal.Todo, expiration time.Duration) {
	defer newOTELSpan(ctx, "setTodo").End()

	var b bytes.Buffer

	if err := gob.NewEncoder(&b).Encode(value); err != nil {
		return
	}

	_ = client.Set(&memcache.Item{
		Key:        key,
		Value:      b.Bytes(),
		Expiration: int32(expiration.Seconds()),
	})
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)

	span.SetAttributes(semconv.DBSystemMemcached)

	return span
}
