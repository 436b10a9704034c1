package redis

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"

	"github.com/sanLimbu/todo-list/internal"
)

const (
	otelName = "github.com/sanLimbu/todo-list/internal/redis"

	// ChannelName is the Pub/Sub channel receiving every Todo event.
	ChannelName = "todos"
)

// Todo represents the repository used for publishing Todo records.
type Todo struct {
	client *redis.Client
}

// NewTodo instantiates the Todo repository.
func NewTodo(client *redis.Client) *Todo {
	return &Todo{
		client: client,
	}
}

// Created publishes a message indicating a todo was created.
func (t *Todo) Created(ctx context.Context, todo internal.Todo) error {
	return t.publish(ctx, "Todo.Created", internal.EventTodoCreated, todo)
}

// Deleted publishes a message indicating a todo was deleted.
func (t *Todo) Deleted(ctx context.Context, id int64) error {
	return t.publish(ctx, "Todo.Deleted", internal.EventTodoDeleted, internal.Todo{ID: id})
}

// Updated publishes a message indicating a todo was updated.
func (t *Todo) Updated(ctx context.Context, todo internal.Todo) error {
	return t.publish(ctx, "Todo.Updated", internal.EventTodoUpdated, todo)
}

func (t *Todo) publish(ctx context.Context, spanName, msgType string, todo internal.Todo) error {
	ctx, span := otel.Tracer(otelName).Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		semconv.MessagingSystemKey.String("redis"),
		semconv.MessagingDestinationKey.String(ChannelName),
	)

	var b bytes.Buffer

	evt := internal.Event{
		ID:    uuid.NewString(),
		Type:  msgType,
		Value: todo,
	}

	if err := json.NewEncoder(&b).Encode(evt); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.Encode")
	}

	if err := t.client.Publish(ctx, ChannelName, b.Bytes()).Err(); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "client.Publish")
	}

	return nil
}
