package rabbitmq

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"

	"github.com/sanLimbu/todo-list/internal"
)

const (
	otelName = "github.com/sanLimbu/todo-list/internal/rabbitmq"

	// ExchangeName is the topic exchange receiving every Todo event.
	ExchangeName = "todos"
)

// Todo represents the repository used for publishing Todo records.
type Todo struct {
	ch *amqp.Channel
}

// NewTodo instantiates the Todo repository, the exchange must be declared already.
func NewTodo(channel *amqp.Channel) *Todo {
	return &Todo{
		ch: channel,
	}
}

// Created publishes a message indicating a todo was created.
func (t *Todo) Created(ctx context.Context, todo internal.Todo) error {
	return t.publish(ctx, "Todo.Created", internal.EventTodoCreated, todo)
}

// Deleted publishes a message indicating a todo was deleted.
func (t *Todo) Deleted(ctx context.Context, id int64) error {
	return t.publish(ctx, "Todo.Deleted", internal.EventTodoDeleted, id)
}

// Updated publishes a message indicating a todo was updated.
func (t *Todo) Updated(ctx context.Context, todo internal.Todo) error {
	return t.publish(ctx, "Todo.Updated", internal.EventTodoUpdated, todo)
}

func (t *Todo) publish(ctx context.Context, spanName, routingKey string, e interface{}) error {
	_, span := otel.Tracer(otelName).Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		semconv.MessagingSystemKey.String("rabbitmq"),
		semconv.MessagingRabbitmqRoutingKeyKey.String(routingKey),
	)

	var b bytes.Buffer

	if err := gob.NewEncoder(&b).Encode(e); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.Encode")
	}

	err := t.ch.Publish(
		ExchangeName, // exchange
		routingKey,   // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			AppId:       "todos-rest-server",
			ContentType: "application/x-encoding-gob",
			MessageId:   uuid.NewString(),
			Body:        b.Bytes(),
			Timestamp:   time.Now(),
		})
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "ch.Publish")
	}

	return nil
}

// DecodeTodo decodes the body of a created or updated event.
func DecodeTodo(b []byte) (internal.Todo, error) {
	var res internal.Todo

	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&res); err != nil {
		return internal.Todo{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.Decode")
	}

	return res, nil
}

// DecodeID decodes the body of a deleted event.
func DecodeID(b []byte) (int64, error) {
	var res int64

	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&res); err != nil {
		return 0, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "gob.Decode")
	}

	return res, nil
}
