package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"

	"github.com/sanLimbu/todo-list/internal"
)

const otelName = "github.com/sanLimbu/todo-list/internal/kafka"

// Todo represents the repository used for publishing Todo records.
type Todo struct {
	producer  *kafka.Producer
	topicName string
}

// NewTodo instantiates the Todo repository.
func NewTodo(producer *kafka.Producer, topicName string) *Todo {
	return &Todo{
		topicName: topicName,
		producer:  producer,
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
	_, span := otel.Tracer(otelName).Start(ctx, spanName)
	defer span.End()

	span.SetAttributes(
		semconv.MessagingSystemKey.String("kafka"),
		semconv.MessagingDestinationKey.String(t.topicName),
		attribute.String("todo.event", msgType),
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

	// Keyed by id so every event of the same todo lands in the same partition.
	if err := t.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &t.topicName,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(strconv.FormatInt(todo.ID, 10)),
		Value: b.Bytes(),
	}, nil); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "producer.Produce")
	}

	return nil
}
