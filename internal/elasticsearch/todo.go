package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	esv7 "github.com/elastic/go-elasticsearch/v7"
	esv7api "github.com/elastic/go-elasticsearch/v7/esapi"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanLimbu/todo-list/internal"
)

const (
	otelName = "github.com/sanLimbu/todo-list/internal/elasticsearch"

	searchSize = 100
)

// Todo represents the repository used for interacting with Todo records.
type Todo struct {
	client *esv7.Client
	index  string
}

type indexedTodo struct {
	ID          int64   `json:"id"`
	Description *string `json:"description"`
	Status      bool    `json:"status"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// NewTodo instantiates the Todo repository.
func NewTodo(client *esv7.Client) *Todo {
	return &Todo{
		client: client,
		index:  "todos",
	}
}

// Index creates or updates a todo in the index.
func (t *Todo) Index(ctx context.Context, todo internal.Todo) error {
	defer newOTELSpan(ctx, "Todo.Index").End()

	body := indexedTodo{
		ID:          todo.ID,
		Description: todo.Description,
		Status:      todo.Status,
		CreatedAt:   todo.CreatedAt.UnixNano(),
		UpdatedAt:   todo.UpdatedAt.UnixNano(),
	}

	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewEncoder.Encode")
	}

	req := esv7api.IndexRequest{
		Index:      t.index,
		Body:       &buf,
		DocumentID: strconv.FormatInt(todo.ID, 10),
		Refresh:    "true",
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "IndexRequest.Do")
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "IndexRequest.Do %d", resp.StatusCode)
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Delete removes a todo from the index, deleting a missing document succeeds.
func (t *Todo) Delete(ctx context.Context, id int64) error {
	defer newOTELSpan(ctx, "Todo.Delete").End()

	req := esv7api.DeleteRequest{
		Index:      t.index,
		DocumentID: strconv.FormatInt(id, 10),
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "DeleteRequest.Do")
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return internal.NewErrorf(internal.ErrorCodeUnknown, "DeleteRequest.Do %d", resp.StatusCode)
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Apply updates the index with the received event, only the id is read for deleted events.
func (t *Todo) Apply(ctx context.Context, eventType string, todo internal.Todo) error {
	switch eventType {
	case internal.EventTodoCreated, internal.EventTodoUpdated:
		return t.Index(ctx, todo)
	case internal.EventTodoDeleted:
		return t.Delete(ctx, todo.ID)
	}

	return internal.NewErrorf(internal.ErrorCodeInvalidArgument, "unknown event type %q", eventType)
}

// Search returns todos matching a query.
func (t *Todo) Search(ctx context.Context, args internal.SearchParams) (internal.SearchResults, error) {
	defer newOTELSpan(ctx, "Todo.Search").End()

	if args.IsZero() {
		return internal.SearchResults{Todos: []internal.Todo{}}, nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(newQuery(args)); err != nil {
		return internal.SearchResults{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewEncoder.Encode")
	}

	req := esv7api.SearchRequest{
		Index: []string{t.index},
		Body:  &buf,
	}

	resp, err := req.Do(ctx, t.client)
	if err != nil {
		return internal.SearchResults{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "SearchRequest.Do")
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return internal.SearchResults{}, internal.NewErrorf(internal.ErrorCodeUnknown, "SearchRequest.Do %d", resp.StatusCode)
	}

	var hits struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source indexedTodo `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return internal.SearchResults{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "json.NewDecoder.Decode")
	}

	res := make([]internal.Todo, len(hits.Hits.Hits))
	for i, hit := range hits.Hits.Hits {
		res[i] = internal.Todo{
			ID:          hit.Source.ID,
			Description: hit.Source.Description,
			Status:      hit.Source.Status,
			CreatedAt:   time.Unix(0, hit.Source.CreatedAt).UTC(),
			UpdatedAt:   time.Unix(0, hit.Source.UpdatedAt).UTC(),
		}
	}

	return internal.SearchResults{
		Todos: res,
		Total: hits.Hits.Total.Value,
	}, nil
}

// newQuery builds the search body, every received argument must match.
func newQuery(args internal.SearchParams) map[string]interface{} {
	must := make([]interface{}, 0, 2)

	if args.Description != nil {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{
				"description": *args.Description,
			},
		})
	}

	if args.Status != nil {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{
				"status": *args.Status,
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": must,
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"id": "asc"},
		},
		"size": searchSize,
	}
}

func newOTELSpan(ctx context.Context, name string) trace.Span {
	_, span := otel.Tracer(otelName).Start(ctx, name)
	span.SetAttributes(semconv.DBSystemElasticsearch)

	return span
}
