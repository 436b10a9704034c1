package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/internal"
)

// TodoService defines the operations exposed over HTTP.
type TodoService interface {
	All(ctx context.Context) ([]internal.Todo, error)
	By(ctx context.Context, args internal.SearchParams) (internal.SearchResults, error)
	Create(ctx context.Context, params internal.CreateParams) (internal.Todo, error)
	Complete(ctx context.Context, id int64) (internal.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// TodoHandler maps HTTP requests to the Todo service.
type TodoHandler struct {
	svc    TodoService
	logger *zap.Logger
}

// NewTodoHandler instantiates the handler.
func NewTodoHandler(logger *zap.Logger, svc TodoService) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register connects the handlers to the router.
func (t *TodoHandler) Register(r chi.Router) {
	r.Get("/todos", t.list)
	r.Post("/todos", t.create)
	r.Get("/todos/search", t.search)
	r.Patch("/todos/{id}", t.complete)
	r.Delete("/todos/{id}", t.delete)
}

// Todo is a single to-do item.
type Todo struct {
	ID          int64     `json:"id"`
	Description *string   `json:"description"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newTodo(todo internal.Todo) Todo {
	return Todo{
		ID:          todo.ID,
		Description: todo.Description,
		Status:      todo.Status,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

func newTodos(todos []internal.Todo) []Todo {
	res := make([]Todo, len(todos))
	for i, todo := range todos {
		res[i] = newTodo(todo)
	}

	return res
}

// CreateTodoRequest defines the request used for creating todos.
type CreateTodoRequest struct {
	Description *string `json:"description"`
	Status      *bool   `json:"status"`
}

// SearchTodosResponse defines the response returned back after searching todos.
type SearchTodosResponse struct {
	Todos []Todo `json:"todos"`
	Total int64  `json:"total"`
}

func (t *TodoHandler) list(w http.ResponseWriter, r *http.Request) {
	todos, err := t.svc.All(r.Context())
	if err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "list failed", err)
		return
	}

	renderResponse(w, newTodos(todos), http.StatusOK)
}

func (t *TodoHandler) create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// An empty body creates a todo without description.
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		renderErrorResponse(r.Context(), t.logger, w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}

	params := internal.CreateParams{Description: req.Description}
	if req.Status != nil {
		params.Status = *req.Status
	}

	todo, err := t.svc.Create(r.Context(), params)
	if err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "create failed", err)
		return
	}

	renderResponse(w, newTodo(todo), http.StatusCreated)
}

// complete ignores the request body, the status is always set to true.
func (t *TodoHandler) complete(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "complete failed", err)
		return
	}

	todo, err := t.svc.Complete(r.Context(), id)
	if err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "complete failed", err)
		return
	}

	renderResponse(w, newTodo(todo), http.StatusOK)
}

func (t *TodoHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "delete failed", err)
		return
	}

	if err := t.svc.Delete(r.Context(), id); err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "delete failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (t *TodoHandler) search(w http.ResponseWriter, r *http.Request) {
	var args internal.SearchParams

	query := r.URL.Query()

	if query.Has("description") {
		description := query.Get("description")
		args.Description = &description
	}

	if query.Has("status") {
		status, err := strconv.ParseBool(query.Get("status"))
		if err != nil {
			renderErrorResponse(r.Context(), t.logger, w, "invalid status",
				internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "strconv.ParseBool"))
			return
		}

		args.Status = &status
	}

	res, err := t.svc.By(r.Context(), args)
	if err != nil {
		renderErrorResponse(r.Context(), t.logger, w, "search failed", err)
		return
	}

	renderResponse(w, &SearchTodosResponse{
		Todos: newTodos(res.Todos),
		Total: res.Total,
	}, http.StatusOK)
}

// todoID parses the id path parameter, values that are not integers can't identify any todo.
func todoID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "strconv.ParseInt")
	}

	return id, nil
}
