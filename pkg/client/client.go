// Package client implements the HTTP client used for interacting with the Todo List API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
)

// HTTPRequestDoer performs HTTP requests, *http.Client implements it.
type HTTPRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption allows setting custom parameters during construction.
type ClientOption func(*Client) error

// WithHTTPClient allows overriding the default Doer.
func WithHTTPClient(doer HTTPRequestDoer) ClientOption {
	return func(c *Client) error {
		c.client = doer
		return nil
	}
}

// Client calls the Todo List API, every method performs exactly one request.
type Client struct {
	server string
	client HTTPRequestDoer
}

// NewClient creates a new Client pointing to server, for example "http://127.0.0.1:9234".
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	if _, err := url.Parse(server); err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}

	c := Client{
		server: strings.TrimSuffix(server, "/"),
	}

	for _, o := range opts {
		if err := o(&c); err != nil {
			return nil, err
		}
	}

	if c.client == nil {
		c.client = &http.Client{}
	}

	return &c, nil
}

// Todo is a single to-do item.
type Todo struct {
	ID          int64     `json:"id"`
	Description *string   `json:"description"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ResponseError is returned when the server answers with a non 2xx status.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

type saveTodoRequest struct {
	Description string `json:"description"`
	Status      bool   `json:"status"`
}

type completeTodoRequest struct {
	Status bool `json:"status"`
}

// GetAllTodos returns every stored todo.
func (c *Client) GetAllTodos(ctx context.Context) ([]Todo, error) {
	var res []Todo

	if err := c.do(ctx, http.MethodGet, "/todos", nil, &res); err != nil {
		return nil, err
	}

	return res, nil
}

// SaveTodo creates a new, not completed, todo.
func (c *Client) SaveTodo(ctx context.Context, description string) (Todo, error) {
	var res Todo

	if err := c.do(ctx, http.MethodPost, "/todos", saveTodoRequest{Description: description}, &res); err != nil {
		return Todo{}, err
	}

	return res, nil
}

// CompleteTodo marks the todo as completed and returns its updated value.
func (c *Client) CompleteTodo(ctx context.Context, id int64) (Todo, error) {
	path, err := todoPath(id)
	if err != nil {
		return Todo{}, err
	}

	var res Todo

	if err := c.do(ctx, http.MethodPatch, path, completeTodoRequest{Status: true}, &res); err != nil {
		return Todo{}, err
	}

	return res, nil
}

// DeleteTodo deletes the todo.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	path, err := todoPath(id)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func todoPath(id int64) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("runtime.StyleParamWithLocation: %w", err)
	}

	return "/todos/" + param, nil
}

// do sends the request, body and target are optional.
func (c *Client) do(ctx context.Context, method, path string, body, target interface{}) error {
	var reader io.Reader

	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("json.Encode: %w", err)
		}

		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}

		_ = json.NewDecoder(resp.Body).Decode(&errResp)

		return &ResponseError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}
