package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-list/pkg/client"
)

type request struct {
	Method string
	Path   string
	Body   string
}

func newServer(t *testing.T, status int, response string) (*client.Client, *[]request) {
	t.Helper()

	var requests []request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		requests = append(requests, request{Method: r.Method, Path: r.URL.Path, Body: string(body)})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewClient(srv.URL + "/")
	require.NoError(t, err)

	return c, &requests
}

func TestClient_GetAllTodos(t *testing.T) {
	c, requests := newServer(t, http.StatusOK, `[{"id":1,"description":"Buy milk","status":false},{"id":2,"description":null,"status":true}]`)

	todos, err := c.GetAllTodos(context.Background())
	require.NoError(t, err)

	require.Len(t, todos, 2)
	assert.Equal(t, "Buy milk", *todos[0].Description)
	assert.Nil(t, todos[1].Description)
	assert.True(t, todos[1].Status)

	assert.Equal(t, []request{{Method: http.MethodGet, Path: "/todos"}}, *requests)
}

func TestClient_SaveTodo(t *testing.T) {
	c, requests := newServer(t, http.StatusCreated, `{"id":7,"description":"Walk the dog","status":false}`)

	todo, err := c.SaveTodo(context.Background(), "Walk the dog")
	require.NoError(t, err)
	assert.Equal(t, int64(7), todo.ID)

	require.Len(t, *requests, 1)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/todos", req.Path)
	assert.JSONEq(t, `{"description":"Walk the dog","status":false}`, req.Body)
}

func TestClient_CompleteTodo(t *testing.T) {
	c, requests := newServer(t, http.StatusOK, `{"id":7,"description":"Walk the dog","status":true}`)

	todo, err := c.CompleteTodo(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, todo.Status)

	require.Len(t, *requests, 1)

	req := (*requests)[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/todos/7", req.Path)
	assert.JSONEq(t, `{"status":true}`, req.Body)
}

func TestClient_DeleteTodo(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		c, requests := newServer(t, http.StatusNoContent, "")

		require.NoError(t, c.DeleteTodo(context.Background(), 7))
		assert.Equal(t, []request{{Method: http.MethodDelete, Path: "/todos/7"}}, *requests)
	})

	t.Run("ERR: not found", func(t *testing.T) {
		c, _ := newServer(t, http.StatusNotFound, `{"error":"Todo not found"}`)

		err := c.DeleteTodo(context.Background(), 7)

		var rerr *client.ResponseError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, http.StatusNotFound, rerr.StatusCode)
		assert.Equal(t, "Todo not found", rerr.Message)
	})
}

func TestClient_TransportError(t *testing.T) {
	expected := errors.New("connection refused")

	c, err := client.NewClient("http://127.0.0.1:9234", client.WithHTTPClient(doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, expected
	})))
	require.NoError(t, err)

	_, err = c.GetAllTodos(context.Background())
	require.ErrorIs(t, err, expected)

	_, err = c.SaveTodo(context.Background(), "x")
	require.ErrorIs(t, err, expected)

	_, err = c.CompleteTodo(context.Background(), 1)
	require.ErrorIs(t, err, expected)

	require.ErrorIs(t, c.DeleteTodo(context.Background(), 1), expected)
}

func TestClient_InternalServerError(t *testing.T) {
	c, _ := newServer(t, http.StatusInternalServerError, `{"error":"Internal Server Error"}`)

	_, err := c.GetAllTodos(context.Background())

	var rerr *client.ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusInternalServerError, rerr.StatusCode)
	assert.Equal(t, "Internal Server Error", rerr.Message)
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
