package rest_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-list/internal/rest"
)

func TestNewOpenAPI3(t *testing.T) {
	swagger := rest.NewOpenAPI3()

	for _, path := range []string{"/todos", "/todos/{id}", "/todos/search"} {
		assert.Contains(t, swagger.Paths, path)
	}

	assert.Equal(t, "ListTodos", swagger.Paths["/todos"].Get.OperationID)
	assert.Equal(t, "CreateTodo", swagger.Paths["/todos"].Post.OperationID)
	assert.Equal(t, "CompleteTodo", swagger.Paths["/todos/{id}"].Patch.OperationID)
	assert.Equal(t, "DeleteTodo", swagger.Paths["/todos/{id}"].Delete.OperationID)
}

func TestRegisterOpenAPI(t *testing.T) {
	r := chi.NewRouter()
	rest.RegisterOpenAPI(r)

	rr := doRequest(t, r, http.MethodGet, "/openapi3.json", "")
	require.Equal(t, http.StatusOK, rr.Code)

	loaded, err := openapi3.NewLoader().LoadFromData(rr.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, loaded.Validate(context.Background()))
	assert.Equal(t, "Todo List API", loaded.Info.Title)

	rr = doRequest(t, r, http.MethodGet, "/openapi3.yaml", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/x-yaml", rr.Header().Get("Content-Type"))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.0", doc["openapi"])
}
