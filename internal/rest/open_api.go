package rest

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
)

// NewOpenAPI3 instantiates the OpenAPI specification for this service.
func NewOpenAPI3() openapi3.T {
	swagger := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Todo List API",
			Description: "REST APIs used for interacting with the Todo Service",
			Version:     "0.0.0",
			License: &openapi3.License{
				Name: "MIT",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Local development",
				URL:         "http://127.0.0.1:9234",
			},
		},
		Components: &openapi3.Components{},
	}

	swagger.Components.Schemas = openapi3.Schemas{
		"Todo": openapi3.NewSchemaRef("",
			openapi3.NewObjectSchema().
				WithProperty("id", openapi3.NewInt64Schema()).
				WithProperty("description", openapi3.NewStringSchema().WithNullable()).
				WithProperty("status", openapi3.NewBoolSchema()).
				WithProperty("createdAt", openapi3.NewDateTimeSchema()).
				WithProperty("updatedAt", openapi3.NewDateTimeSchema())),
	}

	swagger.Components.RequestBodies = openapi3.RequestBodies{
		"CreateTodoRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for creating a todo.").
				WithRequired(true).
				WithJSONSchema(openapi3.NewSchema().
					WithProperty("description", openapi3.NewStringSchema().WithNullable()).
					WithProperty("status", openapi3.NewBoolSchema())),
		},
		"CompleteTodoRequest": &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithDescription("Request used for completing a todo, status is always set to true.").
				WithJSONSchema(openapi3.NewSchema().
					WithProperty("status", openapi3.NewBoolSchema())),
		},
	}

	swagger.Components.Responses = openapi3.Responses{
		"ErrorResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response when errors happen.").
				WithContent(openapi3.NewContentWithJSONSchema(openapi3.NewSchema().
					WithProperty("error", openapi3.NewStringSchema()))),
		},
		"TodoResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returning a single todo.").
				WithJSONSchemaRef(&openapi3.SchemaRef{Ref: "#/components/schemas/Todo"}),
		},
		"TodosResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returning every todo.").
				WithJSONSchema(openapi3.NewArraySchema().
					WithItems(swagger.Components.Schemas["Todo"].Value)),
		},
		"SearchTodosResponse": &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Response returning the todos that were found.").
				WithJSONSchema(openapi3.NewSchema().
					WithProperty("todos", openapi3.NewArraySchema().
						WithItems(swagger.Components.Schemas["Todo"].Value)).
					WithProperty("total", openapi3.NewInt64Schema())),
		},
	}

	errorResponse := &openapi3.ResponseRef{Ref: "#/components/responses/ErrorResponse"}

	idParameter := &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").
			WithSchema(openapi3.NewInt64Schema()),
	}

	swagger.Paths = openapi3.Paths{
		"/todos": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ListTodos",
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TodosResponse"},
					"500": errorResponse,
				},
			},
			Post: &openapi3.Operation{
				OperationID: "CreateTodo",
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/CreateTodoRequest",
				},
				Responses: openapi3.Responses{
					"201": &openapi3.ResponseRef{Ref: "#/components/responses/TodoResponse"},
					"400": errorResponse,
					"500": errorResponse,
				},
			},
		},
		"/todos/search": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "SearchTodos",
				Parameters: openapi3.Parameters{
					&openapi3.ParameterRef{
						Value: openapi3.NewQueryParameter("description").
							WithSchema(openapi3.NewStringSchema()),
					},
					&openapi3.ParameterRef{
						Value: openapi3.NewQueryParameter("status").
							WithSchema(openapi3.NewBoolSchema()),
					},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/SearchTodosResponse"},
					"400": errorResponse,
					"500": errorResponse,
				},
			},
		},
		"/todos/{id}": &openapi3.PathItem{
			Patch: &openapi3.Operation{
				OperationID: "CompleteTodo",
				Parameters:  openapi3.Parameters{idParameter},
				RequestBody: &openapi3.RequestBodyRef{
					Ref: "#/components/requestBodies/CompleteTodoRequest",
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TodoResponse"},
					"404": errorResponse,
					"500": errorResponse,
				},
			},
			Delete: &openapi3.Operation{
				OperationID: "DeleteTodo",
				Parameters:  openapi3.Parameters{idParameter},
				Responses: openapi3.Responses{
					"204": &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("Todo deleted."),
					},
					"404": errorResponse,
					"500": errorResponse,
				},
			},
		},
	}

	return swagger
}

// RegisterOpenAPI serves the OpenAPI document as JSON and YAML.
func RegisterOpenAPI(r chi.Router) {
	swagger := NewOpenAPI3()

	r.Get("/openapi3.json", func(w http.ResponseWriter, _ *http.Request) {
		renderResponse(w, &swagger, http.StatusOK)
	})

	r.Get("/openapi3.yaml", func(w http.ResponseWriter, _ *http.Request) {
		data, err := yaml.Marshal(&swagger)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		w.WriteHeader(http.StatusOK)

		_, _ = w.Write(data)
	})
}
