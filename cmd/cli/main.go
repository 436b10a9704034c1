package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sanLimbu/todo-list/pkg/client"
)

func main() {
	var address, jaegerEndpoint string

	flag.StringVar(&address, "address", "http://127.0.0.1:9234", "REST Server Address")
	flag.StringVar(&jaegerEndpoint, "jaeger", "http://localhost:14268/api/traces", "Jaeger Collector Endpoint")
	flag.Parse()

	tp := initTracer(jaegerEndpoint)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = tp.Shutdown(ctx)
	}()

	httpClient := http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	c, err := client.NewClient(address, client.WithHTTPClient(&httpClient))
	if err != nil {
		log.Fatalf("Couldn't instantiate client: %s", err)
	}

	if err := walkthrough(context.Background(), c); err != nil {
		log.Fatalf("Walkthrough failed: %s", err)
	}
}

// walkthrough lists, adds, completes twice and deletes a todo, then checks it is gone.
func walkthrough(ctx context.Context, c *client.Client) error {
	todos, err := c.GetAllTodos(ctx)
	if err != nil {
		return fmt.Errorf("GetAllTodos: %w", err)
	}

	fmt.Printf("Todos: %d\n", len(todos))

	todo, err := c.SaveTodo(ctx, "Buy milk")
	if err != nil {
		return fmt.Errorf("SaveTodo: %w", err)
	}

	printTodo("New Todo", todo)

	for i := 0; i < 2; i++ {
		if todo, err = c.CompleteTodo(ctx, todo.ID); err != nil {
			return fmt.Errorf("CompleteTodo: %w", err)
		}
	}

	printTodo("Completed Todo", todo)

	if err := c.DeleteTodo(ctx, todo.ID); err != nil {
		return fmt.Errorf("DeleteTodo: %w", err)
	}

	fmt.Printf("Deleted Todo\n\tID: %d\n", todo.ID)

	var rerr *client.ResponseError

	err = c.DeleteTodo(ctx, todo.ID)
	if !errors.As(err, &rerr) || rerr.StatusCode != http.StatusNotFound {
		return fmt.Errorf("DeleteTodo: expected not found, got %v", err)
	}

	fmt.Printf("Deleting again\n\tStatus: %d\n\tError: %s\n", rerr.StatusCode, rerr.Message)

	return nil
}

func printTodo(title string, todo client.Todo) {
	description := ""
	if todo.Description != nil {
		description = *todo.Description
	}

	fmt.Printf("%s\n\tID: %d\n", title, todo.ID)
	fmt.Printf("\tDescription: %s\n", description)
	fmt.Printf("\tStatus: %t\n", todo.Status)
	fmt.Printf("\tCreated: %s\n", todo.CreatedAt)
	fmt.Printf("\tUpdated: %s\n", todo.UpdatedAt)
}

// initTracer exports traces to Jaeger and to stdout.
func initTracer(jaegerEndpoint string) *sdktrace.TracerProvider {
	jaegerExporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
	if err != nil {
		log.Fatalf("Couldn't initialize jaeger exporter: %s", err)
	}

	stdoutExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatalf("Couldn't initialize stdout exporter: %s", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(stdoutExporter),
		sdktrace.WithBatcher(jaegerExporter),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp
}
