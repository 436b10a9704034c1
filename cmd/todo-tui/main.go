package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sanLimbu/todo-list/internal/tui"
	"github.com/sanLimbu/todo-list/pkg/client"
)

func main() {
	var address string

	flag.StringVar(&address, "address", "http://127.0.0.1:9234", "REST Server Address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	httpClient := http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	c, err := client.NewClient(address, client.WithHTTPClient(&httpClient))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error instantiating client: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(tui.New(ctx, c), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
