package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/cmd/internal"
	internaldomain "github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/elasticsearch"
	todoredis "github.com/sanLimbu/todo-list/internal/redis"
)

const serviceName = "todo-list-elasticsearch-indexer-redis"

func main() {
	var env string

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.Parse()

	errC, err := run(env)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env string) (<-chan error, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("zap.NewProduction: %w", err)
	}

	conf, err := internal.NewConfiguration(env)
	if err != nil {
		return nil, fmt.Errorf("internal.NewConfiguration: %w", err)
	}

	es, err := internal.NewElasticSearch(conf)
	if err != nil {
		return nil, fmt.Errorf("internal.NewElasticSearch: %w", err)
	}

	if es == nil {
		return nil, internaldomain.NewErrorf(internaldomain.ErrorCodeInvalidArgument, "ELASTICSEARCH_URL is required")
	}

	rdb, err := internal.NewRedis(context.Background(), conf)
	if err != nil {
		return nil, fmt.Errorf("internal.NewRedis: %w", err)
	}

	if _, err := internal.NewOTExporter(conf, serviceName); err != nil {
		return nil, fmt.Errorf("internal.NewOTExporter: %w", err)
	}

	srv := &Server{
		logger: logger,
		rdb:    rdb,
		todo:   elasticsearch.NewTodo(es),
		done:   make(chan struct{}),
	}

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()

		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		defer func() {
			_ = logger.Sync()
			_ = rdb.Close()
			stop()
			cancel()
			close(errC)
		}()

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}

		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving")

		if err := srv.ListenAndServe(); err != nil {
			errC <- err
		}
	}()

	return errC, nil
}

// Server consumes Todo events and keeps the search index in sync.
type Server struct {
	logger *zap.Logger
	rdb    *redis.Client
	pubsub *redis.PubSub
	todo   *elasticsearch.Todo
	done   chan struct{}
}

// ListenAndServe subscribes to the Todo channel and starts consuming in the background.
func (s *Server) ListenAndServe() error {
	ctx := context.Background()

	s.pubsub = s.rdb.Subscribe(ctx, todoredis.ChannelName)

	if _, err := s.pubsub.Receive(ctx); err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "pubsub.Receive")
	}

	go func() {
		// Pub/Sub has no redelivery, failed events are only logged.
		for msg := range s.pubsub.Channel() {
			var evt internaldomain.Event

			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				s.logger.Info("Ignoring message, invalid", zap.Error(err))
				continue
			}

			if err := s.todo.Apply(ctx, evt.Type, evt.Value); err != nil {
				s.logger.Error("Couldn't apply event", zap.String("type", evt.Type), zap.Error(err))
				continue
			}

			s.logger.Info("Consumed", zap.String("type", evt.Type), zap.Int64("id", evt.Value.ID))
		}

		s.logger.Info("No more messages to consume. Exiting.")

		s.done <- struct{}{}
	}()

	return nil
}

// Shutdown closes the subscription and waits for the in-flight message.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.pubsub == nil {
		return nil
	}

	_ = s.pubsub.Close()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context.Done: %w", ctx.Err())
	case <-s.done:
		return nil
	}
}
