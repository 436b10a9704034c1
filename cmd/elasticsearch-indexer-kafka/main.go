package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/cmd/internal"
	internaldomain "github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/elasticsearch"
)

const serviceName = "todo-list-elasticsearch-indexer-kafka"

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

	consumer, err := internal.NewKafkaConsumer(conf, "elasticsearch-indexer")
	if err != nil {
		return nil, fmt.Errorf("internal.NewKafkaConsumer: %w", err)
	}

	if _, err := internal.NewOTExporter(conf, serviceName); err != nil {
		return nil, fmt.Errorf("internal.NewOTExporter: %w", err)
	}

	srv := &Server{
		logger: logger,
		kafka:  consumer,
		todo:   elasticsearch.NewTodo(es),
		doneC:  make(chan struct{}),
		closeC: make(chan struct{}),
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
			_ = consumer.Consumer.Unsubscribe()
			_ = consumer.Consumer.Close()
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
	kafka  *internal.KafkaConsumer
	todo   *elasticsearch.Todo
	doneC  chan struct{}
	closeC chan struct{}
}

// ListenAndServe starts consuming messages in the background.
func (s *Server) ListenAndServe() error {
	commit := func(msg *kafka.Message) {
		if _, err := s.kafka.Consumer.CommitMessage(msg); err != nil {
			s.logger.Error("commit failed", zap.Error(err))
		}
	}

	go func() {
		run := true

		for run {
			select {
			case <-s.closeC:
				run = false
			default:
				msg, ok := s.kafka.Consumer.Poll(150).(*kafka.Message)
				if !ok {
					continue
				}

				var evt internaldomain.Event

				if err := json.NewDecoder(bytes.NewReader(msg.Value)).Decode(&evt); err != nil {
					s.logger.Info("Ignoring message, invalid", zap.Error(err))
					commit(msg)

					continue
				}

				// Failed messages are not committed and get redelivered.
				if err := s.todo.Apply(context.Background(), evt.Type, evt.Value); err != nil {
					s.logger.Error("Couldn't apply event", zap.String("type", evt.Type), zap.Error(err))
					continue
				}

				s.logger.Info("Consumed", zap.String("type", evt.Type), zap.Int64("id", evt.Value.ID))
				commit(msg)
			}
		}

		s.logger.Info("No more messages to consume. Exiting.")

		s.doneC <- struct{}{}
	}()

	return nil
}

// Shutdown stops consuming and waits for the in-flight message.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	close(s.closeC)

	select {
	case <-ctx.Done():
		return fmt.Errorf("context.Done: %w", ctx.Err())
	case <-s.doneC:
		return nil
	}
}
