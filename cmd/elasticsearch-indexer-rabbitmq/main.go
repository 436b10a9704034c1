package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/cmd/internal"
	internaldomain "github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/elasticsearch"
	"github.com/sanLimbu/todo-list/internal/rabbitmq"
)

const (
	serviceName          = "todo-list-elasticsearch-indexer-rabbitmq"
	rabbitMQConsumerName = "elasticsearch-indexer"
)

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
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	conf, err := internal.NewConfiguration(env)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewConfiguration")
	}

	es, err := internal.NewElasticSearch(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewElasticSearch")
	}

	if es == nil {
		return nil, internaldomain.NewErrorf(internaldomain.ErrorCodeInvalidArgument, "ELASTICSEARCH_URL is required")
	}

	rmq, err := internal.NewRabbitMQ(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewRabbitMQ")
	}

	if _, err := internal.NewOTExporter(conf, serviceName); err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	srv := &Server{
		logger: logger,
		rmq:    rmq,
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
			rmq.Close()
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
	rmq    *internal.RabbitMQ
	todo   *elasticsearch.Todo
	done   chan struct{}
}

// ListenAndServe binds a queue to every Todo event and starts consuming in the background.
func (s *Server) ListenAndServe() error {
	queue, err := s.rmq.Channel.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "channel.QueueDeclare")
	}

	err = s.rmq.Channel.QueueBind(
		queue.Name,            // queue name
		"todos.event.*",       // routing key
		rabbitmq.ExchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "channel.QueueBind")
	}

	msgs, err := s.rmq.Channel.Consume(
		queue.Name,           // queue
		rabbitMQConsumerName, // consumer
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,                  // args
	)
	if err != nil {
		return internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "channel.Consume")
	}

	go func() {
		for msg := range msgs {
			s.logger.Info("Received message", zap.String("routingKey", msg.RoutingKey))

			if err := s.apply(msg); err != nil {
				s.logger.Error("Nacking", zap.String("routingKey", msg.RoutingKey), zap.Error(err))

				_ = msg.Nack(false, false)

				continue
			}

			_ = msg.Ack(false)
		}

		s.logger.Info("No more messages to consume. Exiting.")

		s.done <- struct{}{}
	}()

	return nil
}

func (s *Server) apply(msg amqp.Delivery) error {
	var todo internaldomain.Todo

	switch msg.RoutingKey {
	case internaldomain.EventTodoCreated, internaldomain.EventTodoUpdated:
		res, err := rabbitmq.DecodeTodo(msg.Body)
		if err != nil {
			return err
		}

		todo = res
	case internaldomain.EventTodoDeleted:
		id, err := rabbitmq.DecodeID(msg.Body)
		if err != nil {
			return err
		}

		todo.ID = id
	}

	return s.todo.Apply(context.Background(), msg.RoutingKey, todo)
}

// Shutdown cancels the consumer and waits for the in-flight message.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	_ = s.rmq.Channel.Cancel(rabbitMQConsumerName, false)

	select {
	case <-ctx.Done():
		return internaldomain.WrapErrorf(ctx.Err(), internaldomain.ErrorCodeUnknown, "context.Done")
	case <-s.done:
		return nil
	}
}
