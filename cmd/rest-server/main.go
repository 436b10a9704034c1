package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"

	"github.com/sanLimbu/todo-list/cmd/internal"
	internaldomain "github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/elasticsearch"
	"github.com/sanLimbu/todo-list/internal/envvar"
	"github.com/sanLimbu/todo-list/internal/kafka"
	"github.com/sanLimbu/todo-list/internal/memcached"
	"github.com/sanLimbu/todo-list/internal/postgresql"
	"github.com/sanLimbu/todo-list/internal/rabbitmq"
	"github.com/sanLimbu/todo-list/internal/redis"
	"github.com/sanLimbu/todo-list/internal/rest"
	"github.com/sanLimbu/todo-list/internal/service"
	"github.com/sanLimbu/todo-list/internal/sqlite"
)

const serviceName = "todo-list-rest-server"

func main() {
	var env, address string

	flag.StringVar(&env, "env", "", "Environment Variables filename")
	flag.StringVar(&address, "address", ":9234", "HTTP Server Address")
	flag.Parse()

	errC, err := run(env, address)
	if err != nil {
		log.Fatalf("Couldn't run: %s", err)
	}

	if err := <-errC; err != nil {
		log.Fatalf("Error while running: %s", err)
	}
}

func run(env, address string) (_ <-chan error, err error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "zap.NewProduction")
	}

	conf, err := internal.NewConfiguration(env)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewConfiguration")
	}

	ctx := context.Background()

	var closers []func()

	defer func() {
		if err == nil {
			return
		}

		for _, c := range closers {
			c()
		}
	}()

	repo, closeRepo, err := openRepository(ctx, conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "newRepository")
	}

	closers = append(closers, closeRepo)

	mc, err := internal.NewMemcached(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewMemcached")
	}

	if mc != nil {
		repo = memcached.NewTodo(mc, repo, logger)
	}

	es, err := internal.NewElasticSearch(conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewElasticSearch")
	}

	var search service.TodoSearchRepository
	if es != nil {
		search = elasticsearch.NewTodo(es)
	}

	msgBroker, closeBroker, err := newMessageBroker(ctx, conf)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "newMessageBroker")
	}

	closers = append(closers, closeBroker)

	metrics, err := internal.NewOTExporter(conf, serviceName)
	if err != nil {
		return nil, internaldomain.WrapErrorf(err, internaldomain.ErrorCodeUnknown, "internal.NewOTExporter")
	}

	srv := newServer(serverConfig{
		Address:     address,
		Service:     service.NewTodo(logger, repo, search, msgBroker),
		Metrics:     metrics,
		Middlewares: []func(next http.Handler) http.Handler{otelchi.Middleware(serviceName), internal.NewLoggingMiddleware(logger)},
		Logger:      logger,
	})

	errC := make(chan error, 1)

	ctx, stop := signal.NotifyContext(ctx,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		<-ctx.Done()

		logger.Info("Shutdown signal received")

		ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		defer func() {
			_ = logger.Sync()

			for _, c := range closers {
				c()
			}

			stop()
			cancel()
			close(errC)
		}()

		srv.SetKeepAlivesEnabled(false)

		if err := srv.Shutdown(ctxTimeout); err != nil {
			errC <- err
		}

		logger.Info("Shutdown completed")
	}()

	go func() {
		logger.Info("Listening and serving", zap.String("address", address))

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	return errC, nil
}

var openRepository = newRepository

// newRepository opens the store selected by DATABASE_DRIVER and brings its schema up to date.
func newRepository(ctx context.Context, conf *envvar.Configuration) (service.TodoRepository, func(), error) {
	switch driver := conf.Default("DATABASE_DRIVER", "postgres"); driver {
	case "postgres":
		pool, err := internal.NewPostgreSQL(ctx, conf)
		if err != nil {
			return nil, nil, fmt.Errorf("internal.NewPostgreSQL: %w", err)
		}

		if err := postgresql.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgresql.Migrate: %w", err)
		}

		return postgresql.NewTodo(pool), pool.Close, nil
	case "sqlite3":
		db, err := internal.NewSQLite(conf)
		if err != nil {
			return nil, nil, fmt.Errorf("internal.NewSQLite: %w", err)
		}

		if err := sqlite.Migrate(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("sqlite.Migrate: %w", err)
		}

		return sqlite.NewTodo(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, internaldomain.NewErrorf(internaldomain.ErrorCodeInvalidArgument, "unknown DATABASE_DRIVER %q", driver)
	}
}

// newMessageBroker connects to the broker selected by MESSAGE_BROKER, events are not published when it is empty.
func newMessageBroker(ctx context.Context, conf *envvar.Configuration) (service.TodoMessageBrokerRepository, func(), error) {
	switch broker := conf.Default("MESSAGE_BROKER", ""); broker {
	case "":
		return nil, func() {}, nil
	case "kafka":
		k, err := internal.NewKafkaProducer(conf)
		if err != nil {
			return nil, nil, fmt.Errorf("internal.NewKafkaProducer: %w", err)
		}

		return kafka.NewTodo(k.Producer, k.Topic), func() {
			k.Producer.Flush(5000)
			k.Producer.Close()
		}, nil
	case "rabbitmq":
		rmq, err := internal.NewRabbitMQ(conf)
		if err != nil {
			return nil, nil, fmt.Errorf("internal.NewRabbitMQ: %w", err)
		}

		return rabbitmq.NewTodo(rmq.Channel), rmq.Close, nil
	case "redis":
		rdb, err := internal.NewRedis(ctx, conf)
		if err != nil {
			return nil, nil, fmt.Errorf("internal.NewRedis: %w", err)
		}

		return redis.NewTodo(rdb), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, internaldomain.NewErrorf(internaldomain.ErrorCodeInvalidArgument, "unknown MESSAGE_BROKER %q", broker)
	}
}

type serverConfig struct {
	Address     string
	Service     rest.TodoService
	Metrics     http.Handler
	Middlewares []func(next http.Handler) http.Handler
	Logger      *zap.Logger
}

func newServer(conf serverConfig) *http.Server {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(render.SetContentType(render.ContentTypeJSON))

	for _, mw := range conf.Middlewares {
		router.Use(mw)
	}

	rest.RegisterOpenAPI(router)
	rest.NewTodoHandler(conf.Logger, conf.Service).Register(router)

	router.Handle("/metrics", conf.Metrics)

	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Second})
	lmtmw := tollbooth.LimitHandler(lmt, router)

	return &http.Server{
		Handler:           lmtmw,
		Addr:              conf.Address,
		ReadTimeout:       1 * time.Second,
		ReadHeaderTimeout: 1 * time.Second,
		WriteTimeout:      1 * time.Second,
		IdleTimeout:       1 * time.Second,
	}
}
