package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventTicketing/internal/auth"
	"eventTicketing/internal/broker/kafka"
	"eventTicketing/internal/config"
	"eventTicketing/internal/http-server/handlers/admin/createEvent"
	"eventTicketing/internal/http-server/handlers/admin/deleteEvent"
	"eventTicketing/internal/http-server/handlers/admin/getStats"
	"eventTicketing/internal/http-server/handlers/admin/login"
	"eventTicketing/internal/http-server/handlers/admin/logout"
	"eventTicketing/internal/http-server/handlers/admin/updateEvent"
	"eventTicketing/internal/http-server/handlers/event/getAllEvents"
	"eventTicketing/internal/http-server/handlers/event/getEventInfo"
	"eventTicketing/internal/http-server/handlers/event/streamEvents"
	"eventTicketing/internal/http-server/handlers/payment/checkout"
	"eventTicketing/internal/http-server/handlers/payment/paymentResult"
	"eventTicketing/internal/http-server/handlers/payment/paymentStatus"
	"eventTicketing/internal/http-server/handlers/payment/preparePayment"
	"eventTicketing/internal/http-server/middleware/mwlogger"
	"eventTicketing/internal/lib/logger/handlers/slogpretty"
	"eventTicketing/internal/lib/logger/sl"
	"eventTicketing/internal/metrics"
	"eventTicketing/internal/payment/booking"
	"eventTicketing/internal/payment/esewa"
	"eventTicketing/internal/storage/file"
	"eventTicketing/internal/storage/memory"
	"eventTicketing/internal/storage/postgres"
	"eventTicketing/internal/storage/redis"
	"eventTicketing/internal/store/events"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	shutdownTimeout = 10 * time.Second
)

// slotStorage is what every storage backend provides.
type slotStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting event ticketing", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slots, err := setupStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	log.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	m := metrics.New()

	storeOpts := []events.Option{
		events.WithKey(cfg.Storage.Key),
		events.WithMutationObserver(m),
	}
	if cfg.Storage.SeedPath != "" {
		seed, err := events.LoadSeed(cfg.Storage.SeedPath)
		if err != nil {
			log.Error("failed to load seed", sl.Err(err))
			os.Exit(1)
		}
		storeOpts = append(storeOpts, events.WithSeed(seed))
	}

	store, err := events.New(ctx, slots, storeOpts...)
	if err != nil {
		log.Error("failed to init event store", sl.Err(err))
		os.Exit(1)
	}

	unsubscribeMetrics := store.Subscribe(m.ObserveEvents)

	var publisher *kafka.Publisher
	unsubscribeFeed := func() {}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.New(log, kafka.NewWriter(&cfg.Kafka))
		go publisher.Run(ctx)
		unsubscribeFeed = store.Subscribe(publisher.Publish)

		log.Info("change feed enabled", slog.String("topic", cfg.Kafka.Topic))
	}

	builder := esewa.New(log, &cfg.Esewa, esewa.WithObserver(m))
	bookings := booking.New(log, store, builder)

	session, err := auth.New(&cfg.Admin, slots)
	if err != nil {
		log.Error("failed to init admin session", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(m.Middleware)

	router.Get("/events", getAllEvents.New(log, store))
	router.Get("/events/stream", streamEvents.New(log, store))
	router.Get("/events/{id}", getEventInfo.New(log, store))
	router.Post("/events/{id}/checkout", checkout.New(log, bookings, builder))

	router.Post("/payments/prepare", preparePayment.New(log, bookings, builder))
	router.Get("/payments/{transactionId}/status", paymentStatus.New(log))
	router.Get("/payment/success", paymentResult.NewSuccess(log))
	router.Get("/payment/failure", paymentResult.NewFailure(log))

	router.Route("/admin", func(r chi.Router) {
		r.Post("/login", login.New(log, session))
		r.Post("/logout", logout.New(log, session))

		r.Group(func(r chi.Router) {
			r.Use(auth.Guard(log, session))

			r.Post("/events", createEvent.New(log, store))
			r.Patch("/events/{id}", updateEvent.New(log, store))
			r.Delete("/events/{id}", deleteEvent.New(log, store))
			r.Get("/stats", getStats.New(log, store))
		})
	})

	router.Handle("/metrics", m.Handler())

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("application stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	unsubscribeFeed()
	unsubscribeMetrics()

	if publisher != nil {
		if err = publisher.Close(shutdownCtx); err != nil {
			log.Error("failed to close kafka writer", sl.Err(err))
		}
	}

	if err = slots.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("application stopped")
}

func setupStorage(ctx context.Context, cfg *config.Config) (slotStorage, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.New(), nil
	case "file":
		return file.New(cfg.Storage.Dir)
	case "redis":
		return redis.Connect(ctx, &cfg.Redis)
	case "postgres":
		return postgres.InitDB(&cfg.Database)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
