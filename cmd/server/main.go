// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"worklink/internal/events"
	"worklink/internal/platform/config"
	"worklink/internal/platform/httpserver"
	"worklink/internal/platform/logger"
	platformredis "worklink/internal/platform/redis"
	"worklink/internal/profile/cache"
	"worklink/internal/profile/handler"
	"worklink/internal/profile/metrics"
	"worklink/internal/profile/service"
	"worklink/internal/profile/store"
	"worklink/pkg/platform/middleware/auth"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store of record. An empty DSN runs against the in-memory store,
	// which is enough for local development.
	var profileStore store.Store
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
		profileStore = store.NewPostgres(db)
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory store")
		profileStore = store.NewMemoryStore()
	}

	// Event sink. Without brokers events stay in the in-process log.
	var sink events.Sink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := events.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	} else {
		log.Warn("KAFKA_BROKERS not set, using in-memory event store")
		sink = events.NewMemoryStore()
	}
	publisher := events.NewPublisher(sink, events.WithAsyncBuffer(256), events.WithLogger(log))
	defer publisher.Close()

	serviceOpts := []service.Option{
		service.WithLogger(log),
		service.WithEventPublisher(publisher),
		service.WithMetrics(metrics.New()),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		serviceOpts = append(serviceOpts, service.WithCache(cache.New(redisClient.Client, cfg.Redis.CacheTTL)))
	}

	profileService := service.New(profileStore, serviceOpts...)
	profileHandler := handler.New(profileService, log)
	authMiddleware := auth.New(cfg.Server.JWTSigningKey)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Require)
		r.Route("/v1", profileHandler.Register)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting profile service", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("profile service stopped")
}
