package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/stockops/stockflow/internal/config"
	"github.com/stockops/stockflow/migrations"
	"github.com/stockops/stockflow/pkg/idempotency"
	"github.com/stockops/stockflow/pkg/logging"
	"github.com/stockops/stockflow/pkg/outbox"
	outboxpg "github.com/stockops/stockflow/pkg/outbox/postgres"
	"github.com/stockops/stockflow/pkg/shutdown"
	"github.com/stockops/stockflow/pkg/tracing"

	cartapp "github.com/stockops/stockflow/internal/cart/application"
	carthttp "github.com/stockops/stockflow/internal/cart/infrastructure/http"
	cartpg "github.com/stockops/stockflow/internal/cart/infrastructure/postgres"
	catalogapp "github.com/stockops/stockflow/internal/catalog/application"
	cataloghttp "github.com/stockops/stockflow/internal/catalog/infrastructure/http"
	catalogpg "github.com/stockops/stockflow/internal/catalog/infrastructure/postgres"
	dashboardapp "github.com/stockops/stockflow/internal/dashboard/application"
	dashboardhttp "github.com/stockops/stockflow/internal/dashboard/infrastructure/http"
	dashboardpg "github.com/stockops/stockflow/internal/dashboard/infrastructure/postgres"
	"github.com/stockops/stockflow/internal/identity"
	identitypg "github.com/stockops/stockflow/internal/identity/postgres"
	notifapp "github.com/stockops/stockflow/internal/notification/application"
	notifhttp "github.com/stockops/stockflow/internal/notification/infrastructure/http"
	notifkafka "github.com/stockops/stockflow/internal/notification/infrastructure/kafka"
	notifpg "github.com/stockops/stockflow/internal/notification/infrastructure/postgres"
	orderapp "github.com/stockops/stockflow/internal/order/application"
	orderhttp "github.com/stockops/stockflow/internal/order/infrastructure/http"
	orderpg "github.com/stockops/stockflow/internal/order/infrastructure/postgres"
	replapp "github.com/stockops/stockflow/internal/replenishment/application"
	replhttp "github.com/stockops/stockflow/internal/replenishment/infrastructure/http"
	replpg "github.com/stockops/stockflow/internal/replenishment/infrastructure/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "stockflow", cfg.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	// Schema migrations
	if err := migrations.Up(cfg.PostgresURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// Postgres setup, with decimal scanning for the money columns.
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		log.Error("pg config invalid", "err", err)
		os.Exit(1)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Redis, for consumer idempotency.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	idem := idempotency.NewStore(rdb, 24*time.Hour)

	// Kafka producer and outbox relay
	writer := outbox.NewWriter(cfg.KafkaBrokers)
	defer writer.Close()
	outboxStore := outboxpg.NewStore(log, pool)
	dispatch := outbox.NewDispatcher(log, writer, cfg.EventsTopic)
	relay := outbox.NewRelay(log, outboxStore, dispatch, "stockflow-relay")

	// Repositories
	catalogRepo := catalogpg.NewRepository(log, pool)
	cartRepo := cartpg.NewRepository(log, pool)
	orderRepo := orderpg.NewRepository(log, pool)
	replRepo := replpg.NewRepository(log, pool)
	notifRepo := notifpg.NewRepository(log, pool)
	userRepo := identitypg.NewRepository(pool)
	dashRepo := dashboardpg.NewRepository(pool)

	// Services
	catalogSvc := catalogapp.NewService(log, catalogRepo)
	cartSvc := cartapp.NewService(log, cartRepo, catalogSvc)
	orderSvc := orderapp.NewService(log, orderRepo, cartRepo)
	replSvc := replapp.NewService(log, replRepo)
	notifSvc := notifapp.NewService(log, notifRepo)
	dashSvc := dashboardapp.NewService(log, dashRepo)

	// Notification fan-out consumer
	notifDispatcher := notifapp.NewDispatcher(log, userRepo, notifRepo)
	consumer := notifkafka.NewConsumer(log, cfg.KafkaBrokers, cfg.EventsTopic, cfg.ConsumerGroup, notifDispatcher, idem)

	// HTTP server
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(identity.Middleware)
	r.Mount("/products", cataloghttp.NewHandler(log, catalogSvc).Routes())
	r.Mount("/cart", carthttp.NewHandler(log, cartSvc).Routes())
	r.Mount("/orders", orderhttp.NewHandler(log, orderSvc).Routes())
	r.Mount("/request-orders", replhttp.NewHandler(log, replSvc).Routes())
	r.Mount("/notifications", notifhttp.NewHandler(log, notifSvc).Routes())
	r.Mount("/dashboard", dashboardhttp.NewHandler(log, dashSvc).Routes())

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := relay.Run(ctx); err != nil {
			log.Error("relay stopped with error", "err", err)
		}
	}()

	go func() {
		if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("notification consumer stopped with error", "err", err)
			cancel()
		}
	}()

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("stockflow shutdown complete")
}
