package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ayeshaasidq/ecommerce-fullstack/internal/config"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/events"
	h "github.com/ayeshaasidq/ecommerce-fullstack/internal/http"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/logger"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/service"
	"github.com/ayeshaasidq/ecommerce-fullstack/internal/store"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func serve(cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)
	log = log.With(zap.String("service", cfg.ServiceName))

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions, closeSessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	catalog := store.NewMemoryCatalog()
	accounts := store.NewMemoryAccounts()
	carts := store.NewMemoryCarts()
	orders := store.NewMemoryOrders()

	if cfg.SeedCatalog {
		if err := store.SeedCatalog(ctx, catalog, store.DemoProducts); err != nil {
			return err
		}
	}
	admin, err := store.SeedAdmin(ctx, accounts, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return err
	}
	log.Info("seed data loaded",
		zap.Bool("catalog", cfg.SeedCatalog),
		zap.Int64("admin_id", admin.ID))

	// Order events
	outbox := events.NewOutbox(events.DefaultOutboxCapacity, log)
	var publisher events.Publisher
	if cfg.EventsEnabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		log.Info("publishing order events to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic))
	} else {
		publisher = events.NewLogPublisher(log)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", zap.Error(err))
		}
	}()
	poller := events.NewPoller(outbox, publisher, cfg.Kafka.OutboxTick, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()

	locks := service.NewUserLocks()
	services := h.Services{
		Auth:    service.NewAuthService(accounts, sessions, cfg.Session.TTL, log),
		Catalog: service.NewCatalogService(catalog),
		Cart:    service.NewCartService(carts, catalog, locks, log),
		Orders:  service.NewOrderService(orders, carts, catalog, locks, outbox, log),
	}
	router := h.NewRouter(h.Options{
		ServiceName:        cfg.ServiceName,
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		AllowedOrigins:     cfg.AllowedOrigins,
	}, services, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	case err := <-serverErr:
		cancel()
		wg.Wait()
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// stop the poller only after in-flight checkouts have enqueued their events
	cancel()
	wg.Wait()

	log.Info("server exited")
	return nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.SessionStore, func(), error) {
	if cfg.Session.Backend != config.BackendRedis {
		sessions := store.NewMemorySessions(cfg.Session.CleanupInterval)
		return sessions, func() { _ = sessions.Close() }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	log.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	return store.NewRedisSessions(client), func() { _ = client.Close() }, nil
}
