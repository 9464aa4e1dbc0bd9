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

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	bankinghandler "minibank/internal/banking/handler"
	bankingservice "minibank/internal/banking/service"
	"minibank/internal/banking/store"
	"minibank/internal/geolocation/cache"
	"minibank/internal/geolocation/freeipapi"
	geohandler "minibank/internal/geolocation/handler"
	geoservice "minibank/internal/geolocation/service"
	"minibank/internal/platform/config"
	"minibank/internal/platform/httpserver"
	"minibank/internal/platform/logger"
	"minibank/internal/platform/metrics"
	"minibank/internal/platform/middleware"
	"minibank/internal/platform/redis"
	"minibank/pkg/platform/circuit"
	"minibank/pkg/platform/middleware/requesttime"
)

// main wires dependencies and runs the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	accounts, cleanup, err := newAccountStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	banking := bankingservice.New(accounts,
		bankingservice.WithLogger(log),
		bankingservice.WithMetrics(m),
	)

	geoCache, redisClient, err := newGeoCache(cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	locator := geoservice.New(
		freeipapi.New(cfg.GeoBaseURL, cfg.GeoTimeout),
		geoservice.WithCache(geoCache),
		geoservice.WithBreaker(circuit.New("freeipapi")),
		geoservice.WithLogger(log),
		geoservice.WithMetrics(m),
	)

	router := newRouter(log, banking, locator)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting minibank", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newAccountStore(ctx context.Context, cfg config.Config) (bankingservice.AccountStore, func(), error) {
	if cfg.PostgresURL == "" {
		return store.NewInMemory(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	pg := store.NewPostgres(pool)
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pg, pool.Close, nil
}

func newGeoCache(cfg config.Config) (geoservice.Cache, *redis.Client, error) {
	client, err := redis.New(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		return cache.NewMemory(cache.DefaultTTL), nil, nil
	}
	return cache.NewRedis(client, cache.DefaultTTL), client, nil
}

func newRouter(log *slog.Logger, banking bankinghandler.Service, locator geohandler.Locator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(requesttime.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	bankinghandler.New(banking, log).Register(r)
	geohandler.New(locator, log).Register(r)
	return r
}
