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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/dokoiko/internal/api"
	"github.com/neexbeast/dokoiko/internal/cache"
	"github.com/neexbeast/dokoiko/internal/config"
	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/planner"
	"github.com/neexbeast/dokoiko/internal/selection"
	"github.com/neexbeast/dokoiko/internal/storage"
	"github.com/neexbeast/dokoiko/internal/transport"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("loading configuration", "err", err)
		os.Exit(1)
	}
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	// Connect to PostgreSQL (when configured) and Redis concurrently.
	var (
		pool        *pgxpool.Pool
		redisClient *redis.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	if cfg.UseDatabase() {
		g.Go(func() error {
			p, err := storage.Connect(gctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			pool = p
			return nil
		})
	}
	g.Go(func() error {
		c, err := cache.Connect(gctx, cfg.RedisURL, cfg.SessionDB)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		redisClient = c
		return nil
	})
	err := g.Wait()
	if pool != nil {
		defer pool.Close()
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	if err != nil {
		return err
	}

	// Pick the catalog source and load it.
	var (
		source api.CatalogSource
		db     api.Pinger
	)
	if pool != nil {
		if err := storage.RunMigrations(ctx, pool, storage.Migrations()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		log.Info("migrations applied")
		source = storage.NewRepository(pool)
		db = pool
	} else if cfg.UseCatalogURL() {
		source = destination.NewHTTPSource(cfg.CatalogURL)
	} else {
		source = destination.FileSource{Path: cfg.CatalogFile}
	}

	catalogs := destination.NewStore(nil)
	if c, err := source.LoadCatalog(ctx); err != nil {
		// The server still starts; draws answer 503 until a reload succeeds.
		log.Error("loading catalog", "err", err)
	} else {
		catalogs.Replace(c)
		log.Info("catalog loaded", "records", c.Len())
	}

	// Wire dependencies.
	departures := destination.DefaultDepartures()
	p := planner.New(
		catalogs,
		selection.NewBuilder(departures, nil),
		transport.NewResolver(departures, transport.DefaultProviderRules(departures)),
	)
	sessions := cache.NewSessionStore(redisClient, cfg.SessionTTL)
	handlers := api.NewHandlers(p, catalogs, departures, sessions, source, log)

	router := api.NewRouter(handlers, api.RouterConfig{
		Token:     cfg.BearerToken,
		RateLimit: cfg.RateLimit,
		DB:        db,
		Redis:     &redisPingerAdapter{client: redisClient},
	}, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownWait)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// redisPingerAdapter adapts redis.Client to the api.Pinger interface.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
