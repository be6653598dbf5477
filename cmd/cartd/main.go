package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/nikolayk812/storefront-cart/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "cartd",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("cartd stopped with error")
	}
	log.Info().Msg("cartd stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("STOREFRONT_JWT_SECRET is required")
	}

	repo, closeRepo, err := newRepository(ctx, cfg.Server, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(repo, cfg.JWT, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("cart api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func newRepository(ctx context.Context, cfg config.ServerConfig, log zerolog.Logger) (port.CartRepository, func(), error) {
	if cfg.DSN == "" {
		log.Warn().Msg("STOREFRONT_DB_DSN is empty, carts are kept in memory")
		return repository.NewMemoryCart(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pool.Ping: %w", err)
	}

	if cfg.AutoMigrate {
		// the *sql.DB borrows connections from pool; closing pool releases them
		if err := migrations.Up(ctx, stdlib.OpenDBFromPool(pool)); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations.Up: %w", err)
		}
		log.Info().Msg("migrations applied")
	}

	return repository.NewCart(pool), pool.Close, nil
}
