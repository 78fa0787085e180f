package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/elias3446/reportes-ciudadanos/internal/config"
	"github.com/elias3446/reportes-ciudadanos/internal/importer"
	"github.com/elias3446/reportes-ciudadanos/internal/logging"
	"github.com/elias3446/reportes-ciudadanos/internal/store"
	"github.com/elias3446/reportes-ciudadanos/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environment variables win otherwise.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entityStore, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize entity store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := web.NewServer(cfg, importer.New(entityStore))
	if err := server.Start(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// buildStore selects the entity store: PostgreSQL when a database URL is
// configured, the in-memory store otherwise.
func buildStore(ctx context.Context, cfg *config.Config) (importer.EntityStore, func(), error) {
	if cfg.Database.URL == "" {
		slog.Info("no database configured, using in-memory entity store")
		return store.NewMemoryStore(), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	slog.Info("connected to database", "max_conns", cfg.Database.MaxConns)
	return store.NewPostgresStore(pool), pool.Close, nil
}
