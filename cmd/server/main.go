package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // RUN_TIMEZONE must resolve without system zoneinfo

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/fieldmap/internal/catalog"
	"github.com/JonMunkholm/fieldmap/internal/config"
	"github.com/JonMunkholm/fieldmap/internal/logging"
	"github.com/JonMunkholm/fieldmap/internal/run"
	"github.com/JonMunkholm/fieldmap/internal/web"
	"github.com/JonMunkholm/fieldmap/internal/wizard"
)

func main() {
	// Overload so a local .env wins over inherited variables.
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	loc, err := cfg.Run.Location()
	if err != nil {
		slog.Error("invalid run timezone", "timezone", cfg.Run.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var submitter run.Submitter = run.LogSubmitter{}
	if cfg.Database.Enabled() {
		pool, err := openPool(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		ledger := run.NewPgSubmitter(pool)
		if err := ledger.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare submission ledger", "error", err)
			os.Exit(1)
		}
		submitter = ledger
		slog.Info("submissions recorded in postgres")
	} else {
		slog.Info("no database configured, submissions are only logged")
	}

	slog.Info("target catalog loaded", "fields", catalog.Len())

	store := wizard.NewStore(cfg.Session.IdleTimeout)
	go store.StartSweeper(ctx, cfg.Session.SweepInterval)

	planner := run.Planner{Location: loc, AfterHours: cfg.Run.AfterHours}
	server := web.NewServer(cfg, store, submitter, planner)

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("server stopped")
}

func openPool(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to database", "database", poolConfig.ConnConfig.Database)
	return pool, nil
}
