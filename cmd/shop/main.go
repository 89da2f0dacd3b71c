package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"

	"github.com/georgemunganga/printa-stock/internal/modules/inventory"
	"github.com/georgemunganga/printa-stock/internal/modules/shop"
	"github.com/georgemunganga/printa-stock/internal/platform/config"
	"github.com/georgemunganga/printa-stock/internal/platform/logger"
	_ "github.com/lib/pq"
	"github.com/spf13/pflag"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to an optional .env file")
	databaseURL := pflag.String("database-url", "", "Postgres URL; overrides DATABASE_URL")
	logLevel := pflag.String("log-level", "", "log level; overrides LOG_LEVEL")
	atomic := pflag.Bool("atomic", false, "process orders all-or-nothing")
	pflag.Parse()

	if err := run(*envFile, *databaseURL, *logLevel, *atomic); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile, databaseURL, logLevel string, atomic bool) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.AtomicOrders = cfg.AtomicOrders || atomic

	// The console owns stdout; logs go to stderr at warn and above by default.
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	log, err := logger.New(cfg.LogLevel, true)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo := inventory.NewMemoryRepository()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		if err := inventory.MigratePostgres(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		repo = inventory.NewPostgresRepository(db)
	}

	store, err := inventory.NewStore(nil)
	if err != nil {
		return err
	}
	service := inventory.NewService(store, repo, log.Named("inventory"), cfg.AtomicOrders)
	if err := service.Load(ctx); err != nil {
		return fmt.Errorf("error creating products: %w", err)
	}

	return shop.NewMenu(service, os.Stdin, os.Stdout, log).Run(ctx)
}
