package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/printa-stock/internal/modules/auth"
	"github.com/georgemunganga/printa-stock/internal/modules/inventory"
	"github.com/georgemunganga/printa-stock/internal/platform/config"
	"github.com/georgemunganga/printa-stock/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	if err := cfg.ValidateAPI(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Inventory ───────────────────────────────────────────
	repo := inventory.NewMemoryRepository()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := inventory.MigratePostgres(ctx, db); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
		log.Info("Successfully connected to the database!")
		repo = inventory.NewPostgresRepository(db)
	}

	store, err := inventory.NewStore(nil)
	if err != nil {
		log.Fatal("failed to create store", zap.Error(err))
	}
	inventoryService := inventory.NewService(store, repo, log.Named("inventory"), cfg.AtomicOrders)
	if err := inventoryService.Load(ctx); err != nil {
		log.Fatal("failed to load inventory", zap.Error(err))
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	authHandler := auth.NewHandler(auth.NewService(auth.Config{
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Secret:            []byte(cfg.JWTSecret),
	}))
	authHandler.RegisterRoutes(router)
	inventory.NewHandler(inventoryService, authHandler.RequireAdmin).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("API server starting", zap.String("service", config.ServiceName), zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("API server stopped")
}
