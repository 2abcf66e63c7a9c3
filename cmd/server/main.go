// Package main is the entry point for the taskdeck API server.
// It wires configuration, logging, the database, the cache, and the
// HTTP surface together, then runs until interrupted.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	platformredis "github.com/taskdeck/taskdeck-api/internal/platform/redis"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

const (
	dbPingTimeout       = 5 * time.Second
	serverReadTimeout   = 10 * time.Second
	serverWriteTimeout  = 15 * time.Second
	serverIdleTimeout   = 60 * time.Second
	shutdownGracePeriod = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

// run owns the full application lifecycle so that main stays a thin
// error-reporting shell and every exit path releases its resources.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database", "error", cerr)
		}
	}()
	log.Info("database connection established")

	if err := runMigrations(db, log); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			log.Error("failed to close redis client", "error", cerr)
		}
	}()

	// The cache is a fast path, not a dependency: a dead Redis at boot
	// only costs cache hits, so log it and keep going.
	taskCache := platformredis.NewTaskCache(redisClient, log)
	if err := taskCache.Ping(ctx); err != nil {
		log.Warn("redis unreachable at startup, continuing without cache hits", "error", err)
	} else {
		log.Info("redis connection established", "addr", cfg.Cache.Addr)
	}

	// Stores
	userStore := postgres.NewPostgresUserStore(db, log)
	taskStore := postgres.NewPostgresTaskStore(db, log)

	// Services
	tokenLifetime := time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute
	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, tokenLifetime)
	if err != nil {
		return fmt.Errorf("creating JWT service: %w", err)
	}
	passwordHasher := auth.NewBcryptHasher(0)
	taskService := service.NewTaskService(taskStore, taskCache, log)

	// HTTP surface
	authHandler := api.NewAuthHandler(userStore, jwtService, passwordHasher, passwordHasher)
	taskHandler := api.NewTaskHandler(taskService, log)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	healthHandler := api.NewHealthHandler(db, taskCache, log)

	router := newRouter(routerDeps{
		authHandler:    authHandler,
		taskHandler:    taskHandler,
		authMiddleware: authMiddleware,
		healthHandler:  healthHandler,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// openDatabase opens a pgx-backed connection pool and verifies it is
// reachable before the server accepts traffic.
func openDatabase(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// runMigrations applies any pending goose migrations from ./migrations.
func runMigrations(db *sql.DB, log *slog.Logger) error {
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("reading migration version: %w", err)
	}

	log.Info("migrations applied", "version", version)
	return nil
}
