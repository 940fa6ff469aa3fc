package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamassss/brevly/internal/config"
	"github.com/gamassss/brevly/internal/handler"
	"github.com/gamassss/brevly/internal/logger"
	"github.com/gamassss/brevly/internal/reachability"
	"github.com/gamassss/brevly/internal/repository/postgres"
	"github.com/gamassss/brevly/internal/repository/sqlite"
	"github.com/gamassss/brevly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type store interface {
	service.ShortenedLinkRepository
	handler.Pinger
	Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	loggerConfig := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}

	if err := logger.Initialize(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	log := logger.Get()
	log.Info("Starting brev.ly service",
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"log_level", cfg.Log.Level,
	)

	linkStore, err := setupStore(cfg)
	if err != nil {
		log.Error("Failed to setup store", "error", err)
		os.Exit(1)
	}

	checker := reachability.NewChecker(&http.Client{}, cfg.Reachability.Timeout)
	shortenerService := service.NewShortenerService(linkStore, checker, nil)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(
		handler.RouterConfig{CORSAllowedOrigin: cfg.Server.CORSAllowedOrigin},
		handler.NewShortenerHandler(shortenerService),
		handler.NewHealthHandler(linkStore, cfg.Store.Driver),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, cfg.Server.ShutdownTimeout, linkStore, log)
}

func setupStore(cfg *config.Config) (store, error) {
	if cfg.Store.Driver == config.DriverSQLite {
		repo, err := sqlite.NewShortenedLinkRepository(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	repo := postgres.NewShortenedLinkRepository(dbPool)
	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := repo.Migrate(ctx); err != nil {
			dbPool.Close()
			return nil, err
		}
	}

	return repo, nil
}

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	dbConfig := cfg.Database
	poolConfig, err := pgxpool.ParseConfig(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(dbConfig.MaxConns)
	poolConfig.MinConns = int32(dbConfig.MinConns)
	poolConfig.MaxConnLifetime = dbConfig.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return dbPool, nil
}

func gracefulShutdown(srv *http.Server, timeout time.Duration, linkStore store, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}

	linkStore.Close()
	log.Info("Store connection closed")

	log.Info("Graceful shutdown completed")
}
