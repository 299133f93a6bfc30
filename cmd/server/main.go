package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jyotishmoy12/tax-hummer-info/internal/cache"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/config"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/database"
	"github.com/Jyotishmoy12/tax-hummer-info/internal/server"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		db.Close()
	}()

	store := newCacheStore(cfg.Cache, logger)
	if redisStore, ok := store.(*cache.RedisStore); ok {
		defer func() {
			_ = redisStore.Close()
		}()
	}

	e := server.New(cfg, logger, db, store)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// newCacheStore picks the result cache backend. An unreachable Redis falls
// back to the in-memory store so the service still starts.
func newCacheStore(cfg config.CacheConfig, logger *slog.Logger) cache.Store {
	switch cfg.Provider {
	case "redis":
		redisStore := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.TTL)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisStore.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, using in-memory cache", slog.String("error", err.Error()))
			_ = redisStore.Close()
			return cache.NewMemoryStore(cfg.TTL)
		}
		return redisStore
	default:
		return cache.NewMemoryStore(cfg.TTL)
	}
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
		return
	}

	if _, err := os.Stat("../.env"); err == nil {
		_ = os.Setenv("ENV_FILE", "../.env")
	}
}
