package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/realworldcase/challenge-engine/internal/api"
	"github.com/realworldcase/challenge-engine/internal/catalog"
	"github.com/realworldcase/challenge-engine/internal/challenge"
	"github.com/realworldcase/challenge-engine/internal/cleanup"
	"github.com/realworldcase/challenge-engine/internal/config"
	"github.com/realworldcase/challenge-engine/internal/feed"
	"github.com/realworldcase/challenge-engine/internal/generator"
	"github.com/realworldcase/challenge-engine/internal/ratelimit"
	"github.com/realworldcase/challenge-engine/internal/services"
	"github.com/realworldcase/challenge-engine/internal/storage"
)

func main() {
	// Setup structured logging; the level is adjusted once config is loaded
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.App.LogLevel)

	slog.Info("starting challenge-engine",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	registry := services.NewRegistry()

	// Storage
	var repo storage.Repository
	if cfg.Database.DSN != "" {
		pgRepo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		repo = pgRepo
		slog.Info("database connected successfully")

		pgChecker, err := services.NewPostgresChecker(cfg.Database.DSN)
		if err != nil {
			slog.Error("failed to create postgres checker", "error", err)
			os.Exit(1)
		}
		defer pgChecker.Close()
		registry.Register("postgres", pgChecker)
	} else {
		slog.Warn("DATABASE_DSN not set, challenges are kept in memory")
		repo = storage.NewMemoryRepository()
	}
	defer repo.Close()

	// Rate limiting
	var limiter ratelimit.Limiter = ratelimit.Unlimited{}
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(initCtx).Err(); err != nil {
			slog.Warn("redis not reachable at startup", "address", cfg.Redis.Address, "error", err)
		}
		registry.Register("redis", services.NewRedisChecker(redisClient))

		if cfg.RateLimit.PerMinute > 0 {
			limiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit:challenge", cfg.RateLimit.PerMinute, time.Minute)
			slog.Info("challenge rate limit enabled", "per_minute", cfg.RateLimit.PerMinute)
		}
	}

	// Catalog
	cat := catalog.New()
	if cfg.Catalog.File != "" {
		if err := cat.LoadFromFile(cfg.Catalog.File); err != nil {
			slog.Error("failed to load catalog", "file", cfg.Catalog.File, "error", err)
			os.Exit(1)
		}
	}

	// Generator
	gen := generator.NewOllamaGenerator(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout)
	registry.Register("ollama", services.NewFuncChecker("ollama", gen.HealthCheck))

	hub := feed.NewHub()
	challenges := challenge.NewService(cat, gen, repo, hub)
	registry.Register("storage", services.NewFuncChecker("storage", challenges.Ping))
	slog.Info("readiness checks registered", "services", registry.List())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := cleanup.NewCleaner(challenges, cfg.Cleanup.Interval, cfg.Cleanup.Retention)
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.App, cfg.Server, challenges, registry, limiter, hub)
	httpServer := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     server.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Stop background workers
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("challenge-engine stopped")
}
