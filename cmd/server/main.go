package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"chatbot-backend/internal/config"
	"chatbot-backend/internal/database"
	"chatbot-backend/internal/handlers"
	"chatbot-backend/internal/middleware"
	"chatbot-backend/internal/repository"
	"chatbot-backend/internal/router"
	"chatbot-backend/internal/services"
	"chatbot-backend/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	configureLogging(cfg)
	logrus.Info("🚀 Starting chatbot backend...")
	logrus.WithFields(logrus.Fields{"env": cfg.Env, "driver": cfg.DatabaseDriver}).Info("✓ Environment variables loaded")

	// ──── Step 2: Open the Message Store ────
	store, closeStore, err := openStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("✗ Message store initialization failed")
	}
	defer closeStore()

	// ──── Step 3: Initialize Redis Clients (optional) ────
	var redisClients *database.RedisClients
	var subscriber *redis.Client
	if cfg.RedisURL != "" {
		redisClients, err = database.NewRedisClients(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("✗ Redis connection failed")
		}
		defer redisClients.Close()
		subscriber = redisClients.Subscribe
		logrus.Info("✓ Redis connected")
	} else {
		logrus.Info("✓ Redis not configured, live feed is in-process only")
	}

	// ──── Step 4: Start WebSocket Hub ────
	wsHub := websocket.NewHub(subscriber)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go wsHub.Run(hubCtx)
	logrus.Info("✓ WebSocket hub started")

	var publisher services.MessagePublisher = wsHub
	if redisClients != nil {
		publisher = services.NewRedisPublisher(redisClients.Publish)
	}

	// ──── Initialize Services & Handlers ────
	chatService := services.NewChatService(store, services.NewTemplateAnswerGenerator(), publisher)
	chatHandler := handlers.NewChatHandler(chatService)
	viewHandler := handlers.NewViewHandler(chatService, cfg.SeedLimit)

	askLimiter := middleware.NewRateLimiter(cfg.AskRateLimitPerMin, time.Minute)
	defer askLimiter.Stop()

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		chatHandler,
		viewHandler,
		wsHub,
		askLimiter,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logrus.Info("Shutting down...")
		stopHub()
		wsHub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logrus.WithError(err).Warn("HTTP server shutdown did not complete cleanly")
		}
	}()

	logrus.Infof("✓ Chatbot backend ready on http://localhost:%s", cfg.Port)
	logrus.Infof("  API: http://localhost:%s/api/v1", cfg.Port)
	logrus.Infof("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("Server error")
	}
	<-shutdownDone
}

func configureLogging(cfg *config.Config) {
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// openStore connects the configured backend and prepares its schema.
func openStore(cfg *config.Config) (services.MessageStore, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewSQLiteChatMessageRepo(db)
		if err := repo.Migrate(); err != nil {
			database.CloseSQLiteDB(db)
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		logrus.WithField("path", cfg.SQLitePath).Info("✓ SQLite connected and migrated")
		return repo, func() { database.CloseSQLiteDB(db) }, nil

	default:
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logrus.Info("✓ PostgreSQL connected")

		if err := database.RunMigrations(pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database migration failed: %w", err)
		}
		logrus.Info("✓ Database migrations applied")
		return repository.NewChatMessageRepo(pool), pool.Close, nil
	}
}
