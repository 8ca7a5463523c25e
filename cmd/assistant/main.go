// cmd/assistant/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"banking-assistant/internal/bank"
	"banking-assistant/internal/common/config"
	"banking-assistant/internal/common/database"
	"banking-assistant/internal/common/logger"
	"banking-assistant/internal/common/observability"
	"banking-assistant/internal/dialog"
	"banking-assistant/internal/notify"
	"banking-assistant/internal/server"
	"banking-assistant/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting banking assistant...",
		zap.String("environment", cfg.App.Environment),
		zap.String("bankBackend", cfg.Bank.Backend),
		zap.String("stateBackend", cfg.Dialog.StateBackend),
	)

	obs := observability.New("banking-assistant")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Notifier (optional) ---
	var notifier notify.Notifier
	if cfg.Notifications.Enabled {
		awsNotifier, err := notify.NewAWSNotifier(ctx, cfg.Notifications.AWSRegion, cfg.Notifications.SenderEmail)
		if err != nil {
			zapLog.Fatal("aws notifier failed", zap.Error(err))
		}
		notifier = awsNotifier
		zapLog.Info("AWS notifier initialized", zap.String("region", cfg.Notifications.AWSRegion))
	}

	// --- Init Banking Backend ---
	var bankAPI bank.API
	switch cfg.Bank.Backend {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			// Test the connection with context
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		bankAPI = bank.NewPostgres(pg.DB, log, notifier)

	default:
		bankAPI = bank.NewMemory(log, notifier)
		zapLog.Info("In-memory banking backend seeded")
	}

	// --- Init Conversation State Store ---
	var store dialog.Store
	switch cfg.Dialog.StateBackend {
	case "redis":
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")

		store = dialog.NewRedisStore(redisClient.GetClient(), cfg.Dialog.StateTTL, log)

	default:
		store = dialog.NewMemoryStore(cfg.Dialog.StateTTL)
	}

	// --- Init Dialog Engine ---
	engine := dialog.NewEngine(store, bankAPI, obs, log)

	// --- Load Intent Registry ---
	var intents *registry.IntentRegistry
	if cfg.Server.IntentRegistry != "" {
		intents, err = registry.LoadRegistry(cfg.Server.IntentRegistry)
		if err != nil {
			zapLog.Warn("intent registry unavailable, /api/intents disabled",
				zap.String("path", cfg.Server.IntentRegistry),
				zap.Error(err),
			)
			intents = nil
		}
	}

	// --- HTTP Server ---
	srv, err := server.New(engine, server.Options{
		Intents:   intents,
		StaticDir: cfg.Server.StaticDir,
	}, log)
	if err != nil {
		zapLog.Fatal("server setup failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Banking assistant stopped gracefully")
}
