// Package main is the entry point for the procura API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"procura/internal/domain/purchases"
	"procura/internal/domain/suppliers"
	v1 "procura/internal/infrastructure/http/v1"
	"procura/internal/infrastructure/storage/postgres"
	"procura/internal/infrastructure/storage/postgres/entity_repo"
	"procura/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting procura server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	if minConns := getEnvInt("DB_MIN_CONNS", 0); minConns > 0 {
		poolCfg.MinConns = int32(minConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	// --- Transaction manager ---
	txOpts := postgres.DefaultTxOptions()
	if stmtTimeout := getEnvDuration("DB_STATEMENT_TIMEOUT", 0); stmtTimeout > 0 {
		txOpts.StatementTimeout = stmtTimeout
	}
	txManager := postgres.NewTxManagerWithOptions(pool, txOpts)

	// --- Repositories ---
	supplierRepo := entity_repo.NewSupplierRepo(txManager)
	purchaseRepo := entity_repo.NewPurchaseRepo(txManager)

	// --- Services ---
	supplierService := suppliers.NewService(supplierRepo, txManager)
	purchaseService := purchases.NewService(purchaseRepo, supplierRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:               pool,
		Logger:             log,
		SupplierService:    supplierService,
		PurchaseService:    purchaseService,
		CORSAllowedOrigins: splitEnvList("CORS_ALLOWED_ORIGINS"),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
