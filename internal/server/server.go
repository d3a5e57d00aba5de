// Package server owns the process lifecycle: it opens the stores, builds the
// kernel, serves HTTP (and gRPC health when enabled) and shuts everything
// down on SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockpile/config"
	"github.com/shashiranjanraj/stockpile/internal/kernel"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
	"github.com/shashiranjanraj/stockpile/pkg/database"
	"github.com/shashiranjanraj/stockpile/pkg/docstore"
	grpcsrv "github.com/shashiranjanraj/stockpile/pkg/grpc"
	"github.com/shashiranjanraj/stockpile/pkg/logger"
	"github.com/shashiranjanraj/stockpile/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// OpenSQL connects the relational store named by DB_DRIVER and DATABASE_DSN.
func OpenSQL() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return database.Connect(config.DatabaseDriver(), config.DatabaseDSN())
}

// OpenDocuments connects the catalog store named by MONGO_URI and MONGO_DATABASE.
func OpenDocuments(ctx context.Context) (*docstore.Store, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return docstore.Connect(ctx, config.MongoURI(), config.MongoDatabase())
}

// openRateStore picks Redis when REDIS_ADDR is set, memory otherwise.
func openRateStore(ctx context.Context) (middleware.RateStore, func(), error) {
	addr := config.RedisAddr()
	if addr == "" {
		store := middleware.NewMemoryStore()
		return store, store.Close, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return middleware.NewRedisStore(client), func() { _ = client.Close() }, nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := OpenSQL()
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	docs, err := OpenDocuments(ctx)
	if err != nil {
		return err
	}
	defer docs.Close(context.Background()) //nolint:errcheck

	if err := docstore.EnsureIndexes(ctx, docs.DB); err != nil {
		return err
	}

	if config.LogToMongo() {
		h := logger.NewMongoHandler(docs.DB.Collection(docstore.Logs), slog.LevelInfo)
		logger.Attach(h)
		defer h.Close()
	}

	rates, closeRates, err := openRateStore(ctx)
	if err != nil {
		return err
	}
	defer closeRates()

	checks := kernel.StoreChecks(db, docs)
	k, err := kernel.NewHTTPKernel(kernel.Deps{
		SQL:       db,
		Catalog:   docs.DB,
		Tokens:    auth.FromConfig(),
		RateStore: rates,
		Checks:    checks,
	})
	if err != nil {
		return err
	}

	var grpcServer *grpc.Server
	if port := config.GRPCPort(); port != "" {
		srv, _, err := grpcsrv.Start(port, checks)
		if err != nil {
			return err
		}
		grpcServer = srv
	}

	httpServer := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr, "env", config.AppEnv())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		grpcsrv.Stop(grpcServer)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcsrv.Stop(grpcServer)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http: shutdown: %w", err)
	}
	return nil
}
