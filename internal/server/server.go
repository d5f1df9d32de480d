// Package server runs the HTTP and gRPC listeners until the context ends,
// then drains both.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/storehub/app/controllers"
	"github.com/shashiranjanraj/storehub/config"
	"github.com/shashiranjanraj/storehub/internal/kernel"
	"github.com/shashiranjanraj/storehub/pkg/cache"
	"github.com/shashiranjanraj/storehub/pkg/database"
	"github.com/shashiranjanraj/storehub/pkg/grpc"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Start boots every dependency from config and serves until ctx is done.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		sink, err := logger.NewMongoHandler(ctx, uri, config.LogMongoDB())
		if err != nil {
			logger.Warn("log sink disabled", "error", err)
		} else {
			logger.AttachSink(sink)
			defer sink.Close()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close(database.DB) //nolint:errcheck

	if err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword()); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "error", err)
	}

	stop := make(chan struct{})
	defer close(stop)

	k, err := kernel.NewHTTPKernel(database.DB, kernel.Options{
		Services: controllers.Options{
			AllowOversell:  config.AllowOversell(),
			ReportCacheTTL: config.ReportCacheTTL(),
		},
		RateLimitPerMinute: config.RateLimitPerMinute(),
		CORS:               middleware.DefaultCORSOptions(),
		Stop:               stop,
	})
	if err != nil {
		return err
	}

	grpcSrv, err := grpc.Start(config.GRPCPort(), func(ctx context.Context) error {
		return database.Ping(ctx, database.DB)
	})
	if err != nil {
		return err
	}
	defer grpcSrv.Stop()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("storehub listening", "addr", srv.Addr, "env", config.AppEnv())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http: shutdown: %w", err)
	}
	return nil
}
