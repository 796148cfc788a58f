package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/config"
	"github.com/shashiranjanraj/backoffice/internal/kernel"
	"github.com/shashiranjanraj/backoffice/pkg/cache"
	grpcserver "github.com/shashiranjanraj/backoffice/pkg/grpc"
	"github.com/shashiranjanraj/backoffice/pkg/logger"
	"github.com/shashiranjanraj/backoffice/pkg/middleware"
)

// Start boots the store, serves HTTP and gRPC, and blocks until SIGINT or
// SIGTERM has been handled. It returns the shutdown exit code.
func Start(ctx context.Context) (int, error) {
	backend, err := Connect(ctx)
	if err != nil {
		return 1, err
	}
	if err := backend.Migrate(ctx, io.Discard); err != nil {
		_ = backend.Close(context.Background())
		return 1, err
	}

	bg, stopBackground := context.WithCancel(context.Background())
	limiter, closeLimiter := newLimiter(bg)

	k, err := kernel.NewHTTPKernel(kernel.Options{
		Store:    backend.Store,
		Services: services.Options{ReferenceChecks: config.ReferenceChecks()},
		CORS:     middleware.DefaultCORSOptions(),
		Limiter:  limiter,
	})
	if err != nil {
		stopBackground()
		closeLimiter()
		_ = backend.Close(context.Background())
		return 1, err
	}

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcSrv := grpcserver.New(backend.Store)
	if err := grpcSrv.Start(config.GRPCPort()); err != nil {
		stopBackground()
		closeLimiter()
		_ = backend.Close(context.Background())
		return 1, err
	}
	go grpcSrv.Watch(bg, 10*time.Second)

	go func() {
		logger.Info("back-office running",
			"addr", httpSrv.Addr,
			"env", config.AppEnv(),
			"store", config.DatabaseDriver(),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http: serve error", "error", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, config.ShutdownTimeout(), map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error {
			return httpSrv.Shutdown(ctx)
		},
		"grpc": func(ctx context.Context) error {
			return grpcSrv.Stop(ctx)
		},
		"background": func(context.Context) error {
			stopBackground()
			closeLimiter()
			return nil
		},
	})

	code := <-wait
	if err := backend.Close(context.Background()); err != nil {
		logger.Warn("store close", "error", err)
	}
	logger.Info("back-office stopped", "exit_code", code)
	return code, nil
}

// newLimiter prefers the shared Redis window and falls back to a
// per-process one when Redis cannot be reached.
func newLimiter(ctx context.Context) (middleware.Limiter, func()) {
	limit, window := config.RateLimit(), time.Minute

	rdb, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err == nil {
		logger.Info("rate limiter: redis", "addr", config.RedisAddr())
		return middleware.NewRedisLimiter(rdb, limit, window), func() { _ = rdb.Close() }
	}

	logger.Warn("rate limiter: redis unavailable, using in-process limiter", "error", err)
	mem := middleware.NewMemoryLimiter(limit, window)
	go mem.Sweep(ctx, window)
	return mem, func() {}
}

// Describe is the one-line summary printed by the CLI before serving.
func Describe() string {
	return fmt.Sprintf("http=:%s grpc=:%s store=%s", config.AppPort(), config.GRPCPort(), config.DatabaseDriver())
}
