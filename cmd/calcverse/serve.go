package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/BenTyson/calcverse/internal/cache"
	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/internal/server"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	var (
		configPath string
		envFiles   []string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := server.LoadEnv(envFiles...); err != nil {
				return err
			}
			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := initializeLogger(cfg.Logging, a.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, logger, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringArrayVar(&envFiles, "env-file", nil, "environment file to load (default .env)")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then drains it.
func serve(ctx context.Context, logger *zap.Logger, cfg *server.Config) error {
	resultCache, err := cache.New(logger, cfg.Cache.Backend, cfg.Cache.RedisAddr, cfg.Cache.TTLDuration())
	if err != nil {
		return err
	}
	defer func() {
		if err := resultCache.Close(); err != nil {
			logger.Warn("failed to close result cache",
				zap.String("op", "main.serve"),
				zap.Error(err),
			)
		}
	}()

	var limiter *server.RateLimiter
	if cfg.RateLimit.Enabled() {
		limiter = server.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Interval())
		defer limiter.Stop()
	}

	handler := server.NewHandler(logger, server.Options{
		Registry:      registry.New(logger),
		Cache:         resultCache,
		Limiter:       limiter,
		MaxUploadSize: cfg.UploadSizeBytes(),
		BaseURL:       cfg.BaseURL,
		Version:       version,
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.String("cache", cfg.Cache.Backend),
			zap.Bool("rateLimit", limiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server",
			zap.String("op", "main.serve"),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
