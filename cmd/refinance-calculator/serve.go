package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/refinance-calculator/internal/cache"
	"github.com/iwvelando/refinance-calculator/internal/config"
	"github.com/iwvelando/refinance-calculator/internal/server"
	"github.com/iwvelando/refinance-calculator/pkg/constants"
	"github.com/iwvelando/refinance-calculator/pkg/refinance"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// refinanceDefaults mirrors the built-in config defaults for when no
// configuration file is available.
func refinanceDefaults() refinance.Input {
	return refinance.Input{
		CurrentBalance: constants.DefaultBalance,
		CurrentRate:    constants.DefaultCurrentRate,
		NewRate:        constants.DefaultNewRate,
		RemainingTerm:  constants.DefaultTermYears,
		ClosingCosts:   constants.DefaultClosingCosts,
	}
}

func newServeCmd() *cobra.Command {
	var (
		serverConfigPath string
		configLocation   string
		address          string
		maxBodySize      string
		logLevel         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and refinance API",
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load server config: %w", err)
			}
			if address != "" {
				serverConfig.Address = address
			}
			if maxBodySize != "" {
				size, err := server.ParseSize(maxBodySize)
				if err != nil {
					return fmt.Errorf("invalid max body size: %w", err)
				}
				serverConfig.SetBodySizeBytes(size)
			}

			logger, err := initializeLogger(serverConfig.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			// The main config is optional for serve; it seeds the form defaults.
			defaults := refinanceDefaults()
			sensitivity := config.SensitivityConfig{}
			if conf, err := config.LoadConfiguration(configLocation); err == nil {
				defaults = conf.Defaults
				sensitivity = conf.Sensitivity
			} else {
				logger.Debug(fmt.Sprintf("no usable configuration at %s, using built-in defaults", configLocation),
					zap.String("op", "main"),
				)
			}

			var reportCache cache.Cache
			if serverConfig.Cache.RedisAddress != "" {
				reportCache = cache.NewRedis(serverConfig.Cache.RedisAddress, serverConfig.CacheTTL())
				logger.Info("using redis report cache",
					zap.String("op", "main"),
					zap.String("address", serverConfig.Cache.RedisAddress),
				)
			} else {
				reportCache = cache.NewMemory(serverConfig.CacheTTL())
			}

			handler := server.New(logger, server.Options{
				MaxBodySize:       serverConfig.BodySizeBytes(),
				Version:           version,
				Cache:             reportCache,
				Defaults:          defaults,
				Sensitivity:       sensitivity,
				RateLimitRequests: serverConfig.RateLimit.Requests,
				RateLimitWindow:   serverConfig.RateLimitWindow(),
			})
			defer handler.Close()

			srv := &http.Server{
				Addr:    serverConfig.Address,
				Handler: handler,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening",
					zap.String("op", "main"),
					zap.String("address", serverConfig.Address),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case sig := <-quit:
				logger.Info("shutting down",
					zap.String("op", "main"),
					zap.String("signal", sig.String()),
				)
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVarP(&configLocation, "config", "c", constants.DefaultConfigFile, "path to configuration file seeding the form defaults")
	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address override")
	cmd.Flags().StringVar(&maxBodySize, "max-body-size", "", "request body size limit override (e.g. 64K, 1M)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}
