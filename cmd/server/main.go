package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpatil/nse-market-proxy/internal/cache"
	"github.com/rpatil/nse-market-proxy/internal/config"
	"github.com/rpatil/nse-market-proxy/internal/handler"
	"github.com/rpatil/nse-market-proxy/internal/market"
	"github.com/rpatil/nse-market-proxy/internal/nse"
	"github.com/rpatil/nse-market-proxy/internal/refresh"
	"github.com/rpatil/nse-market-proxy/internal/stream"
	"github.com/rpatil/nse-market-proxy/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional, defaults apply)")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting nse market proxy",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"bind", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"upstream", cfg.Upstream.BaseURL,
		"cache_ttl", cfg.Cache.TTL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Upstream session client
	client := nse.NewClient(
		cfg.Upstream.BaseURL,
		nse.WithTimeout(cfg.Upstream.Timeout),
		nse.WithWarmupDelay(cfg.Upstream.WarmupDelay),
		nse.WithLogger(logger),
	)

	// Prime the session at startup. Failure is non-fatal: the server still
	// comes up, and each cache miss re-warms anyway.
	logger.Info("priming upstream session")
	if client.Warmup(ctx) {
		logger.Info("upstream session primed")
	} else {
		logger.Warn("upstream session warm-up failed, continuing")
	}

	// Orchestrator over the shared cache slot
	svc := market.New(market.Config{
		TTL:            cfg.Cache.TTL,
		QuotePacing:    cfg.Upstream.QuotePacing,
		SnapshotPacing: cfg.Upstream.SnapshotPacing,
	}, client, cache.New(), logger)

	hub := stream.NewHub(logger)

	// Optional background refresher feeding the stream hub
	var refresher *refresh.Refresher
	if cfg.Refresh.Enabled {
		refresher = refresh.New(refresh.Config{Interval: cfg.Refresh.Interval}, svc, hub, logger)
		if err := refresher.Start(ctx); err != nil {
			logger.Error("failed to start refresher", "error", err)
			os.Exit(1)
		}
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: handler.New(svc, hub, logger).InitRoutes(),
	}

	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if refresher != nil {
		if err := refresher.Stop(shutdownCtx); err != nil {
			logger.Warn("refresher shutdown error", "error", err)
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", "error", err)
	}

	logger.Info("nse market proxy stopped")
}

// loadConfig falls back to compiled-in defaults when no file is given.
func loadConfig(path string) (*config.ServerConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
