package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/manualmind/mcp-bridge/internal/bridge"
	"github.com/manualmind/mcp-bridge/internal/config"
	"github.com/manualmind/mcp-bridge/internal/httpapi"
	"github.com/manualmind/mcp-bridge/internal/manualmind"
	"github.com/manualmind/mcp-bridge/internal/ratelimit"
	"github.com/manualmind/mcp-bridge/internal/tools"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("ManualMind MCP Bridge\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Protocol: %s\n", bridge.ProtocolVersion)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// All logging goes to stderr; stdout is reserved for the MCP protocol.
	log := newLogger(cfg)
	slog.SetDefault(log)

	log.Info("ManualMind MCP bridge starting",
		"version", version,
		"run_mode", cfg.RunMode,
		"api_url", cfg.BaseURL,
		"api_timeout", cfg.Timeout,
		"rate_limit_per_minute", cfg.RateLimitPerMinute,
		"http_port", cfg.HTTPPort,
	)

	if err := run(cfg, log); err != nil {
		log.Error("bridge terminated", "error", err)
		os.Exit(1)
	}
	log.Info("bridge stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := manualmind.NewClient(manualmind.ClientConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxRetries,
		QueryPath:   cfg.Endpoints.Query,
		StatusPath:  cfg.Endpoints.Status,
		ProcessPath: cfg.Endpoints.Process,
	})
	if err != nil {
		return fmt.Errorf("create backend client: %w", err)
	}
	defer func() { _ = client.Close() }()

	limiter := ratelimit.NewPerMinute(cfg.RateLimitPerMinute)
	invoker := tools.NewInvoker(client, limiter, log)

	switch cfg.RunMode {
	case config.RunModeStdio:
		return runStdio(ctx, invoker, log)
	case config.RunModeHTTP:
		log.Info("running in HTTP-only mode")
		return httpapi.NewServer(invoker, cfg.HTTPPort, cfg.HTTPAPIKey, log).Run(ctx)
	case config.RunModeHybrid:
		return runHybrid(ctx, invoker, cfg, log)
	}
	return fmt.Errorf("unsupported run mode %q", cfg.RunMode)
}

func runStdio(ctx context.Context, invoker *tools.Invoker, log *slog.Logger) error {
	log.Info("listening on stdio")
	err := bridge.NewServer(invoker, os.Stdin, os.Stdout, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		// A signal cancelled the context; that is a clean stop.
		return nil
	}
	return err
}

// runHybrid serves stdio and HTTP together. Either side ending cancels
// the shared context; the stdio loop notices at its next input line.
func runHybrid(ctx context.Context, invoker *tools.Invoker, cfg *config.Config, log *slog.Logger) error {
	log.Info("running in hybrid mode")

	hybridCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(hybridCtx)

	group.Go(func() error {
		defer cancel()
		return runStdio(groupCtx, invoker, log)
	})
	group.Go(func() error {
		return httpapi.NewServer(invoker, cfg.HTTPPort, cfg.HTTPAPIKey, log).Run(groupCtx)
	})

	return group.Wait()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
