package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eshaffer321/finhelp-go/internal/config"
	"github.com/eshaffer321/finhelp-go/internal/log"
	"github.com/eshaffer321/finhelp-go/internal/tools"
	"github.com/eshaffer321/finhelp-go/internal/types"
	"github.com/eshaffer321/finhelp-go/pkg/finhelp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "finhelp-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// stdout carries the protocol in stdio mode, so logs always go to stderr
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.Log.Level),
		Format:    cfg.Log.Format,
		Component: log.ComponentMCP,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)

	client, err := finhelp.NewClient(&finhelp.ClientOptions{
		Logger:        logger.WithComponent(log.ComponentApp),
		SentryOptions: sentryOptions(cfg),
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize finhelp client")
	}
	defer client.Close()

	server := newServer(client, logger, tools.Defaults{
		WindowDays:   cfg.Anomaly.WindowDays,
		ThresholdPct: cfg.Anomaly.ThresholdPct,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		log.FieldTransport, cfg.Server.Transport,
		"name", types.ServerName,
		"version", types.Version)

	if cfg.Server.Transport == config.TransportStdio {
		// Run over stdio transport (for desktop MCP hosts)
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return errors.Wrap(err, "server error")
		}
		return nil
	}

	return serveHTTP(ctx, cfg, server, logger)
}

// serveHTTP runs the streamable HTTP transport until ctx is cancelled, then drains it
func serveHTTP(ctx context.Context, cfg *config.Config, server *mcp.Server, logger *log.Logger) error {
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newHTTPHandler(server, logger),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", log.FieldAddr, cfg.Server.Addr, "path", types.MCPPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown timeout reached", log.FieldError, err.Error())
			return errors.Wrap(err, "shutdown")
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

func sentryOptions(cfg *config.Config) *sentry.ClientOptions {
	if cfg.Sentry.DSN == "" {
		return nil
	}
	return &sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     "finhelp-go@" + types.Version,
	}
}
