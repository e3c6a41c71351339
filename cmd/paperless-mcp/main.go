package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/zagah/PaperlessMCP/internal/config"
	"github.com/zagah/PaperlessMCP/internal/paperless"
	"github.com/zagah/PaperlessMCP/internal/telemetry"
	"github.com/zagah/PaperlessMCP/internal/tools"
)

var (
	version   = ""
	gitCommit = ""
	buildTime = ""
)

func main() {
	transport := flag.String("transport", "stdio", "transport to serve on: stdio or http")
	envFile := flag.String("env", "", "optional .env file to load before reading the environment")
	flag.Parse()

	// Logs go to stderr: stdout belongs to the protocol on stdio.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Error("env file load failed", "path", *envFile, "err", err)
			os.Exit(1)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	client := paperless.NewClient(cfg, logger)
	srv := tools.NewServer(client, cfg, logger)

	logger.Info("starting",
		"transport", *transport,
		"backend", cfg.BaseURL,
		"version", version,
		"git_commit", gitCommit,
		"build_time", buildTime,
	)

	switch *transport {
	case "stdio":
		runStdio(srv, cfg, logger)
	case "http":
		runHTTP(srv, cfg, logger)
	default:
		logger.Error("unknown transport", "transport", *transport)
		os.Exit(1)
	}
}

// opsMux serves the operational endpoints. It runs alongside either
// transport so health and metrics stay reachable on stdio too.
func opsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.Write([]byte(telemetry.RenderPrometheus()))
	})
	return mux
}

func runStdio(srv *tools.Server, cfg config.Config, logger *slog.Logger) {
	opsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: opsMux(),
	}
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("ops server error", "err", err)
		}
	}()
	logger.Info("ops endpoints listening", "addr", opsServer.Addr)

	errCh := make(chan error, 1)
	go func() { errCh <- mcpserver.ServeStdio(srv.MCP()) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		// ServeStdio returns on stdin EOF or on error.
		if err != nil {
			logger.Error("stdio transport error", "err", err)
			os.Exit(1)
		}
		logger.Info("stdin closed, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	opsServer.Shutdown(ctx)
	logger.Info("shutdown complete")
}

func runHTTP(srv *tools.Server, cfg config.Config, logger *slog.Logger) {
	mux := opsMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(srv.MCP()))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	logger.Info("http transport listening", "addr", httpServer.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("http server error", "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
	logger.Info("shutdown complete")
}
