package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hoanghai1803/veritas/internal/ai"
	"github.com/hoanghai1803/veritas/internal/analysis"
	"github.com/hoanghai1803/veritas/internal/api"
	"github.com/hoanghai1803/veritas/internal/config"
	"github.com/hoanghai1803/veritas/internal/extract"
	"github.com/hoanghai1803/veritas/internal/logging"
)

// shutdownTimeout bounds how long in-flight analyses may run after a
// termination signal.
const shutdownTimeout = 90 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Load configuration (auto-creates default if missing).
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.Server.LogLevel) // validated by Load
	logging.Init(level, cfg.Server.LogFormat)

	// The provider is always created: without a default key, users are
	// asked for their own on the first request.
	provider, err := ai.NewProvider(ai.ProviderConfig{
		Provider: cfg.AI.Provider,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		BaseURL:  cfg.AI.BaseURL,
		Timeout:  cfg.AI.Timeout(),
	})
	if err != nil {
		slog.Error("failed to create AI provider", "error", err)
		os.Exit(1)
	}
	slog.Info("AI provider configured",
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"default_key", cfg.AI.APIKey != "",
	)

	analyzer := analysis.NewAnalyzer(provider, analysis.Options{
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	})
	extractor := extract.NewExtractor(cfg.Extract.Timeout(), analysis.MaxArticleLength)

	router := api.NewRouter(analyzer, extractor, cfg)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	if err := run(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run serves HTTP on addr until SIGINT or SIGTERM, then shuts down
// gracefully.
func run(addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
