package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/pressdigest/internal/api"
	"github.com/dgallion1/pressdigest/internal/config"
	"github.com/dgallion1/pressdigest/internal/parser"
	"github.com/dgallion1/pressdigest/internal/pipeline"
	"github.com/dgallion1/pressdigest/internal/summarize"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	detectCfg, err := cfg.Detection()
	if err != nil {
		log.Error("invalid template", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	summarizer := summarize.NewClient(cfg.Summarizer())
	opener := pipeline.PDFOpener(parser.PDFOptions{FallbackPdftotext: cfg.PDFFallbackPdftotext})

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, summarizer, opener, detectCfg, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, summarizer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		summarizer.Close()
	}()

	log.Info("starting pressdigest",
		"port", cfg.Port,
		"model", cfg.AnthropicModel,
		"workers", cfg.WorkerCount,
		"known_sources", len(detectCfg.KnownSources),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
