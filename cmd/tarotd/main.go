package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpadapter "github.com/zhairen/AItaluo/internal/adapters/http"
	"github.com/zhairen/AItaluo/internal/adapters/llm/gemini"
	"github.com/zhairen/AItaluo/internal/adapters/ws"
	"github.com/zhairen/AItaluo/internal/catalog"
	"github.com/zhairen/AItaluo/internal/config"
	"github.com/zhairen/AItaluo/internal/metrics"
	"github.com/zhairen/AItaluo/internal/reading"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cards, err := catalog.NewStore().Cards()
	if err != nil {
		logger.Error("failed to load card catalog", "error", err)
		os.Exit(1)
	}

	if !cfg.LLMConfigured() {
		logger.Warn("GEMINI_API_KEY not set, readings will return the not-configured message")
	}

	llmHTTP := &http.Client{Timeout: cfg.LLMTimeout}
	primary := gemini.NewClient(llmHTTP, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.PrimaryModel, gemini.Params{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
	}, logger)
	secondary := gemini.NewClient(llmHTTP, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.FallbackModel, gemini.Params{
		Temperature: cfg.Temperature,
	}, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector(registry)

	reader := reading.NewService(primary, secondary, cfg.LLMConfigured(), cfg.ReadingFloor, logger, collector)
	wsHandler := ws.NewHandler(cards, stdRNG{}, reader, cfg.ShuffleDelay, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(cards, wsHandler, registry)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
