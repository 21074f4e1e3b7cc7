package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paperrec/internal/clarify"
	"paperrec/internal/config"
	"paperrec/internal/corpus"
	"paperrec/internal/http"
	"paperrec/internal/llm"
	"paperrec/internal/metrics"
	"paperrec/internal/recommend"
	"paperrec/internal/service"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	metrics.Init()

	// Corpus source
	loader, closeCorpus, err := corpus.Open(cfg.CorpusSource, cfg.CorpusTimeout)
	if err != nil {
		log.Fatalf("Failed to open corpus source: %v", err)
	}
	defer func() {
		_ = closeCorpus()
	}()
	var corpusLoader service.CorpusLoader = loader
	if cfg.CorpusCacheTTL > 0 {
		corpusLoader = corpus.NewCachedLoader(loader, cfg.CorpusSource, cfg.CorpusCacheTTL)
	}
	slog.Info("Corpus source ready", "source", cfg.CorpusSource, "cache_ttl", cfg.CorpusCacheTTL)

	// Clarification table
	var table clarify.Table
	if cfg.ClarifyTablePath != "" {
		table, err = clarify.LoadTable(cfg.ClarifyTablePath)
	} else {
		table, err = clarify.BuiltinTable(cfg.ClarifyLocale)
	}
	if err != nil {
		log.Fatalf("Failed to load clarification table: %v", err)
	}
	classifier, err := clarify.NewClassifier(table)
	if err != nil {
		log.Fatalf("Failed to build classifier: %v", err)
	}

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)
	requester := recommend.NewRequester(llmClient, recommend.RequesterConfig{
		Model:       cfg.LLMModelName,
		Count:       cfg.LLMResultCount,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		RateLimit:   cfg.LLMRateLimit,
		RateBurst:   cfg.LLMRateBurst,
	})

	recommendService := service.NewRecommendService(classifier, corpusLoader, requester, service.RecommendConfig{
		TargetCount:       cfg.TargetCount,
		MinScore:          cfg.MinScore,
		PassthroughLimits: cfg.LLMLimitPolicy == config.LimitPolicyPassthrough,
	})
	slog.Info("Recommendation service initialized",
		"target", cfg.TargetCount,
		"min_score", cfg.MinScore,
		"limit_policy", cfg.LLMLimitPolicy,
	)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		RecommendService: recommendService,
		CorpusLoader:     corpusLoader,
		LLM:              requester,
	})

	// The write timeout covers a full LLM round trip.
	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + cfg.CorpusTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
