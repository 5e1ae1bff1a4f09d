package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecooyster/prediction-service/internal/adapter/anthropicai"
	httpadapter "github.com/ecooyster/prediction-service/internal/adapter/http"
	"github.com/ecooyster/prediction-service/internal/adapter/llmcache"
	"github.com/ecooyster/prediction-service/internal/adapter/together"
	"github.com/ecooyster/prediction-service/internal/config"
	"github.com/ecooyster/prediction-service/internal/domain"
	"github.com/ecooyster/prediction-service/internal/observability"
	"github.com/ecooyster/prediction-service/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize the advisor (feature-flagged via LLM_ENABLED / LLM_API_KEY).
	var advisor domain.Advisor
	if cfg.LLMEnabled {
		var client domain.Advisor
		switch cfg.LLMProvider {
		case "anthropic":
			client = anthropicai.NewClient(cfg, metrics, logger)
		default:
			client = together.NewClient(cfg, metrics, logger)
		}
		advisor = llmcache.NewCachedAdvisor(client, cfg.LLMCacheSize, cfg.LLMCacheTTL, metrics)
		metrics.AdvisorEnabled.Set(1)
		logger.Info("advisor enabled",
			"provider", cfg.LLMProvider,
			"model", cfg.LLMModel,
			"cache_size", cfg.LLMCacheSize,
			"cache_ttl", cfg.LLMCacheTTL,
		)
	} else {
		logger.Info("advisor disabled, recommendations will be degraded")
	}

	sanitizerMode := domain.ModeMinimal
	if cfg.SanitizerMode == "denylist" {
		sanitizerMode = domain.ModeDenylist
	}
	requester := recommend.New(advisor, domain.NewSanitizer(sanitizerMode), logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.StaticDir, requester, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
