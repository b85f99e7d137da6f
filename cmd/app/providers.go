package main

import (
	"io"
	"log/slog"

	"github.com/yanqian/perf-summaries/internal/domain/performance"
	"github.com/yanqian/perf-summaries/internal/infra/config"
	"github.com/yanqian/perf-summaries/internal/infra/llm/chatgpt"
	"github.com/yanqian/perf-summaries/pkg/logger"
	"github.com/yanqian/perf-summaries/pkg/metrics"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

// provideBatchLogger keeps logs off stdout, which carries the batch result.
func provideBatchLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logger.NewWithWriter(w, cfg.Log.Level, cfg.Log.Format)
}

func providePerformanceConfig(cfg *config.Config) performance.Config {
	return performance.Config{
		SystemPrompt: cfg.Generation.SystemPrompt,
		Concurrency:  cfg.Generation.Concurrency,
	}
}

// provideCompleter returns nil when no API key is configured; the service
// then answers every batch with a configuration error.
func provideCompleter(cfg *config.Config, recorder *metrics.Recorder, logger *slog.Logger) (performance.Completer, error) {
	if !cfg.APIKeyConfigured() {
		logger.Warn("OPENAI_API_KEY environment variable not found, summary generation is disabled")
		return nil, nil
	}
	client, err := chatgpt.NewClient(chatgpt.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, recorder, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) performance.TokenCounter {
	counter := metrics.NewTokenCounter(cfg.LLM.Model)
	go func() {
		if err := counter.Load(); err != nil {
			logger.Warn("token encoding unavailable, using heuristic prompt sizes", "model", cfg.LLM.Model, "error", err)
		}
	}()
	return counter
}
