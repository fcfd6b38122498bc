package main

import (
	"context"
	"fmt"

	"codepolish/internal/config"
	"codepolish/internal/extractor"
	"codepolish/internal/llm"
	"codepolish/internal/pipeline"
	"codepolish/internal/storage"

	"go.uber.org/zap"
)

// newAnalyzer wires the analysis pipeline from configuration.
func newAnalyzer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pipeline.Analyzer, error) {
	ext, err := extractor.NewExtractor("java")
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	apiKey := cfg.ResolveAPIKey()
	completer, err := llm.NewCompleter(ctx, llm.Options{
		Provider:       cfg.AI.Provider,
		APIKey:         apiKey,
		Model:          cfg.AI.Model,
		BaseURL:        cfg.AI.BaseURL,
		ConnectTimeout: cfg.AI.ConnectTimeout.Std(),
		RequestTimeout: cfg.AI.RequestTimeout.Std(),
		RatePerSecond:  cfg.AI.RatePerSecond,
		Burst:          cfg.AI.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completer: %w", err)
	}
	if apiKey == "" {
		logger.Warn("no API key configured, suggestions fall back to deterministic refactoring",
			zap.String("provider", completer.Provider()))
	}

	return pipeline.NewAnalyzer(ext, completer, storage.NewMemoryStore(), logger), nil
}
