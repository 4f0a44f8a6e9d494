package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/deepresearch-cli/internal/llm"
	"github.com/sells-group/deepresearch-cli/pkg/anthropic"
	"github.com/sells-group/deepresearch-cli/pkg/gemini"
	"github.com/sells-group/deepresearch-cli/pkg/nyne"
	"github.com/sells-group/deepresearch-cli/pkg/openai"
)

// initSource builds the Nyne data-provider client. The pipeline checks
// credentials itself, so an unconfigured client is fine to construct.
func initSource() nyne.Client {
	return nyne.NewClient(cfg.Nyne.Key, cfg.Nyne.Secret, nyne.WithBaseURL(cfg.Nyne.BaseURL))
}

// initSelector registers every language-model provider with configured
// credentials, in fallback priority order: Gemini, then OpenAI, then
// Anthropic. An empty selector is valid; the pipeline degrades around it.
func initSelector(ctx context.Context) *llm.Selector {
	var providers []llm.Provider

	if cfg.Gemini.Key != "" {
		client, err := gemini.NewClient(ctx, cfg.Gemini.Key, cfg.Gemini.Model)
		if err != nil {
			zap.L().Warn("gemini client init failed, skipping provider", zap.Error(err))
		} else {
			providers = append(providers, llm.Gemini(client))
		}
	}

	if cfg.OpenAI.Key != "" {
		providers = append(providers, llm.OpenAI(openai.NewClient(cfg.OpenAI.Key, cfg.OpenAI.Model)))
	}

	if cfg.Anthropic.Key != "" {
		providers = append(providers, llm.Anthropic(anthropic.NewClient(cfg.Anthropic.Key, cfg.Anthropic.Model)))
	}

	selector := llm.NewSelector(providers...)
	zap.L().Info("language-model providers registered", zap.Strings("providers", selector.Names()))
	return selector
}
