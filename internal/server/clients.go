package server

import (
	"context"

	"github.com/nodegen/backend/internal/config"
	"github.com/nodegen/backend/pkg/ai"
	gemini "github.com/nodegen/backend/pkg/ai/gemini"
	oai "github.com/nodegen/backend/pkg/ai/ollama"
	gai "github.com/nodegen/backend/pkg/ai/openai"
)

// NewModelClient builds the ModelClient selected by AI_ADAPTER.
func NewModelClient(ctx context.Context, cfg config.AIConfig) (ai.ModelClient, error) {
	switch cfg.Adapter {
	case config.AdapterOllama:
		return oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ChatModel:   cfg.ChatModel,
			Temperature: cfg.Temperature,
			MaxRetries:  cfg.MaxRetries,

			BaseURL: cfg.ChatURL,
			ApiKey:  cfg.ChatKey,

			MaxConcurrentRequests: cfg.ParallelRequests,
		})
	case config.AdapterOpenAI:
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			ChatModel:   cfg.ChatModel,
			ChatURL:     cfg.ChatURL,
			ChatKey:     cfg.ChatKey,
			Temperature: cfg.Temperature,
			MaxRetries:  cfg.MaxRetries,
		}), nil
	case config.AdapterFake:
		return ai.NewFakeClient(cfg.FakeReply), nil
	default:
		return gemini.NewGraphGeminiClient(ctx, gemini.NewGraphGeminiClientParams{
			APIKey:      cfg.GeminiKey,
			Model:       cfg.ChatModel,
			Temperature: cfg.Temperature,
			MaxRetries:  cfg.MaxRetries,
		})
	}
}
