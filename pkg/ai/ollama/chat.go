package ollama

import (
	"context"
	"strings"

	"github.com/nodegen/backend/internal/util"
	"github.com/nodegen/backend/pkg/ai"
	"github.com/nodegen/backend/pkg/logger"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultContextTokens = 4096
	// headroom left for the model's reply when sizing num_ctx
	replyTokenReserve = 2048
)

// GenerateCompletion sends the system prompts and a single user message and returns assistant text.
func (c *GraphOllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ApplyOptions(ai.GenerateOptions{
		Model:       c.chatModel,
		Temperature: c.temperature,
	}, opts...)

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sp})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{},
	}
	if options.Temperature > 0 {
		req.Options["temperature"] = options.Temperature
	}

	texts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		texts = append(texts, m.Content)
	}
	if numCtx := contextWindow(texts...); numCtx > defaultContextTokens {
		req.Options["num_ctx"] = numCtx
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", ai.NewInvocationError(c.Name(), err)
	}
	defer c.reqLock.Release(1)

	final, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (api.ChatResponse, error) {
		var final api.ChatResponse
		err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
			final.Message.Content += cr.Message.Content
			if cr.Done {
				final.Done = true
				final.Metrics = cr.Metrics
			}
			return nil
		})
		return final, err
	})
	if err != nil {
		return "", ai.NewInvocationError(c.Name(), err)
	}

	metrics := ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	}
	logger.Debug("Ollama completion",
		"model", options.Model,
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"duration_ms", metrics.DurationMs,
	)

	return final.Message.Content, nil
}

// contextWindow estimates the num_ctx needed for texts plus room for the reply.
// It returns 0 when the tokenizer is unavailable.
func contextWindow(texts ...string) int {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		logger.Debug("Tokenizer unavailable, using default context window", "err", err)
		return 0
	}
	return len(enc.Encode(strings.Join(texts, "\n"), nil, nil)) + replyTokenReserve
}
