package openai

import (
	"context"
	"time"

	"github.com/nodegen/backend/internal/util"
	"github.com/nodegen/backend/pkg/ai"
	"github.com/nodegen/backend/pkg/logger"

	"github.com/openai/openai-go/v3"
)

// GenerateCompletion sends a single-turn prompt to the chat model and
// returns the generated completion as plain text.
//
// System prompts become system messages ahead of the user message.
//
// Example:
//
//	resp, err := client.GenerateCompletion(ctx, "draw a tree",
//		ai.WithSystemPrompts(ai.NodeSystemPrompt),
//	)
func (c *GraphOpenAIClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ApplyOptions(ai.GenerateOptions{
		Model:       c.chatModel,
		Temperature: c.temperature,
	}, opts...)

	body := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(options.Model),
		Messages: buildMessages(options.SystemPrompts, prompt),
	}
	if options.Temperature > 0 {
		body.Temperature = openai.Float(options.Temperature)
	}

	start := time.Now()
	response, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (*openai.ChatCompletion, error) {
		return c.ChatClient.Chat.Completions.New(ctx, body)
	})
	if err != nil {
		return "", ai.NewInvocationError(c.Name(), err)
	}
	if len(response.Choices) == 0 {
		return "", ai.NewInvocationError(c.Name(), ai.ErrEmptyResponse)
	}

	metrics := ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   time.Since(start).Milliseconds(),
	}
	logger.Debug("OpenAI completion",
		"model", options.Model,
		"input_tokens", metrics.InputTokens,
		"output_tokens", metrics.OutputTokens,
		"duration_ms", metrics.DurationMs,
	)

	return response.Choices[0].Message.Content, nil
}

func buildMessages(systemPrompts []string, prompt string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(systemPrompts)+1)
	for _, sp := range systemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}
	return append(msgs, openai.UserMessage(prompt))
}
