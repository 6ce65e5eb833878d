package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/nodegen/backend/internal/util"
	"github.com/nodegen/backend/pkg/ai"
	"github.com/nodegen/backend/pkg/logger"

	"google.golang.org/genai"
)

// GenerateCompletion sends the system prompts as the system instruction and
// prompt as the single user message, and returns the concatenated text of the
// first candidate.
//
// Example:
//
//	text, err := client.GenerateCompletion(ctx, "draw a tree",
//		ai.WithSystemPrompts(ai.NodeSystemPrompt),
//	)
func (c *GraphGeminiClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.ApplyOptions(ai.GenerateOptions{
		Model:       c.model,
		Temperature: c.temperature,
	}, opts...)

	config := &genai.GenerateContentConfig{}
	if len(options.SystemPrompts) > 0 {
		config.SystemInstruction = genai.NewContentFromText(
			strings.Join(options.SystemPrompts, "\n\n"),
			genai.RoleUser,
		)
	}
	if options.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(options.Temperature))
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	start := time.Now()
	resp, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return c.models.GenerateContent(ctx, options.Model, contents, config)
	})
	if err != nil {
		return "", ai.NewInvocationError(c.Name(), err)
	}

	text, ok := responseText(resp)
	if !ok {
		return "", ai.NewInvocationError(c.Name(), ai.ErrEmptyResponse)
	}

	metrics := ai.ModelMetrics{DurationMs: time.Since(start).Milliseconds()}
	if u := resp.UsageMetadata; u != nil {
		metrics.InputTokens = int(u.PromptTokenCount)
		metrics.OutputTokens = int(u.CandidatesTokenCount)
		metrics.TotalTokens = int(u.TotalTokenCount)
	}
	logMetrics(options.Model, metrics)

	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", false
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), true
}

func logMetrics(model string, m ai.ModelMetrics) {
	if m.DurationMs > 0 {
		m.TokenPerSecond = float32(float64(m.TotalTokens) * 1000.0 / float64(m.DurationMs))
	}
	logger.Debug("Gemini completion",
		"model", model,
		"input_tokens", m.InputTokens,
		"output_tokens", m.OutputTokens,
		"duration_ms", m.DurationMs,
		"tokens_per_second", m.TokenPerSecond,
	)
}
