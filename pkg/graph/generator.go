package graph

import (
	"context"

	"github.com/nodegen/backend/pkg/ai"
)

// Generator sends a prompt to the model with the node system prompt and
// normalizes the reply. It is built once and shared across requests.
type Generator struct {
	client     ai.ModelClient
	normalizer Normalizer
}

func NewGenerator(client ai.ModelClient, normalizer Normalizer) *Generator {
	return &Generator{client: client, normalizer: normalizer}
}

// Generate always returns an Outcome. Provider failures are reported in
// Outcome.Err as an *ai.InvocationError and the reply is not normalized.
func (g *Generator) Generate(ctx context.Context, prompt string) Outcome {
	raw, err := g.client.GenerateCompletion(ctx, prompt, ai.WithSystemPrompts(ai.NodeSystemPrompt))
	if err != nil {
		return Outcome{Err: ai.NewInvocationError(g.client.Name(), err)}
	}
	return g.normalizer.Normalize(raw)
}

// Client returns the model client the generator calls.
func (g *Generator) Client() ai.ModelClient {
	return g.client
}
