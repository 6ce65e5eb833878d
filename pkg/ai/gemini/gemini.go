package gemini

import (
	"context"
	"errors"

	"github.com/nodegen/backend/pkg/ai"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GraphGeminiClient implements ai.ModelClient on top of the official genai SDK.
// It is immutable after construction and safe to share between requests.
//
// A GraphGeminiClient should be created using NewGraphGeminiClient.
type GraphGeminiClient struct {
	model       string
	temperature float64
	maxRetries  int

	models generator
}

// generator is the subset of *genai.Models used by the client.
type generator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// NewGraphGeminiClientParams defines the configuration parameters for creating
// a new GraphGeminiClient.
//
// APIKey is required. Model defaults to gemini-2.0-flash. MaxRetries <= 1
// disables retries.
type NewGraphGeminiClientParams struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxRetries  int
}

// ErrMissingAPIKey is returned when no Gemini credential was configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// NewGraphGeminiClient creates a client for the Gemini API backend.
func NewGraphGeminiClient(
	ctx context.Context,
	params NewGraphGeminiClientParams,
) (*GraphGeminiClient, error) {
	if params.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  params.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return newWithGenerator(params, cli.Models), nil
}

func newWithGenerator(params NewGraphGeminiClientParams, models generator) *GraphGeminiClient {
	model := params.Model
	if model == "" {
		model = defaultModel
	}

	return &GraphGeminiClient{
		model:       model,
		temperature: params.Temperature,
		maxRetries:  params.MaxRetries,
		models:      models,
	}
}

func (c *GraphGeminiClient) Name() string { return "gemini:" + c.model }
