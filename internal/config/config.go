package config

import (
	"errors"
	"fmt"

	"github.com/nodegen/backend/internal/util"
	"github.com/nodegen/backend/pkg/graph"
)

// Adapter names accepted in AI_ADAPTER.
const (
	AdapterGemini = "gemini"
	AdapterOpenAI = "openai"
	AdapterOllama = "ollama"
	AdapterFake   = "fake"
)

var ErrMissingGeminiKey = errors.New("GEMINI_API_KEY must be set for the gemini adapter")

type Config struct {
	Port        string
	Debug       bool
	LogFormat   string
	CORSOrigins []string
	BodyLimit   string

	AI      AIConfig
	Graph   GraphConfig
	Storage StorageConfig
}

type AIConfig struct {
	Adapter          string
	ChatModel        string
	ChatURL          string
	ChatKey          string
	GeminiKey        string
	ParallelRequests int64
	MaxRetries       int
	Temperature      float64

	// FakeReply is returned by the fake adapter.
	FakeReply string
}

type GraphConfig struct {
	Normalizer graph.Mode
	Strict     bool
}

// StorageConfig configures the optional S3 archive of rejected model replies.
type StorageConfig struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Enabled reports whether a bucket is configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// Load reads the configuration from the environment. Call util.LoadEnv first
// to pick up a .env file.
func Load() Config {
	return Config{
		Port:        util.GetEnvString("PORT", "8080"),
		Debug:       util.GetEnvBool("DEBUG", false),
		LogFormat:   util.GetEnv("LOG_FORMAT"),
		CORSOrigins: util.GetEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		BodyLimit:   util.GetEnvString("BODY_LIMIT", "1M"),

		AI: AIConfig{
			Adapter:          util.GetEnvString("AI_ADAPTER", AdapterGemini),
			ChatModel:        util.GetEnv("AI_CHAT_MODEL"),
			ChatURL:          util.GetEnv("AI_CHAT_URL"),
			ChatKey:          util.GetEnv("AI_CHAT_KEY"),
			GeminiKey:        util.GetEnv("GEMINI_API_KEY"),
			ParallelRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15)),
			MaxRetries:       int(util.GetEnvNumeric("AI_MAX_RETRIES", 1)),
			Temperature:      util.GetEnvNumeric("AI_TEMPERATURE", 0),
			FakeReply:        util.GetEnvString("AI_FAKE_REPLY", "[]"),
		},

		Graph: GraphConfig{
			Normalizer: graph.ParseMode(util.GetEnv("GRAPH_NORMALIZER")),
			Strict:     util.GetEnvBool("GRAPH_STRICT_SCHEMA", false),
		},

		Storage: StorageConfig{
			Region:    util.GetEnv("AWS_REGION"),
			Endpoint:  util.GetEnv("AWS_ENDPOINT"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
			SecretKey: util.GetEnv("AWS_SECRET_KEY"),
			Bucket:    util.GetEnv("AWS_BUCKET"),
		},
	}
}

// Validate reports configuration that would make startup fail.
func (c Config) Validate() error {
	switch c.AI.Adapter {
	case AdapterGemini:
		if c.AI.GeminiKey == "" {
			return ErrMissingGeminiKey
		}
	case AdapterOpenAI, AdapterOllama, AdapterFake:
	default:
		return fmt.Errorf("unknown AI_ADAPTER %q", c.AI.Adapter)
	}

	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE must be between 0 and 2, got %v", c.AI.Temperature)
	}
	if c.AI.ParallelRequests < 1 {
		return fmt.Errorf("AI_PARALLEL_REQ must be at least 1, got %d", c.AI.ParallelRequests)
	}
	if c.Storage.Enabled() && c.Storage.Region == "" {
		return errors.New("AWS_REGION must be set when AWS_BUCKET is set")
	}
	return nil
}
