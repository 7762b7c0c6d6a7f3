package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dhabedank/genchecklist/internal/core"
)

// Provider names accepted by NewGenerator.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderClaudeCLI = "claude-cli"
)

// Credential environment variables.
const (
	GeminiAPIKeyEnv    = "GEMINI_API_KEY"
	AnthropicAPIKeyEnv = "ANTHROPIC_API_KEY"
)

// ErrMissingAPIKey is returned when a provider's credential is not configured.
var ErrMissingAPIKey = errors.New("api key not configured")

// Generator is the interface all upstream model adapters implement.
type Generator interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Generate sends one prompt upstream and returns the raw model text.
	Generate(ctx context.Context, req core.GenerationRequest) (string, error)
}

// Config holds configuration for upstream adapters.
type Config struct {
	// Provider selects the adapter. Empty means gemini.
	Provider string `yaml:"provider"`

	// Model is the default model when a request does not name one.
	Model string `yaml:"model"`

	// APIKey overrides the provider's environment variable.
	APIKey string `yaml:"-"`

	// MaxTokens limits response length where the provider requires it.
	MaxTokens int `yaml:"max_tokens"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderGemini,
		MaxTokens: 8192,
	}
}

// APIKeyEnv names the environment variable holding the provider credential.
func (c Config) APIKeyEnv() string {
	switch c.Provider {
	case ProviderAnthropic:
		return AnthropicAPIKeyEnv
	case ProviderClaudeCLI:
		return ""
	default:
		return GeminiAPIKeyEnv
	}
}

func (c Config) resolveAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	env := c.APIKeyEnv()
	if key := os.Getenv(env); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: %s not set", ErrMissingAPIKey, env)
}

// DefaultModel returns the model used when neither config nor request names one.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderAnthropic, ProviderClaudeCLI:
		return "claude-sonnet-4-20250514"
	default:
		return "gemini-2.5-flash"
	}
}

// NewGenerator builds the adapter for config.Provider.
func NewGenerator(ctx context.Context, config Config) (Generator, error) {
	if config.Provider == ProviderAuto {
		provider, err := DetectProvider()
		if err != nil {
			return nil, err
		}
		config.Provider = provider
	}

	switch config.Provider {
	case "", ProviderGemini:
		g, err := NewGeminiGenerator(ctx, config)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderAnthropic:
		a, err := NewAnthropicAPIAdapter(config)
		if err != nil {
			return nil, err
		}
		return a, nil
	case ProviderClaudeCLI:
		a := NewClaudeCLIAdapter(config)
		if !a.IsAvailable() {
			return nil, fmt.Errorf("claude CLI not available - install Claude Code")
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}
