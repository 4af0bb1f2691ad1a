package llm

import (
	"errors"
	"fmt"

	"github.com/matthieukhl/expotrack/internal/config"
	"github.com/matthieukhl/expotrack/internal/llm/generate"
	"github.com/matthieukhl/expotrack/internal/types"
)

// ErrDisabled is returned when no chat provider is configured
var ErrDisabled = errors.New("chat provider not configured")

// NewGenerator creates a generator based on configuration
func NewGenerator(cfg *config.ChatConfig) (types.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return generate.NewOpenAIGenerator(cfg.Model, config.ResolveSecret(cfg.APIKey, cfg.APIKeyEnv), cfg.Timeout)
	case "anthropic":
		return generate.NewAnthropicGenerator(cfg.Model, config.ResolveSecret(cfg.APIKey, cfg.APIKeyEnv), cfg.Timeout)
	case "mock":
		return generate.NewMockGenerator(cfg.Model), nil
	case "":
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Provider)
	}
}
