package types

import "context"

// Generator produces text completions from prompts
type Generator interface {
	Complete(ctx context.Context, prompt string, opts map[string]any) (string, error)
	Model() string
}

// GenerationOptions contains options for text generation
type GenerationOptions struct {
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
	TopP        float64  `json:"top_p,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// Map converts the options into the loose map Generator.Complete accepts
func (o GenerationOptions) Map() map[string]any {
	opts := map[string]any{}
	if o.MaxTokens > 0 {
		opts["max_tokens"] = o.MaxTokens
	}
	if o.Temperature != 0 {
		opts["temperature"] = o.Temperature
	}
	if o.TopP != 0 {
		opts["top_p"] = o.TopP
	}
	if len(o.Stop) > 0 {
		opts["stop"] = o.Stop
	}
	return opts
}
