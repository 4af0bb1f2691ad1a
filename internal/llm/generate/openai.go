package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matthieukhl/expotrack/internal/types"
)

// DefaultSystemPrompt frames every data query sent to a chat provider
const DefaultSystemPrompt = "You are a data assistant for a trade-show logistics team. " +
	"Answer only with data taken from the connected spreadsheets, in exactly the format requested."

// SystemPrompt returns DefaultSystemPrompt, scoped to a project when one is given
func SystemPrompt(projectID string) string {
	if projectID == "" {
		return DefaultSystemPrompt
	}
	return DefaultSystemPrompt + " The spreadsheets belong to project " + projectID + "."
}

type OpenAIGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	TopP        float64         `json:"top_p,omitempty"`
	Stop        []string        `json:"stop,omitempty"`
	User        string          `json:"user,omitempty"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func NewOpenAIGenerator(model string, apiKey string, timeout time.Duration) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found in config or environment")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.openai.com",
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// WithBaseURL points the generator at a compatible endpoint
func (g *OpenAIGenerator) WithBaseURL(baseURL string) *OpenAIGenerator {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	maxTokens := 4000
	if val, ok := opts["max_tokens"].(int); ok && val > 0 {
		maxTokens = val
	}

	temperature := 0.0
	if val, ok := opts["temperature"].(float64); ok {
		temperature = val
	}

	system := DefaultSystemPrompt
	if val, ok := opts["system"].(string); ok && val != "" {
		system = val
	}

	messages := []openAIMessage{
		{
			Role:    "system",
			Content: system,
		},
		{
			Role:    "user",
			Content: prompt,
		},
	}

	req := openAIRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	if val, ok := opts["top_p"].(float64); ok {
		req.TopP = val
	}

	if val, ok := opts["stop"].([]string); ok {
		req.Stop = val
	}

	if val, ok := opts["session_id"].(string); ok {
		req.User = val
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API error %d: %s", resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return response.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Compile-time interface check
var _ types.Generator = (*OpenAIGenerator)(nil)
