package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matthieukhl/expotrack/internal/config"
	"github.com/matthieukhl/expotrack/internal/llm/generate"
	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/payload"
	"github.com/matthieukhl/expotrack/internal/types"
)

// Engine queries spreadsheet data through a chat provider
type Engine struct {
	generator     types.Generator
	promptBuilder *PromptBuilder
	projectID     string
}

// Session is a single conversation with the chat provider
type Session struct {
	ID        string
	ProjectID string
	StartedAt time.Time

	generator types.Generator
}

func NewEngine(generator types.Generator, chatCfg *config.ChatConfig, sheetsCfg *config.SheetsConfig) *Engine {
	return &Engine{
		generator:     generator,
		promptBuilder: NewPromptBuilder(sheetsCfg.OrdersSheet, sheetsCfg.ChecklistSheet, chatCfg.MaxRows),
		projectID:     chatCfg.ProjectID,
	}
}

// Model names the backing generator
func (e *Engine) Model() string {
	return e.generator.Model()
}

// OpenSession starts a new conversation
func (e *Engine) OpenSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		ProjectID: e.projectID,
		StartedAt: time.Now(),
		generator: e.generator,
	}
}

// Ask sends one prompt within the session and returns the raw reply
func (s *Session) Ask(ctx context.Context, prompt string) (string, error) {
	opts := types.GenerationOptions{MaxTokens: 4000}.Map()
	opts["session_id"] = s.ID
	opts["system"] = generate.SystemPrompt(s.ProjectID)

	reply, err := s.generator.Complete(ctx, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("chat completion returned an empty reply")
	}
	return reply, nil
}

// QueryOrders asks for orders, optionally scoped to a booth
func (e *Engine) QueryOrders(ctx context.Context, booth string) (payload.Payload, error) {
	return e.query(ctx, "orders", e.promptBuilder.OrdersPrompt(booth))
}

// QueryChecklist asks for checklist rows, optionally scoped to a booth
func (e *Engine) QueryChecklist(ctx context.Context, booth string) (payload.Payload, error) {
	return e.query(ctx, "checklist", e.promptBuilder.ChecklistPrompt(booth))
}

func (e *Engine) query(ctx context.Context, kind, prompt string) (payload.Payload, error) {
	session := e.OpenSession()

	reply, err := session.Ask(ctx, prompt)
	if err != nil {
		return nil, err
	}

	p := payload.Sniff(reply)
	logger.Debug("Chat reply parsed", logger.Fields{
		"session_id": session.ID,
		"kind":       kind,
		"format":     string(p.Kind()),
		"model":      e.generator.Model(),
	})
	return p, nil
}
