// Package generator turns a question, retrieved chunks and the conversation
// history into an answer by calling a hosted language model.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"docqa/internal/domain"
)

// Generator is the contract the chat surfaces consume. Implementations must
// preserve the order of both the retrieved results and the history.
type Generator interface {
	Generate(ctx context.Context, question string, results []domain.SearchResult, history []domain.Message) (string, error)
}

// Config configures the hosted-model generator. The API key is read from the
// environment variable named by APIKeyEnv; the system prompt is read from
// PromptPath on every call.
type Config struct {
	Model       string
	APIKeyEnv   string
	PromptPath  string
	Temperature float64
}

func (c *Config) applyDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.PromptPath == "" {
		c.PromptPath = "prompts/system.txt"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
}

// LLM generates answers through a langchaingo model.
type LLM struct {
	model       llms.Model
	promptPath  string
	temperature float64
}

// NewGemini builds a generator backed by the Google Gemini API. A missing
// API key is an error with a descriptive message; callers treat it as fatal.
func NewGemini(ctx context.Context, cfg Config) (*LLM, error) {
	cfg.applyDefaults()
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%s not set; add it to your environment or .env file", cfg.APIKeyEnv)
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(key),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("init %s: %w", cfg.Model, err)
	}
	return New(model, cfg), nil
}

// New wraps an existing langchaingo model. Tests use it with a fake model.
func New(model llms.Model, cfg Config) *LLM {
	cfg.applyDefaults()
	return &LLM{model: model, promptPath: cfg.PromptPath, temperature: cfg.Temperature}
}

// Generate reads the system prompt, appends the retrieved context to it and
// replays the history before the new question. The prompt file is read per
// call so edits apply without a restart; its absence is an error the caller
// decides is fatal.
func (g *LLM) Generate(ctx context.Context, question string, results []domain.SearchResult, history []domain.Message) (string, error) {
	prompt, err := os.ReadFile(g.promptPath)
	if err != nil {
		return "", fmt.Errorf("read system prompt %q: %w", g.promptPath, err)
	}

	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem,
		strings.TrimSpace(string(prompt))+"\n\n"+FormatContext(results)))
	for _, m := range history {
		messages = append(messages, llms.TextParts(messageType(m.Role), m.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, question))

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no answer")
	}
	return resp.Choices[0].Content, nil
}

// FormatContext renders retrieved chunks as one prompt block, preserving the
// retrieval order.
func FormatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "No relevant document context was retrieved."
	}
	var b strings.Builder
	b.WriteString("Context retrieved from the indexed documents:\n")
	for _, r := range results {
		b.WriteString("\n---\n")
		b.WriteString(r.Chunk.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func messageType(role string) llms.ChatMessageType {
	switch role {
	case domain.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
