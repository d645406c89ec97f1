package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"docqa/internal/domain"
	"docqa/internal/generator"
)

type fakeModel struct {
	answer   string
	messages []llms.MessageContent
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.answer}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return m.answer, nil
}

func writePrompt(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func textOf(t *testing.T, m llms.MessageContent) string {
	t.Helper()
	require.NotEmpty(t, m.Parts)
	part, ok := m.Parts[0].(llms.TextContent)
	require.True(t, ok)
	return part.Text
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should put the prompt and retrieved context into the system message", func(t *testing.T) {
		model := &fakeModel{answer: "Paris."}
		llm := generator.New(model, generator.Config{PromptPath: writePrompt(t, "Answer from the documents.")})
		results := []domain.SearchResult{
			{Chunk: domain.Chunk{Source: "cities.txt", Index: 0, Text: "[Source: cities.txt]\n\nParis is the capital."}},
		}

		answer, err := llm.Generate(ctx, "What is the capital of France?", results, nil)
		require.NoError(t, err)
		assert.Equal(t, "Paris.", answer)

		require.NotEmpty(t, model.messages)
		system := model.messages[0]
		assert.Equal(t, llms.ChatMessageTypeSystem, system.Role)
		assert.Contains(t, textOf(t, system), "Answer from the documents.")
		assert.Contains(t, textOf(t, system), "Paris is the capital.")
	})
	t.Run("Should replay the history in order before the new question", func(t *testing.T) {
		model := &fakeModel{answer: "ok"}
		llm := generator.New(model, generator.Config{PromptPath: writePrompt(t, "p")})
		history := []domain.Message{
			{Role: domain.RoleUser, Content: "first question"},
			{Role: domain.RoleAssistant, Content: "first answer"},
		}

		_, err := llm.Generate(ctx, "second question", nil, history)
		require.NoError(t, err)

		require.Len(t, model.messages, 4)
		assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
		assert.Equal(t, "first question", textOf(t, model.messages[1]))
		assert.Equal(t, llms.ChatMessageTypeAI, model.messages[2].Role)
		assert.Equal(t, "first answer", textOf(t, model.messages[2]))
		assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[3].Role)
		assert.Equal(t, "second question", textOf(t, model.messages[3]))
	})
	t.Run("Should tell the model when no context was retrieved", func(t *testing.T) {
		model := &fakeModel{answer: "I do not know."}
		llm := generator.New(model, generator.Config{PromptPath: writePrompt(t, "p")})
		_, err := llm.Generate(ctx, "anything", nil, nil)
		require.NoError(t, err)
		assert.Contains(t, textOf(t, model.messages[0]), "No relevant document context was retrieved.")
	})
	t.Run("Should fail when the prompt file is missing", func(t *testing.T) {
		llm := generator.New(&fakeModel{}, generator.Config{
			PromptPath: filepath.Join(t.TempDir(), "gone.txt"),
		})
		_, err := llm.Generate(ctx, "q", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "system prompt")
	})
}

func TestFormatContext(t *testing.T) {
	t.Run("Should keep retrieval order and separate chunks", func(t *testing.T) {
		out := generator.FormatContext([]domain.SearchResult{
			{Chunk: domain.Chunk{Text: "first chunk"}},
			{Chunk: domain.Chunk{Text: "second chunk"}},
		})
		assert.Contains(t, out, "---")
		first := strings.Index(out, "first chunk")
		second := strings.Index(out, "second chunk")
		require.GreaterOrEqual(t, first, 0)
		require.GreaterOrEqual(t, second, 0)
		assert.Less(t, first, second)
	})
	t.Run("Should state the absence of context explicitly", func(t *testing.T) {
		assert.Equal(t, "No relevant document context was retrieved.", generator.FormatContext(nil))
	})
}
