package retrieval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
	"docqa/internal/embedding/hash"
	"docqa/internal/retrieval"
	"docqa/internal/vectorstore/memory"
)

type failingEmbedder struct{}

func (failingEmbedder) Name() string   { return "failing" }
func (failingEmbedder) Dimension() int { return 0 }

func (failingEmbedder) EmbedDocuments(context.Context, []string) ([][]float64, error) {
	return nil, errors.New("endpoint down")
}

func (failingEmbedder) EmbedQuery(context.Context, string) ([]float64, error) {
	return nil, errors.New("endpoint down")
}

func TestRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the most similar chunk first", func(t *testing.T) {
		emb := hash.New(0)
		store := memory.New()
		chunks := []domain.Chunk{
			{Source: "cities.txt", Index: 0, Text: "Paris is the capital city of France."},
			{Source: "finance.txt", Index: 0, Text: "Quarterly revenue grew across all segments."},
		}
		vectors, err := emb.EmbedDocuments(ctx, []string{chunks[0].Text, chunks[1].Text})
		require.NoError(t, err)
		require.NoError(t, store.Upsert(ctx, chunks, vectors))

		results, err := retrieval.New(emb, store, 0).Retrieve(ctx, "What is the capital of France?")
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "cities.txt", results[0].Source)
	})
	t.Run("Should return an empty result for an empty collection", func(t *testing.T) {
		results, err := retrieval.New(hash.New(0), memory.New(), 5).Retrieve(ctx, "anything")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
	t.Run("Should cap the result count at topK", func(t *testing.T) {
		emb := hash.New(0)
		store := memory.New()
		texts := []string{"alpha text one", "alpha text two", "alpha text three"}
		chunks := make([]domain.Chunk, len(texts))
		for i, text := range texts {
			chunks[i] = domain.Chunk{Source: "a.txt", Index: i, Text: text}
		}
		vectors, err := emb.EmbedDocuments(ctx, texts)
		require.NoError(t, err)
		require.NoError(t, store.Upsert(ctx, chunks, vectors))

		results, err := retrieval.New(emb, store, 2).Retrieve(ctx, "alpha")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
	t.Run("Should wrap embedding failures", func(t *testing.T) {
		_, err := retrieval.New(failingEmbedder{}, memory.New(), 5).Retrieve(ctx, "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embed query")
	})
}
