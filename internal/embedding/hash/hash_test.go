package hash_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/embedding/hash"
	"docqa/internal/vectorstore"
)

func TestEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("Should embed the same text to the same vector across instances", func(t *testing.T) {
		a, err := hash.New(0).EmbedQuery(ctx, "the capital of France is Paris")
		require.NoError(t, err)
		b, err := hash.New(0).EmbedQuery(ctx, "the capital of France is Paris")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
	t.Run("Should respect the configured dimension", func(t *testing.T) {
		e := hash.New(64)
		assert.Equal(t, 64, e.Dimension())
		vec, err := e.EmbedQuery(ctx, "anything")
		require.NoError(t, err)
		assert.Len(t, vec, 64)
	})
	t.Run("Should default the dimension for non-positive values", func(t *testing.T) {
		assert.Equal(t, 512, hash.New(-3).Dimension())
	})
	t.Run("Should produce unit-length vectors for non-empty text", func(t *testing.T) {
		vec, err := hash.New(0).EmbedQuery(ctx, "documents about cities and rivers")
		require.NoError(t, err)
		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	})
	t.Run("Should produce a zero vector for empty or stopword-only text", func(t *testing.T) {
		for _, text := range []string{"", "the and of"} {
			vec, err := hash.New(32).EmbedQuery(ctx, text)
			require.NoError(t, err)
			for _, v := range vec {
				assert.Zero(t, v)
			}
		}
	})
	t.Run("Should score overlapping texts above unrelated ones", func(t *testing.T) {
		e := hash.New(0)
		vecs, err := e.EmbedDocuments(ctx, []string{
			"Paris is the capital city of France.",
			"France names Paris as its capital city.",
			"Quarterly revenue grew across all product segments.",
		})
		require.NoError(t, err)
		require.Len(t, vecs, 3)
		similar := vectorstore.Cosine(vecs[0], vecs[1])
		unrelated := vectorstore.Cosine(vecs[0], vecs[2])
		assert.Greater(t, similar, unrelated)
	})
	t.Run("Should preserve input order in batch embedding", func(t *testing.T) {
		e := hash.New(0)
		batch, err := e.EmbedDocuments(ctx, []string{"alpha text", "omega text"})
		require.NoError(t, err)
		one, err := e.EmbedQuery(ctx, "alpha text")
		require.NoError(t, err)
		assert.Equal(t, one, batch[0])
		assert.NotEqual(t, batch[0], batch[1])
	})
}
