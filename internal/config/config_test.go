package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Should return defaults for a missing file", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "data", cfg.Scan.Root)
		assert.Equal(t, 500, cfg.Chunker.Size)
		assert.Equal(t, 50, cfg.Chunker.Overlap)
		assert.Equal(t, "hash", cfg.Embedder.Type)
		assert.Equal(t, "file", cfg.VectorStore.Type)
		require.NotNil(t, cfg.VectorStore.File)
		assert.Equal(t, "vectordb", cfg.VectorStore.File.Dir)
		assert.Equal(t, 5, cfg.Retrieval.TopK)
		assert.Equal(t, "gemini-2.5-flash", cfg.Generator.Model)
		assert.Equal(t, "GEMINI_API_KEY", cfg.Generator.APIKeyEnv)
		assert.InDelta(t, 0.2, cfg.Generator.Temperature, 1e-9)
		assert.Equal(t, 5, cfg.Summarizer.MaxSentences)
	})
	t.Run("Should apply file values over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
scan:
  root: /srv/docs
chunker:
  size: 1000
embedder:
  type: openai
  openai:
    model: text-embedding-3-large
vector_store:
  type: chroma
  chroma:
    url: http://localhost:8000
retrieval:
  top_k: 3
`), 0o644))
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/docs", cfg.Scan.Root)
		assert.Equal(t, 1000, cfg.Chunker.Size)
		assert.Equal(t, 50, cfg.Chunker.Overlap)
		assert.Equal(t, "openai", cfg.Embedder.Type)
		require.NotNil(t, cfg.Embedder.OpenAI)
		assert.Equal(t, "text-embedding-3-large", cfg.Embedder.OpenAI.Model)
		assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
		assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
		assert.Equal(t, "chroma", cfg.VectorStore.Type)
		require.NotNil(t, cfg.VectorStore.Chroma)
		assert.Equal(t, "http://localhost:8000", cfg.VectorStore.Chroma.URL)
		assert.Equal(t, 3, cfg.Retrieval.TopK)
	})
	t.Run("Should reject malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scan: [unbalanced"), 0o644))
		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Run("Should round-trip a config through disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		cfg.Scan.Root = "/srv/docs"
		cfg.Retrieval.TopK = 7

		require.NoError(t, config.Save(path, cfg))

		loaded, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})
}
