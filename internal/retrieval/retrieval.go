// Package retrieval answers "which chunks are relevant to this question" by
// embedding the question and querying the vector store with a fixed result
// count.
package retrieval

import (
	"context"
	"fmt"

	"docqa/internal/domain"
	"docqa/internal/embedding"
	"docqa/internal/vectorstore"
)

// Service wraps the store's query with a fixed top-k policy.
type Service struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	topK     int
}

// New creates a retrieval service; a non-positive topK selects the default
// of 5.
func New(embedder embedding.Embedder, store vectorstore.Storage, topK int) *Service {
	if topK <= 0 {
		topK = vectorstore.DefaultTopK
	}
	return &Service{embedder: embedder, store: store, topK: topK}
}

// Retrieve embeds the question and returns the nearest chunks, best first.
// An empty collection yields an empty result, not an error.
func (s *Service) Retrieve(ctx context.Context, question string) ([]domain.SearchResult, error) {
	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.store.Query(ctx, vector, s.topK)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	return results, nil
}
