// Package memory is an in-process vector store using brute-force cosine
// similarity. Nothing survives the process; it backs tests and the
// `store: memory` configuration.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/vectorstore"
)

type entry struct {
	chunk  domain.Chunk
	vector []float64
}

// Store keeps entries keyed by their deterministic chunk ID, so re-upserting
// the same chunks never grows the store.
type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Open is a no-op; the collection exists as soon as the store does.
func (s *Store) Open(context.Context) error { return nil }

// Upsert stores each chunk under vectorstore.ChunkID. The first vector fixes
// the dimension; later mismatches are rejected.
func (s *Store) Upsert(_ context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range chunks {
		if s.dimension == 0 {
			s.dimension = len(vectors[i])
		}
		if len(vectors[i]) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		s.entries[vectorstore.ChunkID(chunks[i])] = entry{
			chunk:  chunks[i],
			vector: append([]float64(nil), vectors[i]...),
		}
	}
	return nil
}

// Query ranks every entry by cosine similarity and returns the best topK.
func (s *Store) Query(_ context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = vectorstore.DefaultTopK
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	type scored struct {
		id     string
		result domain.SearchResult
	}
	candidates := make([]scored, 0, len(s.entries))
	for id, e := range s.entries {
		candidates = append(candidates, scored{
			id:     id,
			result: domain.SearchResult{Chunk: e.chunk, Score: vectorstore.Cosine(e.vector, vector)},
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].result.Score == candidates[j].result.Score {
			return candidates[i].id < candidates[j].id
		}
		return candidates[i].result.Score > candidates[j].result.Score
	})
	if topK > len(candidates) {
		topK = len(candidates)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, c := range candidates[:topK] {
		results = append(results, c.result)
	}
	return results, nil
}

// Clear drops every entry.
func (s *Store) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	s.dimension = 0
	return nil
}

// Count reports the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
