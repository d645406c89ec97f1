// Package chroma is a minimal REST client to a Chroma server. The collection
// is created with get_or_create semantics and cosine space, points carry
// caller-supplied deterministic IDs so re-indexing overwrites instead of
// duplicating.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"docqa/internal/domain"
	"docqa/internal/vectorstore"
)

// Config contains connection details for a Chroma server.
type Config struct {
	URL        string
	Collection string
	Timeout    time.Duration
}

// Store talks to one Chroma collection. Open resolves the collection UUID
// that the point endpoints require.
type Store struct {
	url        string
	collection string
	id         string
	client     *http.Client
}

// New creates a client for the configured collection.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Open creates the collection if it is missing and caches its UUID. Calling
// it again for an existing collection returns the same collection.
func (s *Store) Open(ctx context.Context) error {
	body := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
		"metadata":      map[string]any{"hnsw:space": "cosine"},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, s.url+"/api/v1/collections", body, &resp); err != nil {
		return fmt.Errorf("open collection %q: %w", s.collection, err)
	}
	if resp.ID == "" {
		return fmt.Errorf("open collection %q: server returned no id", s.collection)
	}
	s.id = resp.ID
	return nil
}

// Upsert writes chunks and vectors under their deterministic IDs.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	if s.id == "" {
		return errors.New("collection not opened")
	}
	if len(chunks) == 0 {
		return nil
	}
	ids := make([]string, len(chunks))
	documents := make([]string, len(chunks))
	metadatas := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		ids[i] = vectorstore.ChunkID(c)
		documents[i] = c.Text
		metadatas[i] = map[string]any{"source": c.Source, "chunk": c.Index}
	}
	body := map[string]any{
		"ids":        ids,
		"embeddings": vectors,
		"documents":  documents,
		"metadatas":  metadatas,
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/upsert", s.url, s.id)
	return s.postJSON(ctx, url, body, nil)
}

// Query returns the topK nearest chunks. Chroma reports cosine distance, so
// the score is 1-distance.
func (s *Store) Query(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = vectorstore.DefaultTopK
	}
	if s.id == "" {
		return nil, errors.New("collection not opened")
	}
	body := map[string]any{
		"query_embeddings": [][]float64{vector},
		"n_results":        topK,
		"include":          []string{"documents", "metadatas", "distances"},
	}
	var resp struct {
		Documents [][]string         `json:"documents"`
		Metadatas [][]map[string]any `json:"metadatas"`
		Distances [][]float64        `json:"distances"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/query", s.url, s.id)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Documents) == 0 {
		return nil, nil
	}
	results := make([]domain.SearchResult, 0, len(resp.Documents[0]))
	for i, doc := range resp.Documents[0] {
		chunk := domain.Chunk{Text: doc}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			meta := resp.Metadatas[0][i]
			if v, ok := meta["source"].(string); ok {
				chunk.Source = v
			}
			if v, ok := meta["chunk"].(float64); ok {
				chunk.Index = int(v)
			}
		}
		score := 0.0
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			score = 1 - resp.Distances[0][i]
		}
		results = append(results, domain.SearchResult{Chunk: chunk, Score: score})
	}
	return results, nil
}

// Clear drops the collection; the next Open re-creates it empty.
func (s *Store) Clear(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/v1/collections/%s", s.url, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete collection %q: %s", s.collection, resp.Status)
	}
	s.id = ""
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("chroma POST %s failed: %s: %s", url, resp.Status, bytes.TrimSpace(detail))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
