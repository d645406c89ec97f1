// Package file is a persistent vector store that snapshots one collection to
// a JSON file under a local directory. It is the default backend: indexing a
// folder today and asking questions tomorrow works without any server.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"docqa/internal/domain"
	"docqa/internal/vectorstore"
)

type entry struct {
	chunk  domain.Chunk
	vector []float64
}

// Store holds one collection in memory and rewrites its snapshot after every
// mutation. Snapshots are written to a temp file and renamed into place so a
// crash mid-write never leaves a torn collection behind.
type Store struct {
	mu        sync.RWMutex
	dir       string
	name      string
	dimension int
	entries   map[string]entry
}

// New creates a store for the named collection under dir. Nothing touches
// the filesystem until Open.
func New(dir, name string) *Store {
	return &Store{dir: dir, name: name, entries: make(map[string]entry)}
}

// Open ensures the directory exists and loads the snapshot when one is
// present. Opening the same collection twice is harmless.
func (s *Store) Open(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("ensure store directory %q: %w", s.dir, err)
	}
	return s.loadLocked()
}

// Upsert stores each chunk under its deterministic ID and persists the new
// snapshot.
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
			return fmt.Errorf("vector dimension mismatch (got %d want %d)", len(vectors[i]), s.dimension)
		}
		s.entries[vectorstore.ChunkID(chunks[i])] = entry{
			chunk:  chunks[i],
			vector: append([]float64(nil), vectors[i]...),
		}
	}
	return s.persistLocked()
}

// Query ranks all entries by cosine similarity, ties broken by ID for a
// stable order.
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

// Clear removes every entry and deletes the snapshot file.
func (s *Store) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
	s.dimension = 0
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Count reports the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) path() string {
	return filepath.Join(s.dir, s.name+".json")
}

type snapshot struct {
	Dimension int              `json:"dimension"`
	Records   []snapshotRecord `json:"records"`
}

type snapshotRecord struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Index  int       `json:"chunk"`
	Text   string    `json:"text"`
	Vector []float64 `json:"vector"`
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read collection %q: %w", s.name, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode collection %q: %w", s.name, err)
	}
	s.dimension = snap.Dimension
	s.entries = make(map[string]entry, len(snap.Records))
	for _, rec := range snap.Records {
		s.entries[rec.ID] = entry{
			chunk:  domain.Chunk{Source: rec.Source, Index: rec.Index, Text: rec.Text},
			vector: rec.Vector,
		}
	}
	return nil
}

func (s *Store) persistLocked() error {
	snap := snapshot{Dimension: s.dimension, Records: make([]snapshotRecord, 0, len(s.entries))}
	for id, e := range s.entries {
		snap.Records = append(snap.Records, snapshotRecord{
			ID:     id,
			Source: e.chunk.Source,
			Index:  e.chunk.Index,
			Text:   e.chunk.Text,
			Vector: e.vector,
		})
	}
	sort.Slice(snap.Records, func(i, j int) bool { return snap.Records[i].ID < snap.Records[j].ID })
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", s.name, err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("commit collection snapshot: %w", err)
	}
	return nil
}
