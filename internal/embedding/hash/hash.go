// Package hash implements a local, deterministic feature-hashing embedder.
// It needs no corpus preparation and no network, and the same text always
// maps to the same vector across processes, which keeps persisted
// collections queryable between runs.
package hash

import (
	"context"
	"hash/fnv"
	"math"

	"docqa/internal/textutil"
)

const defaultDimension = 512

// Embedder hashes word tokens into a fixed-size signed bucket vector and
// L2-normalizes the result. Texts sharing vocabulary land in shared buckets,
// which is enough signal for small corpora and for tests.
type Embedder struct {
	dimension int
}

// New creates a hashing embedder; a non-positive dimension selects the
// default of 512.
func New(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = defaultDimension
	}
	return &Embedder{dimension: dimension}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "hash" }

// Dimension returns the fixed vector length.
func (e *Embedder) Dimension() int { return e.dimension }

// EmbedDocuments embeds each text independently, preserving order.
func (e *Embedder) EmbedDocuments(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

// EmbedQuery embeds a single query text.
func (e *Embedder) EmbedQuery(_ context.Context, text string) ([]float64, error) {
	return e.embed(text), nil
}

func (e *Embedder) embed(text string) []float64 {
	vec := make([]float64, e.dimension)
	for _, token := range textutil.Tokens(text) {
		if textutil.IsStopword(token) {
			continue
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()
		idx := int(sum % uint64(e.dimension))
		// The bit above the bucket index decides the sign, spreading
		// colliding tokens across both directions.
		if sum&(1<<63) == 0 {
			vec[idx]++
		} else {
			vec[idx]--
		}
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
