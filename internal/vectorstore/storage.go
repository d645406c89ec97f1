// Package vectorstore defines the contract for persisting chunk embeddings
// in a named collection and querying them by similarity.
package vectorstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"

	"docqa/internal/domain"
)

// DefaultTopK is the result count used when a caller passes no limit.
const DefaultTopK = 5

// Storage is one named collection of chunks plus their embeddings. A store
// instance is bound to its collection at construction time; the collection
// name is derived from the indexed folder by the naming package.
type Storage interface {
	// Open creates the collection when it does not exist yet and is a no-op
	// when it does. Safe to call repeatedly.
	Open(ctx context.Context) error
	// Upsert stores every chunk under its deterministic identifier together
	// with the matching vector. Re-upserting the same chunks overwrites
	// instead of duplicating.
	Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error
	// Query returns the topK entries nearest to vector, best first. An empty
	// collection yields an empty result, not an error.
	Query(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error)
	// Clear removes every entry of the collection.
	Clear(ctx context.Context) error
}

// ChunkID derives the stable identifier of a chunk from its source and
// position. Identical (source, index) pairs always map to the same ID, which
// is what makes re-indexing idempotent.
func ChunkID(c domain.Chunk) string {
	sum := sha256.Sum256([]byte(c.Source + "\x00" + strconv.Itoa(c.Index)))
	return hex.EncodeToString(sum[:16])
}

// Cosine returns the cosine similarity of two vectors, 0 when either has no
// magnitude or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
