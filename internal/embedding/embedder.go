// Package embedding defines the contract for turning text into vectors.
package embedding

import "context"

// Embedder converts free text into numeric vector representations. Document
// and query embedding are separate calls because some backends batch the
// former and some models prefix the latter.
type Embedder interface {
	Name() string
	// Dimension is the length of the produced vectors. Remote embedders may
	// report 0 until the first call.
	Dimension() int
	EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error)
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}
