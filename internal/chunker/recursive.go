// Package chunker splits document text into overlapping chunks sized for
// embedding.
package chunker

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"docqa/internal/domain"
)

const (
	defaultChunkSize    = 500
	defaultChunkOverlap = 50
)

// Splitter produces overlapping chunks using recursive character splitting:
// paragraph boundaries first, then lines, then words, then single characters,
// always preferring the coarsest separator that keeps a chunk within the
// target size.
type Splitter struct {
	size    int
	overlap int
}

// New creates a splitter with the given target size and overlap in
// characters. Non-positive size and negative or oversized overlap fall back
// to the defaults (500/50).
func New(size, overlap int) *Splitter {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}
	return &Splitter{size: size, overlap: overlap}
}

// Split chunks text and tags every chunk with its source and a zero-based
// sequential index. Each chunk body is prefixed with a "[Source: X]" line so
// the text stays self-describing once separated from its metadata. Empty
// input yields no chunks.
func (s *Splitter) Split(text, source string) []domain.Chunk {
	segments := s.segments(text)
	chunks := make([]domain.Chunk, 0, len(segments))
	for i, segment := range segments {
		chunks = append(chunks, domain.Chunk{
			Source: source,
			Index:  i,
			Text:   fmt.Sprintf("[Source: %s]\n\n%s", source, segment),
		})
	}
	return chunks
}

// FileIndex builds the synthetic chunk set listing every indexed file, tagged
// with the reserved source label. It lets the retrieval layer answer
// questions like "what files are available".
func (s *Splitter) FileIndex(files []string) []domain.Chunk {
	if len(files) == 0 {
		return nil
	}
	text := "The following files were indexed:\n" + strings.Join(files, "\n")
	segments := s.segments(text)
	chunks := make([]domain.Chunk, 0, len(segments))
	for i, segment := range segments {
		chunks = append(chunks, domain.Chunk{
			Source: domain.FileIndexSource,
			Index:  i,
			Text:   segment,
		})
	}
	return chunks
}

func (s *Splitter) segments(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.size),
		textsplitter.WithChunkOverlap(s.overlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
	)
	segments, err := splitter.SplitText(text)
	if err != nil || len(segments) == 0 {
		// The recursive splitter only fails on pathological input; fall back
		// to a single chunk rather than dropping the document.
		return []string{strings.TrimSpace(text)}
	}
	return segments
}
