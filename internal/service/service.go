// Package service drives the two phases of the pipeline: indexing a folder
// into a collection and answering questions against it.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"docqa/internal/chunker"
	"docqa/internal/domain"
	"docqa/internal/embedding"
	"docqa/internal/extract"
	"docqa/internal/generator"
	"docqa/internal/retrieval"
	"docqa/internal/scanner"
	"docqa/internal/vectorstore"
)

// ErrNoDocuments reports a scan that found nothing to index.
var ErrNoDocuments = errors.New("no documents found")

// ErrSearch marks an Ask failure that happened during retrieval rather than
// generation. The CLI lets the user retry those and treats generation
// failures as fatal.
var ErrSearch = errors.New("search documents")

// Deps bundles the collaborators of the pipeline. Extract, Chunker and Log
// get sensible defaults when nil; the rest are required.
type Deps struct {
	Extract             *extract.Registry
	Chunker             domain.Chunker
	Embedder            embedding.Embedder
	Store               vectorstore.Storage
	Retriever           *retrieval.Service
	Generator           generator.Generator
	Summarizer          domain.Summarizer
	SummaryMaxSentences int
	Log                 *log.Logger
}

// Service is the pipeline driver. It processes files strictly one at a time
// and upserts a file's chunks in ascending index order.
type Service struct {
	extract             *extract.Registry
	chunker             domain.Chunker
	embedder            embedding.Embedder
	store               vectorstore.Storage
	retriever           *retrieval.Service
	generator           generator.Generator
	summarizer          domain.Summarizer
	summaryMaxSentences int
	log                 *log.Logger
}

// New assembles a pipeline from its collaborators.
func New(d Deps) *Service {
	if d.Extract == nil {
		d.Extract = extract.NewRegistry()
	}
	if d.Chunker == nil {
		d.Chunker = chunker.New(0, 0)
	}
	if d.Log == nil {
		d.Log = log.Default()
	}
	return &Service{
		extract:             d.Extract,
		chunker:             d.Chunker,
		embedder:            d.Embedder,
		store:               d.Store,
		retriever:           d.Retriever,
		generator:           d.Generator,
		summarizer:          d.Summarizer,
		summaryMaxSentences: d.SummaryMaxSentences,
		log:                 d.Log,
	}
}

// IndexReport describes the outcome of one indexing run.
type IndexReport struct {
	Files   []string
	Indexed int
	Skipped int
	Chunks  int
	Summary string
}

// Index scans dir, extracts and chunks every supported file and upserts the
// chunks into the collection. A file that cannot be extracted, embedded or
// stored is logged and skipped; the run continues with the next one. An
// empty scan returns ErrNoDocuments without touching the store.
func (s *Service) Index(ctx context.Context, dir string) (*IndexReport, error) {
	files := scanner.Scan(dir)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoDocuments, dir)
	}

	report := &IndexReport{Files: files}
	var corpus strings.Builder
	for _, file := range files {
		text, err := s.extract.Extract(file)
		if err != nil {
			if errors.Is(err, extract.ErrUnsupported) {
				s.log.Warn("file not supported, skipping", "file", file)
			} else {
				s.log.Warn("could not read file, skipping", "file", file, "err", err)
			}
			report.Skipped++
			continue
		}
		chunks := s.chunker.Split(text, file)
		if len(chunks) == 0 {
			s.log.Warn("no text extracted, skipping", "file", file)
			report.Skipped++
			continue
		}
		if err := s.upsert(ctx, chunks); err != nil {
			s.log.Warn("error processing file, skipping", "file", file, "err", err)
			report.Skipped++
			continue
		}
		report.Indexed++
		report.Chunks += len(chunks)
		corpus.WriteString(text)
		corpus.WriteString("\n")
	}

	// The synthetic file index lets the model answer "what files are there".
	// Losing it degrades meta-questions only, so a failure is a warning.
	if index := s.chunker.FileIndex(files); len(index) > 0 {
		if err := s.upsert(ctx, index); err != nil {
			s.log.Warn("could not index file names; content search still works", "err", err)
		} else {
			report.Chunks += len(index)
		}
	}

	if s.summarizer != nil && corpus.Len() > 0 {
		summary, err := s.summarizer.Summarize(corpus.String(), s.summaryMaxSentences)
		if err != nil {
			s.log.Warn("could not summarize corpus", "err", err)
		} else {
			report.Summary = summary
		}
	}
	return report, nil
}

// Ask retrieves the chunks relevant to question, generates an answer with
// the conversation so far and appends the exchange to the session. The
// session stays untouched when either step fails.
func (s *Service) Ask(ctx context.Context, sess *Session, question string) (string, error) {
	results, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSearch, err)
	}
	answer, err := s.generator.Generate(ctx, question, results, sess.History())
	if err != nil {
		return "", err
	}
	sess.Append(question, answer)
	return answer, nil
}

func (s *Service) upsert(ctx context.Context, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if err := s.store.Upsert(ctx, chunks, vectors); err != nil {
		return fmt.Errorf("store chunks: %w", err)
	}
	return nil
}
