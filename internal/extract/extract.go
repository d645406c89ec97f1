// Package extract turns document files into plain text. A registry maps file
// extensions to format-specific extractors; an unknown extension is a defined
// miss reported through ErrUnsupported, not a failure of the run.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupported marks a file whose extension has no registered extractor.
var ErrUnsupported = errors.New("unsupported file type")

// Extractor reads one document format and returns its plain text.
type Extractor interface {
	Extract(path string) (string, error)
}

// Registry dispatches a file path to the extractor registered for its
// extension.
type Registry struct {
	table map[string]Extractor
}

// NewRegistry returns a registry covering .txt, .pdf, .docx and .odt.
func NewRegistry() *Registry {
	return &Registry{table: map[string]Extractor{
		".txt":  PlainText{},
		".pdf":  PDF{},
		".docx": WordDocument{},
		".odt":  OpenDocumentText{},
	}}
}

// Extract returns the text content of the file at path. Unknown extensions
// return an error wrapping ErrUnsupported; extraction failures return the
// extractor's error. Callers are expected to warn and move on in both cases.
func (r *Registry) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.table[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	text, err := e.Extract(path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}

// Supported lists the registered extensions in stable order.
func (r *Registry) Supported() []string {
	exts := make([]string, 0, len(r.table))
	for ext := range r.table {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// PlainText reads a file verbatim.
type PlainText struct{}

func (PlainText) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
