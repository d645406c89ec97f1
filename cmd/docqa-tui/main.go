// docqa-tui indexes a folder of documents and opens a full-screen chat over
// them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/embedding"
	"docqa/internal/embedding/hash"
	"docqa/internal/embedding/openai"
	"docqa/internal/generator"
	"docqa/internal/naming"
	"docqa/internal/retrieval"
	"docqa/internal/service"
	"docqa/internal/summarizer"
	"docqa/internal/tui"
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/chroma"
	"docqa/internal/vectorstore/file"
	"docqa/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, dir string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.StringVar(&dir, "dir", "", "Folder to index (defaults to the configured scan root)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if dir == "" {
		dir = cfg.Scan.Root
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("folder not found, using configured scan root", "folder", dir, "root", cfg.Scan.Root)
		dir = cfg.Scan.Root
	}

	emb := buildEmbedder(cfg, logger)
	collection := naming.Collection(dir)
	store := buildStore(cfg, collection, logger)

	ctx := context.Background()
	if err := store.Open(ctx); err != nil {
		logger.Fatal("error setting up the document storage system", "err", err)
	}

	gen, err := generator.NewGemini(ctx, generator.Config{
		Model:       cfg.Generator.Model,
		APIKeyEnv:   cfg.Generator.APIKeyEnv,
		PromptPath:  cfg.Generator.PromptPath,
		Temperature: cfg.Generator.Temperature,
	})
	if err != nil {
		logger.Fatal("language model unavailable", "err", err)
	}

	svc := service.New(service.Deps{
		Chunker:             chunker.New(cfg.Chunker.Size, cfg.Chunker.Overlap),
		Embedder:            emb,
		Store:               store,
		Retriever:           retrieval.New(emb, store, cfg.Retrieval.TopK),
		Generator:           gen,
		Summarizer:          summarizer.NewFrequency(),
		SummaryMaxSentences: cfg.Summarizer.MaxSentences,
		Log:                 logger,
	})

	report, err := svc.Index(ctx, dir)
	if err != nil {
		if errors.Is(err, service.ErrNoDocuments) {
			fmt.Println("No documents found to index. Exiting.")
			return
		}
		logger.Fatal("indexing failed", "err", err)
	}

	summary := fmt.Sprintf("%d file(s) indexed.", report.Indexed)
	if report.Summary != "" {
		summary += " " + report.Summary
	}
	m := tui.New(svc, dir, summary)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("tui error", "err", err)
	}
}

func buildEmbedder(cfg *config.AppConfig, logger *log.Logger) embedding.Embedder {
	switch cfg.Embedder.Type {
	case "hash", "":
		return hash.New(cfg.Embedder.Dimension)
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			logger.Fatal("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			BatchSize: cfg.Embedder.OpenAI.BatchSize,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Fatal("openai embedder init failed", "err", err)
		}
		return client
	default:
		logger.Fatal("unknown embedder", "type", cfg.Embedder.Type)
	}
	return nil
}

func buildStore(cfg *config.AppConfig, collection string, logger *log.Logger) vectorstore.Storage {
	switch cfg.VectorStore.Type {
	case "file", "":
		dir := "vectordb"
		if cfg.VectorStore.File != nil && cfg.VectorStore.File.Dir != "" {
			dir = cfg.VectorStore.File.Dir
		}
		return file.New(dir, collection)
	case "memory":
		return memory.New()
	case "chroma":
		if cfg.VectorStore.Chroma == nil {
			logger.Fatal("chroma config missing")
		}
		return chroma.New(chroma.Config{
			URL:        cfg.VectorStore.Chroma.URL,
			Collection: collection,
			Timeout:    time.Duration(cfg.VectorStore.Chroma.TimeoutSecs) * time.Second,
		})
	default:
		logger.Fatal("unknown vector store", "type", cfg.VectorStore.Type)
	}
	return nil
}
