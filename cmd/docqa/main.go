// docqa indexes a folder of documents into a vector collection and answers
// questions about them on the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

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
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/chroma"
	"docqa/internal/vectorstore/file"
	"docqa/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var reset bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docqa/config.yaml if not provided)")
	flag.BoolVar(&reset, "reset", false, "Drop the folder's collection before indexing")
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

	reader := bufio.NewReader(os.Stdin)
	dir := promptDirectory(reader, cfg.Scan.Root)

	emb := buildEmbedder(cfg, logger)
	collection := naming.Collection(dir)
	store := buildStore(cfg, collection, logger)

	ctx := context.Background()
	if err := store.Open(ctx); err != nil {
		logger.Fatal("error setting up the document storage system", "err", err)
	}
	if reset {
		if err := store.Clear(ctx); err != nil {
			logger.Fatal("could not reset collection", "collection", collection, "err", err)
		}
		if err := store.Open(ctx); err != nil {
			logger.Fatal("error setting up the document storage system", "err", err)
		}
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
	fmt.Printf("Indexed %d of %d file(s) into collection %q (%d chunks).\n",
		report.Indexed, len(report.Files), collection, report.Chunks)
	if report.Summary != "" {
		fmt.Println("Summary:", report.Summary)
	}
	fmt.Println(time.Now().Format("Jan 02, 2006 15:04:05"))

	sess := service.NewSession()
	for {
		fmt.Print("Type a question, or \"exit\" to quit: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			break
		}
		answer, err := svc.Ask(ctx, sess, question)
		if err != nil {
			if errors.Is(err, service.ErrSearch) {
				fmt.Println("Error searching documents. Please try again.")
				continue
			}
			// Generation failure is fatal in the batch CLI.
			logger.Fatal("error calling the language model", "err", err)
		}
		fmt.Println(answer)
	}
}

// promptDirectory asks for the folder to index and falls back to the default
// when the input is empty or not a directory.
func promptDirectory(reader *bufio.Reader, fallback string) string {
	fmt.Printf("Enter directory to scan (default: %s): ", fallback)
	line, _ := reader.ReadString('\n')
	dir := strings.TrimSpace(line)
	switch {
	case dir == "":
		fmt.Printf("Default directory used: %q\n", fallback)
		return fallback
	default:
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			fmt.Printf("Directory %q not found. Using default directory %q instead.\n", dir, fallback)
			return fallback
		}
		fmt.Printf("Directory used: %q\n", dir)
		return dir
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
