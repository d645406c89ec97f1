// Package config loads and persists the application configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScanConfig sets where indexing looks for documents.
type ScanConfig struct {
	Root string `yaml:"root"`
}

// ChunkerConfig controls chunk size and overlap in characters.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// OpenAIEmbedderConfig holds settings for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type      string                `yaml:"type"`
	Dimension int                   `yaml:"dimension,omitempty"`
	OpenAI    *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// FileStoreConfig configures the local snapshot vector store.
type FileStoreConfig struct {
	Dir string `yaml:"dir"`
}

// ChromaConfig contains connection details for a Chroma server.
type ChromaConfig struct {
	URL         string `yaml:"url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store backend.
type VectorStoreConfig struct {
	Type   string           `yaml:"type"`
	File   *FileStoreConfig `yaml:"file,omitempty"`
	Chroma *ChromaConfig    `yaml:"chroma,omitempty"`
}

// RetrievalConfig fixes how many chunks a query pulls in.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// GeneratorConfig configures the hosted language model.
type GeneratorConfig struct {
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	PromptPath  string  `yaml:"prompt_path"`
	Temperature float64 `yaml:"temperature"`
}

// SummarizerConfig configures the post-indexing corpus summary.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Scan        ScanConfig        `yaml:"scan"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
}

// Load reads a config from path. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docqa/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docqa", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Scan:        ScanConfig{Root: "data"},
		Chunker:     ChunkerConfig{Size: 500, Overlap: 50},
		Embedder:    EmbedderConfig{Type: "hash", Dimension: 512},
		VectorStore: VectorStoreConfig{Type: "file", File: &FileStoreConfig{Dir: "vectordb"}},
		Retrieval:   RetrievalConfig{TopK: 5},
		Generator: GeneratorConfig{
			Model:       "gemini-2.5-flash",
			APIKeyEnv:   "GEMINI_API_KEY",
			PromptPath:  filepath.Join("prompts", "system.txt"),
			Temperature: 0.2,
		},
		Summarizer: SummarizerConfig{MaxSentences: 5},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Scan.Root == "" {
		cfg.Scan.Root = "data"
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 500
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 50
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "hash"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
		if cfg.Embedder.OpenAI.BatchSize == 0 {
			cfg.Embedder.OpenAI.BatchSize = 32
		}
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "file"
	}
	if cfg.VectorStore.Type == "file" && cfg.VectorStore.File == nil {
		cfg.VectorStore.File = &FileStoreConfig{Dir: "vectordb"}
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "gemini-2.5-flash"
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Generator.PromptPath == "" {
		cfg.Generator.PromptPath = filepath.Join("prompts", "system.txt")
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.2
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 5
	}
}
