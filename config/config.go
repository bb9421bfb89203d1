package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for toonrec.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Encoder EncoderConfig `yaml:"encoder"`
	Scoring ScoringConfig `yaml:"scoring"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the catalog file and the embedding store.
type DataConfig struct {
	CatalogPath    string `yaml:"catalog_path"`
	EmbeddingsPath string `yaml:"embeddings_path"`
}

// EncoderConfig selects and configures the embedding encoder.
type EncoderConfig struct {
	Provider  string `yaml:"provider"`    // "ollama", "openai", "compatible", "mock"
	Model     string `yaml:"model"`       // e.g. "all-minilm"
	BaseURL   string `yaml:"base_url"`    // for "ollama" and "compatible"
	APIKeyEnv string `yaml:"api_key_env"` // environment variable holding the API key
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// ScoringConfig holds the matching heuristics' tunables.
type ScoringConfig struct {
	GenreBoost   float64 `yaml:"genre_boost"`
	ElementBoost float64 `yaml:"element_boost"`
	Threshold    float64 `yaml:"threshold"`
	FuzzyCutoff  float64 `yaml:"fuzzy_cutoff"`
	Seed         int64   `yaml:"seed"` // 0 = time-seeded
}

// ServerConfig holds the HTTP wrapper configuration.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	TopK           int      `yaml:"top_k"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// DefaultConfig returns the default configuration. The scoring defaults
// are the production constants; change them only with an eval run.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			CatalogPath:    "data/catalog.json",
			EmbeddingsPath: "data/embeddings.db",
		},
		Encoder: EncoderConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			BaseURL:   "",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 384,
			BatchSize: 100,
		},
		Scoring: ScoringConfig{
			GenreBoost:   0.05,
			ElementBoost: 0.03,
			Threshold:    0.3,
			FuzzyCutoff:  0.6,
			Seed:         0,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			TopK:           5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file, layered over defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// toonrec.yaml, then .toonrec/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "toonrec.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".toonrec", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
