// Package config loads DataForge configuration from a YAML file with
// environment overrides for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all DataForge configuration.
type Config struct {
	Kaggle     KaggleConfig     `yaml:"kaggle"`
	LLM        LLMConfig        `yaml:"llm"`
	Generation GenerationConfig `yaml:"generation"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
	API        APIConfig        `yaml:"api"`
}

// KaggleConfig configures the reference-data provider.
type KaggleConfig struct {
	Username      string `yaml:"username"`
	Key           string `yaml:"key"`
	MaxDownloadMB int64  `yaml:"max_download_size_mb"`
	MaxResults    int    `yaml:"max_results"`
}

// LLMConfig configures the text-generation client.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // ollama, gemini, none
	Host        string  `yaml:"host"`     // ollama server
	APIKey      string  `yaml:"api_key"`  // gemini
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
}

// GenerationConfig bounds the generation loop.
type GenerationConfig struct {
	DefaultRows int `yaml:"default_rows"`
	Variations  int `yaml:"variations"`
	MinRows     int `yaml:"min_rows"`
	MaxRows     int `yaml:"max_rows"`
}

// PathsConfig locates on-disk artifacts.
type PathsConfig struct {
	ReferenceDatasets string `yaml:"reference_datasets"`
	GeneratedDatasets string `yaml:"generated_datasets"`
	Database          string `yaml:"database"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// APIConfig configures the control-plane HTTP server.
type APIConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Kaggle: KaggleConfig{
			MaxDownloadMB: 50,
			MaxResults:    3,
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			Host:        "http://localhost:11434",
			Model:       "mistral",
			MaxTokens:   2000,
			Temperature: 0.7,
			Timeout:     "120s",
		},
		Generation: GenerationConfig{
			DefaultRows: 500,
			Variations:  6,
			MinRows:     1,
			MaxRows:     1000,
		},
		Paths: PathsConfig{
			ReferenceDatasets: "data/reference_datasets",
			GeneratedDatasets: "data/generated_datasets",
			Database:          "data/dataforge.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		API: APIConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the config file at path, layered over defaults. A missing
// file is not an error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides pulls credentials and endpoints from the
// environment. Environment wins over the file for secrets so they
// never need to live on disk.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KAGGLE_USERNAME"); v != "" {
		c.Kaggle.Username = v
	}
	if v := os.Getenv("KAGGLE_KEY"); v != "" {
		c.Kaggle.Key = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.LLM.Host = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
		if c.LLM.Provider == "" {
			c.LLM.Provider = "gemini"
		}
	}
	if v := os.Getenv("DATAFORGE_API_KEY"); v != "" {
		c.API.Key = v
	}
}

func (c *Config) validate() error {
	if c.Generation.MinRows <= 0 || c.Generation.MaxRows < c.Generation.MinRows {
		return fmt.Errorf("invalid generation row bounds [%d, %d]", c.Generation.MinRows, c.Generation.MaxRows)
	}
	if c.Generation.Variations <= 0 {
		return fmt.Errorf("variations must be positive, got %d", c.Generation.Variations)
	}
	switch c.LLM.Provider {
	case "ollama", "gemini", "none":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}

// LLMTimeout parses the configured client timeout, defaulting to two
// minutes on empty or malformed values.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}
