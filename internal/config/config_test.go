package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 500, cfg.Generation.DefaultRows)
	assert.Equal(t, 6, cfg.Generation.Variations)
	assert.Equal(t, int64(50), cfg.Kaggle.MaxDownloadMB)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  provider: gemini
  model: gemini-2.0-flash
  temperature: 0.3
generation:
  default_rows: 100
  variations: 2
  min_rows: 1
  max_rows: 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 100, cfg.Generation.DefaultRows)
	assert.Equal(t, 500, cfg.Generation.MaxRows)
	// Untouched sections keep defaults.
	assert.Equal(t, "data/generated_datasets", cfg.Paths.GeneratedDatasets)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("kaggle credentials", func(t *testing.T) {
		t.Setenv("KAGGLE_USERNAME", "alice")
		t.Setenv("KAGGLE_KEY", "secret")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "alice", cfg.Kaggle.Username)
		assert.Equal(t, "secret", cfg.Kaggle.Key)
	})

	t.Run("GEMINI_API_KEY sets provider only when empty", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "g-key")

		cfg := &Config{}
		cfg.applyEnvOverrides()
		assert.Equal(t, "g-key", cfg.LLM.APIKey)
		assert.Equal(t, "gemini", cfg.LLM.Provider)

		cfg = &Config{LLM: LLMConfig{Provider: "ollama"}}
		cfg.applyEnvOverrides()
		assert.Equal(t, "ollama", cfg.LLM.Provider)
	})

	t.Run("OLLAMA_HOST", func(t *testing.T) {
		t.Setenv("OLLAMA_HOST", "http://remote:11434")
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		assert.Equal(t, "http://remote:11434", cfg.LLM.Host)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults are valid", func(c *Config) {}, true},
		{"zero min rows", func(c *Config) { c.Generation.MinRows = 0 }, false},
		{"max below min", func(c *Config) { c.Generation.MaxRows = 0 }, false},
		{"zero variations", func(c *Config) { c.Generation.Variations = 0 }, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "gpt9" }, false},
		{"provider none", func(c *Config) { c.LLM.Provider = "none" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLLMTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout())

	cfg.LLM.Timeout = "30s"
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())

	cfg.LLM.Timeout = "garbage"
	assert.Equal(t, 2*time.Minute, cfg.LLMTimeout())
}
