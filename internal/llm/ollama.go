package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// OllamaClient talks to a local Ollama server's /api/generate
// endpoint. One request per Generate call; no retry loop.
type OllamaClient struct {
	host       string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	Host    string
	Model   string
	Timeout time.Duration
}

// DefaultOllamaConfig returns sensible defaults for a local server.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Host:    "http://localhost:11434",
		Model:   "mistral",
		Timeout: 120 * time.Second,
	}
}

// NewOllamaClient creates a client for the given config.
func NewOllamaClient(cfg OllamaConfig, logger *zap.Logger) *OllamaClient {
	if cfg.Host == "" {
		cfg.Host = DefaultOllamaConfig().Host
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaConfig().Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOllamaConfig().Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OllamaClient{
		host:       strings.TrimRight(cfg.Host, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict    int     `json:"num_predict"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	RepeatPenalty float64 `json:"repeat_penalty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends the prompt and returns the raw completion text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	reqBody := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:    maxTokens,
			Temperature:   temperature,
			TopP:          0.9,
			RepeatPenalty: 1.1,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrGenerationFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGenerationFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailure, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailure, err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGenerationFailure)
	}

	c.logger.Debug("ollama completion",
		zap.String("model", c.model),
		zap.Int("chars", len(out.Response)),
		zap.Duration("elapsed", time.Since(start)))
	return out.Response, nil
}
