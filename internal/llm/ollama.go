package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultOllamaHost is the standard local Ollama address.
const DefaultOllamaHost = "http://localhost:11434"

// OllamaClient talks to a local Ollama inference server.
type OllamaClient struct {
	host    string
	model   string
	client  *http.Client
	tracker *TokenTracker
}

// OllamaConfig contains configuration for creating an OllamaClient.
type OllamaConfig struct {
	// Host is the server base URL. Empty uses DefaultOllamaHost.
	Host string
	// Model is the default model name (e.g. "llama3.1:8b").
	Model string
	// Timeout bounds each generate call. Zero means two minutes.
	Timeout time.Duration
}

// NewOllamaClient creates a client for a local Ollama server.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	host := cfg.Host
	if host == "" {
		host = DefaultOllamaHost
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	return &OllamaClient{
		host:    host,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		tracker: NewTokenTracker(),
	}
}

// Name implements Runner.
func (c *OllamaClient) Name() string { return "ollama" }

// Tracker returns the token tracker for this client.
func (c *OllamaClient) Tracker() *TokenTracker { return c.tracker }

// generateRequest is the wire shape of POST /api/generate.
type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// generateResponse is the non-streaming reply of POST /api/generate.
type generateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	PromptEvalCount int64  `json:"prompt_eval_count"`
	EvalCount       int64  `json:"eval_count"`
	TotalDuration   int64  `json:"total_duration"`
}

// Generate implements Runner over the /api/generate endpoint.
func (c *OllamaClient) Generate(ctx context.Context, req Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return nil, fmt.Errorf("ollama: no model configured")
	}

	wire := generateRequest{
		Model:  model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		wire.Options = map[string]any{}
		if req.Temperature != 0 {
			wire.Options["temperature"] = req.Temperature
		}
		if req.MaxTokens != 0 {
			wire.Options["num_predict"] = req.MaxTokens
		}
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("ollama: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Backend: "ollama", Code: resp.StatusCode, Body: string(snippet)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}

	c.tracker.Add(out.PromptEvalCount, out.EvalCount)

	return &Response{
		Text:         out.Response,
		Model:        out.Model,
		InputTokens:  out.PromptEvalCount,
		OutputTokens: out.EvalCount,
		Duration:     time.Since(start),
	}, nil
}

// Models lists the models available on the server via GET /api/tags.
func (c *OllamaClient) Models(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: build request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Backend: "ollama", Code: resp.StatusCode}
	}

	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ollama: decode model list: %w", err)
	}

	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
