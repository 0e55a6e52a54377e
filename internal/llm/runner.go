// Package llm provides clients for the model runners FedScout calls:
// a local Ollama server and, optionally, the Anthropic API.
package llm

import (
	"context"
	"time"
)

// Request describes one generation call to a model runner.
type Request struct {
	// Model is the runner-specific model name. Empty selects the
	// client's configured default.
	Model string
	// Prompt is the user prompt.
	Prompt string
	// System is the optional system prompt.
	System string
	// Temperature controls sampling randomness. Zero means the runner's
	// default.
	Temperature float64
	// MaxTokens caps the generated output. Zero means the client default.
	MaxTokens int
}

// Response is the result of one generation call.
type Response struct {
	// Text is the generated completion.
	Text string
	// Model is the model that produced the completion.
	Model string
	// InputTokens and OutputTokens are the runner-reported token counts.
	InputTokens  int64
	OutputTokens int64
	// Duration is the wall-clock time of the call.
	Duration time.Duration
}

// Runner is a model inference backend.
type Runner interface {
	// Name identifies the backend ("ollama", "claude").
	Name() string
	// Generate runs one completion. It honors ctx cancellation.
	Generate(ctx context.Context, req Request) (*Response, error)
}
