package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{
			Model:           gotReq.Model,
			Response:        "use Fields=Full on every search call",
			PromptEvalCount: 42,
			EvalCount:       17,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(OllamaConfig{Host: srv.URL, Model: "llama3.1:8b"})
	resp, err := client.Generate(context.Background(), Request{
		Prompt:      "how do I get full job descriptions?",
		System:      "you are a research assistant",
		Temperature: 0.2,
		MaxTokens:   256,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if gotReq.Model != "llama3.1:8b" {
		t.Errorf("request model = %q, want configured default", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("request asked for streaming")
	}
	if gotReq.Options["temperature"] != 0.2 {
		t.Errorf("options temperature = %v", gotReq.Options["temperature"])
	}
	if resp.Text != "use Fields=Full on every search call" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.InputTokens != 42 || resp.OutputTokens != 17 {
		t.Errorf("tokens = %d/%d, want 42/17", resp.InputTokens, resp.OutputTokens)
	}

	in, out := client.Tracker().Total()
	if in != 42 || out != 17 {
		t.Errorf("tracker = %d/%d, want 42/17", in, out)
	}
}

func TestOllamaGenerateNoModel(t *testing.T) {
	client := NewOllamaClient(OllamaConfig{Host: "http://localhost:0"})
	if _, err := client.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("Generate with no model returned nil error")
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllamaClient(OllamaConfig{Host: srv.URL, Model: "llama3.1:8b"})
	_, err := client.Generate(context.Background(), Request{Prompt: "x"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d, want 500", statusErr.Code)
	}
	if !statusErr.Retryable() {
		t.Error("500 should be retryable")
	}
}

func TestOllamaModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.1:8b"},{"name":"mistral:7b"}]}`))
	}))
	defer srv.Close()

	client := NewOllamaClient(OllamaConfig{Host: srv.URL})
	models, err := client.Models(context.Background())
	if err != nil {
		t.Fatalf("Models error: %v", err)
	}
	if len(models) != 2 || models[0] != "llama3.1:8b" || models[1] != "mistral:7b" {
		t.Errorf("Models = %v", models)
	}
}
