package main

import (
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/internal/research"
	"github.com/ebarkley/fedscout/internal/state"
	"github.com/ebarkley/fedscout/pkg/models"
)

// printStatus prints a colored status symbol with a message.
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

// buildOllamaRunner creates the default model runner with retries.
func buildOllamaRunner(cfg *config.Config) llm.Runner {
	client := llm.NewOllamaClient(llm.OllamaConfig{
		Host:    cfg.Ollama.Host,
		Model:   cfg.Ollama.Model,
		Timeout: cfg.Ollama.Timeout,
	})
	return llm.WithRetry(client, llm.DefaultRetryConfig())
}

// buildClaudeRunner creates the optional Anthropic runner. Returns nil
// when no credentials are configured.
func buildClaudeRunner(cfg *config.Config) llm.Runner {
	if cfg.Anthropic.APIKey == "" && !cfg.Anthropic.UseBedrock {
		return nil
	}
	client, err := llm.NewClaudeClient(llm.ClaudeConfig{
		Model:         cfg.Anthropic.Model,
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		log.Printf("[cli] claude runner unavailable: %v", err)
		return nil
	}
	return llm.WithRetry(client, llm.DefaultRetryConfig())
}

// buildRegistry constructs the researcher registry, optionally with a
// model runner for plan enrichment.
func buildRegistry(runner llm.Runner) (*research.Registry, error) {
	registry, err := research.NewRegistry(runner)
	if err != nil {
		return nil, fmt.Errorf("build researchers: %w", err)
	}
	return registry, nil
}

// openStateDB opens and migrates the run-history database.
func openStateDB() (*state.DB, error) {
	db, err := state.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate run history: %w", err)
	}
	return db, nil
}

// startRun records the beginning of a run. History is advisory: a nil
// db or an insert failure yields an empty id and no error.
func startRun(db *state.DB, kind models.RunKind, service models.Service, category string) string {
	if db == nil {
		return ""
	}
	run := &models.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Service:   service,
		Category:  category,
		StartedAt: time.Now().UTC(),
	}
	if err := db.RecordRun(run); err != nil {
		log.Printf("[cli] record run: %v", err)
		return ""
	}
	return run.ID
}

// finishRun marks a run complete.
func finishRun(db *state.DB, id, outputPath string, tokens int64, runErr error) {
	if db == nil || id == "" {
		return
	}
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	if err := db.CompleteRun(id, outputPath, tokens, msg); err != nil {
		log.Printf("[cli] complete run: %v", err)
	}
}

// parseService validates a service argument.
func parseService(arg string) (models.Service, error) {
	service := models.Service(arg)
	if !service.Valid() {
		return "", fmt.Errorf("unknown service %q (valid: %v)", arg, models.AllServices())
	}
	return service, nil
}
