package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/llm"
)

var initForce bool

const projectConfigTemplate = `# FedScout project configuration.
# Settings here override the user config in ~/.config/fedscout/.

ollama:
  host: http://localhost:11434
  model: llama3.1:8b

outputs:
  dir: research_outputs

docs:
  ttl_days: 7

scrape:
  delay: 2s
  max_pages: 50
`

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a FedScout project",
	Long: `Set up a directory for FedScout use.

Creates the research output directory and a .fedscout.yaml project
configuration template, and checks whether the configured model
backends are reachable from the environment.

Examples:
  fedscout init              # Initialize current directory
  fedscout init ./myproject  # Initialize specific directory
  fedscout init --force      # Overwrite an existing .fedscout.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing project configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	outputs := filepath.Join(dir, "research_outputs", "tasks")
	if err := os.MkdirAll(outputs, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	printStatus("✓", "created "+outputs, color.FgGreen)

	configPath := filepath.Join(dir, ".fedscout.yaml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		printStatus("⚠", configPath+" already exists (use --force to overwrite)", color.FgYellow)
	} else {
		if err := os.WriteFile(configPath, []byte(projectConfigTemplate), 0644); err != nil {
			return fmt.Errorf("write project config: %w", err)
		}
		printStatus("✓", "created "+configPath, color.FgGreen)
	}

	checkOllama(cmd)
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		printStatus("✓", "ANTHROPIC_API_KEY is set", color.FgGreen)
	} else {
		printStatus("⚠", "ANTHROPIC_API_KEY not set (compare runs Ollama only)", color.FgYellow)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  fedscout agents                     # list research agents")
	fmt.Println("  fedscout research payments \"...\"    # run a research task")
	fmt.Println("  fedscout dash                       # open the dashboard")
	return nil
}

// checkOllama verifies the configured Ollama server is reachable.
func checkOllama(cmd *cobra.Command) {
	cfg, err := config.Load()
	if err != nil {
		printStatus("⚠", fmt.Sprintf("config unreadable: %v", err), color.FgYellow)
		return
	}

	client := llm.NewOllamaClient(llm.OllamaConfig{
		Host:    cfg.Ollama.Host,
		Timeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	defer cancel()

	models, err := client.Models(ctx)
	if err != nil {
		printStatus("⚠", fmt.Sprintf("Ollama not reachable at %s (research runs without model notes)", cfg.Ollama.Host), color.FgYellow)
		return
	}
	printStatus("✓", fmt.Sprintf("Ollama reachable at %s (%d models)", cfg.Ollama.Host, len(models)), color.FgGreen)
}
