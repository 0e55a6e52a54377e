package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/internal/report"
	"github.com/ebarkley/fedscout/pkg/models"
)

var (
	researchNoModel bool
	researchOutput  string
)

var researchCmd = &cobra.Command{
	Use:   "research <service> <task>",
	Short: "Run a research agent on a task",
	Long: `Run the research agent for a service against a task description.

The agent classifies the task into a category, renders an implementation
plan with critical requirements and code templates, and writes the
report to the research output directory. When an Ollama server is
reachable, the plan is enriched with model notes.

Examples:
  fedscout research payments "handle webhook events from the provider"
  fedscout research salary "what does a GS-12 step 5 earn in DC"
  fedscout research oauth --no-model "add a login flow"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().BoolVar(&researchNoModel, "no-model", false, "Skip model enrichment")
	researchCmd.Flags().StringVarP(&researchOutput, "output", "o", "", "Override the report output directory")
}

func runResearch(cmd *cobra.Command, args []string) error {
	service, err := parseService(args[0])
	if err != nil {
		return err
	}
	task := strings.Join(args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var runner llm.Runner
	if !researchNoModel {
		runner = buildOllamaRunner(cfg)
	}
	registry, err := buildRegistry(runner)
	if err != nil {
		return err
	}
	researcher, err := registry.Get(service)
	if err != nil {
		return err
	}

	db, err := openStateDB()
	if err != nil {
		printStatus("⚠", fmt.Sprintf("run history unavailable: %v", err), color.FgYellow)
		db = nil
	} else {
		defer db.Close()
	}
	runID := startRun(db, models.RunResearch, service, "")

	rep, err := researcher.Research(cmd.Context(), task)
	if err != nil {
		finishRun(db, runID, "", 0, err)
		return err
	}

	outDir := cfg.Outputs.Dir
	if researchOutput != "" {
		outDir = researchOutput
	}
	path, err := report.NewWriter(outDir).WriteResearch(rep)
	if err != nil {
		finishRun(db, runID, "", rep.TokensUsed, err)
		return err
	}
	finishRun(db, runID, path, rep.TokensUsed, nil)

	printStatus("✓", fmt.Sprintf("classified as %s (confidence %.2f)", rep.Category, rep.Confidence), color.FgGreen)
	for _, section := range rep.Plan {
		fmt.Printf("  %s: %d steps\n", section.Title, len(section.Steps))
	}
	if rep.ModelNotes != "" {
		printStatus("✓", fmt.Sprintf("model notes added (%d tokens)", rep.TokensUsed), color.FgGreen)
	}
	printStatus("✓", "report written to "+path, color.FgGreen)
	return nil
}
