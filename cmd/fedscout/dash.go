package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/internal/tui"
)

var dashNoModel bool

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the terminal dashboard",
	Long: `Open the interactive dashboard: researcher status, run history
refreshed from the local database, and a prompt for submitting research
tasks directly.`,
	RunE: runDash,
}

func init() {
	dashCmd.Flags().BoolVar(&dashNoModel, "no-model", false, "Skip model enrichment for dashboard research")
}

func runDash(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var runner llm.Runner
	if !dashNoModel {
		runner = buildOllamaRunner(cfg)
	}
	registry, err := buildRegistry(runner)
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

	return tui.Run(registry, db, cfg.Dash.RefreshRate)
}
