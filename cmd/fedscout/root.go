package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fedscout",
	Short: "Research agents for federal service integrations",
	Long: `FedScout runs keyword-driven research agents for external service
integrations: federal pay tables, job search APIs, payments, OAuth, and
deployment platforms.

Each agent classifies a task, renders an implementation plan with
critical requirements and code templates, and can enrich the plan with
notes from a local Ollama model or the Anthropic API. Companion tools
review implementations against per-service checklists and harvest
provider documentation into a local cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
