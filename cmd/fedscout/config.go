package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		fmt.Printf("%s\n", bold.Sprint("ollama"))
		fmt.Printf("  host: %s\n  model: %s\n  timeout: %s\n", cfg.Ollama.Host, cfg.Ollama.Model, cfg.Ollama.Timeout)

		fmt.Printf("%s\n", bold.Sprint("anthropic"))
		key := "unset"
		if cfg.Anthropic.APIKey != "" {
			key = "set"
		}
		fmt.Printf("  api_key: %s\n  model: %s\n  use_bedrock: %v\n", key, cfg.Anthropic.Model, cfg.Anthropic.UseBedrock)

		fmt.Printf("%s\n", bold.Sprint("outputs"))
		fmt.Printf("  dir: %s\n", cfg.Outputs.Dir)

		fmt.Printf("%s\n", bold.Sprint("docs"))
		fmt.Printf("  cache_dir: %s\n  ttl_days: %d\n  watch: %v\n", cfg.Docs.CacheDir, cfg.Docs.TTLDays, cfg.Docs.Watch)

		fmt.Printf("%s\n", bold.Sprint("scrape"))
		fmt.Printf("  delay: %s\n  max_pages: %d\n  min_words: %d\n", cfg.Scrape.Delay, cfg.Scrape.MaxPages, cfg.Scrape.MinWords)

		fmt.Printf("%s\n", bold.Sprint("server"))
		fmt.Printf("  host: %s\n  port: %d\n", cfg.Server.Host, cfg.Server.Port)

		fmt.Printf("%s\n", bold.Sprint("dash"))
		fmt.Printf("  refresh_rate: %s\n", cfg.Dash.RefreshRate)

		fmt.Println()
		fmt.Printf("user config: %s\n", config.GetUserConfigPath())
		if project := config.GetProjectConfigPath(); project != "" {
			fmt.Printf("project config: %s\n", project)
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the user config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		printStatus("✓", "wrote "+config.GetUserConfigPath(), color.FgGreen)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
