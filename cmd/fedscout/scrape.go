package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/scrape"
	"github.com/ebarkley/fedscout/pkg/models"
)

var (
	scrapeDelay    time.Duration
	scrapeMaxPages int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <service> <url>...",
	Short: "Harvest provider documentation into the local cache",
	Long: `Fetch documentation pages for a service, distill them to clean
text, and store them as markdown under the docs cache directory.

Pages are fetched one at a time with a fixed delay between requests.
Pages that are too short or not in English are dropped. A manifest
recording the harvest time and TTL is written alongside the pages.

Examples:
  fedscout scrape payments https://docs.stripe.com/webhooks
  fedscout scrape jobsearch --delay 5s https://developer.usajobs.gov/api-reference`,
	Args: cobra.MinimumNArgs(2),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().DurationVar(&scrapeDelay, "delay", 0, "Override the delay between page fetches")
	scrapeCmd.Flags().IntVar(&scrapeMaxPages, "max-pages", 0, "Override the page cap for this run")
}

func runScrape(cmd *cobra.Command, args []string) error {
	service, err := parseService(args[0])
	if err != nil {
		return err
	}
	urls := args[1:]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	delay := cfg.Scrape.Delay
	if scrapeDelay > 0 {
		delay = scrapeDelay
	}
	maxPages := cfg.Scrape.MaxPages
	if scrapeMaxPages > 0 {
		maxPages = scrapeMaxPages
	}

	db, err := openStateDB()
	if err != nil {
		printStatus("⚠", fmt.Sprintf("run history unavailable: %v", err), color.FgYellow)
		db = nil
	} else {
		defer db.Close()
	}
	runID := startRun(db, models.RunScrape, service, "")

	harvester := scrape.NewHarvester(scrape.Config{
		Dir:      cfg.Docs.CacheDir,
		Delay:    delay,
		MaxPages: maxPages,
		MinWords: cfg.Scrape.MinWords,
		TTLDays:  cfg.Docs.TTLDays,
	})

	result, err := harvester.Harvest(cmd.Context(), service, urls)
	if err != nil {
		finishRun(db, runID, "", 0, err)
		return err
	}
	finishRun(db, runID, result.Manifest, 0, nil)

	printStatus("✓", fmt.Sprintf("kept %d of %d fetched pages (%d skipped)",
		result.Kept, result.Fetched, result.Skipped), color.FgGreen)
	printStatus("✓", "manifest written to "+result.Manifest, color.FgGreen)
	return nil
}
