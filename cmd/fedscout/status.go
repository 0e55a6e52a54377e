package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/docs"
	"github.com/ebarkley/fedscout/internal/state"
	"github.com/ebarkley/fedscout/pkg/models"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent runs and documentation freshness",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 10, "Number of runs to show")
}

func runStatus(cmd *cobra.Command, args []string) error {
	dbPath := state.DefaultPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No runs recorded yet. Run 'fedscout research <service> <task>' to start.")
	} else {
		db, err := openStateDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.RecentRuns(statusLimit)
		if err != nil {
			return err
		}
		displayRuns(runs)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	displayDocs(cfg)
	return nil
}

func displayRuns(runs []*models.Run) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Println("Recent runs:")
	for _, run := range runs {
		label := fmt.Sprintf("%-8s %-10s", run.Kind, run.Service)
		if run.Category != "" {
			label += " " + run.Category
		}
		if run.Kind == models.RunReview {
			label += fmt.Sprintf(" score %d", run.Score)
		}

		elapsed := formatDuration(time.Since(run.StartedAt))
		switch {
		case run.Error != "":
			printStatus("✗", fmt.Sprintf("%s (%s ago): %s", label, elapsed, run.Error), color.FgRed)
		case run.CompletedAt == nil:
			printStatus("◐", fmt.Sprintf("%s (%s ago, incomplete)", label, elapsed), color.FgYellow)
		default:
			printStatus("✓", fmt.Sprintf("%s (%s ago)", label, elapsed), color.FgGreen)
		}
	}
}

func displayDocs(cfg *config.Config) {
	fmt.Println()
	fmt.Println("Documentation cache:")
	found := false
	for _, service := range models.AllServices() {
		manifest, err := docs.LoadManifest(docs.ManifestPath(cfg.Docs.CacheDir, string(service)))
		if err != nil {
			continue
		}
		found = true
		age := formatDuration(time.Since(manifest.LastUpdated))
		if manifest.Stale(time.Now()) {
			printStatus("⚠", fmt.Sprintf("%-10s %d pages, harvested %s ago (stale)", service, manifest.Pages, age), color.FgYellow)
		} else {
			printStatus("✓", fmt.Sprintf("%-10s %d pages, harvested %s ago", service, manifest.Pages, age), color.FgGreen)
		}
	}
	if !found {
		fmt.Println("  none harvested. Run 'fedscout scrape <service> <url>' to populate.")
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	days := int(d.Hours()) / 24
	return fmt.Sprintf("%dd", days)
}
