package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ebarkley/fedscout/internal/config"
	"github.com/ebarkley/fedscout/internal/report"
	"github.com/ebarkley/fedscout/internal/review"
	"github.com/ebarkley/fedscout/pkg/models"
)

var reviewOutput string

var errNonCompliant = errors.New("implementation is non-compliant")

var reviewCmd = &cobra.Command{
	Use:   "review <service> <file>",
	Short: "Review an implementation against service requirements",
	Long: `Score an implementation file against the per-service checklist.

Each failing check subtracts points from a starting score of 100.
Failing a critical check marks the implementation non-compliant
regardless of score. The full review is written to the research output
directory.

Examples:
  fedscout review payments ./webhook_handler.go
  fedscout review oauth ./login.py`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewOutput, "output", "o", "", "Override the report output directory")
}

func runReview(cmd *cobra.Command, args []string) error {
	service, err := parseService(args[0])
	if err != nil {
		return err
	}

	code, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read implementation: %w", err)
	}

	checks, err := review.ChecksFor(service)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
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

	started := time.Now().UTC()
	rev := checks.Review(string(code))

	outDir := cfg.Outputs.Dir
	if reviewOutput != "" {
		outDir = reviewOutput
	}
	path, err := report.NewWriter(outDir).WriteReview(rev, args[1])
	if err != nil {
		return err
	}

	if db != nil {
		completed := time.Now().UTC()
		run := &models.Run{
			ID:          uuid.NewString(),
			Kind:        models.RunReview,
			Service:     service,
			Score:       rev.Score,
			OutputPath:  path,
			StartedAt:   started,
			CompletedAt: &completed,
		}
		if err := db.RecordRun(run); err != nil {
			printStatus("⚠", fmt.Sprintf("record run: %v", err), color.FgYellow)
		}
	}

	if rev.Compliant {
		printStatus("✓", fmt.Sprintf("COMPLIANT (score %d/100)", rev.Score), color.FgGreen)
	} else {
		printStatus("✗", fmt.Sprintf("NON-COMPLIANT (score %d/100)", rev.Score), color.FgRed)
	}
	for _, v := range rev.Violations {
		printStatus("✗", v, color.FgRed)
	}
	for _, w := range rev.Warnings {
		printStatus("⚠", w, color.FgYellow)
	}
	fmt.Printf("%d checks passed, report written to %s\n", len(rev.Passed), path)

	if !rev.Compliant {
		// Returned rather than os.Exit so deferred cleanup runs;
		// Execute converts it to a nonzero exit for CI use.
		return errNonCompliant
	}
	return nil
}
