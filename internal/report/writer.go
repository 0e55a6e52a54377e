// Package report renders research and review results to markdown files.
// Reports are write-once artifacts: nothing in FedScout reads them back.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ebarkley/fedscout/pkg/models"
)

// timestampLayout matches the original report naming scheme.
const timestampLayout = "20060102_150405"

// Writer writes markdown artifacts under a research output directory.
type Writer struct {
	dir   string
	clock func() time.Time
}

// NewWriter creates a Writer rooted at dir. Reports land in dir/tasks.
func NewWriter(dir string) *Writer {
	return &Writer{
		dir:   dir,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source, for tests.
func (w *Writer) WithClock(clock func() time.Time) *Writer {
	w.clock = clock
	return w
}

// WriteResearch renders the report to
// {dir}/tasks/{service}_research_{timestamp}.md and returns the path.
func (w *Writer) WriteResearch(r *models.Report) (string, error) {
	name := fmt.Sprintf("%s_research_%s.md", r.Service, w.clock().Format(timestampLayout))
	return w.write(name, renderResearch(r))
}

// WriteReview renders the review to
// {dir}/tasks/{service}_review_{timestamp}.md and returns the path.
func (w *Writer) WriteReview(rev *models.Review, target string) (string, error) {
	name := fmt.Sprintf("%s_review_%s.md", rev.Service, w.clock().Format(timestampLayout))
	return w.write(name, renderReview(rev, target))
}

func (w *Writer) write(name string, content string) (string, error) {
	dir := filepath.Join(w.dir, "tasks")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// renderResearch produces the markdown body for a research report.
func renderResearch(r *models.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s research report\n\n", r.Service))
	sb.WriteString(fmt.Sprintf("**Task**: %s\n\n", r.Task))
	sb.WriteString(fmt.Sprintf("**Category**: %s (confidence %.2f)\n\n", r.Category, r.Confidence))
	sb.WriteString(fmt.Sprintf("**Generated**: %s\n\n", r.CreatedAt.Format(time.RFC3339)))

	if len(r.CriticalRequirements) > 0 {
		sb.WriteString("## Critical requirements\n\n")
		for _, req := range r.CriticalRequirements {
			sb.WriteString(fmt.Sprintf("- %s\n", req))
		}
		sb.WriteString("\n")
	}

	if len(r.Plan) > 0 {
		sb.WriteString("## Implementation plan\n\n")
		for _, section := range r.Plan {
			sb.WriteString(fmt.Sprintf("### %s\n\n", section.Title))
			for i, step := range section.Steps {
				sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
			}
			sb.WriteString("\n")
		}
	}

	if len(r.CodeTemplates) > 0 {
		sb.WriteString("## Code templates\n\n")
		for _, name := range sortedKeys(r.CodeTemplates) {
			sb.WriteString(fmt.Sprintf("### %s\n\n", name))
			sb.WriteString("```\n")
			sb.WriteString(strings.TrimRight(r.CodeTemplates[name], "\n"))
			sb.WriteString("\n```\n\n")
		}
	}

	if r.ModelNotes != "" {
		sb.WriteString("## Model notes\n\n")
		sb.WriteString(r.ModelNotes)
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderReview produces the markdown body for a review report.
func renderReview(rev *models.Review, target string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s review report\n\n", rev.Service))
	if target != "" {
		sb.WriteString(fmt.Sprintf("**Target**: %s\n\n", target))
	}
	verdict := "NON-COMPLIANT"
	if rev.Compliant {
		verdict = "COMPLIANT"
	}
	sb.WriteString(fmt.Sprintf("**Verdict**: %s (score %d/100)\n\n", verdict, rev.Score))
	sb.WriteString(fmt.Sprintf("**Generated**: %s\n\n", rev.CreatedAt.Format(time.RFC3339)))

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", title))
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("- %s\n", item))
		}
		sb.WriteString("\n")
	}
	writeList("Violations", rev.Violations)
	writeList("Warnings", rev.Warnings)
	writeList("Passed checks", rev.Passed)

	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
