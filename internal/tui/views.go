package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ebarkley/fedscout/pkg/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("34"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	var content string
	switch a.currentTab {
	case TabAgents:
		content = a.viewAgents()
	case TabRuns:
		content = a.viewRuns()
	case TabAsk:
		content = a.viewAsk()
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", a.viewHeader(), content, a.viewFooter())
}

func (a *App) viewHeader() string {
	tabs := []string{"Agents", "Runs", "Ask"}
	var b strings.Builder
	b.WriteString(headerStyle.Render("FedScout"))
	b.WriteString("  ")
	for i, tab := range tabs {
		if i == a.currentTab {
			b.WriteString(activeTabStyle.Render("[" + tab + "]"))
		} else {
			b.WriteString(dimStyle.Render(" " + tab + " "))
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (a *App) viewAgents() string {
	var b strings.Builder
	for _, r := range a.registry.List() {
		fmt.Fprintf(&b, "  %-12s %s\n",
			r.Service(),
			dimStyle.Render(strings.Join(r.Categories(), ", ")))
	}
	return b.String()
}

func (a *App) viewRuns() string {
	if a.store == nil {
		return dimStyle.Render("  Run history disabled (no database)")
	}
	if len(a.runs) == 0 {
		return dimStyle.Render("  No runs recorded yet")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-10s %-12s %-14s %-10s %s",
		"KIND", "SERVICE", "CATEGORY", "TOKENS", "STATUS")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	for _, run := range a.runs {
		b.WriteString(formatRunRow(run))
		b.WriteString("\n")
	}
	return b.String()
}

// formatRunRow renders one run history line.
func formatRunRow(run *models.Run) string {
	status := dimStyle.Render("running")
	switch {
	case run.Error != "":
		status = failStyle.Render("failed: " + run.Error)
	case run.CompletedAt != nil:
		status = okStyle.Render("done " + run.CompletedAt.Format("15:04:05"))
	}
	return fmt.Sprintf("  %-10s %-12s %-14s %-10d %s",
		run.Kind, run.Service, run.Category, run.TokensUsed, status)
}

func (a *App) viewAsk() string {
	var b strings.Builder

	fmt.Fprintf(&b, "  Target: ")
	for i, svc := range a.services {
		if i == a.selected {
			b.WriteString(activeTabStyle.Render("[" + string(svc) + "]"))
		} else {
			b.WriteString(dimStyle.Render(" " + string(svc) + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n  ")
	b.WriteString(a.input.View())
	b.WriteString("\n")

	if a.busy {
		b.WriteString("\n  " + dimStyle.Render("researching..."))
	}
	if a.lastErr != nil {
		b.WriteString("\n  " + failStyle.Render(a.lastErr.Error()))
	}
	if a.report != nil {
		b.WriteString("\n")
		b.WriteString(renderReportSummary(a.report))
	}

	return b.String()
}

// renderReportSummary shows the headline of the last report.
func renderReportSummary(report *models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s/%s (confidence %.2f)\n",
		okStyle.Render("Report:"), report.Service, report.Category, report.Confidence)
	for _, section := range report.Plan {
		fmt.Fprintf(&b, "    %s\n", headerStyle.Render(section.Title))
		for _, step := range section.Steps {
			fmt.Fprintf(&b, "      - %s\n", step)
		}
	}
	if report.TokensUsed > 0 {
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(fmt.Sprintf("tokens: %d", report.TokensUsed)))
	}
	return b.String()
}

func (a *App) viewFooter() string {
	now := time.Now().Format("15:04:05")
	if a.currentTab == TabAsk {
		return dimStyle.Render(fmt.Sprintf("left/right select target | enter submit | tab switch | ctrl+c quit | %s", now))
	}
	return dimStyle.Render(fmt.Sprintf("1/2/3 or tab to switch | q to quit | refreshed %s", now))
}
