package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ebarkley/fedscout/internal/research"
	"github.com/ebarkley/fedscout/pkg/models"
)

func testApp(t *testing.T) *App {
	t.Helper()
	registry, err := research.NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	return New(registry, nil, time.Second)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuitKeys(t *testing.T) {
	app := testApp(t)
	_, cmd := app.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestTabCycling(t *testing.T) {
	app := testApp(t)
	if app.currentTab != TabAgents {
		t.Fatalf("initial tab = %d", app.currentTab)
	}

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	if app.currentTab != TabRuns {
		t.Errorf("after tab, currentTab = %d, want %d", app.currentTab, TabRuns)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	if app.currentTab != TabAsk {
		t.Errorf("after second tab, currentTab = %d, want %d", app.currentTab, TabAsk)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	if app.currentTab != TabAgents {
		t.Errorf("tab did not wrap, currentTab = %d", app.currentTab)
	}
}

func TestRunsLoadedUpdatesHistory(t *testing.T) {
	app := testApp(t)
	completed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []*models.Run{{
		ID:          "r1",
		Kind:        models.RunResearch,
		Service:     models.ServicePayments,
		Category:    "webhook",
		TokensUsed:  120,
		StartedAt:   completed.Add(-time.Minute),
		CompletedAt: &completed,
	}}

	model, _ := app.Update(runsLoadedMsg{runs: runs})
	app = model.(*App)
	if len(app.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(app.runs))
	}

	row := formatRunRow(app.runs[0])
	for _, want := range []string{"research", "payments", "webhook", "120", "done"} {
		if !strings.Contains(row, want) {
			t.Errorf("run row %q missing %q", row, want)
		}
	}
}

func TestReportMsgClearsBusy(t *testing.T) {
	app := testApp(t)
	app.busy = true

	report := &models.Report{
		Service:  models.ServiceOAuth,
		Category: "login",
		Plan:     []models.PlanSection{{Title: "Start the flow", Steps: []string{"generate state"}}},
	}
	model, _ := app.Update(reportMsg{report: report})
	app = model.(*App)

	if app.busy {
		t.Error("busy still set after report")
	}
	if app.report != report {
		t.Error("report not stored")
	}

	view := renderReportSummary(report)
	if !strings.Contains(view, "Start the flow") || !strings.Contains(view, "generate state") {
		t.Errorf("summary missing plan content: %q", view)
	}
}

func TestViewShowsAgents(t *testing.T) {
	app := testApp(t)
	view := app.View()
	for _, svc := range models.AllServices() {
		if !strings.Contains(view, string(svc)) {
			t.Errorf("agents view missing %s", svc)
		}
	}
}
