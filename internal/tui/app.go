// Package tui provides the FedScout terminal dashboard: researcher
// status, recent run history, and an interactive research prompt.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ebarkley/fedscout/internal/research"
	"github.com/ebarkley/fedscout/internal/state"
	"github.com/ebarkley/fedscout/pkg/models"
)

// Tab constants for navigation.
const (
	TabAgents = iota
	TabRuns
	TabAsk

	tabCount
)

const runHistoryLimit = 25

// tickMsg drives the periodic run-history refresh.
type tickMsg time.Time

// runsLoadedMsg delivers a run-history snapshot.
type runsLoadedMsg struct {
	runs []*models.Run
	err  error
}

// reportMsg delivers the result of an interactive research request.
type reportMsg struct {
	report *models.Report
	err    error
}

// App is the main bubbletea model for the FedScout dashboard.
type App struct {
	registry *research.Registry
	store    *state.DB
	refresh  time.Duration

	currentTab int
	services   []models.Service
	selected   int
	runs       []*models.Run
	input      textinput.Model
	report     *models.Report
	busy       bool
	lastErr    error
	width      int
	height     int
	quitting   bool
}

// New creates the dashboard model. The store may be nil; the runs tab
// then shows a hint instead of history.
func New(registry *research.Registry, store *state.DB, refresh time.Duration) *App {
	ti := textinput.New()
	ti.Placeholder = "Describe a task and press Enter..."
	ti.CharLimit = 500
	ti.Width = 60

	if refresh <= 0 {
		refresh = time.Second
	}

	services := make([]models.Service, 0)
	for _, r := range registry.List() {
		services = append(services, r.Service())
	}

	return &App{
		registry: registry,
		store:    store,
		refresh:  refresh,
		services: services,
		input:    ti,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tick(), a.loadRuns())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 8

	case tickMsg:
		return a, tea.Batch(a.tick(), a.loadRuns())

	case runsLoadedMsg:
		if msg.err != nil {
			a.lastErr = msg.err
		} else {
			a.runs = msg.runs
		}

	case reportMsg:
		a.busy = false
		if msg.err != nil {
			a.lastErr = msg.err
		} else {
			a.report = msg.report
			a.lastErr = nil
		}
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit
	case "tab":
		a.currentTab = (a.currentTab + 1) % tabCount
		if a.currentTab == TabAsk {
			return a, a.input.Focus()
		}
		a.input.Blur()
		return a, nil
	}

	if a.currentTab != TabAsk {
		switch msg.String() {
		case "q":
			a.quitting = true
			return a, tea.Quit
		case "1":
			a.currentTab = TabAgents
		case "2":
			a.currentTab = TabRuns
		case "3":
			a.currentTab = TabAsk
			return a, a.input.Focus()
		}
		return a, nil
	}

	switch msg.String() {
	case "left":
		a.selected = (a.selected + len(a.services) - 1) % len(a.services)
		return a, nil
	case "right":
		a.selected = (a.selected + 1) % len(a.services)
		return a, nil
	case "enter":
		task := a.input.Value()
		if task == "" || a.busy {
			return a, nil
		}
		a.input.Reset()
		a.busy = true
		return a, a.runResearch(a.services[a.selected], task)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// tick schedules the next refresh.
func (a *App) tick() tea.Cmd {
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadRuns fetches recent run history from the store.
func (a *App) loadRuns() tea.Cmd {
	if a.store == nil {
		return nil
	}
	store := a.store
	return func() tea.Msg {
		runs, err := store.RecentRuns(runHistoryLimit)
		return runsLoadedMsg{runs: runs, err: err}
	}
}

// runResearch executes one research request off the UI loop.
func (a *App) runResearch(service models.Service, task string) tea.Cmd {
	registry := a.registry
	return func() tea.Msg {
		researcher, err := registry.Get(service)
		if err != nil {
			return reportMsg{err: err}
		}
		report, err := researcher.Research(context.Background(), task)
		if err != nil {
			return reportMsg{err: fmt.Errorf("research %s: %w", service, err)}
		}
		return reportMsg{report: report}
	}
}

// Run starts the dashboard.
func Run(registry *research.Registry, store *state.DB, refresh time.Duration) error {
	p := tea.NewProgram(New(registry, store, refresh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
