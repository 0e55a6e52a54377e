package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ebarkley/fedscout/pkg/models"
)

func fixedClock() func() time.Time {
	fixed := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	return func() time.Time { return fixed }
}

func TestWriteResearchNaming(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir).WithClock(fixedClock())

	path, err := w.WriteResearch(&models.Report{
		Service:  models.ServiceJobSearch,
		Task:     "search by series",
		Category: "search",
	})
	if err != nil {
		t.Fatalf("WriteResearch error: %v", err)
	}

	want := filepath.Join(dir, "tasks", "jobsearch_research_20250601_123045.md")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report file not written: %v", err)
	}
}

func TestWriteResearchContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir).WithClock(fixedClock())

	path, err := w.WriteResearch(&models.Report{
		Service:              models.ServicePayments,
		Task:                 "handle webhook retries",
		Category:             "webhook",
		Confidence:           0.85,
		CriticalRequirements: []string{"verify signatures", "respond within 5s"},
		Plan: []models.PlanSection{
			{Title: "Endpoint", Steps: []string{"register route", "verify signature"}},
		},
		CodeTemplates: map[string]string{
			"handler": "func handleWebhook() {}",
		},
		ModelNotes: "retries use exponential backoff",
		CreatedAt:  time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("WriteResearch error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	content := string(raw)

	for _, want := range []string{
		"# payments research report",
		"**Category**: webhook (confidence 0.85)",
		"- verify signatures",
		"### Endpoint",
		"1. register route",
		"### handler",
		"func handleWebhook() {}",
		"retries use exponential backoff",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q\n---\n%s", want, content)
		}
	}
}

func TestWriteReviewContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir).WithClock(fixedClock())

	path, err := w.WriteReview(&models.Review{
		Service:    models.ServiceOAuth,
		Compliant:  false,
		Score:      45,
		Violations: []string{"missing state parameter"},
		Warnings:   []string{"no refresh-token handling"},
		Passed:     []string{"pkce"},
		CreatedAt:  time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
	}, "auth/callback.go")
	if err != nil {
		t.Fatalf("WriteReview error: %v", err)
	}

	if !strings.HasSuffix(path, "oauth_review_20250601_123045.md") {
		t.Errorf("unexpected review path %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read review: %v", err)
	}
	content := string(raw)

	for _, want := range []string{
		"**Verdict**: NON-COMPLIANT (score 45/100)",
		"**Target**: auth/callback.go",
		"- missing state parameter",
		"- no refresh-token handling",
		"- pkce",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("review missing %q", want)
		}
	}
}
