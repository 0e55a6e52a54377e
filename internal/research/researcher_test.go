package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/pkg/models"
)

type stubRunner struct {
	resp *llm.Response
	err  error

	lastSystem string
	calls      int
}

func (s *stubRunner) Name() string { return "stub" }

func (s *stubRunner) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	s.calls++
	s.lastSystem = req.System
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestKnowledgeCoversRuleCategories(t *testing.T) {
	for _, service := range models.AllServices() {
		knowledge, err := LoadKnowledge(service)
		if err != nil {
			t.Fatalf("LoadKnowledge(%s) error: %v", service, err)
		}
		if len(knowledge.CriticalRequirements) == 0 {
			t.Errorf("%s: no critical requirements", service)
		}
		for _, category := range RulesFor(service).Categories() {
			if _, ok := knowledge.Buckets[category]; !ok {
				t.Errorf("%s: no knowledge bucket for category %q", service, category)
			}
		}
	}
}

func TestResearchClassifiesAndRenders(t *testing.T) {
	tests := []struct {
		service  models.Service
		task     string
		category string
	}{
		{models.ServicePayments, "handle the provider webhook events", "webhook"},
		{models.ServicePayments, "build a checkout page", "checkout"},
		{models.ServiceOAuth, "refresh tokens before they expire", "refresh"},
		{models.ServiceJobSearch, "search for remote IT jobs", "search"},
		{models.ServiceDeploy, "the app crashes on startup", "troubleshoot"},
		{models.ServiceDeploy, "tell me something nice", "general"},
	}

	for _, tt := range tests {
		knowledge, err := LoadKnowledge(tt.service)
		if err != nil {
			t.Fatalf("LoadKnowledge(%s) error: %v", tt.service, err)
		}
		r := New(tt.service, RulesFor(tt.service), knowledge)

		report, err := r.Research(context.Background(), tt.task)
		if err != nil {
			t.Fatalf("Research(%q) error: %v", tt.task, err)
		}
		if report.Category != tt.category {
			t.Errorf("Research(%q) category = %q, want %q", tt.task, report.Category, tt.category)
		}
		if report.ID == "" {
			t.Errorf("Research(%q) report has no id", tt.task)
		}
		if len(report.Plan) == 0 {
			t.Errorf("Research(%q) report has empty plan", tt.task)
		}
		if len(report.CriticalRequirements) == 0 {
			t.Errorf("Research(%q) report has no critical requirements", tt.task)
		}
	}
}

func TestResearchRejectsEmptyTask(t *testing.T) {
	knowledge, err := LoadKnowledge(models.ServiceOAuth)
	if err != nil {
		t.Fatalf("LoadKnowledge error: %v", err)
	}
	r := New(models.ServiceOAuth, RulesFor(models.ServiceOAuth), knowledge)

	if _, err := r.Research(context.Background(), ""); err == nil {
		t.Error("Research with empty task returned nil error")
	}
}

func TestResearchAddsModelNotes(t *testing.T) {
	knowledge, err := LoadKnowledge(models.ServicePayments)
	if err != nil {
		t.Fatalf("LoadKnowledge error: %v", err)
	}
	runner := &stubRunner{resp: &llm.Response{
		Text:         "verify the signature first",
		InputTokens:  40,
		OutputTokens: 12,
	}}
	r := New(models.ServicePayments, RulesFor(models.ServicePayments), knowledge, WithRunner(runner))

	report, err := r.Research(context.Background(), "handle webhook events")
	if err != nil {
		t.Fatalf("Research error: %v", err)
	}
	if report.ModelNotes != "verify the signature first" {
		t.Errorf("ModelNotes = %q", report.ModelNotes)
	}
	if report.TokensUsed != 52 {
		t.Errorf("TokensUsed = %d, want 52", report.TokensUsed)
	}
	if !strings.Contains(runner.lastSystem, "webhook") {
		t.Errorf("runner system prompt = %q, want webhook guidance", runner.lastSystem)
	}
}

func TestResearchSurvivesRunnerFailure(t *testing.T) {
	knowledge, err := LoadKnowledge(models.ServicePayments)
	if err != nil {
		t.Fatalf("LoadKnowledge error: %v", err)
	}
	runner := &stubRunner{err: errors.New("connection refused")}
	r := New(models.ServicePayments, RulesFor(models.ServicePayments), knowledge, WithRunner(runner))

	report, err := r.Research(context.Background(), "handle webhook events")
	if err != nil {
		t.Fatalf("Research error: %v", err)
	}
	if report.ModelNotes != "" {
		t.Errorf("ModelNotes = %q, want empty after runner failure", report.ModelNotes)
	}
	if len(report.Plan) == 0 {
		t.Error("static plan missing after runner failure")
	}
}

func TestResearchEnrichFailureIsFatal(t *testing.T) {
	knowledge, err := LoadKnowledge(models.ServiceSalary)
	if err != nil {
		t.Fatalf("LoadKnowledge error: %v", err)
	}
	boom := errors.New("table unavailable")
	r := New(models.ServiceSalary, RulesFor(models.ServiceSalary), knowledge,
		WithEnrich(func(ctx context.Context, report *models.Report) error { return boom }))

	if _, err := r.Research(context.Background(), "what does a GS-12 earn"); !errors.Is(err, boom) {
		t.Errorf("Research error = %v, want wrapped enrich error", err)
	}
}

func TestRegistryBuildsAllServices(t *testing.T) {
	reg, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}

	list := reg.List()
	if len(list) != len(models.AllServices()) {
		t.Fatalf("List returned %d researchers, want %d", len(list), len(models.AllServices()))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Service() < list[i-1].Service() {
			t.Error("List not sorted by service")
		}
	}

	if _, err := reg.Get(models.ServiceOAuth); err != nil {
		t.Errorf("Get(oauth) error: %v", err)
	}
	if _, err := reg.Get(models.Service("nonexistent")); !errors.Is(err, ErrUnknownResearcher) {
		t.Errorf("Get(nonexistent) error = %v, want ErrUnknownResearcher", err)
	}
}

func TestSalaryResearcherAddsReferenceFigures(t *testing.T) {
	reg, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	r, err := reg.Get(models.ServiceSalary)
	if err != nil {
		t.Fatalf("Get(salary) error: %v", err)
	}

	report, err := r.Research(context.Background(), "what is the locality adjustment in washington")
	if err != nil {
		t.Fatalf("Research error: %v", err)
	}
	if report.Category != "locality" {
		t.Fatalf("category = %q, want locality", report.Category)
	}

	var figures *models.PlanSection
	for i := range report.Plan {
		if report.Plan[i].Title == "Reference figures" {
			figures = &report.Plan[i]
		}
	}
	if figures == nil {
		t.Fatal("no Reference figures section in salary report")
	}
	found := false
	for _, step := range figures.Steps {
		if strings.Contains(step, "DCB") {
			found = true
		}
	}
	if !found {
		t.Errorf("locality report lacks adjusted DCB figure: %v", figures.Steps)
	}
}
