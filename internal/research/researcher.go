// Package research implements the per-service researchers. A researcher
// classifies a task with its keyword rules, renders the matching
// knowledge bucket into a report, and can optionally enrich the report
// through a model runner.
package research

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ebarkley/fedscout/internal/classify"
	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/pkg/models"
)

// Researcher answers research tasks for one external service.
// Knowledge is injected at construction; the researcher itself does no
// I/O beyond the optional model call.
type Researcher struct {
	service   models.Service
	rules     classify.RuleSet
	knowledge Knowledge
	runner    llm.Runner
	enrich    EnrichFunc
}

// EnrichFunc lets service-specific researchers add computed content to a
// report before it is returned (the salary researcher adds pay table
// rows this way).
type EnrichFunc func(ctx context.Context, report *models.Report) error

// Option customizes researcher construction.
type Option func(*Researcher)

// WithRunner attaches a model runner used to append model notes.
func WithRunner(runner llm.Runner) Option {
	return func(r *Researcher) {
		r.runner = runner
	}
}

// WithEnrich attaches a post-render enrichment hook.
func WithEnrich(fn EnrichFunc) Option {
	return func(r *Researcher) {
		r.enrich = fn
	}
}

// New creates a researcher for a service from its rules and knowledge.
func New(service models.Service, rules classify.RuleSet, knowledge Knowledge, opts ...Option) *Researcher {
	r := &Researcher{
		service:   service,
		rules:     rules,
		knowledge: knowledge,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Service returns the service this researcher covers.
func (r *Researcher) Service() models.Service { return r.service }

// Categories returns the buckets this researcher can classify into.
func (r *Researcher) Categories() []string { return r.rules.Categories() }

// Research classifies the task, renders the matching knowledge bucket,
// and returns the report. A bucket missing from the knowledge base
// yields a report with only the critical requirements, not an error.
func (r *Researcher) Research(ctx context.Context, task string) (*models.Report, error) {
	if task == "" {
		return nil, fmt.Errorf("research %s: empty task", r.service)
	}

	selection := r.rules.Classify(task)

	report := &models.Report{
		ID:                   uuid.NewString(),
		Service:              r.service,
		Task:                 task,
		Category:             selection.Category,
		Confidence:           selection.Confidence,
		CriticalRequirements: r.knowledge.CriticalRequirements,
		CreatedAt:            time.Now().UTC(),
	}

	bucket, ok := r.knowledge.Buckets[selection.Category]
	if !ok {
		log.Printf("[research] %s: no knowledge bucket for %q, returning requirements only", r.service, selection.Category)
		return report, nil
	}

	report.Plan = bucket.planSections()
	if len(bucket.Templates) > 0 {
		report.CodeTemplates = bucket.Templates
	}

	if r.enrich != nil {
		if err := r.enrich(ctx, report); err != nil {
			return nil, fmt.Errorf("enrich %s report: %w", r.service, err)
		}
	}

	if r.runner != nil && bucket.Prompt != "" {
		if err := r.addModelNotes(ctx, report, bucket.Prompt); err != nil {
			// Model enrichment is best-effort: the static report is
			// still useful when the runner is down.
			log.Printf("[research] %s: model notes skipped: %v", r.service, err)
		}
	}

	return report, nil
}

// addModelNotes asks the model runner for service-specific notes on the
// task and records the token cost on the report.
func (r *Researcher) addModelNotes(ctx context.Context, report *models.Report, prompt string) error {
	resp, err := r.runner.Generate(ctx, llm.Request{
		System:      prompt,
		Prompt:      report.Task,
		Temperature: 0.2,
	})
	if err != nil {
		return err
	}
	report.ModelNotes = resp.Text
	report.TokensUsed = resp.InputTokens + resp.OutputTokens
	return nil
}
