package models

import "time"

// Report is the result of a research run. It is rendered once to markdown
// and never read back programmatically.
type Report struct {
	// ID is the unique identifier for this report.
	ID string `json:"id"`
	// Service is the external service this report covers.
	Service Service `json:"service"`
	// Task is the task description that was researched.
	Task string `json:"task"`
	// Category is the classification bucket the task matched.
	Category string `json:"category"`
	// Confidence is the classifier's confidence in the category (0.0-1.0).
	Confidence float64 `json:"confidence"`
	// CriticalRequirements lists requirements that must hold for any
	// implementation of the task.
	CriticalRequirements []string `json:"critical_requirements"`
	// Plan is the ordered implementation plan.
	Plan []PlanSection `json:"implementation_plan"`
	// CodeTemplates maps template names to code snippets.
	CodeTemplates map[string]string `json:"code_templates,omitempty"`
	// ModelNotes contains optional enrichment from the model runner.
	ModelNotes string `json:"model_notes,omitempty"`
	// TokensUsed is the number of model tokens consumed, if any.
	TokensUsed int64 `json:"tokens_used,omitempty"`
	// CreatedAt is when the research run completed.
	CreatedAt time.Time `json:"created_at"`
}

// PlanSection is one titled step group of an implementation plan.
type PlanSection struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}
