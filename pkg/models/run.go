package models

import "time"

// RunKind distinguishes the kinds of recorded runs.
type RunKind string

const (
	// RunResearch is a research run producing a markdown report.
	RunResearch RunKind = "research"
	// RunReview is a review run scoring an implementation.
	RunReview RunKind = "review"
	// RunScrape is a documentation harvest run.
	RunScrape RunKind = "scrape"
)

// Valid returns true if the kind is a known value.
func (k RunKind) Valid() bool {
	switch k {
	case RunResearch, RunReview, RunScrape:
		return true
	default:
		return false
	}
}

// Run is one recorded research, review, or scrape execution.
type Run struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// Kind is the kind of run.
	Kind RunKind `json:"kind"`
	// Service is the service the run targeted.
	Service Service `json:"service"`
	// Category is the classification bucket, for research runs.
	Category string `json:"category,omitempty"`
	// Score is the review score, for review runs.
	Score int `json:"score,omitempty"`
	// OutputPath is the path of the written artifact, if any.
	OutputPath string `json:"output_path,omitempty"`
	// TokensUsed is the number of model tokens consumed.
	TokensUsed int64 `json:"tokens_used,omitempty"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// CompletedAt is when the run finished, if it has.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	// Error holds the failure message for runs that did not complete.
	Error string `json:"error,omitempty"`
}
