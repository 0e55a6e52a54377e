package models

import "time"

// Review is the result of scanning an implementation against a service's
// check set. Checks run in declaration order so output is deterministic.
type Review struct {
	// Service is the external service whose checks were applied.
	Service Service `json:"service"`
	// Compliant is true when no critical check failed.
	Compliant bool `json:"compliant"`
	// Score starts at 100 and loses each failed check's weight, floored at 0.
	Score int `json:"score"`
	// Violations lists failed critical checks.
	Violations []string `json:"violations"`
	// Warnings lists failed non-critical checks.
	Warnings []string `json:"warnings"`
	// Passed lists checks that succeeded.
	Passed []string `json:"passed"`
	// CreatedAt is when the review completed.
	CreatedAt time.Time `json:"created_at"`
}
