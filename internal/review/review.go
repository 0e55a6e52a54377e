// Package review scores implementations against per-service check sets.
//
// A check set is a fixed, ordered list of substring or regexp presence
// checks. Each failed check subtracts its weight from a starting score of
// 100 and appends a message; compliance means no critical check failed.
// Checks always run in declaration order so review output is deterministic.
package review

import (
	"regexp"
	"strings"
	"time"

	"github.com/ebarkley/fedscout/pkg/models"
)

// Check is a single presence (or absence) test against an implementation.
type Check struct {
	// Name identifies the check in passed/failed listings.
	Name string
	// Substring, when set, is the literal text the check looks for.
	Substring string
	// Pattern, when set, is the regexp the check looks for. Substring
	// takes precedence if both are set.
	Pattern *regexp.Regexp
	// Forbid inverts the check: finding the text is the failure.
	Forbid bool
	// Weight is subtracted from the score when the check fails.
	Weight int
	// Critical marks checks whose failure makes the result non-compliant.
	Critical bool
	// Message is the violation or warning text emitted on failure.
	Message string
}

// found reports whether the check's text occurs in the code.
func (c Check) found(code string) bool {
	if c.Substring != "" {
		return strings.Contains(code, c.Substring)
	}
	if c.Pattern != nil {
		return c.Pattern.MatchString(code)
	}
	return false
}

// failed reports whether the check fails for the given code.
func (c Check) failed(code string) bool {
	if c.Forbid {
		return c.found(code)
	}
	return !c.found(code)
}

// CheckSet is the ordered list of checks for one service.
type CheckSet struct {
	// Service is the service the checks belong to.
	Service models.Service
	// Checks run in order.
	Checks []Check
}

// Review scans the code with every check and produces a scored result.
// Empty code fails every presence check, which is intentional: reviewing
// nothing is maximally non-compliant.
func (cs CheckSet) Review(code string) *models.Review {
	result := &models.Review{
		Service:    cs.Service,
		Score:      100,
		Violations: []string{},
		Warnings:   []string{},
		Passed:     []string{},
		CreatedAt:  time.Now().UTC(),
	}

	criticalFailed := false
	for _, check := range cs.Checks {
		if !check.failed(code) {
			result.Passed = append(result.Passed, check.Name)
			continue
		}

		result.Score -= check.Weight
		if check.Critical {
			criticalFailed = true
			result.Violations = append(result.Violations, check.Message)
		} else {
			result.Warnings = append(result.Warnings, check.Message)
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}
	result.Compliant = !criticalFailed

	return result
}
