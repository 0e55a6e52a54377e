// Package classify provides keyword-based task classification.
// Each researcher owns a RuleSet; rules are evaluated in declaration order
// and the first matching keyword wins, so list order is the only tie-break.
package classify

import "strings"

// Rule maps a set of keywords to a category bucket.
type Rule struct {
	// Category is the bucket selected when a keyword matches.
	Category string
	// Keywords are matched as lower-cased substrings of the task text,
	// in order.
	Keywords []string
	// Confidence is how confident a match on this rule is (0.0-1.0).
	Confidence float64
}

// RuleSet is an ordered list of rules plus a default bucket for tasks
// that match nothing.
type RuleSet struct {
	// Rules are evaluated in order; the first keyword match wins.
	Rules []Rule
	// Default is the bucket used when no keyword matches.
	Default string
	// DefaultConfidence is the confidence assigned to the default bucket.
	DefaultConfidence float64
}

// Selection is the outcome of classifying one task description.
type Selection struct {
	// Category is the selected bucket.
	Category string
	// Confidence is how confident the selection is (0.0-1.0).
	Confidence float64
	// MatchedKeyword is the keyword that triggered the selection, if any.
	MatchedKeyword string
	// Reason explains why this bucket was selected.
	Reason string
}

// Classify selects a bucket for the task. It lower-cases the text once,
// then runs each rule's keywords as ordered substring tests. Classification
// is deterministic and never fails: unmatched tasks land in the default
// bucket.
func (rs RuleSet) Classify(task string) Selection {
	lower := strings.ToLower(task)

	for _, rule := range rs.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return Selection{
					Category:       rule.Category,
					Confidence:     rule.Confidence,
					MatchedKeyword: kw,
					Reason:         "matched " + rule.Category + " keyword",
				}
			}
		}
	}

	return Selection{
		Category:   rs.Default,
		Confidence: rs.DefaultConfidence,
		Reason:     "no keyword match, defaulting to " + rs.Default,
	}
}

// Categories returns every bucket the rule set can produce, default last.
func (rs RuleSet) Categories() []string {
	out := make([]string, 0, len(rs.Rules)+1)
	for _, rule := range rs.Rules {
		out = append(out, rule.Category)
	}
	return append(out, rs.Default)
}
