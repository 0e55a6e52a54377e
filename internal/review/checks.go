package review

import (
	"fmt"
	"regexp"

	"github.com/ebarkley/fedscout/pkg/models"
)

// Built-in check sets, one per service. Order within each set is load-bearing:
// passed/violation listings follow it.
var builtinSets = map[models.Service]CheckSet{
	models.ServiceJobSearch: {
		Service: models.ServiceJobSearch,
		Checks: []Check{
			{
				Name:      "fields_full",
				Substring: "Fields=Full",
				Weight:    30,
				Critical:  true,
				Message:   "search requests must pass Fields=Full or descriptions are truncated",
			},
			{
				Name:      "authorization_header",
				Substring: "Authorization-Key",
				Weight:    25,
				Critical:  true,
				Message:   "missing Authorization-Key header for the job-search API",
			},
			{
				Name:      "user_agent",
				Substring: "User-Agent",
				Weight:    15,
				Critical:  false,
				Message:   "the job-search API rejects requests without a User-Agent",
			},
			{
				Name:    "pagination",
				Pattern: regexp.MustCompile(`(?i)ResultsPerPage|Page=`),
				Weight:  10,
				Message: "no pagination handling; result sets cap at 25 without it",
			},
			{
				Name:    "rate_limit_handling",
				Pattern: regexp.MustCompile(`(?i)429|Retry-After|rate.?limit`),
				Weight:  10,
				Message: "no handling for rate-limit responses",
			},
		},
	},
	models.ServicePayments: {
		Service: models.ServicePayments,
		Checks: []Check{
			{
				Name:      "webhook_signature",
				Pattern:   regexp.MustCompile(`(?i)ConstructEvent|webhook.?signature|signing.?secret`),
				Weight:    35,
				Critical:  true,
				Message:   "webhook payloads must be signature-verified before use",
			},
			{
				Name:      "idempotency_key",
				Pattern:   regexp.MustCompile(`(?i)idempotency.?key`),
				Weight:    20,
				Critical:  true,
				Message:   "charge creation without an idempotency key risks double billing",
			},
			{
				Name:      "no_raw_card_numbers",
				Pattern:   regexp.MustCompile(`card_number|"number"\s*:`),
				Forbid:    true,
				Weight:    35,
				Critical:  true,
				Message:   "raw card data must never touch this codebase; use tokenized references",
			},
			{
				Name:    "amount_in_cents",
				Pattern: regexp.MustCompile(`(?i)amount.?cents|int64?\s+amount`),
				Weight:  10,
				Message: "amounts should be integer cents, not floats",
			},
		},
	},
	models.ServiceOAuth: {
		Service: models.ServiceOAuth,
		Checks: []Check{
			{
				Name:      "state_parameter",
				Substring: "state",
				Weight:    30,
				Critical:  true,
				Message:   "authorization requests must carry a state parameter against CSRF",
			},
			{
				Name:      "pkce",
				Pattern:   regexp.MustCompile(`(?i)code_challenge|code_verifier|pkce`),
				Weight:    25,
				Critical:  true,
				Message:   "public clients must use PKCE",
			},
			{
				Name:      "no_implicit_flow",
				Substring: "response_type=token",
				Forbid:    true,
				Weight:    25,
				Critical:  true,
				Message:   "the implicit flow is deprecated; use the authorization code flow",
			},
			{
				Name:    "token_refresh",
				Pattern: regexp.MustCompile(`(?i)refresh.?token`),
				Weight:  10,
				Message: "no refresh-token handling; sessions will hard-expire",
			},
		},
	},
	models.ServiceDeploy: {
		Service: models.ServiceDeploy,
		Checks: []Check{
			{
				Name:      "health_endpoint",
				Substring: "/health",
				Weight:    25,
				Critical:  true,
				Message:   "the platform requires a /health endpoint for readiness checks",
			},
			{
				Name:      "port_from_env",
				Pattern:   regexp.MustCompile(`(?i)PORT`),
				Weight:    25,
				Critical:  true,
				Message:   "the listen port must come from the PORT environment variable",
			},
			{
				Name:      "no_hardcoded_secrets",
				Pattern:   regexp.MustCompile(`(?i)(api_?key|secret)\s*[:=]\s*"[A-Za-z0-9_\-]{12,}"`),
				Forbid:    true,
				Weight:    30,
				Critical:  true,
				Message:   "hardcoded credentials detected; move them to platform config",
			},
			{
				Name:    "graceful_shutdown",
				Pattern: regexp.MustCompile(`(?i)SIGTERM|signal\.Notify|Shutdown`),
				Weight:  10,
				Message: "no graceful shutdown; in-flight requests drop on redeploy",
			},
		},
	},
	models.ServiceSalary: {
		Service: models.ServiceSalary,
		Checks: []Check{
			{
				Name:      "locality_adjustment",
				Pattern:   regexp.MustCompile(`(?i)locality`),
				Weight:    30,
				Critical:  true,
				Message:   "base pay without locality adjustment misstates every salary",
			},
			{
				Name:      "grade_step_bounds",
				Pattern:   regexp.MustCompile(`(?i)(grade|step).{0,40}(range|bounds|valid|1.{0,4}(15|10))`),
				Weight:    20,
				Critical:  true,
				Message:   "grade/step inputs must be bounds-checked (GS-1..15, step 1..10)",
			},
			{
				Name:    "integer_dollars",
				Pattern: regexp.MustCompile(`(?i)float(32|64).{0,20}(pay|salary)`),
				Forbid:  true,
				Weight:  15,
				Message: "pay amounts should be integer dollars, not floats",
			},
		},
	},
}

// ChecksFor returns the built-in check set for a service.
func ChecksFor(service models.Service) (CheckSet, error) {
	cs, ok := builtinSets[service]
	if !ok {
		return CheckSet{}, fmt.Errorf("no check set for service %q", service)
	}
	return cs, nil
}
