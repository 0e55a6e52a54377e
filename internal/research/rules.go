package research

import (
	"github.com/ebarkley/fedscout/internal/classify"
	"github.com/ebarkley/fedscout/pkg/models"
)

// Rule sets, one per service. Order is load-bearing: rules earlier in a
// list win ties, and bucket names must match the knowledge base files.
var serviceRules = map[models.Service]classify.RuleSet{
	models.ServiceSalary: {
		Rules: []classify.Rule{
			{Category: "locality", Keywords: []string{"locality", "adjustment", "cost of living", "washington", "san francisco"}, Confidence: 0.85},
			{Category: "comparison", Keywords: []string{"compare", "versus", "vs", "difference", "private sector"}, Confidence: 0.80},
			{Category: "lookup", Keywords: []string{"salary", "pay", "gs-", "grade", "step", "earn"}, Confidence: 0.80},
		},
		Default:           "general",
		DefaultConfidence: 0.60,
	},
	models.ServicePayments: {
		Rules: []classify.Rule{
			{Category: "webhook", Keywords: []string{"webhook", "event", "callback", "notify"}, Confidence: 0.85},
			{Category: "refund", Keywords: []string{"refund", "dispute", "chargeback", "cancel"}, Confidence: 0.80},
			{Category: "checkout", Keywords: []string{"checkout", "payment", "charge", "invoice", "subscription"}, Confidence: 0.80},
		},
		Default:           "general",
		DefaultConfidence: 0.60,
	},
	models.ServiceJobSearch: {
		Rules: []classify.Rule{
			{Category: "auth", Keywords: []string{"api key", "authorization", "credential", "register"}, Confidence: 0.85},
			{Category: "detail", Keywords: []string{"detail", "description", "posting", "announcement"}, Confidence: 0.80},
			{Category: "search", Keywords: []string{"search", "find", "query", "series", "keyword", "filter"}, Confidence: 0.80},
		},
		Default:           "general",
		DefaultConfidence: 0.60,
	},
	models.ServiceOAuth: {
		Rules: []classify.Rule{
			{Category: "refresh", Keywords: []string{"refresh", "expire", "renew", "rotate"}, Confidence: 0.85},
			{Category: "token", Keywords: []string{"token", "jwt", "exchange", "scope"}, Confidence: 0.80},
			{Category: "login", Keywords: []string{"login", "log in", "sign in", "authorize", "callback"}, Confidence: 0.80},
		},
		Default:           "general",
		DefaultConfidence: 0.60,
	},
	models.ServiceDeploy: {
		Rules: []classify.Rule{
			{Category: "troubleshoot", Keywords: []string{"crash", "fail", "error", "log", "debug"}, Confidence: 0.85},
			{Category: "env", Keywords: []string{"environment", "variable", "secret", "config"}, Confidence: 0.80},
			{Category: "setup", Keywords: []string{"deploy", "release", "launch", "build", "pipeline"}, Confidence: 0.80},
		},
		Default:           "general",
		DefaultConfidence: 0.60,
	},
}

// RulesFor returns the rule set for a service. Unknown services get an
// empty rule set that classifies everything as general.
func RulesFor(service models.Service) classify.RuleSet {
	if rules, ok := serviceRules[service]; ok {
		return rules
	}
	return classify.RuleSet{Default: "general", DefaultConfidence: 0.5}
}
