package research

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ebarkley/fedscout/internal/gspay"
	"github.com/ebarkley/fedscout/internal/llm"
	"github.com/ebarkley/fedscout/pkg/models"
)

// ErrUnknownResearcher indicates no researcher covers the named service.
var ErrUnknownResearcher = errors.New("unknown researcher")

// Registry holds one researcher per supported service.
type Registry struct {
	researchers map[models.Service]*Researcher
}

// NewRegistry builds researchers for every supported service. The
// runner may be nil, in which case reports carry no model notes. The
// salary researcher additionally gets the embedded GS pay table wired
// in as an enrichment hook.
func NewRegistry(runner llm.Runner) (*Registry, error) {
	table, err := gspay.Load()
	if err != nil {
		return nil, fmt.Errorf("load pay table: %w", err)
	}

	reg := &Registry{researchers: make(map[models.Service]*Researcher)}
	for _, service := range models.AllServices() {
		knowledge, err := LoadKnowledge(service)
		if err != nil {
			return nil, err
		}

		opts := []Option{}
		if runner != nil {
			opts = append(opts, WithRunner(runner))
		}
		if service == models.ServiceSalary {
			opts = append(opts, WithEnrich(payTableEnrich(table)))
		}

		reg.researchers[service] = New(service, RulesFor(service), knowledge, opts...)
	}
	return reg, nil
}

// Get returns the researcher for a service.
func (reg *Registry) Get(service models.Service) (*Researcher, error) {
	r, ok := reg.researchers[service]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResearcher, service)
	}
	return r, nil
}

// List returns all researchers ordered by service name.
func (reg *Registry) List() []*Researcher {
	out := make([]*Researcher, 0, len(reg.researchers))
	for _, r := range reg.researchers {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].service < out[j].service })
	return out
}

// payTableEnrich appends computed reference figures from the GS pay
// table to salary reports. General questions skip the figures.
func payTableEnrich(table *gspay.Table) EnrichFunc {
	return func(ctx context.Context, report *models.Report) error {
		if report.Category == "general" {
			return nil
		}

		steps := make([]string, 0, 4)
		for _, grade := range []int{7, 12, 15} {
			pay, err := table.BasePay(grade, 5)
			if err != nil {
				return fmt.Errorf("reference figure GS-%d: %w", grade, err)
			}
			steps = append(steps, fmt.Sprintf("GS-%d step 5 base pay: $%d/year", grade, pay))
		}
		if report.Category == "locality" {
			adjusted, err := table.AdjustedPay(12, 5, "DCB")
			if err != nil {
				return fmt.Errorf("reference figure DCB: %w", err)
			}
			steps = append(steps, fmt.Sprintf("GS-12 step 5 in DCB: $%d/year adjusted", adjusted))
		}

		report.Plan = append(report.Plan, models.PlanSection{
			Title: "Reference figures",
			Steps: steps,
		})
		return nil
	}
}
