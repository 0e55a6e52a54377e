package research

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ebarkley/fedscout/pkg/models"
)

//go:embed knowledge/*.yaml
var knowledgeFS embed.FS

// Knowledge is the static knowledge base for one service: the critical
// requirements that apply to every task, plus a bucket per category.
type Knowledge struct {
	Service              string            `yaml:"service"`
	CriticalRequirements []string          `yaml:"critical_requirements"`
	Buckets              map[string]Bucket `yaml:"buckets"`
}

// Bucket is the renderable knowledge for one classification category.
type Bucket struct {
	// Plan is the ordered implementation plan.
	Plan []PlanEntry `yaml:"plan"`
	// Templates maps template names to code snippets.
	Templates map[string]string `yaml:"templates"`
	// Prompt, when set, is the system prompt for model enrichment.
	Prompt string `yaml:"prompt"`
}

// PlanEntry is the YAML shape of one plan section.
type PlanEntry struct {
	Title string   `yaml:"title"`
	Steps []string `yaml:"steps"`
}

// planSections converts the YAML plan into the report model.
func (b Bucket) planSections() []models.PlanSection {
	sections := make([]models.PlanSection, 0, len(b.Plan))
	for _, entry := range b.Plan {
		sections = append(sections, models.PlanSection{
			Title: entry.Title,
			Steps: entry.Steps,
		})
	}
	return sections
}

// LoadKnowledge parses the embedded knowledge base for a service.
func LoadKnowledge(service models.Service) (Knowledge, error) {
	raw, err := knowledgeFS.ReadFile(fmt.Sprintf("knowledge/%s.yaml", service))
	if err != nil {
		return Knowledge{}, fmt.Errorf("read knowledge for %s: %w", service, err)
	}

	var k Knowledge
	if err := yaml.Unmarshal(raw, &k); err != nil {
		return Knowledge{}, fmt.Errorf("parse knowledge for %s: %w", service, err)
	}
	if k.Service != string(service) {
		return Knowledge{}, fmt.Errorf("knowledge file for %s declares service %q", service, k.Service)
	}
	return k, nil
}
