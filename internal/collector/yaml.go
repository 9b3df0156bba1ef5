package collector

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/harrison/taskwave/internal/models"
)

// YAMLParser parses YAML workplans of the form:
//
//	name: nightly maintenance
//	max_concurrency: 4
//	tasks:
//	  - name: refresh index
//	    run: ./scripts/refresh.sh
//	    write: "index, manifest"
//	    read: "sources"
type YAMLParser struct{}

// NewYAMLParser creates a YAML workplan parser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

type yamlTask struct {
	Name    string `yaml:"name"`
	Run     string `yaml:"run"`
	Options `yaml:",inline"`
}

type yamlWorkplan struct {
	Name           string     `yaml:"name"`
	MaxConcurrency int        `yaml:"max_concurrency"`
	Tasks          []yamlTask `yaml:"tasks"`
}

// Parse implements the Parser interface for YAML workplans.
func (p *YAMLParser) Parse(content []byte) (*models.Workplan, error) {
	var raw yamlWorkplan
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML workplan: %w", err)
	}

	plan := &models.Workplan{
		Name:           raw.Name,
		MaxConcurrency: raw.MaxConcurrency,
	}

	for _, task := range raw.Tasks {
		spec := models.TaskSpec{
			Name: task.Name,
			Run:  task.Run,
		}
		spec.Writes, spec.Reads = task.Options.Names()
		plan.Tasks = append(plan.Tasks, spec)
	}

	return plan, nil
}
