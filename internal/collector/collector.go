// Package collector gathers per-task access declarations at runtime.
//
// The reference surface is a pair of annotation options on each task,
// write = "<comma-separated names>" and read = "<comma-separated names>".
// The collector normalizes both lists (whitespace trimming, write subsumes
// read) before anything reaches the executor's validator. Workplan files
// in Markdown or YAML form carry the same options per task.
package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/taskwave/internal/models"
)

// Options is the per-task annotation surface: comma-separated identifier
// lists for write and read access. Both are optional; an empty Options
// declares an always-independent task.
type Options struct {
	Write string `yaml:"write,omitempty"`
	Read  string `yaml:"read,omitempty"`
}

// Names normalizes the options into distinct write and read identifier
// lists. Whitespace around each name is trimmed. An identifier appearing
// in both lists is emitted only once, as a write: write access subsumes
// read access. Empty names (for example from a trailing comma) are kept
// so the validator can reject them explicitly.
func (o Options) Names() (writes, reads []string) {
	writes = splitNames(o.Write)

	written := make(map[string]bool, len(writes))
	for _, name := range writes {
		written[name] = true
	}

	for _, name := range splitNames(o.Read) {
		if written[name] {
			continue
		}
		reads = append(reads, name)
	}
	return writes, reads
}

// Usages renders the options as an ordered declaration, writes first.
func (o Options) Usages() models.TaskParamUsages {
	writes, reads := o.Names()
	usages := make(models.TaskParamUsages, 0, len(writes)+len(reads))
	for _, name := range writes {
		usages = append(usages, models.NewParamUsage(name, models.AccessWrite))
	}
	for _, name := range reads {
		usages = append(usages, models.NewParamUsage(name, models.AccessRead))
	}
	return usages
}

// splitNames splits a comma-separated option value and trims whitespace
// around every entry. An empty value yields no names.
func splitNames(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		names = append(names, strings.TrimSpace(part))
	}
	return names
}

// Format represents the format of a workplan file.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported file format
	FormatUnknown Format = iota
	// FormatMarkdown represents a Markdown (.md, .markdown) workplan
	FormatMarkdown
	// FormatYAML represents a YAML (.yaml, .yml) workplan
	FormatYAML
)

// String returns the string representation of the Format.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Parser is the interface workplan parsers implement.
type Parser interface {
	// Parse reads a workplan from raw file content.
	Parse(content []byte) (*models.Workplan, error)
}

// DetectFormat detects the workplan format from the file extension.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// NewParser creates a parser for the given format.
func NewParser(format Format) (Parser, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownParser(), nil
	case FormatYAML:
		return NewYAMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
}

// ParseFile detects the format of a workplan file, reads it, and parses
// it. The original path is recorded on the returned workplan.
func ParseFile(path string) (*models.Workplan, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unknown file format: %s (supported: .md, .markdown, .yaml, .yml)", path)
	}

	parser, err := NewParser(format)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workplan: %w", err)
	}

	plan, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workplan: %w", err)
	}

	plan.FilePath = path
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return plan, nil
}
