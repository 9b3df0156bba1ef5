package collector

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/taskwave/internal/models"
)

// MarkdownParser parses Markdown workplans. A workplan is a sequence of
// `## Task N: <name>` sections; each section declares its command and
// access sets on metadata lines:
//
//	**Run**: go generate ./...
//	**Write**: manifest, lockfile
//	**Read**: sources
//
// An optional YAML frontmatter block carries workplan-level settings.
type MarkdownParser struct {
	markdown goldmark.Markdown
}

// NewMarkdownParser creates a Markdown workplan parser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{
		markdown: goldmark.New(),
	}
}

var (
	taskHeadingRegex = regexp.MustCompile(`^Task\s+(\d+):\s+(.+)$`)
	runRegex         = regexp.MustCompile(`\*\*Run\*\*:\s*(.+)`)
	writeRegex       = regexp.MustCompile(`\*\*Write\*\*:\s*(.+)`)
	readRegex        = regexp.MustCompile(`\*\*Read\*\*:\s*(.+)`)
)

// markdownFrontmatter is the optional workplan configuration carried in a
// leading `---` block.
type markdownFrontmatter struct {
	Name           string `yaml:"name"`
	MaxConcurrency int    `yaml:"max_concurrency"`
}

// Parse implements the Parser interface for Markdown workplans.
func (p *MarkdownParser) Parse(content []byte) (*models.Workplan, error) {
	plan := &models.Workplan{}

	content, frontmatter := extractFrontmatter(content)
	if frontmatter != nil {
		var fm markdownFrontmatter
		if err := yaml.Unmarshal(frontmatter, &fm); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		plan.Name = fm.Name
		plan.MaxConcurrency = fm.MaxConcurrency
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	// Record each task heading and where its section starts in the
	// source; a section runs until the next level-2 heading.
	type section struct {
		number int
		name   string
		start  int
		stop   int
	}
	var sections []section

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 || heading.Lines().Len() == 0 {
			continue
		}

		seg := heading.Lines().At(0)
		if len(sections) > 0 {
			sections[len(sections)-1].stop = seg.Start
		}

		matches := taskHeadingRegex.FindStringSubmatch(headingText(heading, content))
		if len(matches) != 3 {
			// Not a task heading; it still terminates the previous section.
			sections = append(sections, section{number: -1, start: seg.Stop, stop: len(content)})
			continue
		}

		number, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, fmt.Errorf("invalid task number %q", matches[1])
		}
		sections = append(sections, section{
			number: number,
			name:   strings.TrimSpace(matches[2]),
			start:  seg.Stop,
			stop:   len(content),
		})
	}

	for _, sec := range sections {
		if sec.number < 0 {
			continue
		}
		body := string(content[sec.start:sec.stop])

		spec := models.TaskSpec{Name: sec.name}
		if m := runRegex.FindStringSubmatch(body); len(m) > 1 {
			spec.Run = strings.TrimSpace(m[1])
		}
		opts := Options{}
		if m := writeRegex.FindStringSubmatch(body); len(m) > 1 {
			opts.Write = strings.TrimSpace(m[1])
		}
		if m := readRegex.FindStringSubmatch(body); len(m) > 1 {
			opts.Read = strings.TrimSpace(m[1])
		}
		spec.Writes, spec.Reads = opts.Names()

		plan.Tasks = append(plan.Tasks, spec)
	}

	return plan, nil
}

// headingText extracts the plain text of a heading node.
func headingText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return strings.TrimSpace(buf.String())
}

// extractFrontmatter splits an optional leading `---` YAML block from the
// content. Returns the remaining content and the frontmatter bytes, or
// nil if no frontmatter is present.
func extractFrontmatter(content []byte) ([]byte, []byte) {
	const marker = "---"

	lines := strings.SplitAfter(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != marker {
		return content, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == marker {
			frontmatter := strings.Join(lines[1:i], "")
			rest := strings.Join(lines[i+1:], "")
			return []byte(rest), []byte(frontmatter)
		}
	}

	return content, nil
}
