package models

import (
	"errors"
	"fmt"
	"strings"
)

// AccessKind describes how a task touches a named datum: read or write.
type AccessKind int

const (
	// AccessRead marks a shared read of a datum.
	AccessRead AccessKind = iota
	// AccessWrite marks an exclusive write of a datum.
	AccessWrite
)

// String returns the string representation of the AccessKind.
func (k AccessKind) String() string {
	switch k {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ParamUsage declares one (identifier, kind) access of a task.
// Identifiers are compared by exact string equality; the collector is
// responsible for any trimming before a ParamUsage is constructed.
type ParamUsage struct {
	Identifier string
	Kind       AccessKind
}

// NewParamUsage constructs a ParamUsage.
func NewParamUsage(identifier string, kind AccessKind) ParamUsage {
	return ParamUsage{Identifier: identifier, Kind: kind}
}

// String returns a compact "name:kind" form used in debug output.
func (p ParamUsage) String() string {
	return fmt.Sprintf("%s:%s", p.Identifier, p.Kind)
}

// TaskParamUsages is the ordered access declaration of a single task.
// Each identifier may appear at most once; the validator enforces this.
type TaskParamUsages []ParamUsage

// DeclarationList holds one TaskParamUsages per task, indexed by task ID.
// Task IDs are the positional indices of the tasks they describe.
type DeclarationList []TaskParamUsages

// TaskSpec is one entry of a parsed workplan: a named shell command plus
// its declared read/write sets. The collector produces these; the CLI turns
// them into executor tasks.
type TaskSpec struct {
	Name   string   // Task name/title
	Run    string   // Shell command to execute
	Writes []string // Identifiers written by the command
	Reads  []string // Identifiers read by the command
}

// Validate checks that the task specification is complete enough to run.
func (s *TaskSpec) Validate() error {
	if s.Name == "" {
		return errors.New("task name is required")
	}
	if s.Run == "" {
		return errors.New("task run command is required")
	}
	return nil
}

// Usages converts the task's read/write lists into a TaskParamUsages,
// writes first, matching the order the collector emits declarations in.
func (s *TaskSpec) Usages() TaskParamUsages {
	usages := make(TaskParamUsages, 0, len(s.Writes)+len(s.Reads))
	for _, ident := range s.Writes {
		usages = append(usages, NewParamUsage(ident, AccessWrite))
	}
	for _, ident := range s.Reads {
		usages = append(usages, NewParamUsage(ident, AccessRead))
	}
	return usages
}

// Workplan is a parsed workplan file: an ordered task list plus optional
// execution settings from the file itself.
type Workplan struct {
	Name           string     // Workplan name (from frontmatter or file name)
	Tasks          []TaskSpec // Tasks in declaration order
	MaxConcurrency int        // Per-wave concurrency cap (0 = unlimited)
	FilePath       string     // Original file path
}

// Declarations derives the DeclarationList for the whole workplan.
func (w *Workplan) Declarations() DeclarationList {
	decls := make(DeclarationList, len(w.Tasks))
	for i := range w.Tasks {
		decls[i] = w.Tasks[i].Usages()
	}
	return decls
}

// DescribeUsages renders a declaration list for debug logging, one task
// per line.
func DescribeUsages(decls DeclarationList) string {
	var sb strings.Builder
	for i, usages := range decls {
		parts := make([]string, len(usages))
		for j, u := range usages {
			parts[j] = u.String()
		}
		fmt.Fprintf(&sb, "task %d: [%s]\n", i, strings.Join(parts, ", "))
	}
	return sb.String()
}
