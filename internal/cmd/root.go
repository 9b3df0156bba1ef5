package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for taskwave
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskwave",
		Short: "Declared-access parallel task executor",
		Long: `Taskwave executes a workplan of shell tasks in parallel waves.

Each task declares which named data it reads and writes. Taskwave derives
the conflicting-access dependencies (write-after-write, write-after-read,
read-after-write), layers the tasks into execution waves, and runs each
wave's tasks concurrently with a full join barrier between waves. Any
number of readers of the same name may run together.

Workplan files are Markdown or YAML; configuration is loaded from
.taskwave/config.yaml if present, with CLI flags taking precedence.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewPlanCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
