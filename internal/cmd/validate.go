package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/taskwave/internal/collector"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <workplan>",
		Short: "Validate a workplan file",
		Long: `Parse and validate a workplan, checking for:
  - Task validation (names, run commands)
  - Duplicate identifiers within a task's declaration
  - Empty identifiers (e.g. from trailing commas)
  - A schedulable dependency graph

Exit code: 0 if valid, 1 if errors found`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := collector.ParseFile(args[0])
			if err != nil {
				return err
			}

			for i := range plan.Tasks {
				if err := plan.Tasks[i].Validate(); err != nil {
					return fmt.Errorf("task %d: %w", i, err)
				}
			}

			exe, err := planOnlyExecutor(plan)
			if err != nil {
				return err
			}
			if err := exe.Plan(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d task(s) in %d wave(s), OK\n",
				args[0], len(plan.Tasks), len(exe.ExecutionPlan().Waves))
			return nil
		},
	}

	return cmd
}
