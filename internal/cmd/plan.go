package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/taskwave/internal/collector"
	"github.com/harrison/taskwave/internal/executor"
	"github.com/harrison/taskwave/internal/models"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <workplan>",
		Short: "Show the dependency table and execution waves of a workplan",
		Long: `Parse a workplan, derive the conflicting-access dependencies, and print
the resulting execution waves without running anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := collector.ParseFile(args[0])
			if err != nil {
				return err
			}

			exe, err := planOnlyExecutor(plan)
			if err != nil {
				return err
			}
			if err := exe.Plan(); err != nil {
				return err
			}

			printPlan(cmd, plan, exe)
			return nil
		},
	}

	return cmd
}

// planOnlyExecutor builds an executor whose tasks are placeholders; it is
// only ever planned, never run.
func planOnlyExecutor(plan *models.Workplan) (*executor.Executor, error) {
	tasks := make([]*executor.Task, 0, len(plan.Tasks))
	for _, spec := range plan.Tasks {
		tasks = append(tasks, executor.NewNamedTask(spec.Name, func() error { return nil }))
	}
	return executor.New(tasks, plan.Declarations())
}

// printPlan renders the dependency table and wave layout of a planned
// executor.
func printPlan(cmd *cobra.Command, plan *models.Workplan, exe *executor.Executor) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Workplan: %s (%d task(s))\n\n", plan.Name, len(plan.Tasks))

	fmt.Fprintln(out, "Dependencies:")
	for id, deps := range exe.Dependencies() {
		name := taskLabel(plan, id)
		if len(deps) == 0 {
			fmt.Fprintf(out, "  %s: none\n", name)
			continue
		}
		labels := make([]string, len(deps))
		for i, dep := range deps {
			labels[i] = taskLabel(plan, dep)
		}
		fmt.Fprintf(out, "  %s: waits for %s\n", name, strings.Join(labels, ", "))
	}

	fmt.Fprintln(out)
	for _, wave := range exe.ExecutionPlan().Waves {
		labels := make([]string, len(wave.TaskIDs))
		for i, id := range wave.TaskIDs {
			labels[i] = taskLabel(plan, id)
		}
		fmt.Fprintf(out, "%s: %s\n", wave.Name, strings.Join(labels, ", "))
	}
}

func taskLabel(plan *models.Workplan, id models.TaskID) string {
	if id < len(plan.Tasks) && plan.Tasks[id].Name != "" {
		return fmt.Sprintf("%d (%s)", id, plan.Tasks[id].Name)
	}
	return fmt.Sprintf("%d", id)
}
