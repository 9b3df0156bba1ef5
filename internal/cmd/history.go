package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/taskwave/internal/config"
	"github.com/harrison/taskwave/internal/history"
	"github.com/harrison/taskwave/internal/models"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <workplan>",
		Short: "Show recorded runs of a workplan",
		Long: `List the most recent recorded runs of a workplan file from the
history database, newest first. With --tasks, also show the per-task
outcomes of the latest run.`,
		Args: cobra.ExactArgs(1),
		RunE: historyCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .taskwave/config.yaml)")
	cmd.Flags().Int("limit", 10, "Maximum number of runs to show")
	cmd.Flags().Bool("tasks", false, "Show per-task results of the latest run")

	return cmd
}

func historyCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	limit, _ := cmd.Flags().GetInt("limit")
	showTasks, _ := cmd.Flags().GetBool("tasks")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	runs, err := store.RecentRuns(ctx, args[0], limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No recorded runs for %s\n", args[0])
		return nil
	}

	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = fmt.Sprintf("%d failed", run.Failed)
		}
		fmt.Fprintf(out, "#%d  %s  %d task(s) in %d wave(s)  %s  [%s]\n",
			run.RunNumber, run.StartedAt.Format(time.DateTime),
			run.TotalTasks, run.Waves, run.Duration.Round(time.Millisecond), status)
	}

	if showTasks {
		records, err := store.TaskResults(ctx, runs[0].ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nLatest run (#%d):\n", runs[0].RunNumber)
		for _, rec := range records {
			name := rec.Name
			if name == "" {
				name = fmt.Sprintf("task %d", rec.TaskID)
			}
			if rec.Status == models.StatusFailed {
				fmt.Fprintf(out, "  ✗ %s (wave %d): %s\n", name, rec.Wave+1, rec.Error)
			} else {
				fmt.Fprintf(out, "  ✓ %s (wave %d, %s)\n", name, rec.Wave+1, rec.Duration.Round(time.Millisecond))
			}
		}
	}

	return nil
}
