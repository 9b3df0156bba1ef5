package cmd

import (
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/taskwave/internal/collector"
	"github.com/harrison/taskwave/internal/config"
	"github.com/harrison/taskwave/internal/executor"
	"github.com/harrison/taskwave/internal/history"
	"github.com/harrison/taskwave/internal/logger"
	"github.com/harrison/taskwave/internal/models"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <workplan>",
		Short: "Execute a workplan",
		Long: `Execute a workplan by running its tasks in dependency waves.

The run command parses the workplan file (Markdown or YAML), derives task
dependencies from the declared read/write sets, and executes each wave's
tasks in parallel, joining all of them before the next wave starts.

Examples:
  taskwave run plan.md
  taskwave run --dry-run plan.yaml        # Plan without executing
  taskwave run --max-concurrency 4 plan.md
  taskwave run --verbose plan.md          # Show planning details
  taskwave run --no-history plan.md       # Skip run-history recording`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .taskwave/config.yaml)")
	cmd.Flags().Bool("dry-run", false, "Compute and print the plan without executing tasks")
	cmd.Flags().Int("max-concurrency", -1, "Maximum concurrent tasks per wave (0 = unlimited, -1 = use workplan or config)")
	cmd.Flags().Bool("verbose", false, "Show planning details (debug log level)")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("shell", "", "Shell used to run task commands")

	return cmd
}

func runCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	maxConcurrency, _ := cmd.Flags().GetInt("max-concurrency")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logDir, _ := cmd.Flags().GetString("log-dir")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	noColor, _ := cmd.Flags().GetBool("no-color")
	shell, _ := cmd.Flags().GetString("shell")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if shell == "" {
		shell = cfg.Execution.Shell
	}
	if logDir == "" {
		logDir = cfg.Logging.Dir
	}

	plan, err := collector.ParseFile(args[0])
	if err != nil {
		return err
	}
	for i := range plan.Tasks {
		if err := plan.Tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}

	level := cfg.Console.LogLevel
	if verbose {
		level = "debug"
	}
	console := logger.NewConsoleLogger(cmd.OutOrStdout(), level)
	if noColor || !cfg.Console.EnableColor {
		console.SetColorOutput(false)
	}
	console.SetProgressBar(cfg.Console.EnableProgressBar && !verbose)

	exe, err := buildExecutor(plan, shell)
	if err != nil {
		return err
	}

	// Flag > workplan frontmatter > config.
	switch {
	case maxConcurrency >= 0:
		exe.SetMaxConcurrency(maxConcurrency)
	case plan.MaxConcurrency > 0:
		exe.SetMaxConcurrency(plan.MaxConcurrency)
	default:
		exe.SetMaxConcurrency(cfg.Execution.MaxConcurrency)
	}

	if dryRun {
		exe.SetLogger(console)
		if err := exe.Plan(); err != nil {
			return err
		}
		printPlan(cmd, plan, exe)
		return nil
	}

	var log executor.Logger = console
	var fileLog *logger.FileLogger
	if cfg.Logging.Enabled {
		fileLog, err = logger.NewFileLogger(logDir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to set up file logging: %w", err)
		}
		defer fileLog.Close()
		log = logger.NewMulti(console, fileLog)
	}
	exe.SetLogger(log)

	if err := exe.Plan(); err != nil {
		return err
	}

	// SIGINT/SIGTERM cancel between waves; a running wave always joins.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	results, runErr := exe.Run(ctx)
	summary := models.NewExecutionResult(results, len(exe.ExecutionPlan().Waves), time.Since(started))
	log.LogSummary(*summary)

	if cfg.History.Enabled && !noHistory {
		if err := recordHistory(cfg.History.DBPath, plan.FilePath, started, summary, results); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: run history not recorded: %v\n", err)
		}
	}

	return runErr
}

// buildExecutor wraps each workplan task's shell command into an executor
// task. Command failure output travels inside the returned error.
func buildExecutor(plan *models.Workplan, shell string) (*executor.Executor, error) {
	tasks := make([]*executor.Task, 0, len(plan.Tasks))
	for _, spec := range plan.Tasks {
		tasks = append(tasks, executor.NewNamedTask(spec.Name, commandAction(shell, spec.Run)))
	}
	return executor.New(tasks, plan.Declarations())
}

// commandAction returns an action running one shell command to completion.
func commandAction(shell, command string) executor.Action {
	return func() error {
		cmd := osexec.Command(shell, "-c", command)
		output, err := cmd.CombinedOutput()
		if err != nil {
			if len(output) > 0 {
				return fmt.Errorf("%w\n%s", err, output)
			}
			return err
		}
		return nil
	}
}

// recordHistory stores the finished run in the history database.
func recordHistory(dbPath, workplanFile string, started time.Time,
	summary *models.ExecutionResult, results []models.TaskResult) error {

	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(context.Background(), workplanFile, started, summary, results)
	return err
}
