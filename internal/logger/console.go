// Package logger provides logging implementations for taskwave execution.
//
// The package offers structured logging of execution progress at the wave
// and summary levels. Implementations are thread-safe and satisfy the
// executor's Logger interface.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/taskwave/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// parseLevel maps a level name to its numeric value, defaulting to info.
func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// colorScheme defines consistent colors for console output.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
	}
}

// ConsoleLogger logs execution progress to a writer with timestamps and
// thread safety. All output is prefixed with [HH:MM:SS] timestamps. Color
// output is automatically enabled for TTY output on stdout/stderr.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    int
	mutex       sync.Mutex
	colorOutput bool
	progressBar bool
	scheme      *colorScheme
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded. logLevel
// determines the minimum log level (trace, debug, info, warn, error;
// invalid or empty defaults to info).
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    parseLevel(logLevel),
		colorOutput: writerIsTTY(writer),
		scheme:      newColorScheme(),
	}
}

// SetColorOutput overrides automatic TTY color detection.
func (l *ConsoleLogger) SetColorOutput(enabled bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.colorOutput = enabled
}

// SetProgressBar enables the per-wave progress bar.
func (l *ConsoleLogger) SetProgressBar(enabled bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.progressBar = enabled
}

// writerIsTTY reports whether the writer is a terminal we can color.
func writerIsTTY(w io.Writer) bool {
	switch w {
	case os.Stdout:
		return isatty.IsTerminal(os.Stdout.Fd())
	case os.Stderr:
		return isatty.IsTerminal(os.Stderr.Fd())
	default:
		return false
	}
}

func (l *ConsoleLogger) timestamp() string {
	return time.Now().Format("15:04:05")
}

// logf writes a timestamped line if the level passes the filter.
// Callers must hold the mutex.
func (l *ConsoleLogger) logf(level int, format string, args ...interface{}) {
	if l.writer == nil || level < l.logLevel {
		return
	}
	fmt.Fprintf(l.writer, "[%s] %s\n", l.timestamp(), fmt.Sprintf(format, args...))
}

// sprintColored renders text through a color when color output is on.
func (l *ConsoleLogger) sprintColored(c *color.Color, text string) string {
	if !l.colorOutput {
		return text
	}
	return c.Sprint(text)
}

// LogWaveStart logs the start of a wave execution.
func (l *ConsoleLogger) LogWaveStart(wave models.Wave) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.logf(levelInfo, "Starting %s with %d task(s)", wave.Name, len(wave.TaskIDs))
}

// LogWaveComplete logs the completion of a wave.
func (l *ConsoleLogger) LogWaveComplete(wave models.Wave, duration time.Duration, results []models.TaskResult) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	failed := 0
	for _, r := range results {
		if r.Status == models.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		l.logf(levelInfo, "Completed %s in %s (%s)", wave.Name, duration.Round(time.Millisecond),
			l.sprintColored(l.scheme.fail, fmt.Sprintf("%d failed", failed)))
		return
	}
	l.logf(levelInfo, "Completed %s in %s", wave.Name, duration.Round(time.Millisecond))
}

// LogTaskResult logs the completion of a single task.
func (l *ConsoleLogger) LogTaskResult(result models.TaskResult) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	name := result.Name
	if name == "" {
		name = fmt.Sprintf("task %d", result.TaskID)
	}

	if result.Status == models.StatusFailed {
		l.logf(levelInfo, "%s %s: %v", l.sprintColored(l.scheme.fail, "✗"), name, result.Error)
		return nil
	}
	l.logf(levelInfo, "%s %s (%s)", l.sprintColored(l.scheme.success, "✓"), name,
		result.Duration.Round(time.Millisecond))
	return nil
}

// LogProgress renders a progress bar over the wave's collected results.
// It is a no-op unless the progress bar was enabled.
func (l *ConsoleLogger) LogProgress(results []models.TaskResult) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.progressBar || l.writer == nil || levelInfo < l.logLevel {
		return
	}

	done := 0
	for _, r := range results {
		if r.Status != "" {
			done++
		}
	}
	bar := NewProgressBar(len(results), 20, l.colorOutput)
	bar.Update(done)
	fmt.Fprintf(l.writer, "\r%s", bar.Render())
	if done == len(results) {
		fmt.Fprintln(l.writer)
	}
}

// LogSummary logs the execution summary.
func (l *ConsoleLogger) LogSummary(result models.ExecutionResult) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.writer == nil || levelInfo < l.logLevel {
		return
	}

	fmt.Fprintf(l.writer, "\nExecution Summary:\n")
	fmt.Fprintf(l.writer, "  Total tasks: %d\n", result.TotalTasks)
	fmt.Fprintf(l.writer, "  Waves: %d\n", result.Waves)
	fmt.Fprintf(l.writer, "  Completed: %s\n",
		l.sprintColored(l.scheme.success, fmt.Sprintf("%d", result.Completed)))
	if result.Failed > 0 {
		fmt.Fprintf(l.writer, "  Failed: %s\n",
			l.sprintColored(l.scheme.fail, fmt.Sprintf("%d", result.Failed)))
	} else {
		fmt.Fprintf(l.writer, "  Failed: 0\n")
	}
	fmt.Fprintf(l.writer, "  Total duration: %s\n", result.Duration.Round(time.Millisecond))

	if len(result.FailedTasks) > 0 {
		fmt.Fprintf(l.writer, "\nFailed Tasks:\n")
		for _, task := range result.FailedTasks {
			name := task.Name
			if name == "" {
				name = fmt.Sprintf("task %d", task.TaskID)
			}
			fmt.Fprintf(l.writer, "  - %s (wave %d): %v\n", name, task.Wave+1, task.Error)
		}
	}
}

// LogDebug logs a debug-level message.
func (l *ConsoleLogger) LogDebug(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.logf(levelDebug, format, args...)
}
