package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/taskwave/internal/filelock"
	"github.com/harrison/taskwave/internal/models"
)

// FileLogger logs execution events to files in a log directory. It
// creates a timestamped per-run log file, maintains a latest.log symlink
// pointing to the most recent run, and writes a machine-readable
// summary.json after each run. It is thread-safe and implements the
// executor's Logger interface.
//
// The symlink and summary updates are guarded by a file lock so that
// concurrent taskwave runs sharing a log directory do not race.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel int
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing to the given directory with
// the given minimum level. The directory is created if missing; the run
// file is named run-YYYYMMDD-HHMMSS.log.
func NewFileLogger(logDir, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", timestamp))

	runLog, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}

	l := &FileLogger{
		logDir:   logDir,
		runLog:   runLog,
		runFile:  runFile,
		logLevel: parseLevel(logLevel),
	}

	if err := l.updateLatestSymlink(); err != nil {
		// Symlinks are unsupported on some filesystems; the run log
		// itself still works.
		l.writef(levelWarn, "latest.log symlink not updated: %v", err)
	}

	return l, nil
}

// RunFile returns the path of the current run's log file.
func (l *FileLogger) RunFile() string {
	return l.runFile
}

// Close closes the underlying run log file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.runLog == nil {
		return nil
	}
	err := l.runLog.Close()
	l.runLog = nil
	return err
}

// updateLatestSymlink points latest.log at the current run file, guarded
// by a lock shared with any concurrent runs.
func (l *FileLogger) updateLatestSymlink() error {
	lock := filelock.NewFileLock(filepath.Join(l.logDir, ".latest.lock"))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	link := filepath.Join(l.logDir, "latest.log")
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(filepath.Base(l.runFile), link)
}

// writef appends a timestamped line to the run log. Callers must hold the
// mutex or be the constructor.
func (l *FileLogger) writef(level int, format string, args ...interface{}) {
	if l.runLog == nil || level < l.logLevel {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.runLog, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// LogWaveStart logs the start of a wave execution.
func (l *FileLogger) LogWaveStart(wave models.Wave) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writef(levelInfo, "=== %s: %d task(s) %v", wave.Name, len(wave.TaskIDs), wave.TaskIDs)
}

// LogWaveComplete logs the completion of a wave.
func (l *FileLogger) LogWaveComplete(wave models.Wave, duration time.Duration, results []models.TaskResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writef(levelInfo, "=== %s completed in %s", wave.Name, duration.Round(time.Millisecond))
}

// LogTaskResult logs the completion of a single task.
func (l *FileLogger) LogTaskResult(result models.TaskResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := result.Name
	if name == "" {
		name = fmt.Sprintf("task %d", result.TaskID)
	}
	if result.Status == models.StatusFailed {
		l.writef(levelInfo, "FAILED %s (wave %d): %v", name, result.Wave+1, result.Error)
	} else {
		l.writef(levelInfo, "ok %s (wave %d, %s)", name, result.Wave+1, result.Duration.Round(time.Millisecond))
	}
	return nil
}

// LogProgress is a no-op for file logs; progress belongs to the console.
func (l *FileLogger) LogProgress(results []models.TaskResult) {}

// runSummary is the on-disk shape of summary.json.
type runSummary struct {
	RunFile   string                 `json:"run_file"`
	Timestamp time.Time              `json:"timestamp"`
	Result    models.ExecutionResult `json:"result"`
}

// LogSummary logs the execution summary and atomically replaces
// summary.json in the log directory.
func (l *FileLogger) LogSummary(result models.ExecutionResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writef(levelInfo, "summary: %d total, %d completed, %d failed, %d wave(s), %s",
		result.TotalTasks, result.Completed, result.Failed, result.Waves,
		result.Duration.Round(time.Millisecond))

	summary := runSummary{
		RunFile:   filepath.Base(l.runFile),
		Timestamp: time.Now(),
		Result:    result,
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		l.writef(levelWarn, "summary.json not written: %v", err)
		return
	}

	lock := filelock.NewFileLock(filepath.Join(l.logDir, ".latest.lock"))
	if err := lock.Lock(); err != nil {
		l.writef(levelWarn, "summary.json not written: %v", err)
		return
	}
	defer lock.Unlock()

	if err := filelock.AtomicWrite(filepath.Join(l.logDir, "summary.json"), data); err != nil {
		l.writef(levelWarn, "summary.json not written: %v", err)
	}
}

// LogDebug logs a debug-level message.
func (l *FileLogger) LogDebug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writef(levelDebug, format, args...)
}
