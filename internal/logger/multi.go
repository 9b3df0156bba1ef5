package logger

import (
	"time"

	"github.com/harrison/taskwave/internal/executor"
	"github.com/harrison/taskwave/internal/models"
)

// Multi fans execution events out to several loggers, typically a console
// logger plus a file logger.
type Multi struct {
	loggers []executor.Logger
}

// NewMulti creates a Multi over the given loggers. Nil entries are
// dropped.
func NewMulti(loggers ...executor.Logger) *Multi {
	m := &Multi{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// LogWaveStart implements the executor Logger interface.
func (m *Multi) LogWaveStart(wave models.Wave) {
	for _, l := range m.loggers {
		l.LogWaveStart(wave)
	}
}

// LogWaveComplete implements the executor Logger interface.
func (m *Multi) LogWaveComplete(wave models.Wave, duration time.Duration, results []models.TaskResult) {
	for _, l := range m.loggers {
		l.LogWaveComplete(wave, duration, results)
	}
}

// LogTaskResult implements the executor Logger interface. The first
// logger error is returned after every logger ran.
func (m *Multi) LogTaskResult(result models.TaskResult) error {
	var firstErr error
	for _, l := range m.loggers {
		if err := l.LogTaskResult(result); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// LogProgress implements the executor Logger interface.
func (m *Multi) LogProgress(results []models.TaskResult) {
	for _, l := range m.loggers {
		l.LogProgress(results)
	}
}

// LogSummary implements the executor Logger interface.
func (m *Multi) LogSummary(result models.ExecutionResult) {
	for _, l := range m.loggers {
		l.LogSummary(result)
	}
}

// LogDebug implements the executor Logger interface.
func (m *Multi) LogDebug(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.LogDebug(format, args...)
	}
}
