package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harrison/taskwave/internal/models"
)

func TestConsoleLogger_LogWaveStart(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	l.LogWaveStart(models.Wave{Name: "Wave 1", TaskIDs: []int{0, 1, 2}})

	output := buf.String()
	if !strings.Contains(output, "Starting Wave 1 with 3 task(s)") {
		t.Errorf("unexpected output: %q", output)
	}
	if !strings.HasPrefix(output, "[") {
		t.Error("output should carry a timestamp prefix")
	}
}

func TestConsoleLogger_LogWaveComplete(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	l.LogWaveComplete(models.Wave{Name: "Wave 2"}, 1500*time.Millisecond, nil)

	if !strings.Contains(buf.String(), "Completed Wave 2 in 1.5s") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestConsoleLogger_LogWaveComplete_WithFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	results := []models.TaskResult{
		{TaskID: 0, Status: models.StatusCompleted},
		{TaskID: 1, Status: models.StatusFailed, Error: errors.New("boom")},
	}
	l.LogWaveComplete(models.Wave{Name: "Wave 1"}, time.Second, results)

	if !strings.Contains(buf.String(), "1 failed") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestConsoleLogger_LogTaskResult(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	if err := l.LogTaskResult(models.TaskResult{
		TaskID:   3,
		Name:     "build index",
		Status:   models.StatusCompleted,
		Duration: 42 * time.Millisecond,
	}); err != nil {
		t.Fatalf("LogTaskResult() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "✓ build index (42ms)") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestConsoleLogger_LogTaskResult_Failure(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	_ = l.LogTaskResult(models.TaskResult{
		TaskID: 5,
		Status: models.StatusFailed,
		Error:  errors.New("exit status 2"),
	})

	output := buf.String()
	if !strings.Contains(output, "✗ task 5: exit status 2") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "error")

	l.LogWaveStart(models.Wave{Name: "Wave 1"})
	l.LogDebug("debug detail %d", 1)

	if buf.Len() != 0 {
		t.Errorf("expected no output at error level, got %q", buf.String())
	}
}

func TestConsoleLogger_LogDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "debug")

	l.LogDebug("dependency table: %v", []int{1, 2})

	if !strings.Contains(buf.String(), "dependency table: [1 2]") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestConsoleLogger_NilWriter(t *testing.T) {
	l := NewConsoleLogger(nil, "info")
	l.LogWaveStart(models.Wave{Name: "Wave 1"})
	l.LogSummary(models.ExecutionResult{})
	_ = l.LogTaskResult(models.TaskResult{})
}

func TestConsoleLogger_LogSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")

	result := models.ExecutionResult{
		TotalTasks: 4,
		Completed:  3,
		Failed:     1,
		Waves:      2,
		Duration:   3 * time.Second,
		FailedTasks: []models.TaskResult{
			{TaskID: 2, Name: "publish", Wave: 1, Error: errors.New("exit status 1")},
		},
	}
	l.LogSummary(result)

	output := buf.String()
	for _, want := range []string{
		"Total tasks: 4",
		"Waves: 2",
		"Completed: 3",
		"Failed: 1",
		"Failed Tasks:",
		"publish (wave 2): exit status 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q in %q", want, output)
		}
	}
}

func TestConsoleLogger_ProgressBar(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewConsoleLogger(buf, "info")
	l.SetProgressBar(true)

	results := []models.TaskResult{
		{TaskID: 0, Status: models.StatusCompleted},
		{TaskID: 1, Status: ""},
	}
	l.LogProgress(results)

	if !strings.Contains(buf.String(), "1/2 (50%)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestProgressBar_Render(t *testing.T) {
	pb := NewProgressBar(4, 8, false)
	pb.Update(2)

	got := pb.Render()
	if !strings.Contains(got, "2/4 (50%)") {
		t.Errorf("Render() = %q", got)
	}
	if pb.Percentage() != 50 {
		t.Errorf("Percentage() = %d", pb.Percentage())
	}

	pb.Increment()
	pb.Increment()
	if pb.Percentage() != 100 {
		t.Errorf("Percentage() after increments = %d", pb.Percentage())
	}
}

func TestProgressBar_ZeroTotal(t *testing.T) {
	pb := NewProgressBar(0, 8, false)
	if pb.Percentage() != 0 {
		t.Errorf("Percentage() = %d, want 0", pb.Percentage())
	}
}
