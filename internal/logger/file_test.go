package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/taskwave/internal/models"
)

func TestFileLogger_WritesRunLog(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer l.Close()

	l.LogWaveStart(models.Wave{Name: "Wave 1", TaskIDs: []int{0, 1}})
	_ = l.LogTaskResult(models.TaskResult{TaskID: 0, Name: "seed", Status: models.StatusCompleted, Duration: time.Millisecond})
	_ = l.LogTaskResult(models.TaskResult{TaskID: 1, Status: models.StatusFailed, Wave: 0, Error: errors.New("boom")})
	l.LogWaveComplete(models.Wave{Name: "Wave 1"}, time.Second, nil)

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(l.RunFile())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"=== Wave 1: 2 task(s) [0 1]",
		"ok seed (wave 1, 1ms)",
		"FAILED task 1 (wave 1): boom",
		"=== Wave 1 completed in 1s",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("run log missing %q:\n%s", want, content)
		}
	}
}

func TestFileLogger_LatestSymlink(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer l.Close()

	link := filepath.Join(dir, "latest.log")
	target, err := os.Readlink(link)
	if err != nil {
		t.Skipf("symlinks unsupported here: %v", err)
	}
	if target != filepath.Base(l.RunFile()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(l.RunFile()))
	}
}

func TestFileLogger_Summary(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer l.Close()

	l.LogSummary(models.ExecutionResult{TotalTasks: 3, Completed: 3, Waves: 2, Duration: time.Second})

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	if err != nil {
		t.Fatalf("summary.json not written: %v", err)
	}

	var summary struct {
		RunFile string `json:"run_file"`
		Result  struct {
			TotalTasks int `json:"total_tasks"`
			Waves      int `json:"waves"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("summary.json invalid: %v", err)
	}
	if summary.Result.TotalTasks != 3 || summary.Result.Waves != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.RunFile != filepath.Base(l.RunFile()) {
		t.Errorf("summary run_file = %q", summary.RunFile)
	}
}

func TestFileLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileLogger(dir, "warn")
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	l.LogDebug("hidden %d", 1)
	l.LogWaveStart(models.Wave{Name: "Wave 1"})
	l.Close()

	data, err := os.ReadFile(l.RunFile())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden") || strings.Contains(string(data), "Wave 1") {
		t.Errorf("level filter leaked output: %q", data)
	}
}
