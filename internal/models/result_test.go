package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewExecutionResult(t *testing.T) {
	results := []TaskResult{
		{TaskID: 0, Status: StatusCompleted, Duration: 10 * time.Millisecond},
		{TaskID: 1, Status: StatusCompleted, Duration: 20 * time.Millisecond},
		{TaskID: 2, Status: StatusFailed, Error: errors.New("boom"), Duration: 30 * time.Millisecond},
	}

	er := NewExecutionResult(results, 2, time.Second)

	if er.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d", er.TotalTasks)
	}
	if er.Completed != 2 || er.Failed != 1 {
		t.Errorf("Completed/Failed = %d/%d", er.Completed, er.Failed)
	}
	if er.Waves != 2 {
		t.Errorf("Waves = %d", er.Waves)
	}
	if er.AvgTaskDuration != 20*time.Millisecond {
		t.Errorf("AvgTaskDuration = %v", er.AvgTaskDuration)
	}
	if len(er.FailedTasks) != 1 || er.FailedTasks[0].TaskID != 2 {
		t.Errorf("FailedTasks = %+v", er.FailedTasks)
	}
	if er.StatusBreakdown[StatusCompleted] != 2 || er.StatusBreakdown[StatusFailed] != 1 {
		t.Errorf("StatusBreakdown = %v", er.StatusBreakdown)
	}
	if er.Success() {
		t.Error("Success() should be false with a failed task")
	}
}

func TestNewExecutionResult_Empty(t *testing.T) {
	er := NewExecutionResult(nil, 0, 0)
	if er.TotalTasks != 0 || er.Failed != 0 {
		t.Errorf("unexpected result: %+v", er)
	}
	if !er.Success() {
		t.Error("empty run counts as success")
	}
	if er.AvgTaskDuration != 0 {
		t.Errorf("AvgTaskDuration = %v", er.AvgTaskDuration)
	}
}
