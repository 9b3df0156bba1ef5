package models

import "time"

// Task execution status constants
const (
	StatusCompleted = "COMPLETED" // Task ran to completion
	StatusFailed    = "FAILED"    // Task returned an error or panicked
)

// TaskResult represents the result of executing a single task.
type TaskResult struct {
	TaskID   TaskID        // ID of the task that was executed
	Name     string        // Task name, if known (empty for bare library tasks)
	Wave     int           // Index of the wave the task ran in
	Status   string        // StatusCompleted or StatusFailed
	Output   string        // Captured output, if any
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
}

// ExecutionResult represents the aggregate result of executing a plan.
type ExecutionResult struct {
	TotalTasks      int            `json:"total_tasks" yaml:"total_tasks"`
	Completed       int            `json:"completed" yaml:"completed"`
	Failed          int            `json:"failed" yaml:"failed"`
	Waves           int            `json:"waves" yaml:"waves"`
	Duration        time.Duration  `json:"duration" yaml:"duration"`
	FailedTasks     []TaskResult   `json:"failed_tasks" yaml:"failed_tasks"`
	StatusBreakdown map[string]int `json:"status_breakdown" yaml:"status_breakdown"`
	AvgTaskDuration time.Duration  `json:"avg_task_duration" yaml:"avg_task_duration"`
}

// NewExecutionResult creates an ExecutionResult with metrics calculated
// from the collected task results.
func NewExecutionResult(results []TaskResult, waves int, totalDuration time.Duration) *ExecutionResult {
	er := &ExecutionResult{
		TotalTasks:      len(results),
		Waves:           waves,
		Duration:        totalDuration,
		FailedTasks:     []TaskResult{},
		StatusBreakdown: make(map[string]int),
	}
	er.CalculateMetrics(results)
	return er
}

// CalculateMetrics recomputes the aggregate counters from task results.
func (er *ExecutionResult) CalculateMetrics(results []TaskResult) {
	er.StatusBreakdown[StatusCompleted] = 0
	er.StatusBreakdown[StatusFailed] = 0
	er.Completed = 0
	er.Failed = 0

	for _, result := range results {
		if result.Status != "" {
			er.StatusBreakdown[result.Status]++
		}
		if result.Status == StatusFailed {
			er.Failed++
			if er.FailedTasks != nil {
				er.FailedTasks = append(er.FailedTasks, result)
			}
		} else {
			er.Completed++
		}
	}

	if len(results) > 0 {
		totalDur := time.Duration(0)
		for _, result := range results {
			totalDur += result.Duration
		}
		er.AvgTaskDuration = totalDur / time.Duration(len(results))
	}
}

// Success reports whether every task completed.
func (er *ExecutionResult) Success() bool {
	return er.Failed == 0
}
