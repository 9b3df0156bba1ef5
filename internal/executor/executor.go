// Package executor derives a safe parallel execution plan from per-task
// read/write declarations and runs the tasks on waves of worker goroutines.
//
// Planning flows strictly forward: declarations are validated, analyzed
// into a dependency table, and layered into waves. Execution dispatches
// each wave's tasks concurrently and joins them all before the next wave
// starts. The executor never touches the data behind the declared names;
// safety rests entirely on the declarations being accurate.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/harrison/taskwave/internal/models"
)

// Logger receives execution progress events. Implementations must be safe
// for concurrent use. A nil Logger disables logging.
type Logger interface {
	LogWaveStart(wave models.Wave)
	LogWaveComplete(wave models.Wave, duration time.Duration, results []models.TaskResult)
	LogTaskResult(result models.TaskResult) error
	LogProgress(results []models.TaskResult)
	LogSummary(result models.ExecutionResult)
	LogDebug(format string, args ...interface{})
}

// Executor owns a set of tasks and their access declarations, plans a
// conflict-free wave order, and runs it. The lifecycle is strict:
// construct, Plan exactly once, Run exactly once.
type Executor struct {
	tasks          []*Task
	decls          models.DeclarationList
	deps           models.DependencyTable
	plan           *models.Plan
	logger         Logger
	maxConcurrency int
	planned        bool
	ran            bool
}

// New constructs an Executor from tasks and their declarations. The two
// sequences must have equal length; a mismatch is refused.
func New(tasks []*Task, decls models.DeclarationList) (*Executor, error) {
	if len(tasks) != len(decls) {
		return nil, &SizeMismatchError{Tasks: len(tasks), Declarations: len(decls)}
	}
	return &Executor{tasks: tasks, decls: decls}, nil
}

// SetLogger installs a progress logger. Pass nil to disable logging.
func (e *Executor) SetLogger(logger Logger) {
	e.logger = logger
}

// SetMaxConcurrency caps the number of parallel workers per wave.
// Zero (the default) runs every task of a wave on its own goroutine.
// Must be called before Plan.
func (e *Executor) SetMaxConcurrency(n int) {
	e.maxConcurrency = n
}

// Plan consumes the stored declarations and computes the execution plan:
// validation, dependency analysis, then wave layering. It must be called
// exactly once before Run.
func (e *Executor) Plan() error {
	if e.planned {
		return ErrPlanAlreadyBuilt
	}
	e.planned = true

	decls := e.decls
	e.decls = nil

	e.debugf("planning %d task(s)\n%s", len(decls), models.DescribeUsages(decls))

	deps, err := AnalyzeDependencies(decls)
	if err != nil {
		return err
	}
	e.deps = deps
	e.debugf("dependency table: %v", deps)

	plan, err := BuildExecutionPlan(deps, e.maxConcurrency)
	if err != nil {
		return err
	}
	e.plan = plan
	e.debugf("execution plan:\n%s", plan)

	return nil
}

// ExecutionPlan returns the computed plan, or nil before Plan is called.
func (e *Executor) ExecutionPlan() *models.Plan {
	return e.plan
}

// Dependencies returns the computed dependency table, or nil before Plan
// is called.
func (e *Executor) Dependencies() models.DependencyTable {
	return e.deps
}

// Run executes the plan wave by wave. Every task of a wave runs on its own
// worker goroutine (subject to the per-wave concurrency cap) and all
// workers are joined before the next wave starts. If a task terminates
// abnormally the remaining workers of its wave are joined and no further
// wave is dispatched; partial progress is not undone.
//
// Context cancellation is honored only between waves: a wave that has
// started always runs to completion.
func (e *Executor) Run(ctx context.Context) ([]models.TaskResult, error) {
	if e.plan == nil {
		return nil, ErrPlanNotBuilt
	}
	if e.ran {
		return nil, ErrAlreadyRun
	}
	e.ran = true

	var allResults []models.TaskResult
	for waveIdx, wave := range e.plan.Waves {
		if err := ctx.Err(); err != nil {
			return allResults, err
		}

		waveResults, err := e.runWave(waveIdx, wave)
		allResults = append(allResults, waveResults...)
		if err != nil {
			return allResults, err
		}
	}

	return allResults, nil
}

// runWave dispatches one wave's tasks and joins them all. The first
// abnormal termination is reported after every worker of the wave has
// finished.
func (e *Executor) runWave(waveIdx int, wave models.Wave) ([]models.TaskResult, error) {
	waveStart := time.Now()
	if e.logger != nil {
		e.logger.LogWaveStart(wave)
	}

	workers := wave.MaxConcurrency
	if workers <= 0 || workers > len(wave.TaskIDs) {
		workers = len(wave.TaskIDs)
	}
	semaphore := make(chan struct{}, workers)
	resultsCh := make(chan models.TaskResult, len(wave.TaskIDs))

	var wg sync.WaitGroup
	var launchErr error

	for _, id := range wave.TaskIDs {
		task := e.tasks[id]
		action, err := task.take(id)
		if err != nil {
			// Scheduler bug or concurrent misuse; join what already
			// launched, then fail the run.
			launchErr = err
			break
		}

		semaphore <- struct{}{}
		wg.Add(1)

		go func(id int, name string, action Action) {
			defer wg.Done()
			defer func() { <-semaphore }()

			start := time.Now()
			err := invoke(action)

			result := models.TaskResult{
				TaskID:   id,
				Name:     name,
				Wave:     waveIdx,
				Duration: time.Since(start),
			}
			if err != nil {
				result.Status = models.StatusFailed
				result.Error = err
			} else {
				result.Status = models.StatusCompleted
			}
			resultsCh <- result
		}(id, task.Name(), action)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	resultMap := make(map[models.TaskID]models.TaskResult, len(wave.TaskIDs))
	var execErr error

	for result := range resultsCh {
		resultMap[result.TaskID] = result
		if result.Error != nil && execErr == nil {
			execErr = NewTaskError(result.TaskID, waveIdx, "task terminated abnormally", result.Error)
		}

		if e.logger != nil {
			_ = e.logger.LogTaskResult(result)

			// One entry per wave task; pending tasks have an empty status.
			progress := make([]models.TaskResult, 0, len(wave.TaskIDs))
			for _, taskID := range wave.TaskIDs {
				if r, ok := resultMap[taskID]; ok {
					progress = append(progress, r)
				} else {
					progress = append(progress, models.TaskResult{TaskID: taskID, Wave: waveIdx})
				}
			}
			e.logger.LogProgress(progress)
		}
	}

	// Report results in ascending task ID order for reproducibility.
	waveResults := make([]models.TaskResult, 0, len(resultMap))
	for _, taskID := range wave.TaskIDs {
		if result, ok := resultMap[taskID]; ok {
			waveResults = append(waveResults, result)
		}
	}

	if e.logger != nil {
		e.logger.LogWaveComplete(wave, time.Since(waveStart), waveResults)
	}

	if launchErr != nil && execErr == nil {
		execErr = launchErr
	}
	return waveResults, execErr
}

// invoke runs a task action, converting a panic in the action into an
// ordinary error so one misbehaving task cannot take down the process
// before its wave is joined.
func invoke(action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return action()
}

func (e *Executor) debugf(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.LogDebug(format, args...)
	}
}
