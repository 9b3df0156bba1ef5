package executor

import (
	"fmt"

	"github.com/harrison/taskwave/internal/models"
)

// BuildExecutionPlan groups tasks into successive waves such that every
// task's predecessors are resolved in strictly earlier waves. Each sweep
// collects all unassigned tasks whose dependencies are fully assigned and
// emits them as the next wave, in ascending task ID order. The layering is
// depth-optimal: wave k holds exactly the tasks whose longest predecessor
// chain has length k.
//
// maxConcurrency caps parallel workers per wave (0 = unlimited) and is
// copied onto every wave.
func BuildExecutionPlan(deps models.DependencyTable, maxConcurrency int) (*models.Plan, error) {
	plan := &models.Plan{}
	total := len(deps)
	if total == 0 {
		return plan, nil
	}

	assigned := make([]bool, total)
	assignedCount := 0

	for assignedCount < total {
		var wave []models.TaskID
		for id := 0; id < total; id++ {
			if assigned[id] {
				continue
			}
			if allDepsAssigned(deps[id], assigned) {
				wave = append(wave, id)
			}
		}

		if len(wave) == 0 {
			return nil, &DeadlockError{Assigned: assignedCount, Total: total}
		}

		for _, id := range wave {
			assigned[id] = true
		}
		assignedCount += len(wave)

		plan.Waves = append(plan.Waves, models.Wave{
			Name:           fmt.Sprintf("Wave %d", len(plan.Waves)+1),
			TaskIDs:        wave,
			MaxConcurrency: maxConcurrency,
		})
	}

	return plan, nil
}

// allDepsAssigned reports whether every predecessor of a task already sits
// in an earlier wave. Tasks with no predecessors are always eligible.
func allDepsAssigned(deps models.TaskDependencies, assigned []bool) bool {
	for _, dep := range deps {
		if !assigned[dep] {
			return false
		}
	}
	return true
}
