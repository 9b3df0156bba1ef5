package models

import "fmt"

// TaskID references a task by its position in the workplan.
type TaskID = int

// TaskDependencies lists the predecessor task IDs of one task. Every entry
// is strictly less than the owning task's ID and appears at most once.
// Ordering within the list is unspecified.
type TaskDependencies []TaskID

// DependencyTable holds one TaskDependencies per task, indexed by task ID.
type DependencyTable []TaskDependencies

// Wave is a group of tasks that can run in parallel. All tasks in a wave
// are mutually independent; every dependency of a wave member lives in an
// earlier wave.
type Wave struct {
	Name           string   // Wave name (e.g., "Wave 1")
	TaskIDs        []TaskID // Task IDs in this wave, ascending
	MaxConcurrency int      // Maximum concurrent tasks in this wave (0 = unlimited)
}

// Plan is the ordered wave sequence produced by the scheduler. Every task
// ID in [0, N) appears in exactly one wave; no wave is empty; the number of
// waves never exceeds N.
type Plan struct {
	Waves []Wave
}

// TaskCount returns the number of tasks across all waves.
func (p *Plan) TaskCount() int {
	n := 0
	for _, wave := range p.Waves {
		n += len(wave.TaskIDs)
	}
	return n
}

// WaveOf returns the index of the wave containing the given task ID,
// or -1 if the task is not part of the plan.
func (p *Plan) WaveOf(id TaskID) int {
	for i, wave := range p.Waves {
		for _, t := range wave.TaskIDs {
			if t == id {
				return i
			}
		}
	}
	return -1
}

// String renders the plan as one line per wave for debug output.
func (p *Plan) String() string {
	s := ""
	for _, wave := range p.Waves {
		s += fmt.Sprintf("%s: %v\n", wave.Name, wave.TaskIDs)
	}
	return s
}
