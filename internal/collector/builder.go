package collector

import (
	"github.com/harrison/taskwave/internal/executor"
	"github.com/harrison/taskwave/internal/models"
)

// Builder is the programmatic collector: library users register each task
// together with its annotation options and obtain a ready executor. It is
// the runtime equivalent of the build-time annotation scan.
type Builder struct {
	tasks []*executor.Task
	decls models.DeclarationList
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add registers a task action with its access options. Tasks run in waves
// derived from the declared accesses; registration order defines task IDs.
func (b *Builder) Add(name string, action executor.Action, opts Options) *Builder {
	b.tasks = append(b.tasks, executor.NewNamedTask(name, action))
	b.decls = append(b.decls, opts.Usages())
	return b
}

// Len returns the number of registered tasks.
func (b *Builder) Len() int {
	return len(b.tasks)
}

// Executor hands the registered tasks and declarations to a new executor.
// The builder must not be reused afterwards; the tasks now belong to the
// executor.
func (b *Builder) Executor() (*executor.Executor, error) {
	return executor.New(b.tasks, b.decls)
}
