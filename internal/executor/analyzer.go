package executor

import (
	"github.com/harrison/taskwave/internal/models"
)

// ValidateDeclarations checks that every task's declaration is internally
// well-formed: no identifier appears twice within a single task, whether as
// read or write, and no identifier is empty. The dependency analysis relies
// on each (task, identifier) pair being unique so that "previous usage" is
// unambiguous.
func ValidateDeclarations(decls models.DeclarationList) error {
	for taskID, usages := range decls {
		for i, usage := range usages {
			if usage.Identifier == "" {
				return &EmptyIdentifierError{TaskID: taskID}
			}
			for j := i + 1; j < len(usages); j++ {
				if usage.Identifier == usages[j].Identifier {
					return &DuplicateIdentifierError{TaskID: taskID, Identifier: usage.Identifier}
				}
			}
		}
	}
	return nil
}

// AnalyzeDependencies converts per-task access declarations into, for each
// task, the set of earlier task IDs it must wait for. A dependency on a
// prior task exists iff both touch the same identifier and at least one of
// the two accesses is a write:
//
//	write after write, write after read, read after write.
//
// Concurrent reads never conflict. Each predecessor is recorded at most
// once. Transitive reduction is deliberately skipped: redundant edges do
// not change the wave layering and pruning them costs more than it saves
// at the expected scale.
func AnalyzeDependencies(decls models.DeclarationList) (models.DependencyTable, error) {
	if err := ValidateDeclarations(decls); err != nil {
		return nil, err
	}

	table := make(models.DependencyTable, 0, len(decls))
	for taskID := range decls {
		var deps models.TaskDependencies

		for _, usage := range decls[taskID] {
			for prev := 0; prev < taskID; prev++ {
				if containsTaskID(deps, prev) {
					continue
				}
				for _, prevUsage := range decls[prev] {
					if usage.Identifier != prevUsage.Identifier {
						continue
					}
					if usage.Kind == models.AccessWrite || prevUsage.Kind == models.AccessWrite {
						deps = append(deps, prev)
						break
					}
				}
			}
		}
		table = append(table, deps)
	}
	return table, nil
}

func containsTaskID(deps models.TaskDependencies, id models.TaskID) bool {
	for _, d := range deps {
		if d == id {
			return true
		}
	}
	return false
}
