package scheduler

import (
	"sort"

	"github.com/julianstephens/tempo/internal/models"
)

// PrioritizeTasks returns a copy of tasks in the order the assignment loop attempts them:
// priority descending, focus-requiring first, then shorter estimates first.
// A missing estimate sorts as zero here even though it schedules as the default length.
func PrioritizeTasks(tasks []models.Task) []models.Task {
	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.RequiresFocus != b.RequiresFocus {
			return a.RequiresFocus
		}
		return sortEstimate(a) < sortEstimate(b)
	})

	return ordered
}

func sortEstimate(t models.Task) int {
	if t.EstimatedMin == nil {
		return 0
	}
	return *t.EstimatedMin
}
