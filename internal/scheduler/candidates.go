package scheduler

import (
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

// SelectCandidates keeps the tasks eligible for scheduling on day: actionable,
// not deleted, not yet planned, and due on or after day. Tasks without a due
// date are not candidates.
func SelectCandidates(tasks []models.Task, day time.Time) []models.Task {
	dayStr := day.Format(constants.DateFormat)

	var candidates []models.Task
	for _, task := range tasks {
		if task.DeletedAt != nil || !task.IsActionable() || task.PlannedDate != nil {
			continue
		}
		if task.DueDate == "" || task.DueDate < dayStr {
			continue
		}
		candidates = append(candidates, task)
	}
	return candidates
}
