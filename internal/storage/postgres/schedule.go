package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/storage"
)

func (s *Store) GetCandidateTasks(day string) ([]models.Task, error) {
	return s.queryTasks(`
SELECT `+taskColumns+` FROM tasks
WHERE deleted_at IS NULL
  AND planned_date IS NULL
  AND status IN ($1, $2)
  AND due_date IS NOT NULL AND due_date >= $3
ORDER BY created_at, id`,
		string(constants.StatusNextAction), string(constants.StatusProject), day)
}

func (s *Store) GetPlannedTasks(from, to time.Time) ([]models.Task, error) {
	return s.queryTasks(`
SELECT `+taskColumns+` FROM tasks
WHERE deleted_at IS NULL
  AND planned_date >= $1 AND planned_date < $2
ORDER BY planned_date, id`,
		storage.FormatTimestamp(from), storage.FormatTimestamp(to))
}

// ApplyAssignments relies on row locks: a concurrent run blocks on the
// UPDATE, then sees planned_date set and matches no row.
func (s *Store) ApplyAssignments(assignments []models.ScheduledAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
UPDATE tasks SET planned_date = $1, estimated_min = COALESCE($2, estimated_min)
WHERE id = $3 AND deleted_at IS NULL AND planned_date IS NULL`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range assignments {
		res, err := stmt.Exec(storage.FormatTimestamp(a.PlannedDate), storage.NullPositive(a.EstimatedMin), a.TaskID)
		if err != nil {
			return fmt.Errorf("failed to plan task %s: %w", a.TaskID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 1 {
			continue
		}

		var planned sql.NullString
		err = tx.QueryRow("SELECT planned_date FROM tasks WHERE id = $1 AND deleted_at IS NULL", a.TaskID).Scan(&planned)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.NotFound("task", a.TaskID)
		}
		if err != nil {
			return err
		}
		return fmt.Errorf("task %s planned for %s: %w", a.TaskID, planned.String, storage.ErrAlreadyPlanned)
	}

	return tx.Commit()
}

func (s *Store) ClearPlanned(from, to time.Time) (int, error) {
	res, err := s.db.Exec(`
UPDATE tasks SET planned_date = NULL
WHERE deleted_at IS NULL AND status <> $1
  AND planned_date >= $2 AND planned_date < $3`,
		string(constants.StatusDone), storage.FormatTimestamp(from), storage.FormatTimestamp(to))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
