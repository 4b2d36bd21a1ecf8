package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/storage"
)

func (s *Store) GetCandidateTasks(day string) ([]models.Task, error) {
	return s.queryTasks(`SELECT `+taskColumns+` FROM tasks
		WHERE deleted_at IS NULL
		  AND planned_date IS NULL
		  AND status IN (?, ?)
		  AND due_date IS NOT NULL AND due_date >= ?
		ORDER BY created_at, id`,
		string(constants.StatusNextAction), string(constants.StatusProject), day)
}

func (s *Store) GetPlannedTasks(from, to time.Time) ([]models.Task, error) {
	return s.queryTasks(`SELECT `+taskColumns+` FROM tasks
		WHERE deleted_at IS NULL
		  AND planned_date >= ? AND planned_date < ?
		ORDER BY planned_date, id`,
		storage.FormatTimestamp(from), storage.FormatTimestamp(to))
}

func (s *Store) ApplyAssignments(assignments []models.ScheduledAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The estimate is written back so saved plans keep the length they were given
	stmt, err := tx.Prepare(`UPDATE tasks SET planned_date = ?, estimated_min = COALESCE(?, estimated_min)
		WHERE id = ? AND deleted_at IS NULL AND planned_date IS NULL`)
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

		// Nothing updated: tell a vanished task apart from one planned concurrently
		var planned sql.NullString
		err = tx.QueryRow("SELECT planned_date FROM tasks WHERE id = ? AND deleted_at IS NULL", a.TaskID).Scan(&planned)
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
	res, err := s.db.Exec(`UPDATE tasks SET planned_date = NULL
		WHERE deleted_at IS NULL AND status <> ?
		  AND planned_date >= ? AND planned_date < ?`,
		string(constants.StatusDone), storage.FormatTimestamp(from), storage.FormatTimestamp(to))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// prefixed qualifies a comma separated column list with a table alias
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
