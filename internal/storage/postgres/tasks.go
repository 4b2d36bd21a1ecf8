package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/storage"
)

const taskColumns = `id, title, notes, status, priority, estimated_min, requires_focus,
       due_date, planned_date, created_at, completed_at, deleted_at`

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var status, createdAt string
	var estimated sql.NullInt64
	var dueDate, plannedDate, completedAt, deletedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.Title, &t.Notes, &status, &t.Priority, &estimated, &t.RequiresFocus,
		&dueDate, &plannedDate, &createdAt, &completedAt, &deletedAt,
	)
	if err != nil {
		return models.Task{}, err
	}

	t.Status = constants.TaskStatus(status)
	t.EstimatedMin = storage.IntPtr(estimated)
	t.DueDate = dueDate.String
	t.DeletedAt = storage.StringPtr(deletedAt)

	if t.PlannedDate, err = storage.TimestampPtr(plannedDate); err != nil {
		return models.Task{}, err
	}
	if t.CompletedAt, err = storage.TimestampPtr(completedAt); err != nil {
		return models.Task{}, err
	}
	if createdAt != "" {
		if t.CreatedAt, err = storage.ParseTimestamp(createdAt); err != nil {
			return models.Task{}, err
		}
	}
	return t, nil
}

func (s *Store) AddTask(task models.Task) error {
	return s.UpdateTask(task)
}

func (s *Store) GetTask(id string) (models.Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, storage.NotFound("task", id)
		}
		return models.Task{}, err
	}

	tasks := []models.Task{t}
	if err := s.attachContexts(tasks); err != nil {
		return models.Task{}, err
	}
	return tasks[0], nil
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks(`SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL ORDER BY created_at, id`)
}

func (s *Store) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	return s.queryTasks(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`)
}

func (s *Store) queryTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachContexts(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// attachContexts fills ContextIDs with every linked context and Contexts with the live ones
func (s *Store) attachContexts(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	rows, err := s.db.Query(`
SELECT tc.task_id, c.id, c.name, c.monday, c.tuesday, c.wednesday, c.thursday, c.friday, c.saturday, c.sunday,
       c.start_time, c.end_time, c.deleted_at
FROM task_contexts tc
JOIN contexts c ON c.id = tc.context_id
WHERE tc.task_id = ANY($1)
ORDER BY c.name`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	byTask := make(map[string][]models.Context)
	for rows.Next() {
		var taskID string
		c, err := scanContext(rows, &taskID)
		if err != nil {
			return err
		}
		byTask[taskID] = append(byTask[taskID], c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].ContextIDs = nil
		tasks[i].Contexts = nil
		for _, c := range byTask[tasks[i].ID] {
			tasks[i].ContextIDs = append(tasks[i].ContextIDs, c.ID)
			if c.DeletedAt == nil {
				tasks[i].Contexts = append(tasks[i].Contexts, c)
			}
		}
	}
	return nil
}

// UpdateTask upserts the task row and replaces its context links
func (s *Store) UpdateTask(task models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
INSERT INTO tasks (`+taskColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title, notes = EXCLUDED.notes, status = EXCLUDED.status,
    priority = EXCLUDED.priority, estimated_min = EXCLUDED.estimated_min,
    requires_focus = EXCLUDED.requires_focus, due_date = EXCLUDED.due_date,
    planned_date = EXCLUDED.planned_date, completed_at = EXCLUDED.completed_at,
    deleted_at = EXCLUDED.deleted_at`,
		task.ID, task.Title, task.Notes, string(task.Status), int(task.Priority), storage.NullInt(task.EstimatedMin), task.RequiresFocus,
		storage.NullString(task.DueDate), storage.NullTimestamp(task.PlannedDate), storage.FormatTimestamp(task.CreatedAt),
		storage.NullTimestamp(task.CompletedAt), storage.NullStringPtr(task.DeletedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM task_contexts WHERE task_id = $1", task.ID); err != nil {
		return err
	}
	for _, contextID := range task.ContextIDs {
		if _, err := tx.Exec("INSERT INTO task_contexts (task_id, context_id) VALUES ($1, $2)", task.ID, contextID); err != nil {
			return fmt.Errorf("failed to link context %s: %w", contextID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteTask(id string) error {
	deleted, err := s.isDeleted("tasks", "task", id)
	if err != nil {
		return err
	}
	if deleted {
		return fmt.Errorf("task %s: %w", id, storage.ErrAlreadyDeleted)
	}
	_, err = s.db.Exec("UPDATE tasks SET deleted_at = $1 WHERE id = $2", storage.Now(), id)
	return err
}

func (s *Store) RestoreTask(id string) error {
	deleted, err := s.isDeleted("tasks", "task", id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("cannot restore task %s: %w", id, storage.ErrNotDeleted)
	}
	_, err = s.db.Exec("UPDATE tasks SET deleted_at = NULL WHERE id = $1", id)
	return err
}
