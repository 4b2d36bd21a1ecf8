package tasks

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

type TaskEditCmd struct {
	ID       string   `arg:"" help:"Task ID."`
	Title    *string  `help:"New task title."`
	Priority *string  `short:"p" help:"New priority (low|medium|high|urgent or 1-4)."`
	Estimate *int     `short:"e" help:"New estimate in minutes (0 clears it)."`
	Focus    *bool    `short:"f" help:"Whether the task needs a focus slot."`
	Due      *string  `short:"d" help:"New due date (YYYY-MM-DD, today, tomorrow, empty clears it)."`
	Status   *string  `short:"s" help:"New status."`
	Context  []string `short:"c" help:"Replace contexts (names or IDs)." sep:","`
	Notes    *string  `short:"n" help:"New notes."`
	Unplan   bool     `help:"Clear the planned date so the task can be scheduled again."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Title != nil {
		task.Title = *c.Title
	}
	if c.Priority != nil {
		if task.Priority, err = models.ParsePriority(*c.Priority); err != nil {
			return err
		}
	}
	if c.Estimate != nil {
		switch {
		case *c.Estimate < 0:
			return fmt.Errorf("estimate cannot be negative")
		case *c.Estimate == 0:
			task.EstimatedMin = nil
		default:
			estimate := *c.Estimate
			task.EstimatedMin = &estimate
		}
	}
	if c.Focus != nil {
		task.RequiresFocus = *c.Focus
	}
	if c.Due != nil {
		if task.DueDate, err = resolveDueDate(ctx, *c.Due); err != nil {
			return err
		}
	}
	if c.Status != nil {
		status, err := models.ParseStatus(*c.Status)
		if err != nil {
			return err
		}
		setStatus(&task, status, time.Now().UTC())
	}
	if c.Context != nil {
		if task.ContextIDs, err = ctx.ResolveContexts(c.Context); err != nil {
			return err
		}
	}
	if c.Notes != nil {
		task.Notes = *c.Notes
	}
	if c.Unplan {
		task.PlannedDate = nil
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task updated: %s\n", task.Title)
	return nil
}

// setStatus keeps CompletedAt in step with the done status
func setStatus(task *models.Task, status constants.TaskStatus, now time.Time) {
	task.Status = status
	switch {
	case status == constants.StatusDone && task.CompletedAt == nil:
		task.CompletedAt = &now
	case status != constants.StatusDone:
		task.CompletedAt = nil
	}
}
