package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/utils"
)

type TaskAddCmd struct {
	Title    string   `arg:"" help:"Task title."`
	Priority string   `short:"p" help:"Priority (low|medium|high|urgent or 1-4)." default:"medium"`
	Estimate int      `short:"e" help:"Estimated duration in minutes. Unset tasks are scheduled as 30 minutes."`
	Focus    bool     `short:"f" help:"Task needs a focus slot."`
	Due      string   `short:"d" help:"Due date (YYYY-MM-DD, today, tomorrow)."`
	Status   string   `short:"s" help:"Status (inbox|next_action|project|waiting|someday)." default:"next_action"`
	Context  []string `short:"c" help:"Context names or IDs the task can be done in." sep:","`
	Notes    string   `short:"n" help:"Free-form notes."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Estimate < 0 {
		return fmt.Errorf("estimate cannot be negative")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	contextIDs, err := ctx.ResolveContexts(c.Context)
	if err != nil {
		return err
	}
	due, err := resolveDueDate(ctx, c.Due)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:            uuid.New().String(),
		Title:         c.Title,
		Notes:         c.Notes,
		Status:        status,
		Priority:      priority,
		RequiresFocus: c.Focus,
		DueDate:       due,
		ContextIDs:    contextIDs,
		CreatedAt:     time.Now().UTC(),
	}
	if c.Estimate > 0 {
		estimate := c.Estimate
		task.EstimatedMin = &estimate
	}
	if status == constants.StatusDone {
		completed := task.CreatedAt
		task.CompletedAt = &completed
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	if task.IsActionable() && (task.DueDate == "" || len(task.ContextIDs) == 0) {
		fmt.Println("Note: tasks need a due date and a context before they can be scheduled.")
	}
	return nil
}

// resolveDueDate accepts the same day keywords as the scheduling commands and
// returns a YYYY-MM-DD string. An empty value clears the due date.
func resolveDueDate(ctx *cli.Context, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	_, loc, err := ctx.TimeConfiguration()
	if err != nil {
		return "", err
	}
	day, err := utils.ResolveDate(value, loc)
	if err != nil {
		return "", fmt.Errorf("invalid due date: %w", err)
	}
	return day.Format(constants.DateFormat), nil
}
