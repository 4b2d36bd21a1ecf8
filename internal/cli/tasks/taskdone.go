package tasks

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
)

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to complete."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}
	if task.Status == constants.StatusDone {
		fmt.Printf("Task already done: %s\n", task.Title)
		return nil
	}

	setStatus(&task, constants.StatusDone, time.Now().UTC())
	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("Completed task: %s\n", task.Title)
	return nil
}
