package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

type TaskListCmd struct {
	Status  string `short:"s" help:"Only show tasks with this status."`
	All     bool   `short:"a" help:"Include done and deleted tasks."`
	ShowIDs bool   `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	var status constants.TaskStatus
	if c.Status != "" {
		s, err := models.ParseStatus(c.Status)
		if err != nil {
			return err
		}
		status = s
	}

	load := ctx.Store.GetAllTasks
	if c.All {
		load = ctx.Store.GetAllTasksIncludingDeleted
	}
	tasks, err := load()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	shown := 0
	for _, task := range tasks {
		if status != "" && task.Status != status {
			continue
		}
		if !c.All && status == "" && task.Status == constants.StatusDone {
			continue
		}
		if shown == 0 {
			fmt.Println("Tasks:")
		}
		shown++
		fmt.Println(c.formatTask(task))
	}
	if shown == 0 {
		fmt.Println("No tasks found")
	}
	return nil
}

func (c *TaskListCmd) formatTask(task models.Task) string {
	var b strings.Builder

	state := string(task.Status)
	if task.DeletedAt != nil {
		state = "deleted"
	}
	fmt.Fprintf(&b, "  [%s] %s", state, task.Title)
	if c.ShowIDs {
		fmt.Fprintf(&b, " (ID: %s)", task.ID)
	}
	fmt.Fprintf(&b, " - %s, %s", cli.FormatEstimate(task), models.FormatPriority(task.Priority))
	if task.RequiresFocus {
		b.WriteString(", focus")
	}

	var details []string
	if task.DueDate != "" {
		details = append(details, "due "+task.DueDate)
	}
	if task.PlannedDate != nil {
		details = append(details, "planned "+task.PlannedDate.Local().Format("2006-01-02 15:04"))
	}
	if len(task.Contexts) > 0 {
		names := make([]string, len(task.Contexts))
		for i, ctx := range task.Contexts {
			names[i] = ctx.Name
		}
		details = append(details, "@"+strings.Join(names, " @"))
	}
	if len(details) > 0 {
		fmt.Fprintf(&b, "\n      %s", strings.Join(details, " | "))
	}
	return b.String()
}
