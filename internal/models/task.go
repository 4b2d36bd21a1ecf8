package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
)

type Task struct {
	ID            string               `json:"id" yaml:"id"`
	Title         string               `json:"title" yaml:"title"`
	Notes         string               `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status        constants.TaskStatus `json:"status" yaml:"status"`
	Priority      constants.Priority   `json:"priority" yaml:"priority"`
	EstimatedMin  *int                 `json:"estimated,omitempty" yaml:"estimated,omitempty"` // minutes
	RequiresFocus bool                 `json:"requires_focus" yaml:"requires_focus"`
	DueDate       string               `json:"due_date,omitempty" yaml:"due_date,omitempty"` // YYYY-MM-DD format
	PlannedDate   *time.Time           `json:"planned_date,omitempty" yaml:"planned_date,omitempty"`
	ContextIDs    []string             `json:"context_ids,omitempty" yaml:"context_ids,omitempty"`
	CreatedAt     time.Time            `json:"created_at" yaml:"created_at"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	DeletedAt     *string              `json:"deleted_at,omitempty" yaml:"-"` // RFC3339 timestamp

	// Contexts is populated by the storage layer from ContextIDs
	Contexts []Context `json:"-" yaml:"-"`
}

// Duration returns the number of minutes the task occupies when scheduled.
func (t Task) Duration() int {
	if t.EstimatedMin != nil && *t.EstimatedMin > 0 {
		return *t.EstimatedMin
	}
	return constants.DefaultTaskEstimateMin
}

// IsActionable reports whether the task's status allows it to be scheduled
func (t Task) IsActionable() bool {
	return t.Status == constants.StatusNextAction || t.Status == constants.StatusProject
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if t.Priority < constants.PriorityLow || t.Priority > constants.PriorityUrgent {
		return fmt.Errorf("priority must be one of low, medium, high, urgent")
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if t.EstimatedMin != nil && *t.EstimatedMin < 0 {
		return fmt.Errorf("estimate cannot be negative")
	}
	if t.DueDate != "" {
		if _, err := time.Parse(constants.DateFormat, t.DueDate); err != nil {
			return fmt.Errorf("invalid due date format (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

// ParsePriority accepts a priority name (low|medium|high|urgent) or its ordinal (1-4).
func ParsePriority(s string) (constants.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return constants.PriorityLow, nil
	case "medium", "2":
		return constants.PriorityMedium, nil
	case "high", "3":
		return constants.PriorityHigh, nil
	case "urgent", "4":
		return constants.PriorityUrgent, nil
	}
	return 0, fmt.Errorf("invalid priority: %q", s)
}

// FormatPriority returns the lowercase name of a priority
func FormatPriority(p constants.Priority) string {
	switch p {
	case constants.PriorityLow:
		return "low"
	case constants.PriorityMedium:
		return "medium"
	case constants.PriorityHigh:
		return "high"
	case constants.PriorityUrgent:
		return "urgent"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

func ParseStatus(s string) (constants.TaskStatus, error) {
	status := constants.TaskStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch status {
	case constants.StatusInbox, constants.StatusNextAction, constants.StatusProject,
		constants.StatusWaiting, constants.StatusSomeday, constants.StatusDone:
		return status, nil
	}
	return "", fmt.Errorf("invalid task status: %q", s)
}
