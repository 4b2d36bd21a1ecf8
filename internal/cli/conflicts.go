package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/validation"
)

// CollectConflicts validates the configuration, contexts, tasks and the
// persisted schedule of day. The live tasks are returned for auto-fixing.
func (c *Context) CollectConflicts(day time.Time, cfg models.TimeConfiguration) (validation.ValidationResult, []models.Task, error) {
	contexts, err := c.Store.GetAllContexts()
	if err != nil {
		return validation.ValidationResult{}, nil, fmt.Errorf("failed to load contexts: %w", err)
	}
	tasks, err := c.Store.GetAllTasks()
	if err != nil {
		return validation.ValidationResult{}, nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	from, to := DayBounds(day)
	planned, err := c.Store.GetPlannedTasks(from, to)
	if err != nil {
		return validation.ValidationResult{}, nil, fmt.Errorf("failed to load planned tasks: %w", err)
	}

	v := validation.New()
	result := v.ValidateConfiguration(cfg)
	configOK := !result.HasConflicts()
	result.Merge(v.ValidateContexts(contexts))
	result.Merge(v.ValidateTasks(tasks, contexts))
	// Slots cannot be generated from a broken configuration
	if configOK {
		result.Merge(v.ValidateSchedule(cfg, day, planned))
	}
	return result, tasks, nil
}
