package storage

import (
	"time"

	"github.com/julianstephens/tempo/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Time configuration
	GetTimeConfiguration() (models.TimeConfiguration, error)
	SaveTimeConfiguration(models.TimeConfiguration) error

	// Contexts
	AddContext(models.Context) error
	GetContext(id string) (models.Context, error)
	GetContextByName(name string) (models.Context, error)
	GetAllContexts() ([]models.Context, error)
	GetAllContextsIncludingDeleted() ([]models.Context, error)
	UpdateContext(models.Context) error
	DeleteContext(id string) error
	RestoreContext(id string) error

	// Tasks. Returned tasks carry their live Contexts.
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetAllTasksIncludingDeleted() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Scheduling
	// GetCandidateTasks returns live, actionable, unplanned tasks due on or
	// after day (YYYY-MM-DD).
	GetCandidateTasks(day string) ([]models.Task, error)
	// GetPlannedTasks returns live tasks whose planned start lies in [from, to).
	GetPlannedTasks(from, to time.Time) ([]models.Task, error)
	// ApplyAssignments sets planned dates for a whole scheduling run in one
	// transaction. If any task is missing or already planned nothing is
	// written and ErrAlreadyPlanned or ErrNotFound is returned.
	ApplyAssignments([]models.ScheduledAssignment) error
	// ClearPlanned removes planned dates in [from, to) and returns how many tasks were cleared.
	ClearPlanned(from, to time.Time) (int, error)

	// Utils
	SchemaVersion() (current int, latest int, err error)
	GetConfigPath() string
}
