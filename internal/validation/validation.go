package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/utils"
)

// Conflict represents a detected conflict in tasks, contexts or a persisted schedule
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Task/context names involved
	TimeRange   string   // Human-readable time range (if applicable)
	TaskIDs     []string // IDs of tasks involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(ct constants.ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

// Merge appends the conflicts of other
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator validates tasks, contexts and persisted schedules for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateConfiguration reports a malformed time configuration as a conflict.
func (v *Validator) ValidateConfiguration(cfg models.TimeConfiguration) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if err := scheduler.ValidateConfiguration(cfg); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidDateTime,
			Description: err.Error(),
		})
	}
	if !utils.ValidateTimezone(cfg.Timezone) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidDateTime,
			Description: fmt.Sprintf("Invalid timezone: %s", cfg.Timezone),
		})
	}
	return result
}

// ValidateContexts checks contexts for duplicate names and malformed windows.
func (v *Validator) ValidateContexts(contexts []models.Context) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string]int)
	var order []string
	for _, c := range contexts {
		if c.DeletedAt != nil || c.Name == "" {
			continue
		}
		key := strings.ToLower(c.Name)
		if nameCount[key] == 0 {
			order = append(order, c.Name)
		}
		nameCount[key]++
	}
	for _, name := range order {
		if n := nameCount[strings.ToLower(name)]; n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateName,
				Description: fmt.Sprintf("Duplicate context name: \"%s\" (%d contexts)", name, n),
				Items:       []string{name},
			})
		}
	}

	for _, c := range contexts {
		if c.DeletedAt != nil {
			continue
		}
		if err := c.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidDateTime,
				Description: fmt.Sprintf("Context \"%s\": %v", c.Name, err),
				Items:       []string{c.Name},
			})
		}
	}

	return result
}

// ValidateTasks checks tasks for duplicate titles, malformed dates, and
// actionable tasks that no live context could ever schedule.
func (v *Validator) ValidateTasks(tasks []models.Task, contexts []models.Context) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	live := make(map[string]bool)
	for _, c := range contexts {
		if c.DeletedAt == nil {
			live[c.ID] = true
		}
	}

	titleIDs := make(map[string][]string)
	var order []string
	for _, task := range tasks {
		if task.DeletedAt != nil || task.Status == constants.StatusDone || task.Title == "" {
			continue
		}
		if _, seen := titleIDs[task.Title]; !seen {
			order = append(order, task.Title)
		}
		titleIDs[task.Title] = append(titleIDs[task.Title], task.ID)
	}
	for _, title := range order {
		if ids := titleIDs[title]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateName,
				Description: fmt.Sprintf("Duplicate task title: \"%s\" (IDs: %v)", title, ids),
				Items:       []string{title},
				TaskIDs:     ids,
			})
		}
	}

	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}

		if task.DueDate != "" {
			if _, err := time.Parse(constants.DateFormat, task.DueDate); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidDateTime,
					Description: fmt.Sprintf("Task \"%s\" has invalid due date: %s", task.Title, task.DueDate),
					Items:       []string{task.Title},
					TaskIDs:     []string{task.ID},
				})
			}
		}

		if !task.IsActionable() {
			continue
		}
		hasLive := false
		for _, id := range task.ContextIDs {
			if live[id] {
				hasLive = true
				break
			}
		}
		if !hasLive {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictMissingContext,
				Description: fmt.Sprintf("Task \"%s\" has no active context and can never be scheduled", task.Title),
				Items:       []string{task.Title},
				TaskIDs:     []string{task.ID},
			})
		}
	}

	return result
}

// ValidateSchedule checks the tasks planned on day against the time
// configuration and their contexts. Tasks must carry their Contexts.
func (v *Validator) ValidateSchedule(cfg models.TimeConfiguration, day time.Time, tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	date := day.Format(constants.DateFormat)
	label := day.Format("Mon")

	slots, err := scheduler.GenerateSlots(cfg, day)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidDateTime,
			Description: fmt.Sprintf("%s: %v", label, err),
			Date:        date,
		})
		return result
	}

	planned := PlannedOn(tasks, day)

	for i := 0; i < len(planned); i++ {
		for j := i + 1; j < len(planned); j++ {
			a, b := planned[i], planned[j]
			aEnd := a.PlannedDate.Add(time.Duration(a.Duration()) * time.Minute)
			bEnd := b.PlannedDate.Add(time.Duration(b.Duration()) * time.Minute)
			if a.PlannedDate.Before(bEnd) && b.PlannedDate.Before(aEnd) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: constants.ConflictOverlappingAssignments,
					Description: fmt.Sprintf("%s: %s \"%s\" overlaps \"%s\"",
						label, formatRange(*a.PlannedDate, aEnd), a.Title, b.Title),
					Date:      date,
					Items:     []string{a.Title, b.Title},
					TimeRange: formatRange(*a.PlannedDate, aEnd),
					TaskIDs:   []string{a.ID, b.ID},
				})
			}
		}
	}

	workStart, _ := utils.AtClock(day, cfg.WorkStartTime)
	workEnd, _ := utils.AtClock(day, cfg.WorkEndTime)
	lunchStart, _ := utils.AtClock(day, cfg.LunchStartTime)
	lunchEnd := lunchStart.Add(time.Duration(cfg.LunchDuration) * time.Minute)

	for _, task := range planned {
		start := *task.PlannedDate
		end := start.Add(time.Duration(task.Duration()) * time.Minute)

		if start.Before(workStart) || !start.Before(workEnd) || (!start.Before(lunchStart) && start.Before(lunchEnd)) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: constants.ConflictExceedsWorkWindow,
				Description: fmt.Sprintf("%s: \"%s\" starts at %s, outside working hours %s-%s",
					label, task.Title, start.Format(constants.TimeFormat), cfg.WorkStartTime, cfg.WorkEndTime),
				Date:      date,
				Items:     []string{task.Title},
				TimeRange: formatRange(start, end),
				TaskIDs:   []string{task.ID},
			})
		}

		if !scheduler.AnyContextAvailable(task.Contexts, start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: constants.ConflictOutsideContextWindow,
				Description: fmt.Sprintf("%s: \"%s\" at %s is outside all of its contexts",
					label, task.Title, start.Format(constants.TimeFormat)),
				Date:      date,
				Items:     []string{task.Title},
				TimeRange: formatRange(start, end),
				TaskIDs:   []string{task.ID},
			})
		}

		if task.RequiresFocus {
			if slot, ok := slotAt(slots, start); ok && slot.IsBreak {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: constants.ConflictFocusInBreak,
					Description: fmt.Sprintf("%s: focus task \"%s\" starts in the %s break",
						label, task.Title, formatRange(slot.Start, slot.End)),
					Date:      date,
					Items:     []string{task.Title},
					TimeRange: formatRange(start, end),
					TaskIDs:   []string{task.ID},
				})
			}
		}
	}

	return result
}

// PlannedOn returns the live tasks whose planned start falls on day's
// calendar date in day's location, ordered by start.
func PlannedOn(tasks []models.Task, day time.Time) []models.Task {
	from := utils.StartOfDay(day)
	to := from.AddDate(0, 0, 1)

	var planned []models.Task
	for _, task := range tasks {
		if task.DeletedAt != nil || task.PlannedDate == nil {
			continue
		}
		start := task.PlannedDate.In(day.Location())
		if start.Before(from) || !start.Before(to) {
			continue
		}
		task.PlannedDate = &start
		planned = append(planned, task)
	}

	sort.SliceStable(planned, func(i, j int) bool {
		return planned[i].PlannedDate.Before(*planned[j].PlannedDate)
	})
	return planned
}

func slotAt(slots []models.Slot, t time.Time) (models.Slot, bool) {
	for _, s := range slots {
		if !t.Before(s.Start) && t.Before(s.End) {
			return s, true
		}
	}
	return models.Slot{}, false
}

func formatRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format(constants.TimeFormat), end.Format(constants.TimeFormat))
}

// AutoFixDuplicateTasks fixes duplicate task conflicts by keeping the oldest
// task and soft-deleting the others.
func AutoFixDuplicateTasks(conflicts []Conflict, tasks []models.Task, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	taskMap := make(map[string]models.Task)
	for _, task := range tasks {
		taskMap[task.ID] = task
	}

	for _, conflict := range conflicts {
		if conflict.Type != constants.ConflictDuplicateName || len(conflict.TaskIDs) <= 1 {
			continue
		}

		var dupes []models.Task
		for _, id := range conflict.TaskIDs {
			if task, ok := taskMap[id]; ok && task.DeletedAt == nil {
				dupes = append(dupes, task)
			}
		}
		if len(dupes) <= 1 {
			continue
		}

		// Oldest first, ties broken by ID so reruns pick the same survivor
		sort.Slice(dupes, func(i, j int) bool {
			if !dupes[i].CreatedAt.Equal(dupes[j].CreatedAt) {
				return dupes[i].CreatedAt.Before(dupes[j].CreatedAt)
			}
			return dupes[i].ID < dupes[j].ID
		})

		keep := dupes[0]
		var deletedIDs, failedIDs []string
		for _, task := range dupes[1:] {
			if err := deleteFunc(task.ID); err != nil {
				failedIDs = append(failedIDs, task.ID)
				continue
			}
			deletedIDs = append(deletedIDs, task.ID)
		}

		switch {
		case len(deletedIDs) > 0:
			msg := fmt.Sprintf("Removed %d duplicate task(s) titled \"%s\" (kept ID: %s, removed: %v)", len(deletedIDs), keep.Title, keep.ID, deletedIDs)
			if len(failedIDs) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		case len(failedIDs) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates for \"%s\": %v", keep.Title, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
