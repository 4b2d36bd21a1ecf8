package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

// 2026-01-05 is a Monday
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) *time.Time {
	t := time.Date(2026, 1, 5, hour, minute, 0, 0, time.UTC)
	return &t
}

func intPtr(n int) *int { return &n }

func weekdays(start, end string) models.Context {
	ctx := models.Context{ID: "office", Name: "office", StartTime: start, EndTime: end}
	ctx.SetWeekdays([]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday})
	return ctx
}

func TestValidateTasks_DuplicateTitles(t *testing.T) {
	validator := New()
	deleted := "2026-01-01T00:00:00Z"
	ctx := weekdays("09:00", "17:00")

	tasks := []models.Task{
		{ID: "1", Title: "Task A", Status: constants.StatusNextAction, ContextIDs: []string{ctx.ID}},
		{ID: "2", Title: "Task B", Status: constants.StatusNextAction, ContextIDs: []string{ctx.ID}},
		{ID: "3", Title: "Task A", Status: constants.StatusInbox},
		{ID: "4", Title: "Task B", Status: constants.StatusInbox, DeletedAt: &deleted},
		{ID: "5", Title: "Task B", Status: constants.StatusDone},
	}

	result := validator.ValidateTasks(tasks, []models.Context{ctx})

	if got := result.Count(constants.ConflictDuplicateName); got != 1 {
		t.Fatalf("expected 1 duplicate conflict, got %d: %s", got, result.FormatReport())
	}
	c := result.Conflicts[0]
	if c.Items[0] != "Task A" || len(c.TaskIDs) != 2 {
		t.Errorf("unexpected duplicate conflict: %+v", c)
	}
}

func TestValidateTasks_MissingContext(t *testing.T) {
	validator := New()
	deleted := "2026-01-01T00:00:00Z"
	live := weekdays("09:00", "17:00")
	gone := models.Context{ID: "gone", Name: "gone", DeletedAt: &deleted}

	tasks := []models.Task{
		{ID: "1", Title: "has live", Status: constants.StatusNextAction, ContextIDs: []string{"gone", live.ID}},
		{ID: "2", Title: "only deleted", Status: constants.StatusNextAction, ContextIDs: []string{"gone"}},
		{ID: "3", Title: "none", Status: constants.StatusProject},
		{ID: "4", Title: "inbox without context", Status: constants.StatusInbox},
	}

	result := validator.ValidateTasks(tasks, []models.Context{live, gone})

	if got := result.Count(constants.ConflictMissingContext); got != 2 {
		t.Errorf("expected 2 missing context conflicts, got %d: %s", got, result.FormatReport())
	}
}

func TestValidateTasks_InvalidDueDate(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "bad", Status: constants.StatusInbox, DueDate: "05/01/2026"},
		{ID: "2", Title: "good", Status: constants.StatusInbox, DueDate: "2026-01-05"},
	}

	result := New().ValidateTasks(tasks, nil)

	if got := result.Count(constants.ConflictInvalidDateTime); got != 1 {
		t.Errorf("expected 1 invalid date conflict, got %d", got)
	}
}

func TestValidateContexts(t *testing.T) {
	contexts := []models.Context{
		{ID: "1", Name: "Home", StartTime: "18:00", EndTime: "22:00"},
		{ID: "2", Name: "home", StartTime: "07:00", EndTime: "08:00"},
		{ID: "3", Name: "Errands", StartTime: "17:00", EndTime: "09:00"},
		{ID: "4", Name: "Calls", StartTime: "9am", EndTime: "10:00"},
	}

	result := New().ValidateContexts(contexts)

	if got := result.Count(constants.ConflictDuplicateName); got != 1 {
		t.Errorf("expected 1 duplicate name conflict, got %d", got)
	}
	if got := result.Count(constants.ConflictInvalidDateTime); got != 2 {
		t.Errorf("expected 2 invalid window conflicts, got %d", got)
	}
}

func TestValidateConfiguration(t *testing.T) {
	validator := New()

	cfg := models.DefaultTimeConfiguration()
	if result := validator.ValidateConfiguration(cfg); result.HasConflicts() {
		t.Errorf("default configuration should be valid: %s", result.FormatReport())
	}

	cfg.WorkEndTime = "08:00"
	cfg.Timezone = "Mars/Olympus"
	result := validator.ValidateConfiguration(cfg)
	if got := result.Count(constants.ConflictInvalidDateTime); got != 2 {
		t.Errorf("expected 2 conflicts, got %d: %s", got, result.FormatReport())
	}
}

func TestValidateSchedule(t *testing.T) {
	cfg := models.DefaultTimeConfiguration()
	office := weekdays("09:00", "12:00")
	ctxs := []models.Context{office}

	tasks := []models.Task{
		// 09:00-09:25, fine
		{ID: "a", Title: "clean", EstimatedMin: intPtr(25), PlannedDate: at(9, 0), Contexts: ctxs},
		// 09:30-10:00 overlaps b2
		{ID: "b1", Title: "first", EstimatedMin: intPtr(30), PlannedDate: at(9, 30), Contexts: ctxs},
		{ID: "b2", Title: "second", EstimatedMin: intPtr(10), PlannedDate: at(9, 50), Contexts: ctxs},
		// 10:45 sits in the long break after four focus slots
		{ID: "c", Title: "deep", RequiresFocus: true, EstimatedMin: intPtr(10), PlannedDate: at(10, 45), Contexts: ctxs},
		// 14:00 is outside the office window
		{ID: "d", Title: "late", EstimatedMin: intPtr(15), PlannedDate: at(14, 0), Contexts: ctxs},
		// 12:30 is lunch and outside the office window
		{ID: "e", Title: "lunchtime", EstimatedMin: intPtr(15), PlannedDate: at(12, 30), Contexts: ctxs},
		// different day, ignored
		{ID: "f", Title: "tomorrow", EstimatedMin: intPtr(15), PlannedDate: func() *time.Time { t := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC); return &t }(), Contexts: ctxs},
		// not planned, ignored
		{ID: "g", Title: "unplanned", Contexts: ctxs},
	}

	result := New().ValidateSchedule(cfg, monday, tasks)

	want := map[constants.ConflictType]int{
		constants.ConflictOverlappingAssignments: 1,
		constants.ConflictFocusInBreak:           1,
		constants.ConflictOutsideContextWindow:   2,
		constants.ConflictExceedsWorkWindow:      1,
	}
	for ct, n := range want {
		if got := result.Count(ct); got != n {
			t.Errorf("%s: got %d conflicts, want %d\n%s", ct, got, n, result.FormatReport())
		}
	}
	for _, c := range result.Conflicts {
		for _, id := range c.TaskIDs {
			if id == "a" || id == "f" || id == "g" {
				t.Errorf("task %s should not be involved in a conflict: %s", id, c.Description)
			}
		}
	}
}

func TestValidateSchedule_InvalidConfiguration(t *testing.T) {
	cfg := models.DefaultTimeConfiguration()
	cfg.PomodoroDuration = 0

	result := New().ValidateSchedule(cfg, monday, nil)
	if result.Count(constants.ConflictInvalidDateTime) != 1 {
		t.Errorf("expected a single configuration conflict, got %s", result.FormatReport())
	}
}

func TestPlannedOn_UsesDayLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, berlin)

	// 23:30 UTC on the 4th is 00:30 on the 5th in Berlin
	late := time.Date(2026, 1, 4, 23, 30, 0, 0, time.UTC)
	tasks := []models.Task{{ID: "x", PlannedDate: &late}}

	planned := PlannedOn(tasks, day)
	if len(planned) != 1 {
		t.Fatalf("expected task to fall on the Berlin day, got %d", len(planned))
	}
	if planned[0].PlannedDate.Location() != berlin {
		t.Errorf("planned date should be converted to the day's location")
	}
}

func TestFormatReport(t *testing.T) {
	var empty ValidationResult
	if got := empty.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	result := ValidationResult{Conflicts: []Conflict{{Description: "one"}, {Description: "two"}}}
	report := result.FormatReport()
	if !strings.Contains(report, "- one\n") || !strings.Contains(report, "- two\n") {
		t.Errorf("FormatReport() = %q", report)
	}
}

func TestAutoFixDuplicateTasks(t *testing.T) {
	older := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	tasks := []models.Task{
		{ID: "b", Title: "dup", Status: constants.StatusInbox, CreatedAt: older},
		{ID: "a", Title: "dup", Status: constants.StatusInbox, CreatedAt: newer},
		{ID: "c", Title: "dup", Status: constants.StatusInbox, CreatedAt: newer},
	}
	result := New().ValidateTasks(tasks, nil)

	var deleted []string
	actions := AutoFixDuplicateTasks(result.Conflicts, tasks, func(id string) error {
		if id == "c" {
			return errors.New("locked")
		}
		deleted = append(deleted, id)
		return nil
	})

	if len(actions) != 1 {
		t.Fatalf("expected 1 fix action, got %d", len(actions))
	}
	if len(deleted) != 1 || deleted[0] != "a" {
		t.Errorf("expected only task a to be deleted, got %v", deleted)
	}
	if !strings.Contains(actions[0].Action, "kept ID: b") || !strings.Contains(actions[0].Action, "failed to remove: [c]") {
		t.Errorf("unexpected action message: %s", actions[0].Action)
	}
}
