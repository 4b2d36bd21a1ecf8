package models

import "time"

// Slot is a candidate interval of the working day produced for one scheduling run.
type Slot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	IsFocusTime bool      `json:"is_focus_time"`
	IsBreak     bool      `json:"is_break"`
}

// DurationMin returns the slot length in whole minutes
func (s Slot) DurationMin() int {
	return int(s.End.Sub(s.Start).Minutes())
}

// ScheduledAssignment binds a task to a concrete start time and duration.
type ScheduledAssignment struct {
	TaskID       string    `json:"task_id"`
	PlannedDate  time.Time `json:"planned_date"`
	EstimatedMin int       `json:"estimated"`
}

// End returns the instant the assignment finishes
func (a ScheduledAssignment) End() time.Time {
	return a.PlannedDate.Add(time.Duration(a.EstimatedMin) * time.Minute)
}
