package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
)

// Proposal is a scheduling run that has not been written yet
type Proposal struct {
	Day    time.Time
	Config models.TimeConfiguration
	Result scheduler.Result
	Tasks  map[string]models.Task
}

// ProposeDay runs the scheduler over the day's candidate tasks
func (c *Context) ProposeDay(day time.Time, cfg models.TimeConfiguration) (Proposal, error) {
	stored, err := c.Store.GetCandidateTasks(day.Format(constants.DateFormat))
	if err != nil {
		return Proposal{}, fmt.Errorf("failed to load candidate tasks: %w", err)
	}
	candidates := scheduler.SelectCandidates(stored, day)

	from, to := DayBounds(day)
	planned, err := c.Store.GetPlannedTasks(from, to)
	if err != nil {
		return Proposal{}, fmt.Errorf("failed to load planned tasks: %w", err)
	}
	booked := make([]models.ScheduledAssignment, 0, len(planned))
	for _, t := range planned {
		booked = append(booked, models.ScheduledAssignment{TaskID: t.ID, PlannedDate: *t.PlannedDate, EstimatedMin: t.Duration()})
	}

	result, err := c.Scheduler.ScheduleAround(cfg, day, candidates, booked)
	if err != nil {
		return Proposal{}, err
	}

	tasks := make(map[string]models.Task, len(candidates))
	for _, t := range candidates {
		tasks[t.ID] = t
	}
	logger.Debug("Proposed schedule", "day", day.Format(constants.DateFormat),
		"candidates", len(candidates), "booked", len(booked), "assigned", len(result.Assignments), "unscheduled", len(result.Unscheduled))

	return Proposal{Day: day, Config: cfg, Result: result, Tasks: tasks}, nil
}

func (c *Context) ApplyProposal(p Proposal) error {
	if len(p.Result.Assignments) == 0 {
		return nil
	}
	if err := c.Store.ApplyAssignments(p.Result.Assignments); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	logger.Info("Saved schedule", "day", p.Day.Format(constants.DateFormat), "assignments", len(p.Result.Assignments))
	return nil
}

// ScheduleDay proposes and saves a day in one step
func (c *Context) ScheduleDay(day time.Time, cfg models.TimeConfiguration) (Proposal, error) {
	p, err := c.ProposeDay(day, cfg)
	if err != nil {
		return p, err
	}
	return p, c.ApplyProposal(p)
}

func (p Proposal) WriteTo(w io.Writer) (int64, error) {
	var n int
	write := func(format string, args ...any) {
		k, _ := fmt.Fprintf(w, format, args...)
		n += k
	}

	write("Schedule for %s (%d slots)\n", p.Day.Format("Monday, 2006-01-02"), len(p.Result.Slots))
	if len(p.Result.Assignments) == 0 {
		write("  No tasks could be scheduled.\n")
	}
	for _, a := range p.Result.Assignments {
		write("  %s-%s  %-40s %s\n",
			a.PlannedDate.Format(constants.TimeFormat),
			a.End().Format(constants.TimeFormat),
			p.Tasks[a.TaskID].Title,
			models.FormatPriority(p.Tasks[a.TaskID].Priority),
		)
	}
	if len(p.Result.Unscheduled) > 0 {
		write("\nNot scheduled (%d):\n", len(p.Result.Unscheduled))
		for _, id := range p.Result.Unscheduled {
			t := p.Tasks[id]
			write("  %-48s %s\n", t.Title, FormatEstimate(t))
		}
	}
	return int64(n), nil
}
