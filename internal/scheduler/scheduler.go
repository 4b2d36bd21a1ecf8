package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/tempo/internal/models"
)

// Scheduler runs the slot-filling algorithm. It holds no state between runs;
// callers keep one on their command context and pass everything a run needs.
type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// Result is the outcome of one scheduling run.
type Result struct {
	Date        time.Time
	Slots       []models.Slot // the day's slots as generated, before any packing
	Assignments []models.ScheduledAssignment
	Unscheduled []string // IDs of tasks no slot could take, in attempt order
}

// openSlot tracks how much of a generated slot has been handed out.
type openSlot struct {
	slot models.Slot
	used int
}

func (o openSlot) cursor() time.Time {
	return o.slot.Start.Add(minutes(o.used))
}

func (o openSlot) remaining() int {
	return int(o.slot.End.Sub(o.cursor()).Minutes())
}

// Schedule assigns tasks to the slots of day. Tasks are attempted in
// PrioritizeTasks order and each takes the first slot with enough remaining
// capacity, the right focus type, and an available context at the slot's
// current start. Packing a task advances that slot's start, so later tasks can
// share it. Tasks that fit nowhere are reported in Result.Unscheduled.
//
// The tasks are taken as given; use SelectCandidates to apply the
// status/planned/due filter first.
func (s *Scheduler) Schedule(cfg models.TimeConfiguration, day time.Time, tasks []models.Task) (Result, error) {
	return s.ScheduleAround(cfg, day, tasks, nil)
}

// ScheduleAround is Schedule on a day that already has saved plans. Each slot
// starts packing after the booked intervals that overlap it; free time inside
// a slot before a booked interval is not reused.
func (s *Scheduler) ScheduleAround(cfg models.TimeConfiguration, day time.Time, tasks []models.Task, booked []models.ScheduledAssignment) (Result, error) {
	slots, err := GenerateSlots(cfg, day)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Date:        day,
		Slots:       slots,
		Assignments: []models.ScheduledAssignment{},
	}

	open := make([]openSlot, len(slots))
	for i, slot := range slots {
		open[i] = openSlot{slot: slot}
	}
	reserve(open, booked)

	for _, task := range PrioritizeTasks(tasks) {
		duration := task.Duration()
		idx := findSlot(open, task, duration)
		if idx < 0 {
			result.Unscheduled = append(result.Unscheduled, task.ID)
			continue
		}

		result.Assignments = append(result.Assignments, models.ScheduledAssignment{
			TaskID:       task.ID,
			PlannedDate:  open[idx].cursor(),
			EstimatedMin: duration,
		})
		open[idx].used += duration
	}

	return result, nil
}

// reserve advances each slot's cursor past the booked intervals overlapping it
func reserve(open []openSlot, booked []models.ScheduledAssignment) {
	sorted := make([]models.ScheduledAssignment, len(booked))
	copy(sorted, booked)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PlannedDate.Before(sorted[j].PlannedDate)
	})

	for i := range open {
		for _, b := range sorted {
			if !b.PlannedDate.Before(open[i].slot.End) || !b.End().After(open[i].cursor()) {
				continue
			}
			end := b.End()
			if end.After(open[i].slot.End) {
				end = open[i].slot.End
			}
			open[i].used = int(end.Sub(open[i].slot.Start).Minutes())
		}
	}
}

func findSlot(open []openSlot, task models.Task, duration int) int {
	for i, o := range open {
		if o.remaining() < duration {
			continue
		}
		if task.RequiresFocus && !o.slot.IsFocusTime {
			continue
		}
		if !AnyContextAvailable(task.Contexts, o.cursor()) {
			continue
		}
		return i
	}
	return -1
}

// AnyContextAvailable reports whether at least one of contexts is available at t.
func AnyContextAvailable(contexts []models.Context, t time.Time) bool {
	for _, c := range contexts {
		if c.AvailableAt(t) {
			return true
		}
	}
	return false
}
