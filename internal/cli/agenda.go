package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
)

// AgendaSlot is a generated slot together with the tasks planned inside it
type AgendaSlot struct {
	models.Slot
	Tasks []models.Task
}

// Agenda is the persisted schedule of one day laid over its slot grid
type Agenda struct {
	Day   time.Time
	Slots []AgendaSlot
	// Outside holds planned tasks that start in no generated slot, e.g.
	// after the configuration changed.
	Outside []models.Task
}

// PlannedCount returns how many tasks the agenda holds
func (a Agenda) PlannedCount() int {
	n := len(a.Outside)
	for _, s := range a.Slots {
		n += len(s.Tasks)
	}
	return n
}

// BuildAgenda places planned tasks into the slots generated for day. A task
// belongs to the slot its planned start falls in. Planned dates are converted
// to day's location.
func BuildAgenda(cfg models.TimeConfiguration, day time.Time, planned []models.Task) (Agenda, error) {
	slots, err := scheduler.GenerateSlots(cfg, day)
	if err != nil {
		return Agenda{}, err
	}

	agenda := Agenda{Day: day, Slots: make([]AgendaSlot, len(slots))}
	for i, s := range slots {
		agenda.Slots[i].Slot = s
	}

	for _, task := range planned {
		if task.PlannedDate == nil {
			continue
		}
		start := task.PlannedDate.In(day.Location())
		task.PlannedDate = &start
		i := sort.Search(len(slots), func(i int) bool { return slots[i].End.After(start) })
		if i < len(slots) && !start.Before(slots[i].Start) {
			agenda.Slots[i].Tasks = append(agenda.Slots[i].Tasks, task)
			continue
		}
		agenda.Outside = append(agenda.Outside, task)
	}

	for i := range agenda.Slots {
		sortByPlanned(agenda.Slots[i].Tasks)
	}
	sortByPlanned(agenda.Outside)
	return agenda, nil
}

func sortByPlanned(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].PlannedDate.Before(*tasks[j].PlannedDate)
	})
}

// LoadAgenda reads the planned tasks of day and builds its agenda
func (c *Context) LoadAgenda(day time.Time, cfg models.TimeConfiguration) (Agenda, error) {
	from, to := DayBounds(day)
	planned, err := c.Store.GetPlannedTasks(from, to)
	if err != nil {
		return Agenda{}, fmt.Errorf("failed to load planned tasks: %w", err)
	}
	return BuildAgenda(cfg, day, planned)
}

// Confirm prints prompt and reports whether the answer read from r was yes
func Confirm(w io.Writer, r io.Reader, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
