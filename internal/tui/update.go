package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/tui/components/tasklist"
)

const chromeHeight = 4 // tabs, status line and help

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		contentHeight := msg.Height - chromeHeight - v
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.dayView.SetSize(msg.Width-h, contentHeight)
		m.taskList.SetSize(msg.Width-h, contentHeight)
		m.contextList.SetSize(msg.Width-h, contentHeight)
		return m, nil

	case tasklist.DoneTaskMsg:
		m.completeTask(msg.ID)
		return m, nil

	case tasklist.DeleteTaskMsg:
		if err := m.ctx.Store.DeleteTask(msg.ID); err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", err)
		} else {
			m.status = "Task deleted"
		}
		m.reload()
		return m, nil

	case tasklist.RestoreTaskMsg:
		if err := m.ctx.Store.RestoreTask(msg.ID); err != nil {
			m.status = fmt.Sprintf("Restore failed: %v", err)
		} else {
			m.status = "Task restored"
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.proposal != nil {
			return m.updateConfirmSchedule(msg)
		}
		if m.confirmClear {
			return m.updateConfirmClear(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.SessionState(len(tabTitles))) % constants.SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loadConfig()
			m.reload()
			m.status = "Refreshed"
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDay:
		if msg, ok := msg.(tea.KeyMsg); ok && m.updateDayKeys(msg) {
			return m, nil
		}
		m.dayView, cmd = m.dayView.Update(msg)
	case constants.StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case constants.StateContexts:
		m.contextList, cmd = m.contextList.Update(msg)
	}
	return m, cmd
}

// updateDayKeys handles the day tab's own bindings and reports whether msg was consumed
func (m *Model) updateDayKeys(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		m.setDay(m.day.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.NextDay):
		m.setDay(m.day.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Today):
		m.setDay(m.today())
	case key.Matches(msg, m.keys.Schedule):
		m.proposeSchedule()
	case key.Matches(msg, m.keys.Unschedule):
		if m.dayView.Agenda == nil || m.dayView.Agenda.PlannedCount() == 0 {
			m.status = "Nothing planned on this day"
		} else {
			m.confirmClear = true
		}
	default:
		return false
	}
	return true
}

func (m *Model) setDay(day time.Time) {
	m.day = day
	m.status = ""
	m.loadDay()
	m.updateValidationStatus()
}

func (m *Model) proposeSchedule() {
	if m.cfgErr != nil {
		m.status = fmt.Sprintf("Cannot schedule: %v", m.cfgErr)
		return
	}
	p, err := m.ctx.ProposeDay(m.day, m.cfg)
	if err != nil {
		m.status = fmt.Sprintf("Scheduling failed: %v", err)
		return
	}
	if len(p.Result.Assignments) == 0 {
		m.status = fmt.Sprintf("No tasks could be scheduled (%d unscheduled)", len(p.Result.Unscheduled))
		return
	}
	m.proposal = &p
}

func (m Model) updateConfirmSchedule(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		p := *m.proposal
		m.proposal = nil
		m.ctx.PerformAutomaticBackup()
		if err := m.ctx.ApplyProposal(p); err != nil {
			m.status = fmt.Sprintf("Save failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Scheduled %d task(s)", len(p.Result.Assignments))
		}
		m.reload()
	case key.Matches(msg, m.keys.Cancel):
		m.proposal = nil
		m.status = "Schedule discarded"
	}
	return m, nil
}

func (m Model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirmClear = false
		m.ctx.PerformAutomaticBackup()
		from, to := cli.DayBounds(m.day)
		n, err := m.ctx.Store.ClearPlanned(from, to)
		if err != nil {
			m.status = fmt.Sprintf("Clear failed: %v", err)
		} else {
			m.status = fmt.Sprintf("Cleared %d planned task(s)", n)
		}
		m.reload()
	case key.Matches(msg, m.keys.Cancel):
		m.confirmClear = false
	}
	return m, nil
}

func (m *Model) completeTask(id string) {
	task, err := m.ctx.Store.GetTask(id)
	if err != nil {
		m.status = fmt.Sprintf("Task not found: %v", err)
		return
	}
	if task.Status != constants.StatusDone {
		now := time.Now().UTC()
		task.Status = constants.StatusDone
		task.CompletedAt = &now
		if err := m.ctx.Store.UpdateTask(task); err != nil {
			m.status = fmt.Sprintf("Update failed: %v", err)
			return
		}
	}
	m.status = fmt.Sprintf("Completed: %s", task.Title)
	m.reload()
}
