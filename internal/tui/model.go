package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/tui/components/contextlist"
	"github.com/julianstephens/tempo/internal/tui/components/plan"
	"github.com/julianstephens/tempo/internal/tui/components/tasklist"
	"github.com/julianstephens/tempo/internal/utils"
)

var tabTitles = []string{"Day", "Tasks", "Contexts"}

type Model struct {
	ctx         *cli.Context
	state       constants.SessionState
	keys        KeyMap
	help        help.Model
	day         time.Time
	cfg         models.TimeConfiguration
	cfgErr      error
	dayView     plan.Model
	taskList    tasklist.Model
	contextList contextlist.Model

	// proposal is a scheduling run waiting for confirmation
	proposal     *cli.Proposal
	confirmClear bool

	status            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(ctx *cli.Context) Model {
	m := Model{
		ctx:         ctx,
		state:       constants.StateDay,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		dayView:     plan.New(0, 0),
		taskList:    tasklist.New(nil, 0, 0),
		contextList: contextlist.New(nil, 0, 0),
	}
	m.loadConfig()
	m.day = m.today()
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateDay {
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay, m.keys.Schedule)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	if m.state != constants.StateDay {
		return [][]key.Binding{global}
	}
	day := []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.Schedule, m.keys.Unschedule}
	return [][]key.Binding{global, day}
}

func (m *Model) loadConfig() {
	cfg, _, err := m.ctx.TimeConfiguration()
	m.cfg, m.cfgErr = cfg, err
}

// today is midnight in the configured timezone, or local time when it cannot be loaded
func (m Model) today() time.Time {
	loc, err := utils.LocationFromConfig(m.cfg)
	if err != nil {
		loc = time.Local
	}
	return utils.StartOfDay(time.Now().In(loc))
}

func (m *Model) reload() {
	m.loadDay()

	if tasks, err := m.ctx.Store.GetAllTasksIncludingDeleted(); err == nil {
		m.taskList.SetTasks(tasks)
	} else {
		m.status = fmt.Sprintf("Failed to load tasks: %v", err)
	}
	if contexts, err := m.ctx.Store.GetAllContexts(); err == nil {
		m.contextList.SetContexts(contexts)
	} else {
		m.status = fmt.Sprintf("Failed to load contexts: %v", err)
	}

	m.updateValidationStatus()
}

func (m *Model) loadDay() {
	if m.cfgErr != nil {
		m.dayView.SetError(m.cfgErr)
		return
	}
	agenda, err := m.ctx.LoadAgenda(m.day, m.cfg)
	if err != nil {
		m.dayView.SetError(err)
		return
	}
	m.dayView.SetAgenda(agenda)
}

// updateValidationStatus runs validation for the shown day and updates the warning message
func (m *Model) updateValidationStatus() {
	result, _, err := m.ctx.CollectConflicts(m.day, m.cfg)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run '%s validate'", len(result.Conflicts), constants.AppName)
	} else {
		m.validationWarning = ""
	}
}
