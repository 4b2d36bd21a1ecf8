package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

type DoneTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID string
}

type RestoreTaskMsg struct {
	ID string
}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	switch {
	case i.Task.DeletedAt != nil:
		return "👻 " + i.Task.Title + " (deleted)"
	case i.Task.Status == constants.StatusDone:
		return "✓ " + i.Task.Title
	}
	return i.Task.Title
}

func (i Item) Description() string {
	parts := []string{
		string(i.Task.Status),
		models.FormatPriority(i.Task.Priority),
		cli.FormatEstimate(i.Task),
	}
	if i.Task.RequiresFocus {
		parts = append(parts, "focus")
	}
	if i.Task.DueDate != "" {
		parts = append(parts, "due "+i.Task.DueDate)
	}
	if i.Task.PlannedDate != nil {
		parts = append(parts, "planned "+i.Task.PlannedDate.Local().Format("01-02 15:04"))
	}
	desc := strings.Join(parts, " | ")
	if i.Task.DeletedAt != nil {
		desc += " | can restore with 'r'"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Done    key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Done: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, width, height int) Model {
	l := list.New(items(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Done, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Done, keys.Delete, keys.Restore}
	}

	return Model{list: l, keys: keys}
}

func items(tasks []models.Task) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t}
	}
	return out
}

func (m *Model) SetTasks(tasks []models.Task) {
	m.list.SetItems(items(tasks))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Select moves the cursor to index i
func (m *Model) Select(i int) {
	m.list.Select(i)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		item, selected := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Done) && selected && item.Task.DeletedAt == nil:
			return m, func() tea.Msg { return DoneTaskMsg{ID: item.Task.ID} }
		case key.Matches(msg, m.keys.Delete) && selected && item.Task.DeletedAt == nil:
			return m, func() tea.Msg { return DeleteTaskMsg{ID: item.Task.ID} }
		case key.Matches(msg, m.keys.Restore) && selected && item.Task.DeletedAt != nil:
			return m, func() tea.Msg { return RestoreTaskMsg{ID: item.Task.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return fmt.Sprintf("\n  No tasks yet.\n  Add one with '%s task add'.", constants.AppName)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
