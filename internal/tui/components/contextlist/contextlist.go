package contextlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
)

type Item struct {
	Context models.Context
}

func (i Item) Title() string { return "@" + i.Context.Name }

func (i Item) Description() string {
	return fmt.Sprintf("%s | %s - %s", i.Context.FormatWeekdays(), i.Context.StartTime, i.Context.EndTime)
}

func (i Item) FilterValue() string { return i.Context.Name }

// Model is a read-only list of the live contexts
type Model struct {
	list list.Model
}

func New(contexts []models.Context, width, height int) Model {
	l := list.New(items(contexts), list.NewDefaultDelegate(), width, height)
	l.Title = "Contexts"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return Model{list: l}
}

func items(contexts []models.Context) []list.Item {
	out := make([]list.Item, len(contexts))
	for i, c := range contexts {
		out[i] = Item{Context: c}
	}
	return out
}

func (m *Model) SetContexts(contexts []models.Context) {
	m.list.SetItems(items(contexts))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return fmt.Sprintf("\n  No contexts yet.\n  Add one with '%s context add'.", constants.AppName)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
