package plan

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	outsideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Model shows one day's slot grid with the planned tasks placed in it
type Model struct {
	viewport viewport.Model
	Agenda   *cli.Agenda
	Err      error
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetAgenda(agenda cli.Agenda) {
	m.Agenda = &agenda
	m.Err = nil
	m.Render()
}

// SetError replaces the agenda with an error, e.g. a broken time configuration
func (m *Model) SetError(err error) {
	m.Agenda = nil
	m.Err = err
	m.Render()
}

func (m *Model) Render() {
	m.viewport.SetContent(m.Content())
	m.viewport.GotoTop()
}

// Content returns the text the viewport scrolls over
func (m Model) Content() string {
	if m.Err != nil {
		return fmt.Sprintf("Cannot show this day: %v", m.Err)
	}
	if m.Agenda == nil {
		return "No day loaded."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.Agenda.Day.Format("Monday, 2006-01-02")))
	b.WriteString("\n\n")

	for _, slot := range m.Agenda.Slots {
		span := fmt.Sprintf("%s - %s", slot.Start.Format(constants.TimeFormat), slot.End.Format(constants.TimeFormat))
		if slot.IsBreak {
			fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(span), breakStyle.Render("break"))
			continue
		}
		if len(slot.Tasks) == 0 {
			fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(span), breakStyle.Render("free"))
			continue
		}
		for i, t := range slot.Tasks {
			label := span
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(&b, "%s %s %s\n", timeStyle.Render(label), taskStyle.Render(t.Title),
				breakStyle.Render(t.PlannedDate.Format(constants.TimeFormat)+" "+cli.FormatEstimate(t)))
		}
	}

	if len(m.Agenda.Outside) > 0 {
		b.WriteString("\n")
		b.WriteString(outsideStyle.Render("Outside the slot grid:"))
		b.WriteString("\n")
		for _, t := range m.Agenda.Outside {
			fmt.Fprintf(&b, "%s %s\n", timeStyle.Render(t.PlannedDate.Format(constants.TimeFormat)), taskStyle.Render(t.Title))
		}
	}

	if m.Agenda.PlannedCount() == 0 {
		b.WriteString("\nNothing planned. Press 's' to schedule this day.")
	}
	return b.String()
}
