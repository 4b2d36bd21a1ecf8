package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tempo/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.proposal != nil:
		content = m.viewProposal()
	case m.confirmClear:
		content = m.viewConfirmClear()
	case m.state == constants.StateDay:
		content = docStyle.Render(m.dayView.View())
	case m.state == constants.StateTasks:
		content = docStyle.Render(m.taskList.View())
	case m.state == constants.StateContexts:
		content = docStyle.Render(m.contextList.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.validationWarning != "":
		return warningStyle.Render(m.validationWarning)
	}
	return ""
}

func (m Model) viewProposal() string {
	var b strings.Builder
	m.proposal.WriteTo(&b)
	b.WriteString("\nSave this schedule?  [y] Yes  [n] No")
	return docStyle.Render(b.String())
}

func (m Model) viewConfirmClear() string {
	return lipgloss.Place(m.width, max(m.height-chromeHeight, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Clear every planned task on "+m.day.Format(constants.DateFormat)+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
