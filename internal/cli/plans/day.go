package plans

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	breakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
	taskStyle    = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
)

type DayCmd struct {
	Date  string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Empty bool   `help:"Also list slots with nothing planned."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	day, cfg, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	agenda, err := ctx.LoadAgenda(day, cfg)
	if err != nil {
		return err
	}
	fmt.Print(c.render(agenda))
	return nil
}

func (c *DayCmd) render(agenda cli.Agenda) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  (%d planned)", agenda.Day.Format("Monday, 2006-01-02"), agenda.PlannedCount())))
	b.WriteString("\n\n")

	for _, slot := range agenda.Slots {
		if len(slot.Tasks) == 0 && !c.Empty {
			continue
		}
		span := fmt.Sprintf("%s-%s", slot.Start.Format(constants.TimeFormat), slot.End.Format(constants.TimeFormat))
		if slot.IsBreak {
			b.WriteString(breakStyle.Render(span + "  break"))
		} else {
			b.WriteString(focusStyle.Render(span + "  focus"))
		}
		b.WriteString("\n")
		for _, t := range slot.Tasks {
			fmt.Fprintf(&b, "    %s %s  %s\n", t.PlannedDate.Format(constants.TimeFormat), taskStyle.Render(t.Title), cli.FormatEstimate(t))
		}
	}

	if len(agenda.Outside) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Outside the slot grid:"))
		b.WriteString("\n")
		for _, t := range agenda.Outside {
			fmt.Fprintf(&b, "    %s %s  %s\n", t.PlannedDate.Format(constants.TimeFormat), taskStyle.Render(t.Title), cli.FormatEstimate(t))
		}
	}

	if agenda.PlannedCount() == 0 {
		fmt.Fprintf(&b, "Nothing planned. Run '%s schedule %s' to fill the day.\n", constants.AppName, agenda.Day.Format(constants.DateFormat))
	}
	return b.String()
}
