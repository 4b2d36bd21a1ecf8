package contexts

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/models"
)

type ContextAddCmd struct {
	Name     string `arg:"" help:"Context name, e.g. office or phone."`
	Weekdays string `short:"w" help:"Days the context is available (names, 0-6, weekdays, weekends, all)." default:"weekdays"`
	Start    string `short:"s" help:"Start of the daily window (HH:MM)." default:"09:00"`
	End      string `short:"e" help:"End of the daily window (HH:MM), inclusive." default:"17:00"`
}

func (c *ContextAddCmd) Run(ctx *cli.Context) error {
	weekdays, err := cli.ParseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}

	context := models.Context{
		ID:        uuid.New().String(),
		Name:      c.Name,
		StartTime: c.Start,
		EndTime:   c.End,
	}
	context.SetWeekdays(weekdays)

	if err := context.Validate(); err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}
	if err := ctx.Store.AddContext(context); err != nil {
		return err
	}

	fmt.Printf("Added context: %s (ID: %s) %s %s-%s\n",
		context.Name, context.ID, context.FormatWeekdays(), context.StartTime, context.EndTime)
	return nil
}
