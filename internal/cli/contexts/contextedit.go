package contexts

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/cli"
)

type ContextEditCmd struct {
	Ref      string  `arg:"" help:"Context name or ID."`
	Name     *string `help:"New name."`
	Weekdays *string `short:"w" help:"New available days."`
	Start    *string `short:"s" help:"New window start (HH:MM)."`
	End      *string `short:"e" help:"New window end (HH:MM)."`
}

func (c *ContextEditCmd) Run(ctx *cli.Context) error {
	ids, err := ctx.ResolveContexts([]string{c.Ref})
	if err != nil || len(ids) == 0 {
		return fmt.Errorf("failed to find context %q", c.Ref)
	}
	context, err := ctx.Store.GetContext(ids[0])
	if err != nil {
		return err
	}

	if c.Name != nil {
		context.Name = *c.Name
	}
	if c.Weekdays != nil {
		weekdays, err := cli.ParseWeekdays(*c.Weekdays)
		if err != nil {
			return err
		}
		context.SetWeekdays(weekdays)
	}
	if c.Start != nil {
		context.StartTime = *c.Start
	}
	if c.End != nil {
		context.EndTime = *c.End
	}

	if err := context.Validate(); err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}
	// AddContext enforces unique names and upserts by ID
	if err := ctx.Store.AddContext(context); err != nil {
		return fmt.Errorf("failed to update context: %w", err)
	}

	fmt.Printf("Context updated: %s\n", context.Name)
	return nil
}
