package plans

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
)

type UnscheduleCmd struct {
	Date string `arg:"" optional:"" help:"Day to clear (YYYY-MM-DD, today, tomorrow)." default:"today"`
}

func (c *UnscheduleCmd) Run(ctx *cli.Context) error {
	day, _, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	from, to := cli.DayBounds(day)
	n, err := ctx.Store.ClearPlanned(from, to)
	if err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	if n == 0 {
		fmt.Printf("Nothing planned for %s.\n", day.Format(constants.DateFormat))
		return nil
	}
	fmt.Printf("Cleared %d planned task(s) for %s.\n", n, day.Format(constants.DateFormat))
	return nil
}
