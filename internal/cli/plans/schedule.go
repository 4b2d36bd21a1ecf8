package plans

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/storage"
)

type ScheduleCmd struct {
	Date   string `arg:"" optional:"" help:"Day to schedule (YYYY-MM-DD, today, tomorrow)." default:"today"`
	DryRun bool   `short:"n" help:"Print the proposal without saving it." name:"dry-run"`
	Yes    bool   `short:"y" help:"Save without asking for confirmation."`

	in  io.Reader
	out io.Writer
}

func (c *ScheduleCmd) streams() (io.Reader, io.Writer) {
	in, out := c.in, c.out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return in, out
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	in, out := c.streams()

	day, cfg, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	p, err := ctx.ProposeDay(day, cfg)
	if err != nil {
		return err
	}
	if _, err := p.WriteTo(out); err != nil {
		return err
	}

	if c.DryRun || len(p.Result.Assignments) == 0 {
		return nil
	}

	if !c.Yes {
		ok, err := cli.Confirm(out, in, "\nSave this schedule?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Schedule discarded.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.ApplyProposal(p); err != nil {
		if errors.Is(err, storage.ErrAlreadyPlanned) {
			return fmt.Errorf("%w, run '%s schedule' again for a fresh proposal", err, constants.AppName)
		}
		return err
	}
	fmt.Fprintf(out, "Saved %d planned task(s) for %s.\n", len(p.Result.Assignments), day.Format(constants.DateFormat))
	return nil
}
