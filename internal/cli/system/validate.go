package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/utils"
	"github.com/julianstephens/tempo/internal/validation"
)

type ValidateCmd struct {
	Date string `arg:"" optional:"" help:"Day whose schedule is checked (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Fix  bool   `help:"Delete duplicate tasks automatically."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return fmt.Errorf("failed to load time configuration: %w", err)
	}
	// A bad timezone is reported as a conflict below, fall back so the rest can still run
	loc, err := utils.LocationFromConfig(cfg)
	if err != nil {
		loc = time.Local
	}
	day, err := utils.ResolveDate(c.Date, loc)
	if err != nil {
		return err
	}

	result, tasks, err := ctx.CollectConflicts(day, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Validating %s\n\n", day.Format(constants.DateFormat))
	fmt.Println(strings.TrimRight(result.FormatReport(), "\n"))

	if !result.HasConflicts() {
		return nil
	}

	if c.Fix {
		actions := validation.AutoFixDuplicateTasks(result.Conflicts, tasks, ctx.Store.DeleteTask)
		if len(actions) == 0 {
			fmt.Println("\nNo automatic fixes available.")
		} else {
			fmt.Println("\nApplied fixes:")
			for _, a := range actions {
				fmt.Printf("  - %s\n", a.Action)
			}
			if result, _, err = ctx.CollectConflicts(day, cfg); err != nil {
				return err
			}
			if !result.HasConflicts() {
				return nil
			}
		}
	}
	return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
}
