package settings

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/utils"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Show the time configuration."`
	Set  ConfigSetCmd  `cmd:"" help:"Change individual configuration values."`
	Edit ConfigEditCmd `cmd:"" help:"Edit the configuration in an interactive form."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return fmt.Errorf("failed to get time configuration: %w", err)
	}
	printConfig(os.Stdout, cfg)
	if err := scheduler.ValidateConfiguration(cfg); err != nil {
		fmt.Printf("\nWarning: %v\n", err)
	}
	return nil
}

func printConfig(w io.Writer, cfg models.TimeConfiguration) {
	fmt.Fprintln(w, "Time Configuration:")
	fmt.Fprintf(w, "  Work Hours:            %s - %s\n", cfg.WorkStartTime, cfg.WorkEndTime)
	fmt.Fprintf(w, "  Lunch:                 %s for %d min\n", cfg.LunchStartTime, cfg.LunchDuration)
	fmt.Fprintf(w, "  Pomodoro:              %d min\n", cfg.PomodoroDuration)
	fmt.Fprintf(w, "  Break:                 %d min\n", cfg.BreakDuration)
	fmt.Fprintf(w, "  Long Break:            %d min\n", cfg.LongBreakDuration)
	fmt.Fprintf(w, "  Pomodoros per Cycle:   %d\n", cfg.ShortBreakInterval)
	fmt.Fprintf(w, "  Timezone:              %s\n", cfg.Timezone)
}

type ConfigSetCmd struct {
	WorkStart          *string `help:"Work start time (HH:MM)."`
	WorkEnd            *string `help:"Work end time (HH:MM)."`
	LunchStart         *string `help:"Lunch start time (HH:MM)."`
	LunchDuration      *int    `help:"Lunch duration in minutes (0 disables lunch)."`
	PomodoroDuration   *int    `help:"Focus slot length in minutes."`
	BreakDuration      *int    `help:"Short break length in minutes."`
	LongBreakDuration  *int    `help:"Long break length in minutes."`
	ShortBreakInterval *int    `help:"Focus slots before each break."`
	Timezone           *string `help:"IANA timezone name or Local."`
}

// apply copies the given flags onto cfg and reports whether anything changed
func (c *ConfigSetCmd) apply(cfg *models.TimeConfiguration) bool {
	updated := false
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
			updated = true
		}
	}

	setString(&cfg.WorkStartTime, c.WorkStart)
	setString(&cfg.WorkEndTime, c.WorkEnd)
	setString(&cfg.LunchStartTime, c.LunchStart)
	setInt(&cfg.LunchDuration, c.LunchDuration)
	setInt(&cfg.PomodoroDuration, c.PomodoroDuration)
	setInt(&cfg.BreakDuration, c.BreakDuration)
	setInt(&cfg.LongBreakDuration, c.LongBreakDuration)
	setInt(&cfg.ShortBreakInterval, c.ShortBreakInterval)
	setString(&cfg.Timezone, c.Timezone)
	return updated
}

func (c *ConfigSetCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return fmt.Errorf("failed to get time configuration: %w", err)
	}

	if !c.apply(&cfg) {
		fmt.Println("No changes specified. Use 'config show' to view the configuration or flags to update it.")
		return nil
	}

	if err := save(ctx, cfg); err != nil {
		return err
	}
	fmt.Println("Configuration updated successfully.")
	return nil
}

// save rejects configurations the scheduler could not use
func save(ctx *cli.Context, cfg models.TimeConfiguration) error {
	if err := scheduler.ValidateConfiguration(cfg); err != nil {
		return err
	}
	if !utils.ValidateTimezone(cfg.Timezone) {
		return fmt.Errorf("%w: unknown timezone %q", scheduler.ErrInvalidConfiguration, cfg.Timezone)
	}
	if err := ctx.Store.SaveTimeConfiguration(cfg); err != nil {
		return fmt.Errorf("failed to save time configuration: %w", err)
	}
	return nil
}
