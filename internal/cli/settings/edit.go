package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/utils"
)

type ConfigEditCmd struct{}

func (c *ConfigEditCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return fmt.Errorf("failed to get time configuration: %w", err)
	}

	fm := newConfigFormModel(cfg)
	if err := newConfigForm(fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Edit cancelled.")
			return nil
		}
		return err
	}

	updated, err := fm.toConfig()
	if err != nil {
		return err
	}
	if err := save(ctx, updated); err != nil {
		return err
	}
	fmt.Println("Configuration updated successfully.")
	return nil
}

// configFormModel holds the form's text inputs
type configFormModel struct {
	WorkStart          string
	WorkEnd            string
	LunchStart         string
	LunchDuration      string
	PomodoroDuration   string
	BreakDuration      string
	LongBreakDuration  string
	ShortBreakInterval string
	Timezone           string
}

func newConfigFormModel(cfg models.TimeConfiguration) *configFormModel {
	return &configFormModel{
		WorkStart:          cfg.WorkStartTime,
		WorkEnd:            cfg.WorkEndTime,
		LunchStart:         cfg.LunchStartTime,
		LunchDuration:      strconv.Itoa(cfg.LunchDuration),
		PomodoroDuration:   strconv.Itoa(cfg.PomodoroDuration),
		BreakDuration:      strconv.Itoa(cfg.BreakDuration),
		LongBreakDuration:  strconv.Itoa(cfg.LongBreakDuration),
		ShortBreakInterval: strconv.Itoa(cfg.ShortBreakInterval),
		Timezone:           cfg.Timezone,
	}
}

func (fm *configFormModel) toConfig() (models.TimeConfiguration, error) {
	cfg := models.TimeConfiguration{
		WorkStartTime:  strings.TrimSpace(fm.WorkStart),
		WorkEndTime:    strings.TrimSpace(fm.WorkEnd),
		LunchStartTime: strings.TrimSpace(fm.LunchStart),
		Timezone:       strings.TrimSpace(fm.Timezone),
	}
	fields := []struct {
		name string
		src  string
		dst  *int
	}{
		{"lunch duration", fm.LunchDuration, &cfg.LunchDuration},
		{"pomodoro duration", fm.PomodoroDuration, &cfg.PomodoroDuration},
		{"break duration", fm.BreakDuration, &cfg.BreakDuration},
		{"long break duration", fm.LongBreakDuration, &cfg.LongBreakDuration},
		{"short break interval", fm.ShortBreakInterval, &cfg.ShortBreakInterval},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.src))
		if err != nil {
			return models.TimeConfiguration{}, fmt.Errorf("invalid %s: %q", f.name, f.src)
		}
		*f.dst = n
	}
	return cfg, nil
}

func validateClock(s string) error {
	if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}

func validateMinutes(floor int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("expected a whole number")
		}
		if n < floor {
			return fmt.Errorf("must be at least %d", floor)
		}
		return nil
	}
}

func newConfigForm(fm *configFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Work start (HH:MM)").
				Value(&fm.WorkStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Work end (HH:MM)").
				Value(&fm.WorkEnd).
				Validate(validateClock),
			huh.NewInput().
				Title("Lunch start (HH:MM)").
				Value(&fm.LunchStart).
				Validate(validateClock),
			huh.NewInput().
				Title("Lunch duration (min)").
				Description("0 disables lunch").
				Value(&fm.LunchDuration).
				Validate(validateMinutes(0)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Pomodoro (min)").
				Value(&fm.PomodoroDuration).
				Validate(validateMinutes(1)),
			huh.NewInput().
				Title("Break (min)").
				Value(&fm.BreakDuration).
				Validate(validateMinutes(1)),
			huh.NewInput().
				Title("Long break (min)").
				Value(&fm.LongBreakDuration).
				Validate(validateMinutes(1)),
			huh.NewInput().
				Title("Pomodoros per cycle").
				Value(&fm.ShortBreakInterval).
				Validate(validateMinutes(1)),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name such as Europe/Berlin, or Local").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("unknown timezone")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
