package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/utils"
)

// ErrInvalidConfiguration is returned when a time configuration cannot produce a well-defined day.
var ErrInvalidConfiguration = errors.New("invalid time configuration")

// workDay holds the configuration anchored to a concrete calendar date.
type workDay struct {
	workStart  time.Time
	workEnd    time.Time
	lunchStart time.Time
	lunchEnd   time.Time
}

// ValidateConfiguration checks that cfg describes a usable working day.
// Lunch may be zero minutes long, which disables it; every other duration must be positive.
func ValidateConfiguration(cfg models.TimeConfiguration) error {
	start, err := utils.ParseTimeToMinutes(cfg.WorkStartTime)
	if err != nil {
		return fmt.Errorf("%w: work start time %q is not HH:MM", ErrInvalidConfiguration, cfg.WorkStartTime)
	}
	end, err := utils.ParseTimeToMinutes(cfg.WorkEndTime)
	if err != nil {
		return fmt.Errorf("%w: work end time %q is not HH:MM", ErrInvalidConfiguration, cfg.WorkEndTime)
	}
	if start >= end {
		return fmt.Errorf("%w: work start (%s) must be before work end (%s)", ErrInvalidConfiguration, cfg.WorkStartTime, cfg.WorkEndTime)
	}
	if _, err := utils.ParseTimeToMinutes(cfg.LunchStartTime); err != nil {
		return fmt.Errorf("%w: lunch start time %q is not HH:MM", ErrInvalidConfiguration, cfg.LunchStartTime)
	}
	if cfg.LunchDuration < 0 {
		return fmt.Errorf("%w: lunch duration cannot be negative", ErrInvalidConfiguration)
	}
	if cfg.PomodoroDuration <= 0 {
		return fmt.Errorf("%w: pomodoro duration must be positive", ErrInvalidConfiguration)
	}
	if cfg.BreakDuration <= 0 {
		return fmt.Errorf("%w: break duration must be positive", ErrInvalidConfiguration)
	}
	if cfg.LongBreakDuration <= 0 {
		return fmt.Errorf("%w: long break duration must be positive", ErrInvalidConfiguration)
	}
	if cfg.ShortBreakInterval < 1 {
		return fmt.Errorf("%w: short break interval must be at least 1", ErrInvalidConfiguration)
	}
	return nil
}

func resolveWorkDay(cfg models.TimeConfiguration, day time.Time) (workDay, error) {
	if err := ValidateConfiguration(cfg); err != nil {
		return workDay{}, err
	}
	var wd workDay
	var err error
	if wd.workStart, err = utils.AtClock(day, cfg.WorkStartTime); err != nil {
		return workDay{}, err
	}
	if wd.workEnd, err = utils.AtClock(day, cfg.WorkEndTime); err != nil {
		return workDay{}, err
	}
	if wd.lunchStart, err = utils.AtClock(day, cfg.LunchStartTime); err != nil {
		return workDay{}, err
	}
	wd.lunchEnd = wd.lunchStart.Add(minutes(cfg.LunchDuration))
	return wd, nil
}

// inLunch reports whether t lies in [lunchStart, lunchEnd).
func (wd workDay) inLunch(t time.Time) bool {
	return !t.Before(wd.lunchStart) && t.Before(wd.lunchEnd)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
