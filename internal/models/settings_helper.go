package models

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/constants"
)

// MapToTimeConfiguration converts a map of key-value pairs to a TimeConfiguration.
func MapToTimeConfiguration(data map[string]string) (TimeConfiguration, error) {
	cfg := TimeConfiguration{}

	ints := map[string]*int{
		constants.SettingLunchDuration:      &cfg.LunchDuration,
		constants.SettingPomodoroDuration:   &cfg.PomodoroDuration,
		constants.SettingBreakDuration:      &cfg.BreakDuration,
		constants.SettingLongBreakDuration:  &cfg.LongBreakDuration,
		constants.SettingShortBreakInterval: &cfg.ShortBreakInterval,
	}

	for key, value := range data {
		switch key {
		case constants.SettingWorkStartTime:
			cfg.WorkStartTime = value
		case constants.SettingWorkEndTime:
			cfg.WorkEndTime = value
		case constants.SettingLunchStartTime:
			cfg.LunchStartTime = value
		case constants.SettingTimezone:
			cfg.Timezone = value
		default:
			dst, ok := ints[key]
			if !ok {
				continue
			}
			if _, err := fmt.Sscanf(value, "%d", dst); err != nil {
				return TimeConfiguration{}, fmt.Errorf("parsing %s: %w", key, err)
			}
		}
	}
	return cfg, nil
}

// TimeConfigurationToMap converts a TimeConfiguration to a map of key-value pairs.
func TimeConfigurationToMap(cfg TimeConfiguration) map[string]string {
	return map[string]string{
		constants.SettingWorkStartTime:      cfg.WorkStartTime,
		constants.SettingWorkEndTime:        cfg.WorkEndTime,
		constants.SettingLunchStartTime:     cfg.LunchStartTime,
		constants.SettingLunchDuration:      fmt.Sprintf("%d", cfg.LunchDuration),
		constants.SettingPomodoroDuration:   fmt.Sprintf("%d", cfg.PomodoroDuration),
		constants.SettingBreakDuration:      fmt.Sprintf("%d", cfg.BreakDuration),
		constants.SettingLongBreakDuration:  fmt.Sprintf("%d", cfg.LongBreakDuration),
		constants.SettingShortBreakInterval: fmt.Sprintf("%d", cfg.ShortBreakInterval),
		constants.SettingTimezone:           cfg.Timezone,
	}
}

// DefaultTimeConfiguration returns the configuration seeded by `tempo init`.
func DefaultTimeConfiguration() TimeConfiguration {
	return TimeConfiguration{
		WorkStartTime:      constants.DefaultWorkStartTime,
		WorkEndTime:        constants.DefaultWorkEndTime,
		LunchStartTime:     constants.DefaultLunchStartTime,
		LunchDuration:      constants.DefaultLunchDuration,
		PomodoroDuration:   constants.DefaultPomodoroDuration,
		BreakDuration:      constants.DefaultBreakDuration,
		LongBreakDuration:  constants.DefaultLongBreakDuration,
		ShortBreakInterval: constants.DefaultShortBreakInterval,
		Timezone:           constants.DefaultTimezone,
	}
}

// ApplyDefaultTimeConfiguration applies default values to missing settings.
// Lunch duration is left alone: zero disables lunch.
func ApplyDefaultTimeConfiguration(cfg *TimeConfiguration) {
	if cfg.WorkStartTime == "" {
		cfg.WorkStartTime = constants.DefaultWorkStartTime
	}
	if cfg.WorkEndTime == "" {
		cfg.WorkEndTime = constants.DefaultWorkEndTime
	}
	if cfg.LunchStartTime == "" {
		cfg.LunchStartTime = constants.DefaultLunchStartTime
	}
	if cfg.PomodoroDuration == 0 {
		cfg.PomodoroDuration = constants.DefaultPomodoroDuration
	}
	if cfg.BreakDuration == 0 {
		cfg.BreakDuration = constants.DefaultBreakDuration
	}
	if cfg.LongBreakDuration == 0 {
		cfg.LongBreakDuration = constants.DefaultLongBreakDuration
	}
	if cfg.ShortBreakInterval == 0 {
		cfg.ShortBreakInterval = constants.DefaultShortBreakInterval
	}
	if cfg.Timezone == "" {
		cfg.Timezone = constants.DefaultTimezone
	}
}
