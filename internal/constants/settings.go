package constants

const (
	// Time configuration keys
	SettingWorkStartTime      = "work_start_time"
	SettingWorkEndTime        = "work_end_time"
	SettingLunchStartTime     = "lunch_start_time"
	SettingLunchDuration      = "lunch_duration"
	SettingPomodoroDuration   = "pomodoro_duration"
	SettingBreakDuration      = "break_duration"
	SettingLongBreakDuration  = "long_break_duration"
	SettingShortBreakInterval = "short_break_interval"
	SettingTimezone           = "timezone"

	// Default time configuration values
	DefaultWorkStartTime      = "09:00"
	DefaultWorkEndTime        = "17:00"
	DefaultLunchStartTime     = "12:00"
	DefaultLunchDuration      = 60
	DefaultPomodoroDuration   = 25
	DefaultBreakDuration      = 5
	DefaultLongBreakDuration  = 15
	DefaultShortBreakInterval = 4
	DefaultTimezone           = "Local" // Use system local timezone by default
)
