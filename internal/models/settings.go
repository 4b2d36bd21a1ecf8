package models

// TimeConfiguration holds a user's work-day budget. All times are same-day wall-clock values.
type TimeConfiguration struct {
	WorkStartTime      string `json:"work_start_time" yaml:"work_start_time"`           // e.g. "09:00"
	WorkEndTime        string `json:"work_end_time" yaml:"work_end_time"`               // e.g. "17:00"
	LunchStartTime     string `json:"lunch_start_time" yaml:"lunch_start_time"`         // e.g. "12:00"
	LunchDuration      int    `json:"lunch_duration" yaml:"lunch_duration"`             // minutes
	PomodoroDuration   int    `json:"pomodoro_duration" yaml:"pomodoro_duration"`       // minutes
	BreakDuration      int    `json:"break_duration" yaml:"break_duration"`             // minutes
	LongBreakDuration  int    `json:"long_break_duration" yaml:"long_break_duration"`   // minutes
	ShortBreakInterval int    `json:"short_break_interval" yaml:"short_break_interval"` // focus slots per cycle
	Timezone           string `json:"timezone" yaml:"timezone"`                         // IANA timezone name or "Local"
}
