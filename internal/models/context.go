package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/constants"
)

// Context is a named availability window describing when a task may be worked on.
type Context struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Monday    bool    `json:"monday" yaml:"monday"`
	Tuesday   bool    `json:"tuesday" yaml:"tuesday"`
	Wednesday bool    `json:"wednesday" yaml:"wednesday"`
	Thursday  bool    `json:"thursday" yaml:"thursday"`
	Friday    bool    `json:"friday" yaml:"friday"`
	Saturday  bool    `json:"saturday" yaml:"saturday"`
	Sunday    bool    `json:"sunday" yaml:"sunday"`
	StartTime string  `json:"start_time" yaml:"start_time"` // HH:MM format
	EndTime   string  `json:"end_time" yaml:"end_time"`     // HH:MM format
	DeletedAt *string `json:"deleted_at,omitempty" yaml:"-"`
}

// EnabledOn reports whether the context's flag for the given weekday is set
func (c Context) EnabledOn(wd time.Weekday) bool {
	switch wd {
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	case time.Sunday:
		return c.Sunday
	}
	return false
}

// SetWeekdays replaces all weekday flags with the given set
func (c *Context) SetWeekdays(days []time.Weekday) {
	c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday, c.Sunday =
		false, false, false, false, false, false, false
	for _, wd := range days {
		switch wd {
		case time.Monday:
			c.Monday = true
		case time.Tuesday:
			c.Tuesday = true
		case time.Wednesday:
			c.Wednesday = true
		case time.Thursday:
			c.Thursday = true
		case time.Friday:
			c.Friday = true
		case time.Saturday:
			c.Saturday = true
		case time.Sunday:
			c.Sunday = true
		}
	}
}

// Weekdays returns the enabled weekdays in Monday-first order
func (c Context) Weekdays() []time.Weekday {
	var days []time.Weekday
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		if c.EnabledOn(wd) {
			days = append(days, wd)
		}
	}
	return days
}

// AvailableAt reports whether t falls on an enabled weekday and inside
// [StartTime, EndTime], both ends inclusive. Malformed windows are never available.
func (c Context) AvailableAt(t time.Time) bool {
	if !c.EnabledOn(t.Weekday()) {
		return false
	}
	start, err := time.Parse(constants.TimeFormat, c.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse(constants.TimeFormat, c.EndTime)
	if err != nil {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= start.Hour()*60+start.Minute() && minute <= end.Hour()*60+end.Minute()
}

// FormatWeekdays returns a compact description such as "Mon,Tue,Fri" or "every day"
func (c Context) FormatWeekdays() string {
	days := c.Weekdays()
	switch len(days) {
	case 0:
		return "never"
	case 7:
		return "every day"
	}
	names := make([]string, len(days))
	for i, wd := range days {
		names[i] = wd.String()[:3]
	}
	return strings.Join(names, ",")
}

func (c *Context) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("context name cannot be empty")
	}
	start, err := time.Parse(constants.TimeFormat, c.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	end, err := time.Parse(constants.TimeFormat, c.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("context end time must not be before start time")
	}
	return nil
}
