package models

import (
	"testing"
	"time"
)

func TestContext_AvailableAt(t *testing.T) {
	ctx := Context{Name: "office", StartTime: "09:00", EndTime: "17:00"}
	ctx.SetWeekdays([]time.Weekday{time.Monday, time.Wednesday, time.Friday})

	// 2026-01-05 is a Monday
	day := func(d, hour, minute int) time.Time {
		return time.Date(2026, 1, d, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"inside window", day(5, 10, 30), true},
		{"at start", day(5, 9, 0), true},
		{"at end", day(5, 17, 0), true},
		{"before start", day(5, 8, 59), false},
		{"after end", day(5, 17, 1), false},
		{"disabled weekday", day(6, 10, 0), false},
		{"enabled friday", day(9, 16, 59), true},
		{"weekend", day(10, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.AvailableAt(tt.at); got != tt.want {
				t.Errorf("AvailableAt(%s) = %v, want %v", tt.at.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestContext_AvailableAt_MalformedWindow(t *testing.T) {
	ctx := Context{Name: "broken", Monday: true, StartTime: "nine", EndTime: "17:00"}
	if ctx.AvailableAt(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)) {
		t.Error("context with malformed start time should never be available")
	}
}

func TestContext_Weekdays(t *testing.T) {
	var ctx Context
	if got := ctx.FormatWeekdays(); got != "never" {
		t.Errorf("FormatWeekdays() = %q, want never", got)
	}

	ctx.SetWeekdays([]time.Weekday{time.Sunday, time.Tuesday})
	if got := ctx.FormatWeekdays(); got != "Tue,Sun" {
		t.Errorf("FormatWeekdays() = %q, want Tue,Sun", got)
	}

	ctx.SetWeekdays([]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday})
	if got := ctx.FormatWeekdays(); got != "every day" {
		t.Errorf("FormatWeekdays() = %q, want every day", got)
	}

	ctx.SetWeekdays([]time.Weekday{time.Saturday})
	if ctx.Monday || !ctx.Saturday {
		t.Errorf("SetWeekdays should replace previous flags, got %+v", ctx)
	}
}

func TestContext_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ctx     Context
		wantErr bool
	}{
		{"valid", Context{Name: "home", StartTime: "18:00", EndTime: "22:00"}, false},
		{"single minute", Context{Name: "standup", StartTime: "09:00", EndTime: "09:00"}, false},
		{"empty name", Context{Name: "", StartTime: "09:00", EndTime: "17:00"}, true},
		{"bad start", Context{Name: "x", StartTime: "9", EndTime: "17:00"}, true},
		{"bad end", Context{Name: "x", StartTime: "09:00", EndTime: "25:00"}, true},
		{"end before start", Context{Name: "x", StartTime: "17:00", EndTime: "09:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Context.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeConfigurationMapRoundTrip(t *testing.T) {
	cfg := DefaultTimeConfiguration()
	cfg.LunchDuration = 0
	cfg.Timezone = "Europe/Berlin"

	got, err := MapToTimeConfiguration(TimeConfigurationToMap(cfg))
	if err != nil {
		t.Fatalf("MapToTimeConfiguration failed: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}

	ApplyDefaultTimeConfiguration(&got)
	if got.LunchDuration != 0 {
		t.Errorf("ApplyDefaultTimeConfiguration should keep a disabled lunch, got %d", got.LunchDuration)
	}
}

func TestMapToTimeConfiguration_InvalidNumber(t *testing.T) {
	_, err := MapToTimeConfiguration(map[string]string{"pomodoro_duration": "abc"})
	if err == nil {
		t.Error("expected error for non-numeric pomodoro duration")
	}
}
