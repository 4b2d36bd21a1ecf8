package settings

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store, Scheduler: scheduler.New()}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int { return &n }

func TestConfigShowCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&ConfigShowCmd{}).Run(ctx); err != nil {
		t.Errorf("ConfigShowCmd failed: %v", err)
	}

	var out strings.Builder
	printConfig(&out, models.DefaultTimeConfiguration())
	for _, want := range []string{"09:00 - 17:00", "12:00 for 60 min", "Pomodoros per Cycle:   4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("printConfig missing %q:\n%s", want, out.String())
		}
	}
}

func TestConfigSetCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &ConfigSetCmd{
		WorkStart:          strPtr("08:30"),
		LunchDuration:      intPtr(0),
		ShortBreakInterval: intPtr(3),
		Timezone:           strPtr("Europe/Berlin"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("ConfigSetCmd failed: %v", err)
	}

	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		t.Fatalf("GetTimeConfiguration failed: %v", err)
	}
	if cfg.WorkStartTime != "08:30" || cfg.LunchDuration != 0 || cfg.ShortBreakInterval != 3 || cfg.Timezone != "Europe/Berlin" {
		t.Errorf("unexpected configuration: %+v", cfg)
	}
	if cfg.WorkEndTime != "17:00" || cfg.PomodoroDuration != 25 {
		t.Errorf("untouched values changed: %+v", cfg)
	}
}

func TestConfigSetCmd_NoChanges(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&ConfigSetCmd{}).Run(ctx); err != nil {
		t.Errorf("ConfigSetCmd without flags failed: %v", err)
	}
}

func TestConfigSetCmd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cmd  ConfigSetCmd
	}{
		{"start after end", ConfigSetCmd{WorkStart: strPtr("18:00")}},
		{"zero pomodoro", ConfigSetCmd{PomodoroDuration: intPtr(0)}},
		{"negative lunch", ConfigSetCmd{LunchDuration: intPtr(-10)}},
		{"zero interval", ConfigSetCmd{ShortBreakInterval: intPtr(0)}},
		{"bad clock", ConfigSetCmd{LunchStart: strPtr("noon")}},
		{"bad timezone", ConfigSetCmd{Timezone: strPtr("Mars/Olympus")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			err := tt.cmd.Run(ctx)
			if !errors.Is(err, scheduler.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}

			cfg, getErr := ctx.Store.GetTimeConfiguration()
			if getErr != nil {
				t.Fatalf("GetTimeConfiguration failed: %v", getErr)
			}
			if cfg != models.DefaultTimeConfiguration() {
				t.Errorf("rejected change was saved: %+v", cfg)
			}
		})
	}
}

func TestConfigFormModel(t *testing.T) {
	cfg := models.DefaultTimeConfiguration()
	fm := newConfigFormModel(cfg)

	got, err := fm.toConfig()
	if err != nil {
		t.Fatalf("toConfig failed: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}

	fm.PomodoroDuration = " 50 "
	fm.WorkEnd = " 18:00"
	got, err = fm.toConfig()
	if err != nil {
		t.Fatalf("toConfig failed: %v", err)
	}
	if got.PomodoroDuration != 50 || got.WorkEndTime != "18:00" {
		t.Errorf("unexpected config: %+v", got)
	}

	fm.BreakDuration = "five"
	if _, err := fm.toConfig(); err == nil {
		t.Error("expected error for non-numeric duration")
	}
}

func TestFormValidators(t *testing.T) {
	if err := validateClock("09:15"); err != nil {
		t.Errorf("validateClock(09:15) = %v", err)
	}
	if err := validateClock("9.15"); err == nil {
		t.Error("expected validateClock to reject 9.15")
	}

	lunch := validateMinutes(0)
	if err := lunch("0"); err != nil {
		t.Errorf("validateMinutes(0)(\"0\") = %v", err)
	}
	positive := validateMinutes(1)
	for _, in := range []string{"0", "-3", "abc"} {
		if err := positive(in); err == nil {
			t.Errorf("validateMinutes(1)(%q) should fail", in)
		}
	}

	if newConfigForm(newConfigFormModel(models.DefaultTimeConfiguration())) == nil {
		t.Error("newConfigForm returned nil")
	}
}
