package contexts

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/storage"
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

func TestContextAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &ContextAddCmd{Name: "phone", Weekdays: "mon,sat", Start: "08:00", End: "20:00"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("ContextAddCmd failed: %v", err)
	}

	c, err := ctx.Store.GetContextByName("Phone")
	if err != nil {
		t.Fatalf("GetContextByName failed: %v", err)
	}
	if !c.Monday || !c.Saturday || c.Tuesday || c.Sunday {
		t.Errorf("unexpected weekdays: %s", c.FormatWeekdays())
	}
	if !c.AvailableAt(time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC)) {
		t.Error("expected window end to be inclusive")
	}

	if err := cmd.Run(ctx); err == nil {
		t.Error("expected duplicate name to be rejected")
	}
}

func TestContextAddCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  ContextAddCmd
	}{
		{"bad weekday", ContextAddCmd{Name: "x", Weekdays: "someday", Start: "09:00", End: "17:00"}},
		{"bad start", ContextAddCmd{Name: "x", Weekdays: "all", Start: "9am", End: "17:00"}},
		{"end before start", ContextAddCmd{Name: "x", Weekdays: "all", Start: "17:00", End: "09:00"}},
		{"empty name", ContextAddCmd{Name: "", Weekdays: "all", Start: "09:00", End: "17:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestContextEditCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&ContextAddCmd{Name: "office", Weekdays: "weekdays", Start: "09:00", End: "17:00"}).Run(ctx); err != nil {
		t.Fatalf("ContextAddCmd failed: %v", err)
	}

	name := "studio"
	end := "18:30"
	weekdays := "weekends"
	if err := (&ContextEditCmd{Ref: "office", Name: &name, End: &end, Weekdays: &weekdays}).Run(ctx); err != nil {
		t.Fatalf("ContextEditCmd failed: %v", err)
	}

	c, err := ctx.Store.GetContextByName("studio")
	if err != nil {
		t.Fatalf("GetContextByName failed: %v", err)
	}
	if c.EndTime != "18:30" || c.FormatWeekdays() != "Sat,Sun" {
		t.Errorf("unexpected context: %+v", c)
	}
	if _, err := ctx.Store.GetContextByName("office"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected old name to be gone, got %v", err)
	}
}

func TestContextDeleteRestoreCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&ContextAddCmd{Name: "errands", Weekdays: "all", Start: "10:00", End: "18:00"}).Run(ctx); err != nil {
		t.Fatalf("ContextAddCmd failed: %v", err)
	}

	if err := (&ContextDeleteCmd{Ref: "errands"}).Run(ctx); err != nil {
		t.Fatalf("ContextDeleteCmd failed: %v", err)
	}
	if _, err := ctx.Store.GetContextByName("errands"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected deleted context to be hidden, got %v", err)
	}
	if err := (&ContextDeleteCmd{Ref: "errands"}).Run(ctx); err == nil {
		t.Error("expected error deleting twice")
	}

	if err := (&ContextListCmd{All: true, ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("ContextListCmd failed: %v", err)
	}

	if err := (&ContextRestoreCmd{Ref: "errands"}).Run(ctx); err != nil {
		t.Fatalf("ContextRestoreCmd failed: %v", err)
	}
	if _, err := ctx.Store.GetContextByName("errands"); err != nil {
		t.Errorf("expected restored context, got %v", err)
	}
	if err := (&ContextRestoreCmd{Ref: "errands"}).Run(ctx); err == nil {
		t.Error("expected error restoring a live context")
	}
}
