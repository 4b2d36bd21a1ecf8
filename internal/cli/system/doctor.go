package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/tempo/internal/backup"
	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/utils"
)

type DoctorCmd struct {
	Date string `arg:"" optional:"" help:"Day whose schedule is checked (YYYY-MM-DD, today, tomorrow)." default:"today"`
}

type check struct {
	name       string
	needsDB    bool
	warnOnly   bool
	sqliteOnly bool
	run        func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Time configuration", needsDB: true, run: checkTimeConfiguration},
		{name: "Backups present", warnOnly: true, sqliteOnly: true, run: checkBackupsPresent},
		{name: "Data validation", needsDB: true, run: cmd.checkValidation},
		{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	failed := 0
	dbReachable := false
	for i, c := range cmd.checks() {
		if c.sqliteOnly && !ctx.IsSQLite() {
			fmt.Printf("⊘ %s: SKIPPED (not using SQLite)\n", c.name)
			continue
		}
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed++
		}
		if i == 0 {
			dbReachable = err == nil
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetTimeConfiguration(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkTimeConfiguration(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return err
	}
	return scheduler.ValidateConfiguration(cfg)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	latest, err := mgr.Latest()
	if err != nil {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	if age := time.Since(latest.Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old (%s)", int(age.Hours()/24), latest.Name())
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return err
	}
	loc, err := utils.LocationFromConfig(cfg)
	if err != nil {
		loc = time.Local
	}
	day, err := utils.ResolveDate(cmd.Date, loc)
	if err != nil {
		return err
	}

	result, _, err := ctx.CollectConflicts(day, cfg)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetTimeConfiguration()
	if err != nil {
		return err
	}
	return checkTimezone(cfg, time.Now())
}

func checkTimezone(cfg models.TimeConfiguration, now time.Time) error {
	loc, err := utils.LocationFromConfig(cfg)
	if err != nil {
		return err
	}
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	local := now.In(loc)
	if local.Format(constants.DateFormat) != now.In(time.Local).Format(constants.DateFormat) {
		fmt.Printf("   note: configured timezone %s is on %s while the system clock is on %s\n",
			loc, local.Format(constants.DateFormat), now.In(time.Local).Format(constants.DateFormat))
	}
	return nil
}
