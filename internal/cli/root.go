package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tempo/internal/backup"
	"github.com/julianstephens/tempo/internal/config"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/storage"
	"github.com/julianstephens/tempo/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Target    config.Target
	Env       *config.Env
}

func (c *Context) IsSQLite() bool {
	return c.Target.Backend == "" || c.Target.Backend == config.BackendSQLite
}

// PerformAutomaticBackup creates a backup of a SQLite store and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// TimeConfiguration loads the stored configuration together with its location
func (c *Context) TimeConfiguration() (models.TimeConfiguration, *time.Location, error) {
	cfg, err := c.Store.GetTimeConfiguration()
	if err != nil {
		return models.TimeConfiguration{}, nil, fmt.Errorf("failed to load time configuration: %w", err)
	}
	loc, err := utils.LocationFromConfig(cfg)
	if err != nil {
		return models.TimeConfiguration{}, nil, err
	}
	return cfg, loc, nil
}

// ResolveDay turns a date argument into midnight in the configured timezone
func (c *Context) ResolveDay(arg string) (time.Time, models.TimeConfiguration, error) {
	cfg, loc, err := c.TimeConfiguration()
	if err != nil {
		return time.Time{}, cfg, err
	}
	day, err := utils.ResolveDate(arg, loc)
	if err != nil {
		return time.Time{}, cfg, err
	}
	return day, cfg, nil
}

// DayBounds returns [midnight, next midnight) for day
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := utils.StartOfDay(day)
	return start, start.AddDate(0, 0, 1)
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday). "weekdays", "weekends" and "all" are accepted as shorthands.
func ParseWeekdays(s string) ([]time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekdays":
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, nil
	case "weekends":
		return []time.Weekday{time.Saturday, time.Sunday}, nil
	case "all", "every day":
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}, nil
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := weekdayNames[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

// ResolveContexts maps context names or IDs to context IDs
func (c *Context) ResolveContexts(refs []string) ([]string, error) {
	var ids []string
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if ctx, err := c.Store.GetContextByName(ref); err == nil {
			ids = append(ids, ctx.ID)
			continue
		}
		ctx, err := c.Store.GetContext(ref)
		if err != nil {
			return nil, fmt.Errorf("unknown context %q", ref)
		}
		ids = append(ids, ctx.ID)
	}
	return ids, nil
}

func FormatEstimate(t models.Task) string {
	if t.EstimatedMin == nil || *t.EstimatedMin <= 0 {
		return fmt.Sprintf("%dm*", constants.DefaultTaskEstimateMin)
	}
	return fmt.Sprintf("%dm", *t.EstimatedMin)
}
