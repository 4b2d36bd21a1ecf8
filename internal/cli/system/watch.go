package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/utils"
	"github.com/julianstephens/tempo/internal/watch"
)

type WatchCmd struct {
	Cron   string `help:"Cron spec for the daily scheduling run (defaults to TEMPO_WATCH_CRON)."`
	RunNow bool   `help:"Schedule today immediately on startup."`
}

func (c *WatchCmd) spec(ctx *cli.Context) string {
	if c.Cron != "" {
		return c.Cron
	}
	if ctx.Env != nil && ctx.Env.WatchCron != "" {
		return ctx.Env.WatchCron
	}
	return constants.DefaultWatchCron
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	_, loc, err := ctx.TimeConfiguration()
	if err != nil {
		return err
	}
	dir, err := ctx.Target.ConfigDir()
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Spec:       c.spec(ctx),
		Location:   loc,
		ConfigDir:  dir,
		RunOnStart: c.RunNow,
	}, scheduleJob(ctx))
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching with schedule %q (next run %s). Press Ctrl+C to stop.\n",
		c.spec(ctx), w.Next(time.Now().In(loc)).Format("Mon 2006-01-02 15:04 MST"))
	return w.Run(runCtx)
}

// scheduleJob plans the day the job fires on. The configuration is reloaded
// on every run so edits take effect without restarting the watcher.
func scheduleJob(ctx *cli.Context) watch.Job {
	return func(_ context.Context, now time.Time) error {
		cfg, loc, err := ctx.TimeConfiguration()
		if err != nil {
			return err
		}
		day := utils.StartOfDay(now.In(loc))

		ctx.PerformAutomaticBackup()
		p, err := ctx.ScheduleDay(day, cfg)
		if err != nil {
			return err
		}
		logger.Info("Scheduled day", "day", day.Format(constants.DateFormat),
			"assigned", len(p.Result.Assignments), "unscheduled", len(p.Result.Unscheduled))
		return nil
	}
}
