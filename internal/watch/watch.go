package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
)

// Job is one scheduling pass. It is handed the tick time in the watcher's location.
type Job func(ctx context.Context, now time.Time) error

type Config struct {
	Spec       string
	Location   *time.Location
	ConfigDir  string
	RunOnStart bool
}

type Watcher struct {
	cfg      Config
	schedule cron.Schedule
	job      Job

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
	runs    int
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func New(cfg Config, job Job) (*Watcher, error) {
	if cfg.Spec == "" {
		cfg.Spec = constants.DefaultWatchCron
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	schedule, err := parser.Parse(cfg.Spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", cfg.Spec, err)
	}
	return &Watcher{cfg: cfg, schedule: schedule, job: job}, nil
}

func (w *Watcher) LockPath() string {
	return filepath.Join(w.cfg.ConfigDir, constants.WatchLockfileName)
}

// Next returns the first tick after t
func (w *Watcher) Next(t time.Time) time.Time {
	return w.schedule.Next(t.In(w.cfg.Location))
}

// Run holds the lockfile and fires the job on every tick until ctx is done.
// A tick that arrives while the previous job is still running is skipped.
func (w *Watcher) Run(ctx context.Context) error {
	lock, err := AcquireLock(w.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release watch lockfile", "path", lock.Path(), "error", err)
		}
	}()

	cl := cronLogger{}
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLocation(w.cfg.Location),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(w.cfg.Spec, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to register watch job: %w", err)
	}

	logger.Info("Watcher started", "cron", w.cfg.Spec, "tz", w.cfg.Location.String(), "next", w.Next(time.Now()).Format(time.RFC3339))
	if w.cfg.RunOnStart {
		w.RunOnce(ctx)
	}

	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(constants.WatchShutdownTimeout):
		logger.Warn("Timed out waiting for the running job to finish")
	}
	logger.Info("Watcher stopped", "runs", w.Runs())
	return nil
}

// RunOnce runs the job immediately and records the outcome
func (w *Watcher) RunOnce(ctx context.Context) error {
	now := time.Now().In(w.cfg.Location)
	logger.Info("Running scheduled job", "at", now.Format(time.RFC3339))

	err := w.job(ctx, now)

	w.mu.Lock()
	w.lastRun = now
	w.lastErr = err
	w.runs++
	w.mu.Unlock()

	if err != nil {
		logger.Error("Scheduled job failed", "error", err)
	}
	return err
}

func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

func (w *Watcher) LastRun() (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun, w.lastErr
}

// cronLogger adapts the package logger to cron.Logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
