package main

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/cli/backups"
	"github.com/julianstephens/tempo/internal/cli/contexts"
	"github.com/julianstephens/tempo/internal/cli/plans"
	"github.com/julianstephens/tempo/internal/cli/settings"
	"github.com/julianstephens/tempo/internal/cli/system"
	"github.com/julianstephens/tempo/internal/cli/tasks"
	"github.com/julianstephens/tempo/internal/config"
	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/errors"
	"github.com/julianstephens/tempo/internal/keyring"
	"github.com/julianstephens/tempo/internal/logger"
	"github.com/julianstephens/tempo/internal/scheduler"
	"github.com/julianstephens/tempo/internal/storage"
	"github.com/julianstephens/tempo/internal/storage/postgres"
	"github.com/julianstephens/tempo/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or PostgreSQL connection string. PostgreSQL passwords belong in the OS keyring, ${env}_DB_CONNECTION or .pgpass." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init       system.InitCmd      `cmd:"" help:"Initialize tempo storage."`
	Migrate    system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor     system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Tui        system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Schedule   plans.ScheduleCmd   `cmd:"" help:"Plan a day's candidate tasks into time slots."`
	Unschedule plans.UnscheduleCmd `cmd:"" help:"Clear the planned times of a day."`
	Day        plans.DayCmd        `cmd:"" help:"Show a day's slots and planned tasks."`
	Validate   system.ValidateCmd  `cmd:"" help:"Check tasks and planned days for conflicts."`
	Watch      system.WatchCmd     `cmd:"" help:"Schedule today on a cron spec until interrupted."`
	Export     system.ExportCmd    `cmd:"" help:"Export contexts, tasks and configuration as YAML."`
	Import     system.ImportCmd    `cmd:"" help:"Import a YAML export."`
	Settings   settings.ConfigCmd  `cmd:"" name:"config" help:"Show or change the time configuration."`
	Keyring    system.KeyringCmd   `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup     backups.BackupCmd   `cmd:"" help:"Manage database backups."`
	Context    struct {
		Add     contexts.ContextAddCmd     `cmd:"" help:"Add a context."`
		List    contexts.ContextListCmd    `cmd:"" help:"List contexts."`
		Edit    contexts.ContextEditCmd    `cmd:"" help:"Edit a context."`
		Delete  contexts.ContextDeleteCmd  `cmd:"" help:"Delete a context."`
		Restore contexts.ContextRestoreCmd `cmd:"" help:"Restore a deleted context."`
	} `cmd:"" help:"Manage contexts."`
	Task struct {
		Add     tasks.TaskAddCmd     `cmd:"" help:"Add a new task."`
		List    tasks.TaskListCmd    `cmd:"" help:"List tasks."`
		Edit    tasks.TaskEditCmd    `cmd:"" help:"Edit an existing task."`
		Done    tasks.TaskDoneCmd    `cmd:"" help:"Mark a task done."`
		Delete  tasks.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Restore tasks.TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
	} `cmd:"" help:"Manage tasks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("GTD task auto-scheduler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version, "env": constants.EnvPrefix},
	)
	command := strings.Fields(ctx.Command())[0]

	env, err := config.LoadEnv()
	if err != nil {
		errors.Fatal(err)
	}
	target, err := config.Resolve(CLI.Config, env, keyring.ConnectionString().Get)
	if err != nil {
		errors.Fatal(err)
	}

	configDir, err := target.ConfigDir()
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || env.Debug,
		ConfigDir: configDir,
		Console:   command == "watch",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Resolved storage", "backend", target.Backend, "source", target.Source)

	store, err := openStore(target)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Target:    target,
		Env:       env,
	}

	// init creates the storage itself; keyring never touches it
	if command != "init" && command != "keyring" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

func openStore(target config.Target) (storage.Provider, error) {
	if target.Backend == config.BackendSQLite {
		return sqlite.NewStore(target.Location), nil
	}

	// Passwords are only accepted from sources that are not visible in the process list
	_, err := postgres.ValidateConnString(target.Location)
	switch {
	case err == nil:
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials) && target.Source != "flag":
		logger.Debug("Using connection string with credentials", "source", target.Source)
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials):
		return nil, fmt.Errorf("%w: store it with '%s keyring set' or %s_DB_CONNECTION instead", err, constants.AppName, constants.EnvPrefix)
	default:
		return nil, err
	}
	return postgres.New(target.Location), nil
}
