package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/config"
	"github.com/julianstephens/tempo/internal/storage"
	"github.com/julianstephens/tempo/internal/storage/postgres"
	"github.com/julianstephens/tempo/internal/storage/sqlite"
	"github.com/julianstephens/tempo/internal/transfer"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing SQLite database before initialization."`
	Source string `help:"Database path or PostgreSQL connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized tempo storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		sum, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Printf("Copied %s\n", sum)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force only applies to SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, errDB := filepath.Abs(dbPath)
		absSource, errSource := filepath.Abs(c.Source)
		if errDB == nil && errSource == nil && absDB == absSource {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

// copyFrom moves the live records of another store into this one
func (c *InitCmd) copyFrom(ctx *cli.Context) (transfer.Summary, error) {
	var source storage.Provider
	if config.IsPostgres(c.Source) {
		if _, err := postgres.ValidateConnString(c.Source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return transfer.Summary{}, fmt.Errorf("source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return transfer.Summary{}, err
		}
		source = postgres.New(c.Source)
	} else {
		path, err := config.ExpandPath(c.Source)
		if err != nil {
			return transfer.Summary{}, err
		}
		source = sqlite.NewStore(path)
	}

	if err := source.Load(); err != nil {
		return transfer.Summary{}, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	doc, err := transfer.Build(source, time.Now())
	if err != nil {
		return transfer.Summary{}, err
	}
	return transfer.Import(ctx.Store, doc, transfer.ImportOptions{Overwrite: true}, time.Now())
}
