package system

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/tempo/internal/cli"
	"github.com/julianstephens/tempo/internal/config"
	"github.com/julianstephens/tempo/internal/keyring"
	"github.com/julianstephens/tempo/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string (masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is usable."`
}

type KeyringSetCmd struct {
	ConnString string `arg:"" optional:"" help:"Connection string. Read from stdin when omitted."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(c.ConnString)
	if connStr == "" {
		fmt.Print("Connection string: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read connection string: %w", err)
		}
		connStr = strings.TrimSpace(line)
	}
	if connStr == "" {
		return fmt.Errorf("connection string cannot be empty")
	}
	if !config.IsPostgres(connStr) {
		return fmt.Errorf("not a PostgreSQL connection string")
	}
	// Credentials are allowed here, the keyring is where they belong
	if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}

	if err := keyring.ConnectionString().Set(connStr); err != nil {
		return err
	}
	fmt.Printf("Stored connection string in keyring: %s\n", keyring.Mask(connStr))
	return nil
}

type KeyringGetCmd struct{}

func (c *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.ConnectionString().Get()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored in keyring.")
			return nil
		}
		return err
	}
	fmt.Println(keyring.Mask(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.ConnectionString().Delete(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored in keyring.")
			return nil
		}
		return err
	}
	fmt.Println("Removed connection string from keyring.")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("Keyring: unavailable")
		return nil
	}
	fmt.Println("Keyring: available")
	if _, err := keyring.ConnectionString().Get(); err == nil {
		fmt.Println("Connection string: stored")
	} else {
		fmt.Println("Connection string: not stored")
	}
	if ctx.Target.Source != "" {
		fmt.Printf("Active database source: %s\n", ctx.Target.Source)
	}
	return nil
}
