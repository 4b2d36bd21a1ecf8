package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/tempo/internal/constants"
)

// Env holds the TEMPO_* process overrides
type Env struct {
	Config       string `envconfig:"CONFIG"`
	DBConnection string `envconfig:"DB_CONNECTION"`
	Debug        bool   `envconfig:"DEBUG" default:"false"`
	WatchCron    string `envconfig:"WATCH_CRON" default:"0 7 * * 1-5"`
}

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(constants.EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Target is the resolved storage location and where it came from
type Target struct {
	Backend  Backend
	Location string
	Source   string
}

// KeyringLookup returns the stored connection string. A lookup that finds
// nothing or cannot reach the keyring returns an error and is skipped.
type KeyringLookup func() (string, error)

// Resolve picks the storage target. Precedence: the --config flag,
// TEMPO_DB_CONNECTION, TEMPO_CONFIG, the OS keyring, then the default path.
func Resolve(flag string, env *Env, lookup KeyringLookup) (Target, error) {
	if env == nil {
		env = &Env{}
	}

	candidates := []struct {
		value  string
		source string
	}{
		{flag, "flag"},
		{env.DBConnection, "env:" + constants.EnvPrefix + "_DB_CONNECTION"},
		{env.Config, "env:" + constants.EnvPrefix + "_CONFIG"},
	}
	for _, c := range candidates {
		if strings.TrimSpace(c.value) != "" {
			return newTarget(c.value, c.source)
		}
	}

	if lookup != nil {
		if connStr, err := lookup(); err == nil && strings.TrimSpace(connStr) != "" {
			return newTarget(connStr, "keyring")
		}
	}

	return newTarget(constants.DefaultConfigPath, "default")
}

func newTarget(value, source string) (Target, error) {
	value = strings.TrimSpace(value)
	if IsPostgres(value) {
		return Target{Backend: BackendPostgres, Location: value, Source: source}, nil
	}
	path, err := ExpandPath(value)
	if err != nil {
		return Target{}, err
	}
	return Target{Backend: BackendSQLite, Location: path, Source: source}, nil
}

// IsPostgres reports whether s looks like a PostgreSQL URI or key=value DSN
func IsPostgres(s string) bool {
	if strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") {
		return true
	}
	for _, field := range strings.Fields(s) {
		if k, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(k, "host") {
			return true
		}
	}
	return false
}

// ExpandPath resolves a leading ~ and returns an absolute path
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// ConfigDir is the directory holding logs and lockfiles for a target. For
// PostgreSQL it falls back to the directory of the default SQLite path.
func (t Target) ConfigDir() (string, error) {
	if t.Backend == BackendSQLite {
		return filepath.Dir(t.Location), nil
	}
	path, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
