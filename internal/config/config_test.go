package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("TEMPO_CONFIG", "/tmp/tempo.db")
	t.Setenv("TEMPO_DEBUG", "true")
	t.Setenv("TEMPO_WATCH_CRON", "*/15 * * * *")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if env.Config != "/tmp/tempo.db" {
		t.Errorf("Config = %q, want /tmp/tempo.db", env.Config)
	}
	if !env.Debug {
		t.Error("Debug = false, want true")
	}
	if env.WatchCron != "*/15 * * * *" {
		t.Errorf("WatchCron = %q", env.WatchCron)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	for _, key := range []string{"TEMPO_CONFIG", "TEMPO_DB_CONNECTION", "TEMPO_DEBUG", "TEMPO_WATCH_CRON"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if env.Debug {
		t.Error("Debug should default to false")
	}
	if env.WatchCron != "0 7 * * 1-5" {
		t.Errorf("WatchCron default = %q", env.WatchCron)
	}
}

func TestLoadEnv_InvalidBool(t *testing.T) {
	t.Setenv("TEMPO_DEBUG", "sometimes")
	if _, err := LoadEnv(); err == nil {
		t.Error("expected error for invalid TEMPO_DEBUG")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.db")
	envPath := filepath.Join(dir, "env.db")
	pg := "postgres://tempo@localhost/tempo"

	found := func() (string, error) { return "host=db.internal dbname=tempo", nil }
	missing := func() (string, error) { return "", errors.New("not found") }

	tests := []struct {
		name        string
		flag        string
		env         *Env
		lookup      KeyringLookup
		wantBackend Backend
		wantLoc     string
		wantSource  string
	}{
		{"flag wins", flagPath, &Env{Config: envPath, DBConnection: pg}, found, BackendSQLite, flagPath, "flag"},
		{"db connection before config", "", &Env{Config: envPath, DBConnection: pg}, found, BackendPostgres, pg, "env:TEMPO_DB_CONNECTION"},
		{"config env", "", &Env{Config: envPath}, found, BackendSQLite, envPath, "env:TEMPO_CONFIG"},
		{"keyring", "", &Env{}, found, BackendPostgres, "host=db.internal dbname=tempo", "keyring"},
		{"keyring miss falls back to default", "", &Env{}, missing, BackendSQLite, "", "default"},
		{"nil env and lookup", "", nil, nil, BackendSQLite, "", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.flag, tt.env, tt.lookup)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if got.Backend != tt.wantBackend {
				t.Errorf("Backend = %s, want %s", got.Backend, tt.wantBackend)
			}
			if tt.wantLoc != "" && got.Location != tt.wantLoc {
				t.Errorf("Location = %s, want %s", got.Location, tt.wantLoc)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", got.Source, tt.wantSource)
			}
		})
	}
}

func TestResolve_DefaultPathIsExpanded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Resolve("", &Env{}, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join(home, ".config", "tempo", "tempo.db")
	if got.Location != want {
		t.Errorf("Location = %s, want %s", got.Location, want)
	}

	dir, err := got.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if dir != filepath.Dir(want) {
		t.Errorf("ConfigDir = %s, want %s", dir, filepath.Dir(want))
	}
}

func TestIsPostgres(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"postgres://user@localhost/db", true},
		{"postgresql://localhost/db", true},
		{"host=localhost dbname=tempo", true},
		{"HOST=localhost", true},
		{"~/.config/tempo/tempo.db", false},
		{"/var/lib/tempo/host=x.db", false},
	}
	for _, tt := range tests {
		if got := IsPostgres(tt.in); got != tt.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
