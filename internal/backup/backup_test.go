package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tempo/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tempo.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	for _, stmt := range []string{
		"CREATE TABLE schema_version (version INTEGER NOT NULL)",
		"INSERT INTO schema_version (version) VALUES (2)",
		"CREATE TABLE test_data (id INTEGER PRIMARY KEY, name TEXT)",
		"INSERT INTO test_data (id, name) VALUES (1, 'first'), (2, 'second')",
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to prepare test database: %v", err)
		}
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

// fixedClock returns a manager clock that advances one minute per call
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	mgr.now = func() time.Time { return time.Date(2026, 1, 5, 9, 30, 0, 0, time.Local) }

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if want := filepath.Join(mgr.GetBackupDir(), "tempo-20260105-0930.db"); backupPath != want {
		t.Errorf("backup path = %s, want %s", backupPath, want)
	}
	if got := countRows(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateBackup_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error backing up a missing database")
	}
}

func TestCreateBackup_SameMinute(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	fixed := time.Date(2026, 1, 5, 9, 30, 15, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	want := []string{"tempo-20260105-0930.db", "tempo-20260105-093015.db", "tempo-20260105-093015-1.db"}
	for _, name := range want {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		if filepath.Base(path) != name {
			t.Errorf("backup name = %s, want %s", filepath.Base(path), name)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   time.Time
		wantOK bool
	}{
		{"minute precision", "tempo-20260105-0930.db", time.Date(2026, 1, 5, 9, 30, 0, 0, time.Local), true},
		{"second precision", "tempo-20260105-093015.db", time.Date(2026, 1, 5, 9, 30, 15, 0, time.Local), true},
		{"with counter", "tempo-20260105-093015-3.db", time.Date(2026, 1, 5, 9, 30, 15, 0, time.Local), true},
		{"wrong prefix", "other-20260105-0930.db", time.Time{}, false},
		{"wrong suffix", "tempo-20260105-0930.sqlite", time.Time{}, false},
		{"bad timestamp", "tempo-notatime.db", time.Time{}, false},
		{"bad counter", "tempo-20260105-093015-x.db", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBackupName(tt.file)
			if ok != tt.wantOK {
				t.Fatalf("parseBackupName(%q) ok = %v, want %v", tt.file, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseBackupName(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestListBackups_SortedAndFiltered(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local))

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %v then %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}

	latest, err := mgr.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.Name() != "tempo-20260105-0902.db" {
		t.Errorf("Latest() = %s, want tempo-20260105-0902.db", latest.Name())
	}
}

func TestListBackups_NoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "tempo.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
	if _, err := mgr.Latest(); !errors.Is(err, ErrNoBackups) {
		t.Errorf("Latest() error = %v, want ErrNoBackups", err)
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local))

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	oldestKept := time.Date(2026, 1, 5, 9, 3, 0, 0, time.Local)
	if !backups[len(backups)-1].Timestamp.Equal(oldestKept) {
		t.Errorf("oldest kept backup = %v, want %v", backups[len(backups)-1].Timestamp, oldestKept)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO test_data (id, name) VALUES (3, 'third')"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	saved, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("expected 2 rows after restore, got %d", got)
	}
	if saved == "" {
		t.Fatal("expected the pre-restore database to be saved")
	}
	if got := countRows(t, saved); got != 3 {
		t.Errorf("expected 3 rows in pre-restore backup, got %d", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file was left behind")
	}
}

func TestRestoreBackup_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	missing := filepath.Join(t.TempDir(), "missing.db")
	if _, err := mgr.RestoreBackup(missing); err == nil {
		t.Error("expected error restoring a missing backup")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(garbage); err == nil {
		t.Error("expected error restoring a corrupted backup")
	}

	foreign := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE other (id INTEGER)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if _, err := mgr.RestoreBackup(foreign); err == nil {
		t.Error("expected error restoring a database without schema_version")
	}

	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("failed restores must leave the database untouched, got %d rows", got)
	}
}
