package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestEndToEndWorkflow drives a built binary through init, setup, scheduling
// and export. Set TEMPO_BIN_DIR to the directory holding the tempo binary.
func TestEndToEndWorkflow(t *testing.T) {
	binDir := os.Getenv("TEMPO_BIN_DIR")
	if binDir == "" {
		t.Skip("TEMPO_BIN_DIR not set")
	}
	cliPath, err := filepath.Abs(filepath.Join(binDir, "tempo"))
	if err != nil {
		t.Fatalf("failed to resolve binary path: %v", err)
	}
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Fatalf("CLI binary not found at %s. Please build it first.", cliPath)
	}

	tempDir := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "TEMPO_") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("TEMPO_CONFIG=%s", filepath.Join(tempDir, "tempo", "tempo.db")),
	)

	runCmd(t, cliPath, env, "init")
	runCmd(t, cliPath, env, "config", "set", "--timezone", "UTC")
	runCmd(t, cliPath, env, "context", "add", "office", "--weekdays", "weekdays")
	runCmd(t, cliPath, env, "task", "add", "Write report", "-p", "high", "-e", "25", "-d", "2026-01-31", "-c", "office")
	runCmd(t, cliPath, env, "task", "add", "Answer email", "-e", "20", "-d", "2026-01-31", "-c", "office")

	out := runCmd(t, cliPath, env, "schedule", "2026-01-05", "--yes")
	if !strings.Contains(out, "Write report") {
		t.Errorf("schedule output missing task:\n%s", out)
	}

	out = runCmd(t, cliPath, env, "day", "2026-01-05")
	for _, want := range []string{"09:00", "Write report", "09:25", "Answer email"} {
		if !strings.Contains(out, want) {
			t.Errorf("day output missing %q:\n%s", want, out)
		}
	}

	runCmd(t, cliPath, env, "validate", "2026-01-05")
	runCmd(t, cliPath, env, "doctor")

	exportPath := filepath.Join(tempDir, "export.yaml")
	runCmd(t, cliPath, env, "export", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if _, ok := doc["tasks"]; !ok {
		t.Errorf("export has no tasks section:\n%s", data)
	}

	out = runCmd(t, cliPath, env, "unschedule", "2026-01-05")
	if !strings.Contains(out, "Cleared 2 planned") {
		t.Errorf("unschedule output should report two cleared tasks:\n%s", out)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
