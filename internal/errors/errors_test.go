package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	wrapped := fmt.Errorf("loading tasks: %w", errors.New("database is locked"))
	if got, want := Format(wrapped), "Error: loading tasks: database is locked"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	if got, want := Formatf("no context named %q", "office"), `Error: no context named "office"`; got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

// runHelper re-executes the test binary with env set so the named test takes its exit path
func runHelper(t *testing.T, name, env string) (int, string) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$")
	cmd.Env = append(os.Environ(), env+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return 0, stderr.String()
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("helper process failed to run: %v", err)
	}
	return exitErr.ExitCode(), stderr.String()
}

func TestFatal(t *testing.T) {
	if os.Getenv("TEMPO_TEST_FATAL") == "1" {
		Fatal(errors.New("schedule failed"))
		return
	}

	code, stderr := runHelper(t, "TestFatal", "TEMPO_TEST_FATAL")
	if code != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error: schedule failed") {
		t.Errorf("Fatal() stderr = %q", stderr)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("TEMPO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	if code, _ := runHelper(t, "TestFatal_NilError", "TEMPO_TEST_FATAL_NIL"); code != 0 {
		t.Errorf("Fatal(nil) should not exit, got code %d", code)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("TEMPO_TEST_FATALF") == "1" {
		Fatalf("task %s not found", "abc")
		return
	}

	code, stderr := runHelper(t, "TestFatalf", "TEMPO_TEST_FATALF")
	if code != 1 {
		t.Errorf("Fatalf() exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error: task abc not found") {
		t.Errorf("Fatalf() stderr = %q", stderr)
	}
}
