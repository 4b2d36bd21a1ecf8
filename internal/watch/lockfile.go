package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/tempo/internal/constants"
	"github.com/julianstephens/tempo/internal/logger"
)

var (
	ErrAlreadyRunning = errors.New("another watcher is already running")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a PID lockfile owned by this process
type Lock struct {
	path string
	pid  int
}

// AcquireLock creates path holding "<pid>|<executable>". A lockfile left by a
// process that no longer runs, or by a PID now owned by another program, is
// replaced.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, constants.AppName)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		owner, live := lockOwner(path)
		if live {
			return nil, fmt.Errorf("%w (pid %d, lockfile %s)", ErrAlreadyRunning, owner, path)
		}
		logger.Warn("Removing stale watch lockfile", "path", path, "pid", owner)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to acquire lockfile %s", path)
}

// lockOwner reads the PID in path and reports whether it belongs to a live
// tempo process other than this one.
func lockOwner(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pidStr, _, _ := strings.Cut(strings.TrimSpace(string(content)), "|")
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, false
	}
	if pid == getpidFunc() {
		return pid, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	return pid, strings.HasPrefix(filepath.Base(process.Executable()), constants.AppName)
}

func (l *Lock) Path() string {
	return l.path
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	pidStr, _, _ := strings.Cut(strings.TrimSpace(string(content)), "|")
	if pidStr != strconv.Itoa(l.pid) {
		return nil
	}
	return os.Remove(l.path)
}
