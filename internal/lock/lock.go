package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/mozd/internal/constants"
	"github.com/julianstephens/mozd/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	pidFunc         = os.Getpid
)

// ErrLocked is returned when another live mozd process holds the lock.
var ErrLocked = errors.New("data file is in use by another mozd process")

// Lock is a lockfile held next to the data file while mozd writes to it.
type Lock struct {
	path string
	pid  int
}

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID     int
	Started time.Time
}

// PathFor returns the lockfile path for a data file.
func PathFor(dataPath string) string {
	return filepath.Join(filepath.Dir(dataPath), constants.LockfileName)
}

// Acquire takes the lock for dataPath. A lockfile left behind by a process
// that is no longer running is replaced.
func Acquire(dataPath string) (*Lock, error) {
	path := PathFor(dataPath)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		l, err := create(path)
		if err == nil {
			return l, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, alive, err := inspect(path)
		if err != nil {
			return nil, err
		}
		if alive {
			return nil, fmt.Errorf("%w (pid %d since %s)", ErrLocked, holder.PID, holder.Started.Format(time.DateTime))
		}
		logger.Warn("removing stale lockfile", "path", path, "pid", holder.PID)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to acquire lock %s", path)
}

func create(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pid := pidFunc()
	if _, err := fmt.Fprintf(f, "%d|%d\n", pid, time.Now().Unix()); err != nil {
		os.Remove(path)
		return nil, err
	}
	logger.Debug("lock acquired", "path", path, "pid", pid)
	return &Lock{path: path, pid: pid}, nil
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := readHolder(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err == nil && holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	logger.Debug("lock released", "path", l.path)
	return nil
}

// Status reports who holds the lock for dataPath, if anyone. A malformed
// lockfile counts as stale.
func Status(dataPath string) (Holder, bool, error) {
	holder, alive, err := inspect(PathFor(dataPath))
	if os.IsNotExist(err) {
		return Holder{}, false, nil
	}
	return holder, alive, err
}

func inspect(path string) (Holder, bool, error) {
	holder, err := readHolder(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Holder{}, false, err
		}
		logger.Debug("unreadable lockfile treated as stale", "path", path, "error", err)
		return Holder{}, false, nil
	}
	return holder, isMozd(holder.PID), nil
}

func readHolder(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	started, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Holder{}, errors.New("invalid start time in lockfile")
	}
	return Holder{PID: pid, Started: time.Unix(started, 0)}, nil
}

func isMozd(pid int) bool {
	// this process holds it, under whatever executable name
	if pid == pidFunc() {
		return true
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
