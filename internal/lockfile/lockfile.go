// Package lockfile implements a pid lock file for single instance runs.
package lockfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"
)

// ErrLocked is returned when a live process holds the lock.
var ErrLocked = errors.New("lock is held by another process")

// Lock is a held lock file.
type Lock struct {
	path string
	file *os.File
}

// Acquire creates path exclusively and writes the current pid into it. A lock
// left behind by a process that is no longer running is removed and taken over.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	for attempt := 0; attempt < 3; attempt++ {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
				_ = file.Close()
				_ = os.Remove(path)
				return nil, fmt.Errorf("write lock pid: %w", err)
			}
			return &Lock{path: path, file: file}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		raw, pid, held, err := holder(path)
		if err != nil {
			return nil, err
		}
		if held {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		if err := reclaim(path, raw); err != nil {
			return nil, err
		}
	}
	return nil, ErrLocked
}

// holder reads the pid in path and reports whether that process is alive.
// An empty file is treated as held since its writer may not have finished.
func holder(path string) ([]byte, int, bool, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("read lock file: %w", err)
	}
	pid, ok := parsePID(raw)
	if !ok {
		return raw, 0, len(bytes.TrimSpace(raw)) == 0, nil
	}
	return raw, pid, alive(pid), nil
}

// reclaim moves a stale lock aside and deletes it only if it still holds the
// stale content. A lock another process took over in the meantime is linked
// back in place and reported as ErrLocked.
func reclaim(path string, stale []byte) error {
	aside := path + ".stale." + strconv.Itoa(os.Getpid())
	if err := os.Rename(path, aside); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("move stale lock aside: %w", err)
	}
	defer func() {
		_ = os.Remove(aside)
	}()

	raw, err := os.ReadFile(aside)
	if err != nil {
		return fmt.Errorf("read stale lock: %w", err)
	}
	if bytes.Equal(raw, stale) {
		return nil
	}

	if err := os.Link(aside, path); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("restore lock file: %w", err)
	}
	pid, _ := parsePID(raw)
	return fmt.Errorf("%w (pid %d)", ErrLocked, pid)
}

func parsePID(raw []byte) (int, bool) {
	pid, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func alive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release closes and removes the lock file. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	closeErr := l.file.Close()
	l.file = nil
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("close lock file: %w", closeErr)
	}
	return nil
}
