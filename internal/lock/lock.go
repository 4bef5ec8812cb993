// Package lock implements a pid-file lock that keeps a second wschatd from
// starting against the same base directory.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// HeldError is returned when another process holds the lock.
type HeldError struct {
	PID  int
	Path string
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("%s is locked by PID %d", e.Path, e.PID)
}

// Lock is an acquired pid file.
type Lock struct {
	file *os.File
	path string
}

// Path returns the pid file path for name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".pid")
}

// Acquire takes an exclusive flock on dir/<name>.pid and records the current
// PID and listen address in it.
func Acquire(dir, name, addr string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	p := Path(dir, name)

	f, err := os.OpenFile(p, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		info, _ := Read(dir, name)
		_ = f.Close()
		return nil, &HeldError{PID: info.PID, Path: p}
	}

	if err := f.Truncate(0); err != nil {
		_ = f.Close()
		return nil, err
	}
	content := fmt.Sprintf("pid=%d\naddr=%s\ntime=%s\n",
		os.Getpid(), addr, time.Now().UTC().Format(time.RFC3339))
	if _, err := f.WriteAt([]byte(content), 0); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Lock{file: f, path: p}, nil
}

// Release removes the pid file and drops the lock. Safe on a nil receiver
// and when called twice.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = os.Remove(l.path)
	err := l.file.Close()
	l.file = nil
	return err
}

// Info is the content of a pid file.
type Info struct {
	PID  int
	Addr string
}

// ErrNotRunning is returned by Read when no pid file exists.
var ErrNotRunning = errors.New("not running")

// Read parses dir/<name>.pid without locking it.
func Read(dir, name string) (Info, error) {
	data, err := os.ReadFile(Path(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return Info{}, ErrNotRunning
	}
	if err != nil {
		return Info{}, err
	}
	var info Info
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "pid="); ok {
			info.PID, _ = strconv.Atoi(v)
		}
		if v, ok := strings.CutPrefix(line, "addr="); ok {
			info.Addr = v
		}
	}
	return info, nil
}
