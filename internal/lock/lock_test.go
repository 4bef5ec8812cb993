package lock

import (
	"errors"
	"os"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir, "wschatd", ":8181")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	info, err := Read(dir, "wschatd")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.PID != os.Getpid() || info.Addr != ":8181" {
		t.Errorf("info = %+v", info)
	}

	if err := l.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
	if _, err := os.Stat(Path(dir, "wschatd")); !os.IsNotExist(err) {
		t.Error("pid file left behind")
	}
	if _, err := Read(dir, "wschatd"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Read() after release err = %v, want ErrNotRunning", err)
	}
}

func TestDoubleAcquireFails(t *testing.T) {
	dir := t.TempDir()

	l1, err := Acquire(dir, "wschatd", ":8181")
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer func() { _ = l1.Release() }()

	_, err = Acquire(dir, "wschatd", ":9000")
	if err == nil {
		t.Fatal("second Acquire() should fail")
	}
	var held *HeldError
	if !errors.As(err, &held) {
		t.Fatalf("expected HeldError, got %T: %v", err, err)
	}
	if held.PID != os.Getpid() {
		t.Errorf("held.PID = %d", held.PID)
	}
}

func TestDifferentNamesDoNotConflict(t *testing.T) {
	dir := t.TempDir()
	a, err := Acquire(dir, "a", "")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = a.Release() }()
	b, err := Acquire(dir, "b", "")
	if err != nil {
		t.Fatalf("Acquire(b) error = %v", err)
	}
	_ = b.Release()
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("nil Release() error = %v", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	l, err := Acquire(t.TempDir(), "wschatd", "")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("first Release() error = %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}
