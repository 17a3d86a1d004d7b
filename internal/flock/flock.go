package flock

import (
	"context"
	"errors"
	"time"
)

// errLocked is returned by tryLock when another holder owns the lock.
var errLocked = errors.New("flock: already locked")

const pollInterval = 10 * time.Millisecond

// File is an open lock file. *os.File satisfies it.
type File interface {
	Fd() uintptr
	Close() error
}

// Lock is a held file lock.
type Lock struct {
	f File
}

// Acquire blocks until the exclusive lock on f is held or ctx is done.
// f is owned by the returned Lock; it is closed on failure.
func Acquire(ctx context.Context, f File) (*Lock, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		err := tryLock(f)
		if err == nil {
			return &Lock{f: f}, nil
		}
		if !errors.Is(err, errLocked) {
			_ = f.Close()
			return nil, err
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := unlock(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
