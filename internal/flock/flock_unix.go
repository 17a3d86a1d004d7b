//go:build unix

package flock

import (
	"errors"

	"golang.org/x/sys/unix"
)

func tryLock(f File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if errors.Is(err, unix.EWOULDBLOCK) {
		return errLocked
	}
	return err
}

func unlock(f File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
