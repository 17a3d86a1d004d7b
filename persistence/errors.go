package persistence

import "fmt"

// ErrStoreLoad indicates that the persisted store exists but could not be read.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrStoreLoad struct {
	Name  string
	cause error
}

func (e *ErrStoreLoad) Error() string {
	return fmt.Sprintf("load subject store %q: %v", e.Name, e.cause)
}

func (e *ErrStoreLoad) Unwrap() error { return e.cause }

// ErrStoreSave indicates that the store could not be written.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrStoreSave struct {
	Name  string
	cause error
}

func (e *ErrStoreSave) Error() string {
	return fmt.Sprintf("save subject store %q: %v", e.Name, e.cause)
}

func (e *ErrStoreSave) Unwrap() error { return e.cause }

// ErrCorrupt indicates that the persisted store was read but could not be decoded.
// It is only returned when Options.Strict is set.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrCorrupt struct {
	Name  string
	cause error
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("subject store %q is corrupt: %v", e.Name, e.cause)
}

func (e *ErrCorrupt) Unwrap() error { return e.cause }
