package vocabulary

import "fmt"

// ErrTooLarge indicates a vocabulary with more names than a trait set can hold.
//
// This is a configuration error and should abort start-up.
type ErrTooLarge struct {
	Size int
	Max  int
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("vocabulary too large: %d traits (max %d)", e.Size, e.Max)
}

// ErrInvalidTraitName indicates a trait name that failed validation.
type ErrInvalidTraitName struct {
	Name   string
	Reason string
}

func (e *ErrInvalidTraitName) Error() string {
	return fmt.Sprintf("invalid trait name %q: %s", e.Name, e.Reason)
}
