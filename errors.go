package johari

import "fmt"

// ErrUnknownKind is returned by Registry.Get for kinds it does not serve.
type ErrUnknownKind struct {
	Kind string
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown assessment kind %q", e.Kind)
}

// ErrDuplicateKind is returned by OpenRegistry when two vocabularies share a
// kind or a store name.
type ErrDuplicateKind struct {
	Kind  string
	Store string
}

func (e *ErrDuplicateKind) Error() string {
	return fmt.Sprintf("assessment kind %q: store %q is already in use", e.Kind, e.Store)
}
