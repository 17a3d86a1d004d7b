// Package codec centralizes the encoding of persisted subject stores.
//
// A persisted store records the name of the codec that wrote it, so a store can
// always be decoded regardless of which codec is configured for new saves.
// Changing the default codec is therefore safe for existing data.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustByName is like ByName but panics on unknown names.
func MustByName(name string) Codec {
	c, ok := ByName(name)
	if !ok {
		panic(fmt.Errorf("unknown codec %q", name))
	}
	return c
}
