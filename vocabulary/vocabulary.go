package vocabulary

import (
	"hash/crc32"
	"strings"
	"unicode"
)

// MaxTraits is the largest vocabulary a trait set can represent.
const MaxTraits = 64

// DefaultMinSelection is the minimum number of traits a picker should require
// when none is configured.
const DefaultMinSelection = 1

// Vocabulary is an immutable, ordered list of unique trait names.
// It is safe for concurrent use.
type Vocabulary struct {
	kind         string
	names        []string
	index        map[string]int
	minSelection int
	fingerprint  uint32
}

type options struct {
	kind         string
	minSelection int
}

// Option configures a Vocabulary.
type Option func(*options)

// WithKind names the assessment kind the vocabulary belongs to (e.g. "johari").
// The kind also names the persisted store of that kind.
func WithKind(kind string) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// WithMinSelection sets the minimum number of traits a selection UI should
// require before submitting. The core never enforces it.
func WithMinSelection(n int) Option {
	return func(o *options) {
		o.minSelection = n
	}
}

// New builds a vocabulary from names in order.
//
// Names are normalised (see Normalize) before validation. It returns
// *ErrInvalidTraitName for empty, whitespace-containing or duplicate names and
// *ErrTooLarge when there are more than MaxTraits names.
func New(names []string, optFns ...Option) (*Vocabulary, error) {
	opts := options{
		kind:         "default",
		minSelection: DefaultMinSelection,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(names) > MaxTraits {
		return nil, &ErrTooLarge{Size: len(names), Max: MaxTraits}
	}

	v := &Vocabulary{
		kind:         opts.kind,
		names:        make([]string, 0, len(names)),
		index:        make(map[string]int, len(names)),
		minSelection: max(opts.minSelection, 0),
	}

	for _, raw := range names {
		name := Normalize(raw)
		if err := validate(raw, name); err != nil {
			return nil, err
		}
		if _, dup := v.index[name]; dup {
			return nil, &ErrInvalidTraitName{Name: raw, Reason: "duplicate"}
		}
		v.index[name] = len(v.names)
		v.names = append(v.names, name)
	}

	v.fingerprint = crc32.ChecksumIEEE([]byte(strings.Join(v.names, "\n")))
	return v, nil
}

// MustNew is like New but panics on error. Intended for package-level
// vocabularies whose contents are fixed at compile time.
func MustNew(names []string, optFns ...Option) *Vocabulary {
	v, err := New(names, optFns...)
	if err != nil {
		panic(err)
	}
	return v
}

// Normalize lower-cases and trims a trait name and uses '_' as the only word separator.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

func validate(raw, name string) error {
	if name == "" {
		return &ErrInvalidTraitName{Name: raw, Reason: "empty"}
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return &ErrInvalidTraitName{Name: raw, Reason: "contains whitespace"}
	}
	return nil
}

// Kind returns the assessment kind.
func (v *Vocabulary) Kind() string { return v.kind }

// Len returns the number of traits.
func (v *Vocabulary) Len() int { return len(v.names) }

// MinSelection returns the configured minimum selection count.
func (v *Vocabulary) MinSelection() int { return v.minSelection }

// Fingerprint returns a CRC32 over the ordered names.
// Two vocabularies with the same fingerprint assign the same positions.
func (v *Vocabulary) Fingerprint() uint32 { return v.fingerprint }

// Names returns a copy of the trait names in vocabulary order.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Index returns the position of name after normalisation.
func (v *Vocabulary) Index(name string) (int, bool) {
	i, ok := v.index[Normalize(name)]
	return i, ok
}

// Name returns the trait at position i.
func (v *Vocabulary) Name(i int) (string, bool) {
	if i < 0 || i >= len(v.names) {
		return "", false
	}
	return v.names[i], true
}

// Contains reports whether name is part of the vocabulary.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.Index(name)
	return ok
}
