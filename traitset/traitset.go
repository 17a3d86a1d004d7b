package traitset

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"github.com/hupe1980/johari/vocabulary"
)

// Width is the number of positions a Set can hold.
const Width = vocabulary.MaxTraits

// Set is a bitset over vocabulary positions. The zero value is the empty set.
type Set uint64

// ErrUnknownTraits is returned by ParseNames when names are not in the vocabulary.
type ErrUnknownTraits struct {
	Names []string
}

func (e *ErrUnknownTraits) Error() string {
	return fmt.Sprintf("unknown traits: %s", strings.Join(e.Names, ", "))
}

// FromNames builds a set from trait names.
//
// Names not present in the vocabulary are ignored. Stale or externally entered
// names therefore never fail a submission; use ParseNames to reject them.
func FromNames(v *vocabulary.Vocabulary, names []string) Set {
	var s Set
	for _, name := range names {
		if i, ok := v.Index(name); ok {
			s |= 1 << uint(i)
		}
	}
	return s
}

// ParseNames is the strict variant of FromNames. It returns *ErrUnknownTraits
// listing every name the vocabulary does not contain.
func ParseNames(v *vocabulary.Vocabulary, names []string) (Set, error) {
	var (
		s       Set
		unknown []string
	)
	for _, name := range names {
		i, ok := v.Index(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		s |= 1 << uint(i)
	}
	if len(unknown) > 0 {
		return 0, &ErrUnknownTraits{Names: unknown}
	}
	return s, nil
}

// Full returns the set of every position in the vocabulary.
func Full(v *vocabulary.Vocabulary) Set {
	n := v.Len()
	if n >= Width {
		return ^Set(0)
	}
	return Set(1)<<uint(n) - 1
}

// Of builds a set from positions. Out-of-range positions are ignored.
func Of(positions ...int) Set {
	var s Set
	for _, i := range positions {
		if i >= 0 && i < Width {
			s |= 1 << uint(i)
		}
	}
	return s
}

// Names returns the member names in vocabulary order.
func (s Set) Names(v *vocabulary.Vocabulary) []string {
	names := make([]string, 0, s.Count())
	for i := range s.All() {
		if name, ok := v.Name(i); ok {
			names = append(names, name)
		}
	}
	return names
}

// All iterates member positions in ascending order.
func (s Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w := uint64(s); w != 0; w &= w - 1 {
			if !yield(bits.TrailingZeros64(w)) {
				return
			}
		}
	}
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set { return s | o }

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set { return s & o }

// Difference returns s \ o, i.e. s ∩ ¬o.
func (s Set) Difference(o Set) Set { return s &^ o }

// Complement returns the positions of v not in s.
func (s Set) Complement(v *vocabulary.Vocabulary) Set { return Full(v) &^ s }

// Contains reports whether position i is a member.
func (s Set) Contains(i int) bool {
	if i < 0 || i >= Width {
		return false
	}
	return s&(1<<uint(i)) != 0
}

// Has reports whether the named trait is a member.
func (s Set) Has(v *vocabulary.Vocabulary, name string) bool {
	i, ok := v.Index(name)
	return ok && s.Contains(i)
}

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool { return s == 0 }

// Count returns the number of members.
func (s Set) Count() int { return bits.OnesCount64(uint64(s)) }

// Equal reports whether s and o have the same members.
func (s Set) Equal(o Set) bool { return s == o }

// String renders the raw bits, mostly for debugging and test failures.
func (s Set) String() string { return fmt.Sprintf("traitset(%#016x)", uint64(s)) }
