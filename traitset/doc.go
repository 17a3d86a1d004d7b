// Package traitset provides a fixed-width set of traits keyed by vocabulary position.
//
// A Set is a plain uint64: bit i is set when the trait at vocabulary position i
// is a member. All operations are pure value operations and never allocate.
// Equality is structural, so two sets built from the same names in a different
// order compare equal with ==.
package traitset
