// Package vocabulary defines the ordered list of trait names an assessment kind uses.
//
// A Vocabulary maps every trait name to a permanent position in [0, MaxTraits).
// Trait sets (see package traitset) are bitsets over these positions, so the
// order of a vocabulary must never change once data has been persisted with it:
// reordering silently reinterprets every stored set. Persisted stores record a
// fingerprint of the vocabulary so the mismatch can at least be detected.
//
// # Built-in Vocabularies
//
//   - Johari: 49 positive adjectives (kind "johari")
//   - Nohari: 55 negative adjectives (kind "nohari")
//
// # Usage
//
//	v, err := vocabulary.New([]string{"brave", "calm", "shy"},
//	    vocabulary.WithKind("demo"),
//	    vocabulary.WithMinSelection(1),
//	)
package vocabulary
