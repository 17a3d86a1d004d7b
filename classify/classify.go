package classify

import (
	"fmt"

	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
	"github.com/hupe1980/johari/vocabulary"
)

// Count is a trait together with its corroboration.
type Count struct {
	Trait string `json:"trait"`
	// Count is the number of peer submissions naming the trait.
	Count int `json:"count"`
	// Assessors is the number of distinct assessors among those submissions.
	Assessors int `json:"assessors"`
}

// String renders the trait, annotated with its count when more than one
// submission corroborates it.
func (c Count) String() string {
	if c.Count > 1 {
		return fmt.Sprintf("%s (%d)", c.Trait, c.Count)
	}
	return c.Trait
}

// Quadrants holds the quadrants as trait sets.
type Quadrants struct {
	Arena   traitset.Set
	Blind   traitset.Set
	Facade  traitset.Set
	Unknown traitset.Set
}

// Result is the classification of one subject. Every list is in vocabulary order.
type Result struct {
	Subject subject.ID `json:"subject"`
	Arena   []Count    `json:"arena"`
	Blind   []Count    `json:"blind"`
	Facade  []string   `json:"facade"`
	Unknown []string   `json:"unknown"`
	// Submissions is the number of peer submissions considered.
	Submissions int `json:"submissions"`
	// Assessors is the number of distinct peers among them.
	Assessors int `json:"assessors"`

	Sets Quadrants `json:"-"`
}

// Classify computes the quadrants of rec over v. It never fails; a record
// without a self-assessment is treated as having selected nothing.
func Classify(v *vocabulary.Vocabulary, rec subject.Record) Result {
	full := traitset.Full(v)

	var own traitset.Set
	if rec.HasOwn {
		own = rec.Own.Intersect(full)
	}

	idx := newCorroboration(v.Len(), rec.Peers)
	union := idx.union.Intersect(full)

	sets := Quadrants{
		Arena:   own.Intersect(union),
		Blind:   union.Difference(own),
		Facade:  own.Difference(union),
		Unknown: own.Union(union).Complement(v),
	}

	res := Result{
		Subject:     rec.ID,
		Arena:       counts(v, sets.Arena, idx),
		Blind:       counts(v, sets.Blind, idx),
		Facade:      sets.Facade.Names(v),
		Unknown:     sets.Unknown.Names(v),
		Submissions: len(rec.Peers),
		Assessors:   idx.numAssessor,
		Sets:        sets,
	}
	return res
}

func counts(v *vocabulary.Vocabulary, s traitset.Set, idx *corroboration) []Count {
	out := make([]Count, 0, s.Count())
	for i := range s.All() {
		name, _ := v.Name(i)
		out = append(out, Count{
			Trait:     name,
			Count:     idx.count(i),
			Assessors: idx.distinct(i),
		})
	}
	return out
}

// IsEmpty reports whether no peer and no self-assessment contributed to r.
func (r Result) IsEmpty() bool {
	return len(r.Arena) == 0 && len(r.Blind) == 0 && len(r.Facade) == 0
}
