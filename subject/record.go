package subject

import (
	"slices"

	"github.com/hupe1980/johari/traitset"
)

// ID is an opaque, externally assigned subject identifier.
type ID string

// PeerAssessment is one submission by an assessor about a subject.
type PeerAssessment struct {
	Assessor ID
	Traits   traitset.Set
}

// Record is a subject's self-assessment plus the peer assessments about it.
type Record struct {
	ID ID
	// Own is the self-assessment. It is meaningful only when HasOwn is set;
	// classification treats a missing self-assessment as the empty set.
	Own    traitset.Set
	HasOwn bool
	Peers  []PeerAssessment
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	r.Peers = slices.Clone(r.Peers)
	return r
}

// PeerUnion returns the union of all peer trait sets.
func (r Record) PeerUnion() traitset.Set {
	var u traitset.Set
	for _, p := range r.Peers {
		u = u.Union(p.Traits)
	}
	return u
}
