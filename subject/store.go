package subject

import (
	"iter"

	"github.com/hupe1980/johari/traitset"
)

// Store is a keyed collection of records. Records keep insertion order so
// that persisting a store is deterministic.
type Store struct {
	records []*Record
	byID    map[ID]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[ID]int)}
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// IDs returns the subject IDs in insertion order.
func (s *Store) IDs() []ID {
	ids := make([]ID, len(s.records))
	for i, r := range s.records {
		ids[i] = r.ID
	}
	return ids
}

// All iterates the records in insertion order. The records must not be mutated
// through the iterator.
func (s *Store) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Get returns a copy of the record for id.
func (s *Store) Get(id ID) (Record, bool) {
	r, ok := s.Lookup(id)
	if !ok {
		return Record{}, false
	}
	return r.Clone(), true
}

// Lookup returns the stored record for id for in-place mutation.
func (s *Store) Lookup(id ID) (*Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.records[i], true
}

// Add inserts a complete record. It is used when rebuilding a store from its
// persisted form and fails with *ErrDuplicateID if the ID is taken.
func (s *Store) Add(r Record) error {
	if r.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.byID[r.ID]; ok {
		return &ErrDuplicateID{ID: r.ID}
	}
	rec := r.Clone()
	s.byID[rec.ID] = len(s.records)
	s.records = append(s.records, &rec)
	return nil
}

// UpsertOwn replaces the self-assessment of id, creating the record with an
// empty peer list when it does not exist. It reports whether a record was created.
func (s *Store) UpsertOwn(id ID, traits traitset.Set) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}
	if r, ok := s.Lookup(id); ok {
		r.Own = traits
		r.HasOwn = true
		return false, nil
	}
	s.byID[id] = len(s.records)
	s.records = append(s.records, &Record{ID: id, Own: traits, HasOwn: true})
	return true, nil
}

// AppendPeerAssessment records an assessment of target by assessor.
//
// It fails with *ErrSelfAssessmentRejected when assessor equals target and with
// *ErrTargetNotFound when target has no record. On failure the store is unchanged.
// Repeated submissions are all kept.
func (s *Store) AppendPeerAssessment(target, assessor ID, traits traitset.Set) error {
	if target == "" || assessor == "" {
		return ErrEmptyID
	}
	if target == assessor {
		return &ErrSelfAssessmentRejected{ID: assessor}
	}
	r, ok := s.Lookup(target)
	if !ok {
		return &ErrTargetNotFound{Target: target}
	}
	r.Peers = append(r.Peers, PeerAssessment{Assessor: assessor, Traits: traits})
	return nil
}
