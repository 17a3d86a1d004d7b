package testutil

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
	"github.com/hupe1980/johari/vocabulary"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Set returns a random subset of the vocabulary.
func (r *RNG) Set(v *vocabulary.Vocabulary) traitset.Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return traitset.Set(r.rand.Uint64()).Intersect(traitset.Full(v))
}

// Names returns k distinct trait names in random order. k is capped at the
// vocabulary size.
func (r *RNG) Names(v *vocabulary.Vocabulary, k int) []string {
	names := v.Names()
	r.mu.Lock()
	r.rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	r.mu.Unlock()
	return names[:min(k, len(names))]
}

// Record returns a record with a random self-assessment and peers random peer
// submissions drawn from assessors distinct assessors.
func (r *RNG) Record(v *vocabulary.Vocabulary, id subject.ID, peers, assessors int) subject.Record {
	rec := subject.Record{ID: id, Own: r.Set(v), HasOwn: true}
	for range peers {
		rec.Peers = append(rec.Peers, subject.PeerAssessment{
			Assessor: subject.ID(fmt.Sprintf("peer-%d", r.IntN(max(assessors, 1)))),
			Traits:   r.Set(v),
		})
	}
	return rec
}

// Store returns a store of n subjects with up to maxPeers peer submissions each.
// Roughly one subject in ten has no self-assessment.
func (r *RNG) Store(v *vocabulary.Vocabulary, n, maxPeers int) *subject.Store {
	s := subject.NewStore()
	for i := range n {
		rec := r.Record(v, subject.ID(fmt.Sprintf("subject-%d", i)), r.IntN(maxPeers+1), 1+r.IntN(5))
		if r.IntN(10) == 0 {
			rec.Own, rec.HasOwn = 0, false
		}
		// IDs are unique by construction.
		_ = s.Add(rec)
	}
	return s
}
