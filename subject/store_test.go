package subject

import (
	"testing"

	"github.com/hupe1980/johari/traitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertOwn(t *testing.T) {
	s := NewStore()

	created, err := s.UpsertOwn("alice", traitset.Of(0, 1))
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, s.AppendPeerAssessment("alice", "bob", traitset.Of(2)))

	created, err = s.UpsertOwn("alice", traitset.Of(2))
	require.NoError(t, err)
	assert.False(t, created)

	r, ok := s.Get("alice")
	require.True(t, ok)
	assert.True(t, r.HasOwn)
	assert.Equal(t, traitset.Of(2), r.Own, "second upsert replaces instead of merging")
	assert.Len(t, r.Peers, 1, "peers survive an own replacement")
	assert.Equal(t, 1, s.Len())

	_, err = s.UpsertOwn("", traitset.Of(0))
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestAppendPeerAssessment(t *testing.T) {
	s := NewStore()
	_, err := s.UpsertOwn("alice", traitset.Of(0))
	require.NoError(t, err)

	t.Run("Duplicates", func(t *testing.T) {
		require.NoError(t, s.AppendPeerAssessment("alice", "bob", traitset.Of(1)))
		require.NoError(t, s.AppendPeerAssessment("alice", "bob", traitset.Of(1)))

		r, _ := s.Get("alice")
		assert.Equal(t, []PeerAssessment{
			{Assessor: "bob", Traits: traitset.Of(1)},
			{Assessor: "bob", Traits: traitset.Of(1)},
		}, r.Peers)
	})

	t.Run("SelfRejected", func(t *testing.T) {
		before, _ := s.Get("alice")
		err := s.AppendPeerAssessment("alice", "alice", traitset.Of(2))
		var rejected *ErrSelfAssessmentRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, ID("alice"), rejected.ID)

		after, _ := s.Get("alice")
		assert.Equal(t, before, after)
	})

	t.Run("SelfRejectedBeforeLookup", func(t *testing.T) {
		err := s.AppendPeerAssessment("carol", "carol", traitset.Of(2))
		var rejected *ErrSelfAssessmentRejected
		require.ErrorAs(t, err, &rejected)
	})

	t.Run("TargetNotFound", func(t *testing.T) {
		err := s.AppendPeerAssessment("carol", "bob", traitset.Of(2))
		var nf *ErrTargetNotFound
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, ID("carol"), nf.Target)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("EmptyID", func(t *testing.T) {
		assert.ErrorIs(t, s.AppendPeerAssessment("alice", "", traitset.Of(2)), ErrEmptyID)
	})
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewStore()
	_, _ = s.UpsertOwn("alice", traitset.Of(0))
	require.NoError(t, s.AppendPeerAssessment("alice", "bob", traitset.Of(1)))

	r, _ := s.Get("alice")
	r.Peers[0].Traits = traitset.Of(5)
	r.Own = traitset.Of(6)

	again, _ := s.Get("alice")
	assert.Equal(t, traitset.Of(0), again.Own)
	assert.Equal(t, traitset.Of(1), again.Peers[0].Traits)

	live, ok := s.Lookup("alice")
	require.True(t, ok)
	live.Own = traitset.Of(7)
	again, _ = s.Get("alice")
	assert.Equal(t, traitset.Of(7), again.Own)

	_, ok = s.Get("nobody")
	assert.False(t, ok)
}

func TestAdd(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(Record{ID: "b", Own: traitset.Of(1), HasOwn: true}))
	require.NoError(t, s.Add(Record{ID: "a", Peers: []PeerAssessment{{Assessor: "b", Traits: traitset.Of(0)}}}))

	var dup *ErrDuplicateID
	require.ErrorAs(t, s.Add(Record{ID: "a"}), &dup)
	assert.ErrorIs(t, s.Add(Record{}), ErrEmptyID)

	assert.Equal(t, []ID{"b", "a"}, s.IDs())

	var seen []ID
	for r := range s.All() {
		seen = append(seen, r.ID)
	}
	assert.Equal(t, []ID{"b", "a"}, seen)
}

func TestRecord_PeerUnion(t *testing.T) {
	r := Record{Peers: []PeerAssessment{
		{Assessor: "a", Traits: traitset.Of(0, 2)},
		{Assessor: "b", Traits: traitset.Of(2, 3)},
	}}
	assert.Equal(t, traitset.Of(0, 2, 3), r.PeerUnion())
	assert.True(t, Record{}.PeerUnion().IsEmpty())
}
