package johari

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/johari/blobstore"
	"github.com/hupe1980/johari/classify"
	"github.com/hupe1980/johari/internal/fs"
	"github.com/hupe1980/johari/persistence"
	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
	"github.com/hupe1980/johari/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeTraits(t *testing.T) *vocabulary.Vocabulary {
	t.Helper()
	v, err := vocabulary.New([]string{"brave", "calm", "shy"})
	require.NoError(t, err)
	return v
}

func openMemory(t *testing.T, v *vocabulary.Vocabulary, opts ...Option) (*Assessment, *blobstore.MemoryStore) {
	t.Helper()
	blobs := blobstore.NewMemoryStore()
	a, err := Open(context.Background(), v, blobs, opts...)
	require.NoError(t, err)
	return a, blobs
}

func TestAssessment_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a, _ := openMemory(t, threeTraits(t))

	_, err := a.SubmitSelf(ctx, "x", []string{"brave", "calm"})
	require.NoError(t, err)
	_, err = a.SubmitPeer(ctx, "x", "a", []string{"brave", "shy"})
	require.NoError(t, err)
	_, err = a.Submit(ctx, Submission{Subject: "b", Target: "x", Selected: []string{"brave"}})
	require.NoError(t, err)

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)

	assert.Equal(t, []classify.Count{{Trait: "brave", Count: 2, Assessors: 2}}, res.Arena)
	assert.Equal(t, []classify.Count{{Trait: "shy", Count: 1, Assessors: 1}}, res.Blind)
	assert.Equal(t, []string{"calm"}, res.Facade)
	assert.Empty(t, res.Unknown)
	assert.Equal(t, 2, res.Submissions)
}

func TestAssessment_NoPeersYet(t *testing.T) {
	ctx := context.Background()
	a, _ := openMemory(t, threeTraits(t))

	_, err := a.Submit(ctx, Submission{Subject: "x", Selected: []string{"calm"}})
	require.NoError(t, err)

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, res.Arena)
	assert.Empty(t, res.Blind)
	assert.Equal(t, []string{"calm"}, res.Facade)
	assert.Equal(t, []string{"brave", "shy"}, res.Unknown)
}

func TestAssessment_SelfReplaces(t *testing.T) {
	ctx := context.Background()
	a, _ := openMemory(t, threeTraits(t))

	_, err := a.SubmitSelf(ctx, "x", []string{"brave", "calm"})
	require.NoError(t, err)
	_, err = a.SubmitSelf(ctx, "x", []string{"shy"})
	require.NoError(t, err)

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"shy"}, res.Facade)
	assert.Equal(t, []string{"brave", "calm"}, res.Unknown)

	ids, err := a.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []subject.ID{"x"}, ids)
}

func TestAssessment_RepeatedPeerDoublesCount(t *testing.T) {
	ctx := context.Background()
	a, _ := openMemory(t, threeTraits(t))

	_, err := a.SubmitSelf(ctx, "x", []string{"brave"})
	require.NoError(t, err)
	for range 2 {
		_, err = a.SubmitPeer(ctx, "x", "a", []string{"brave", "shy"})
		require.NoError(t, err)
	}

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []classify.Count{{Trait: "brave", Count: 2, Assessors: 1}}, res.Arena)
	assert.Equal(t, []classify.Count{{Trait: "shy", Count: 2, Assessors: 1}}, res.Blind)
}

func TestAssessment_DomainErrorsDoNotWrite(t *testing.T) {
	ctx := context.Background()
	a, blobs := openMemory(t, threeTraits(t))

	_, err := a.SubmitSelf(ctx, "x", []string{"brave"})
	require.NoError(t, err)
	before, err := blobstore.ReadAll(ctx, blobs, a.StoreName())
	require.NoError(t, err)

	_, err = a.SubmitPeer(ctx, "x", "x", []string{"calm"})
	var self *subject.ErrSelfAssessmentRejected
	require.ErrorAs(t, err, &self)

	_, err = a.SubmitPeer(ctx, "nobody", "a", []string{"calm"})
	var target *subject.ErrTargetNotFound
	require.ErrorAs(t, err, &target)
	assert.Equal(t, subject.ID("nobody"), target.Target)

	_, err = a.SubmitSelf(ctx, "", []string{"calm"})
	require.ErrorIs(t, err, subject.ErrEmptyID)

	after, err := blobstore.ReadAll(ctx, blobs, a.StoreName())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)
	assert.Zero(t, res.Submissions)
}

func TestAssessment_QueryUnknownSubject(t *testing.T) {
	a, _ := openMemory(t, threeTraits(t))

	_, err := a.Query(context.Background(), "ghost")
	var nf *subject.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, subject.ID("ghost"), nf.ID)
}

func TestAssessment_TraitNamePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("Permissive", func(t *testing.T) {
		a, _ := openMemory(t, threeTraits(t))
		set, err := a.SubmitSelf(ctx, "x", []string{"Brave", "sneaky"})
		require.NoError(t, err)
		assert.Equal(t, []string{"brave"}, set.Names(a.Vocabulary()))
	})

	t.Run("Strict", func(t *testing.T) {
		a, blobs := openMemory(t, threeTraits(t), WithStrictTraitNames(true))
		_, err := a.SubmitSelf(ctx, "x", []string{"brave", "sneaky"})
		var unknown *traitset.ErrUnknownTraits
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, []string{"sneaky"}, unknown.Names)

		names, err := blobs.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, names, "rejected submission is not persisted")
	})
}

func TestAssessment_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	v := threeTraits(t)
	blobs := blobstore.NewLocalStore(t.TempDir())

	a, err := Open(ctx, v, blobs, WithCompression(persistence.CompressionZSTD))
	require.NoError(t, err)
	_, err = a.SubmitSelf(ctx, "x", []string{"brave", "calm"})
	require.NoError(t, err)
	_, err = a.SubmitPeer(ctx, "x", "a", []string{"brave"})
	require.NoError(t, err)

	reopened, err := Open(ctx, v, blobs, WithStrictLoad(true))
	require.NoError(t, err)
	res, err := reopened.Query(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []classify.Count{{Trait: "brave", Count: 1, Assessors: 1}}, res.Arena)
	assert.Equal(t, []string{"calm"}, res.Facade)
}

func TestOpen_LoadPolicy(t *testing.T) {
	ctx := context.Background()
	v := threeTraits(t)

	t.Run("CorruptFallsBackToEmpty", func(t *testing.T) {
		blobs := blobstore.NewMemoryStore()
		require.NoError(t, blobs.Put(ctx, "default.store", []byte("{not a store")))

		a, err := Open(ctx, v, blobs)
		require.NoError(t, err)
		ids, err := a.Subjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("CorruptStrict", func(t *testing.T) {
		blobs := blobstore.NewMemoryStore()
		require.NoError(t, blobs.Put(ctx, "default.store", []byte("{not a store")))

		_, err := Open(ctx, v, blobs, WithStrictLoad(true))
		var corrupt *persistence.ErrCorrupt
		require.ErrorAs(t, err, &corrupt)
	})

	t.Run("ReadFault", func(t *testing.T) {
		dir := t.TempDir()
		seed, err := Open(ctx, v, blobstore.NewLocalStore(dir))
		require.NoError(t, err)
		_, err = seed.SubmitSelf(ctx, "x", []string{"calm"})
		require.NoError(t, err)

		ffs := fs.NewFaultyFS(nil)
		ffs.AddRule("default.store", fs.Fault{FailAfterBytes: -1, FailOnRead: true})
		_, err = Open(ctx, v, blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs)))
		var loadErr *persistence.ErrStoreLoad
		require.ErrorAs(t, err, &loadErr)
	})

	t.Run("SaveFault", func(t *testing.T) {
		ffs := fs.NewFaultyFS(nil)
		a, err := Open(ctx, v, blobstore.NewLocalStore(t.TempDir(), blobstore.WithFileSystem(ffs)))
		require.NoError(t, err)

		ffs.AddRule("default.store", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
		_, err = a.SubmitSelf(ctx, "x", []string{"calm"})
		var saveErr *persistence.ErrStoreSave
		require.ErrorAs(t, err, &saveErr)

		ffs.Reset()
		ids, err := a.Subjects(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestAssessment_ConcurrentSubmissions(t *testing.T) {
	ctx := context.Background()
	a, err := Open(ctx, threeTraits(t), blobstore.NewLocalStore(t.TempDir()))
	require.NoError(t, err)

	_, err = a.SubmitSelf(ctx, "x", []string{"brave"})
	require.NoError(t, err)

	const peers = 16
	var wg sync.WaitGroup
	errs := make(chan error, peers)
	for i := range peers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.SubmitPeer(ctx, "x", subject.ID(fmt.Sprintf("peer-%d", i)), []string{"brave"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, peers, res.Submissions, "no lost updates")
	assert.Equal(t, []classify.Count{{Trait: "brave", Count: peers, Assessors: peers}}, res.Arena)
}

func TestAssessment_SubmissionRate(t *testing.T) {
	ctx := context.Background()
	a, _ := openMemory(t, threeTraits(t), WithSubmissionRate(0.001, 1))

	_, err := a.SubmitSelf(ctx, "x", []string{"brave"})
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = a.SubmitSelf(waitCtx, "x", []string{"calm"})
	require.Error(t, err)

	res, err := a.Query(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"brave"}, res.Facade)
}

func TestAssessment_Metrics(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	a, _ := openMemory(t, threeTraits(t), WithMetricsCollector(metrics))

	_, err := a.SubmitSelf(ctx, "x", []string{"brave"})
	require.NoError(t, err)
	_, err = a.SubmitPeer(ctx, "x", "a", []string{"brave"})
	require.NoError(t, err)
	_, err = a.SubmitPeer(ctx, "x", "x", []string{"brave"})
	require.Error(t, err)
	_, err = a.Query(ctx, "x")
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SelfSubmissions)
	assert.Equal(t, int64(2), stats.PeerSubmissions)
	assert.Equal(t, int64(1), stats.SubmissionErrors)
	assert.Equal(t, int64(1), stats.QueryCount)
	assert.Equal(t, int64(2), stats.SaveCount)
	assert.Equal(t, int64(1), stats.LastSavedSubjects)
	// Open, three submissions and one query each load once.
	assert.Equal(t, int64(5), stats.LoadCount)
}
