package johari

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/johari/blobstore"
	"github.com/hupe1980/johari/classify"
	"github.com/hupe1980/johari/persistence"
	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
	"github.com/hupe1980/johari/vocabulary"
	"golang.org/x/time/rate"
)

// StoreSuffix is appended to the kind to name a store blob.
const StoreSuffix = ".store"

// Submission is one completed trait selection. An empty Target is a
// self-assessment by Subject; otherwise Subject assesses Target.
type Submission struct {
	Subject  subject.ID
	Target   subject.ID
	Selected []string
}

// IsPeer reports whether the submission is a peer assessment.
func (s Submission) IsPeer() bool { return s.Target != "" }

// Assessment serves one assessment kind backed by one persisted store.
//
// All methods are safe for concurrent use. Mutations are serialised; queries
// run concurrently against their own freshly loaded copy.
type Assessment struct {
	vocab   *vocabulary.Vocabulary
	blobs   blobstore.BlobStore
	name    string
	opts    options
	logger  *Logger
	limiter *rate.Limiter

	mu sync.Mutex
}

// Open creates an Assessment for vocab. It loads the store once so that an
// unreadable backend surfaces here rather than on the first submission.
func Open(ctx context.Context, vocab *vocabulary.Vocabulary, blobs blobstore.BlobStore, optFns ...Option) (*Assessment, error) {
	o := applyOptions(optFns)

	a := &Assessment{
		vocab:  vocab,
		blobs:  blobs,
		name:   o.storeName,
		opts:   o,
		logger: o.logger.WithKind(vocab.Kind()),
	}
	if a.name == "" {
		a.name = vocab.Kind() + StoreSuffix
	}
	if o.submissionRate > 0 {
		burst := o.submissionBurst
		if burst < 1 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(o.submissionRate, burst)
	}

	store, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "assessment opened",
		"store", a.name,
		"traits", vocab.Len(),
		"subjects", store.Len(),
	)
	return a, nil
}

// Kind returns the assessment kind.
func (a *Assessment) Kind() string { return a.vocab.Kind() }

// Vocabulary returns the vocabulary of the assessment.
func (a *Assessment) Vocabulary() *vocabulary.Vocabulary { return a.vocab }

// StoreName returns the blob name of the persisted store.
func (a *Assessment) StoreName() string { return a.name }

// Submit dispatches to SubmitSelf or SubmitPeer.
func (a *Assessment) Submit(ctx context.Context, s Submission) (traitset.Set, error) {
	if s.IsPeer() {
		return a.SubmitPeer(ctx, s.Target, s.Subject, s.Selected)
	}
	return a.SubmitSelf(ctx, s.Subject, s.Selected)
}

// SubmitSelf replaces the self-assessment of id, registering the subject on
// first use. It returns the stored trait set.
func (a *Assessment) SubmitSelf(ctx context.Context, id subject.ID, names []string) (traitset.Set, error) {
	start := time.Now()

	set, err := a.ingest(ctx, id, names)
	if err == nil {
		err = a.mutate(ctx, func(s *subject.Store) error {
			_, err := s.UpsertOwn(id, set)
			return err
		})
	}

	a.opts.metricsCollector.RecordSubmission(a.Kind(), false, time.Since(start), err)
	a.logger.LogSubmission(ctx, id, "", set.Count(), err)
	if err != nil {
		return 0, err
	}
	return set, nil
}

// SubmitPeer appends assessor's view of target. Target must already have a
// record and must differ from assessor. Repeated submissions all count.
func (a *Assessment) SubmitPeer(ctx context.Context, target, assessor subject.ID, names []string) (traitset.Set, error) {
	start := time.Now()

	set, err := a.ingest(ctx, assessor, names)
	if err == nil {
		err = a.mutate(ctx, func(s *subject.Store) error {
			return s.AppendPeerAssessment(target, assessor, set)
		})
	}

	a.opts.metricsCollector.RecordSubmission(a.Kind(), true, time.Since(start), err)
	a.logger.LogSubmission(ctx, assessor, target, set.Count(), err)
	if err != nil {
		return 0, err
	}
	return set, nil
}

// Query classifies the record of id. It returns *subject.ErrNotFound for
// unknown subjects.
func (a *Assessment) Query(ctx context.Context, id subject.ID) (classify.Result, error) {
	start := time.Now()

	res, err := a.query(ctx, id)

	a.opts.metricsCollector.RecordQuery(a.Kind(), time.Since(start), err)
	a.logger.LogQuery(ctx, id, err)
	return res, err
}

func (a *Assessment) query(ctx context.Context, id subject.ID) (classify.Result, error) {
	if id == "" {
		return classify.Result{}, subject.ErrEmptyID
	}
	store, err := a.load(ctx)
	if err != nil {
		return classify.Result{}, err
	}
	rec, ok := store.Get(id)
	if !ok {
		return classify.Result{}, &subject.ErrNotFound{ID: id}
	}
	return classify.Classify(a.vocab, rec), nil
}

// Subjects returns the ids of all stored subjects in insertion order.
func (a *Assessment) Subjects(ctx context.Context) ([]subject.ID, error) {
	store, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return store.IDs(), nil
}

// Snapshot returns a freshly loaded copy of the store. Changes to it are not persisted.
func (a *Assessment) Snapshot(ctx context.Context) (*subject.Store, error) {
	return a.load(ctx)
}

func (a *Assessment) ingest(ctx context.Context, id subject.ID, names []string) (traitset.Set, error) {
	if a.opts.strictNames {
		return traitset.ParseNames(a.vocab, names)
	}

	var ignored []string
	for _, name := range names {
		if !a.vocab.Contains(name) {
			ignored = append(ignored, name)
		}
	}
	if len(ignored) > 0 {
		a.logger.LogIgnoredTraits(ctx, id, ignored)
	}
	return traitset.FromNames(a.vocab, names), nil
}

// mutate runs one load-mutate-save cycle. fn errors abort the cycle before anything is written.
func (a *Assessment) mutate(ctx context.Context, fn func(*subject.Store) error) error {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if locker, ok := a.blobs.(blobstore.Locker); ok {
		unlock, err := locker.Lock(ctx, a.name)
		if err != nil {
			return err
		}
		defer func() {
			if err := unlock(); err != nil {
				a.logger.WarnContext(ctx, "store unlock failed", "store", a.name, "error", err)
			}
		}()
	}

	store, err := a.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(store); err != nil {
		return err
	}
	return a.save(ctx, store)
}

func (a *Assessment) persistOptions() persistence.Options {
	return persistence.Options{
		Codec:       a.opts.codec,
		Compression: a.opts.compression,
		Strict:      a.opts.strictLoad,
		Logger:      a.logger.Logger,
	}
}

func (a *Assessment) load(ctx context.Context) (*subject.Store, error) {
	start := time.Now()
	store, err := persistence.Load(ctx, a.blobs, a.name, a.vocab, a.persistOptions())

	n := 0
	if store != nil {
		n = store.Len()
	}
	a.opts.metricsCollector.RecordLoad(a.Kind(), n, time.Since(start), err)
	a.logger.LogLoad(ctx, a.name, n, err)
	return store, err
}

func (a *Assessment) save(ctx context.Context, store *subject.Store) error {
	start := time.Now()
	err := persistence.Save(ctx, a.blobs, a.name, a.vocab, store, a.persistOptions())

	a.opts.metricsCollector.RecordSave(a.Kind(), store.Len(), time.Since(start), err)
	a.logger.LogSave(ctx, a.name, store.Len(), err)
	return err
}
