package johari

import (
	"context"
	"slices"

	"github.com/hupe1980/johari/blobstore"
	"github.com/hupe1980/johari/vocabulary"
	"golang.org/x/sync/errgroup"
)

// Registry serves several assessment kinds from one blob store, one store
// blob per kind. Kinds are independent: operations on different kinds never
// contend.
type Registry struct {
	kinds       []string
	assessments map[string]*Assessment
}

// OpenRegistry opens an Assessment for every vocabulary in parallel.
// Options apply to every kind.
func OpenRegistry(ctx context.Context, blobs blobstore.BlobStore, vocabs []*vocabulary.Vocabulary, optFns ...Option) (*Registry, error) {
	o := applyOptions(optFns)

	r := &Registry{
		kinds:       make([]string, 0, len(vocabs)),
		assessments: make(map[string]*Assessment, len(vocabs)),
	}

	names := make(map[string]struct{}, len(vocabs))
	for _, v := range vocabs {
		name := o.storeName
		if name == "" {
			name = v.Kind() + StoreSuffix
		}
		if _, dup := r.assessments[v.Kind()]; dup {
			return nil, &ErrDuplicateKind{Kind: v.Kind(), Store: name}
		}
		if _, dup := names[name]; dup {
			return nil, &ErrDuplicateKind{Kind: v.Kind(), Store: name}
		}
		names[name] = struct{}{}
		r.assessments[v.Kind()] = nil
		r.kinds = append(r.kinds, v.Kind())
	}

	opened := make([]*Assessment, len(vocabs))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range vocabs {
		g.Go(func() error {
			a, err := Open(gctx, v, blobs, optFns...)
			if err != nil {
				return err
			}
			opened[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, a := range opened {
		r.assessments[a.Kind()] = a
	}
	slices.Sort(r.kinds)
	return r, nil
}

// Get returns the Assessment of kind.
func (r *Registry) Get(kind string) (*Assessment, error) {
	a, ok := r.assessments[kind]
	if !ok {
		return nil, &ErrUnknownKind{Kind: kind}
	}
	return a, nil
}

// Kinds returns the served kinds in sorted order.
func (r *Registry) Kinds() []string {
	return slices.Clone(r.kinds)
}
