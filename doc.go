// Package johari implements self/peer personality-awareness assessments
// (Johari and Nohari windows).
//
// A subject picks the traits that describe them from a fixed vocabulary.
// Peers pick the traits they see in that subject. Classification splits the
// vocabulary into four quadrants:
//
//   - Arena: self-selected and confirmed by at least one peer
//   - Blind: seen by peers but not self-selected
//   - Facade: self-selected but never confirmed by a peer
//   - Unknown: selected by nobody
//
// Arena and Blind traits carry a corroboration count: the number of peer
// submissions that contained the trait.
//
// # Quick Start
//
//	ctx := context.Background()
//	a, _ := johari.Open(ctx, vocabulary.Johari(), blobstore.NewLocalStore("./data"))
//
//	_, _ = a.SubmitSelf(ctx, "alice", []string{"brave", "calm"})
//	_, _ = a.SubmitPeer(ctx, "alice", "bob", []string{"brave", "shy"})
//
//	res, _ := a.Query(ctx, "alice")
//	fmt.Println(res.Arena, res.Blind, res.Facade, res.Unknown)
//
// Several kinds are usually served side by side:
//
//	reg, _ := johari.OpenRegistry(ctx, store, []*vocabulary.Vocabulary{
//	    vocabulary.Johari(), vocabulary.Nohari(),
//	})
//	a, _ := reg.Get(vocabulary.KindNohari)
//
// # Durability Model
//
// Every operation loads the whole store of its kind, applies one change and
// saves the whole store again. Mutations on one Assessment are serialised; when
// the blob store implements blobstore.Locker, the load-mutate-save cycle also
// holds the backend's lock. A failed domain rule (for example a peer assessing
// themselves) never writes.
//
// # Storage
//
// Stores live in a blobstore.BlobStore: a local directory, memory, S3, MinIO
// or DynamoDB. See the persistence package for the format and the load policy.
package johari
