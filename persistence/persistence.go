package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/hupe1980/johari/blobstore"
	"github.com/hupe1980/johari/codec"
	"github.com/hupe1980/johari/internal/compress"
	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
	"github.com/hupe1980/johari/vocabulary"
)

// Compression selects the payload compression of saved stores.
type Compression = compress.Type

const (
	CompressionNone = compress.None
	CompressionLZ4  = compress.LZ4
	CompressionZSTD = compress.ZSTD
)

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(name string) (Compression, error) {
	return compress.Parse(name)
}

// Options controls encoding and the load policy.
type Options struct {
	// Codec encodes new saves. Defaults to codec.Default. Loads use the codec
	// recorded in the blob.
	Codec codec.Codec
	// Compression of new saves.
	Compression Compression
	// Strict turns undecodable content into *ErrCorrupt instead of an empty store.
	Strict bool
	// Logger receives load warnings. Defaults to a discarding logger.
	Logger *slog.Logger
}

func (o Options) codec() codec.Codec {
	if o.Codec == nil {
		return codec.Default
	}
	return o.Codec
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Encode serialises store into the envelope format.
func Encode(store *subject.Store, vocab *vocabulary.Vocabulary, opts Options) ([]byte, error) {
	c := opts.codec()
	if len(c.Name()) > math.MaxUint8 {
		return nil, fmt.Errorf("codec name %q too long", c.Name())
	}

	doc := document{
		Kind:           vocab.Kind(),
		VocabularySize: vocab.Len(),
		Subjects:       make([]subjectDoc, 0, store.Len()),
	}
	for rec := range store.All() {
		sd := subjectDoc{ID: string(rec.ID)}
		if rec.HasOwn {
			own := uint64(rec.Own)
			sd.Own = &own
		}
		for _, p := range rec.Peers {
			sd.Peers = append(sd.Peers, peerDoc{Assessor: string(p.Assessor), Traits: uint64(p.Traits)})
		}
		doc.Subjects = append(doc.Subjects, sd)
	}

	raw, err := c.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if len(raw) > MaxStoreSize {
		return nil, fmt.Errorf("%w: encoded store is %d bytes", ErrTooLarge, len(raw))
	}

	payload, used, err := compress.Compress(raw, opts.Compression)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	h := Header{
		Magic:       Magic,
		Version:     Version,
		Compression: uint8(used),
		CodecLen:    uint8(len(c.Name())),
		Fingerprint: vocab.Fingerprint(),
		RawLen:      uint32(len(raw)),
		PayloadLen:  uint32(len(payload)),
		Checksum:    CalculateChecksum(payload),
	}

	out := make([]byte, 0, HeaderSize+len(c.Name())+len(payload))
	out = append(out, h.marshal()...)
	out = append(out, c.Name()...)
	out = append(out, payload...)
	return out, nil
}

// Decode parses data produced by Encode. Fingerprint mismatches and trait bits
// outside vocab are logged; out-of-range bits are masked off.
func Decode(data []byte, vocab *vocabulary.Vocabulary, opts Options) (*subject.Store, error) {
	logger := opts.logger()

	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	if len(body) != int(h.CodecLen)+int(h.PayloadLen) {
		return nil, fmt.Errorf("%w: want %d body bytes, have %d", ErrTruncated, int(h.CodecLen)+int(h.PayloadLen), len(body))
	}
	if h.RawLen > MaxStoreSize {
		return nil, fmt.Errorf("%w: raw length %d", ErrTooLarge, h.RawLen)
	}
	codecName := string(body[:h.CodecLen])
	payload := body[h.CodecLen:]

	if err := verifyChecksum(payload, h.Checksum); err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	raw, err := compress.Decompress(payload, compress.Type(h.Compression), int(h.RawLen))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}

	var doc document
	if err := c.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if h.Fingerprint != vocab.Fingerprint() {
		logger.Warn("subject store was written with a different vocabulary",
			"kind", vocab.Kind(),
			"stored_kind", doc.Kind,
			"stored_size", doc.VocabularySize,
			"size", vocab.Len(),
		)
	}

	full := traitset.Full(vocab)
	masked := 0
	mask := func(s traitset.Set) traitset.Set {
		if !s.Difference(full).IsEmpty() {
			masked++
			return s.Intersect(full)
		}
		return s
	}

	store := subject.NewStore()
	for _, sd := range doc.Subjects {
		rec := subject.Record{ID: subject.ID(sd.ID)}
		if sd.Own != nil {
			rec.Own = mask(traitset.Set(*sd.Own))
			rec.HasOwn = true
		}
		if len(sd.Peers) > 0 {
			rec.Peers = make([]subject.PeerAssessment, 0, len(sd.Peers))
		}
		for _, p := range sd.Peers {
			rec.Peers = append(rec.Peers, subject.PeerAssessment{
				Assessor: subject.ID(p.Assessor),
				Traits:   mask(traitset.Set(p.Traits)),
			})
		}
		if err := store.Add(rec); err != nil {
			return nil, err
		}
	}

	if masked > 0 {
		logger.Warn("masked trait bits outside the vocabulary",
			"kind", vocab.Kind(),
			"sets", masked,
		)
	}

	return store, nil
}

// Load reads the named store. See the package documentation for the load policy.
func Load(ctx context.Context, blobs blobstore.BlobStore, name string, vocab *vocabulary.Vocabulary, opts Options) (*subject.Store, error) {
	data, err := blobstore.ReadAll(ctx, blobs, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return subject.NewStore(), nil
	}
	if err != nil {
		return nil, &ErrStoreLoad{Name: name, cause: err}
	}

	store, err := Decode(data, vocab, opts)
	if err != nil {
		if opts.Strict {
			return nil, &ErrCorrupt{Name: name, cause: err}
		}
		opts.logger().Warn("discarding unreadable subject store",
			"name", name,
			"bytes", len(data),
			"error", err,
		)
		return subject.NewStore(), nil
	}
	return store, nil
}

// Save replaces the named store with the encoding of store.
func Save(ctx context.Context, blobs blobstore.BlobStore, name string, vocab *vocabulary.Vocabulary, store *subject.Store, opts Options) error {
	data, err := Encode(store, vocab, opts)
	if err != nil {
		return &ErrStoreSave{Name: name, cause: err}
	}
	if err := blobs.Put(ctx, name, data); err != nil {
		return &ErrStoreSave{Name: name, cause: err}
	}
	return nil
}
