package johari

import (
	"log/slog"

	"github.com/hupe1980/johari/codec"
	"github.com/hupe1980/johari/persistence"
	"golang.org/x/time/rate"
)

type options struct {
	codec            codec.Codec
	compression      persistence.Compression
	strictLoad       bool
	strictNames      bool
	storeName        string
	submissionRate   rate.Limit
	submissionBurst  int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open and OpenRegistry.
type Option func(*options)

// WithCodec configures the codec used to encode saved stores.
// Stores written with another built-in codec stay readable.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures payload compression for saved stores.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithStrictLoad makes unreadable store content an error (*persistence.ErrCorrupt)
// instead of silently starting from an empty store.
//
// A missing store always starts empty.
func WithStrictLoad(strict bool) Option {
	return func(o *options) {
		o.strictLoad = strict
	}
}

// WithStrictTraitNames rejects submissions that contain names outside the
// vocabulary with *traitset.ErrUnknownTraits. By default such names are
// dropped and logged.
func WithStrictTraitNames(strict bool) Option {
	return func(o *options) {
		o.strictNames = strict
	}
}

// WithStoreName overrides the blob name of the store (default "<kind>.store").
func WithStoreName(name string) Option {
	return func(o *options) {
		o.storeName = name
	}
}

// WithSubmissionRate throttles submissions to r per second with the given burst.
// Every submission rewrites the whole store, so this bounds write cost on
// remote backends.
func WithSubmissionRate(r rate.Limit, burst int) Option {
	return func(o *options) {
		o.submissionRate = r
		o.submissionBurst = burst
	}
}

// WithMetricsCollector configures a metrics collector for operations.
//
// Example:
//
//	metrics := &johari.BasicMetricsCollector{}
//	a, _ := johari.Open(ctx, vocab, store, johari.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
//	fmt.Printf("Peer submissions: %d\n", stats.PeerSubmissions)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := johari.NewJSONLogger(slog.LevelInfo)
//	a, _ := johari.Open(ctx, vocab, store, johari.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
