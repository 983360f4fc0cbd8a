package bitdex

import (
	"log/slog"

	"github.com/hupe1980/bitdex/codec"
	"github.com/hupe1980/bitdex/snapshot"
)

type options struct {
	codec            codec.Codec
	compression      snapshot.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Index.
type Option func(*options)

// WithCodec configures the codec used by Dump.
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

// WithCompression configures the compression applied by WriteTo.
// ReadFrom detects the compression from the snapshot header.
//
// Example:
//
//	ix := bitdex.New(bitdex.WithCompression(snapshot.CompressionZSTD))
//	_, _ = ix.WriteTo(&buf)
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bitdex.BasicMetricsCollector{}
//	ix := bitdex.New(bitdex.WithMetricsCollector(metrics))
//	// ... use ix ...
//	stats := metrics.GetStats()
//	fmt.Printf("Set ops: %d, Avg latency: %dns\n", stats.SetOpCount, stats.SetOpAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bitdex.NewJSONLogger(slog.LevelDebug)
//	ix := bitdex.New(bitdex.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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
		compression:      snapshot.CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
