package svdb

import (
	"log/slog"

	"github.com/hupe1980/svdb/codec"
	"github.com/hupe1980/svdb/metric"
)

type options struct {
	logger *Logger
	codec  codec.Codec
}

// Option configures a Collection at Open time.
type Option func(*options)

// WithLogger configures structured logging for operations.
// If nil is passed, logging is disabled.
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

// WithCodec configures the codec used for the metadata container payload.
//
// If nil is passed, codec.Default is used. Existing container files are
// self-describing and decode with the codec named in their header.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

type viewOptions struct {
	metric metric.Metric
}

// ViewOption configures a View.
type ViewOption func(*viewOptions)

// WithMetric selects the comparison metric used by TopK.
// The default is metric.Cosine.
//
// TopK ranks scores descending for every metric; with a distance metric
// (Euclidean, Manhattan) the ordering is therefore farthest-first.
func WithMetric(m metric.Metric) ViewOption {
	return func(o *viewOptions) {
		o.metric = m
	}
}

func applyViewOptions(optFns []ViewOption) viewOptions {
	o := viewOptions{
		metric: metric.Cosine,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
