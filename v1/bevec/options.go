package bevec

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Aleph-Alpha/bevec/v1/observability"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// Logger matches the subset of logger.Logger used by the facade. It is also
// handed to provider factories.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) DebugWithContext(context.Context, string, error, ...map[string]interface{}) {}

type options struct {
	registry *Registry
	log      Logger
	observer observability.Observer
	tracer   trace.Tracer
}

func newOptions(opts []Option) options {
	o := options{
		registry: defaultRegistry,
		log:      nopLogger{},
		tracer:   noop.NewTracerProvider().Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a Client.
type Option func(*options)

// WithRegistry resolves the provider in r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger logs every call at debug level and passes log to the provider.
func WithLogger(log Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithObserver reports every finished call to obs, e.g. *metrics.Metrics.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithTracerProvider opens a span per call.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// CollectionOption configures CreateCollection and GetOrCreateCollection.
type CollectionOption func(*vectordb.CollectionSpec)

// WithMetric sets the similarity metric. The default is cosine.
func WithMetric(m vectordb.Metric) CollectionOption {
	return func(s *vectordb.CollectionSpec) {
		s.Metric = m
	}
}

// WithDimension sets the vector size for GetOrCreateCollection.
func WithDimension(dim int) CollectionOption {
	return func(s *vectordb.CollectionSpec) {
		s.Dimension = dim
	}
}

type queryOptions struct {
	topK   int
	filter *vectordb.FilterSet
}

// QueryOption configures Query.
type QueryOption func(*queryOptions)

// WithTopK bounds the number of results. Values below 1 are passed on and
// rejected by validation.
func WithTopK(k int) QueryOption {
	return func(q *queryOptions) {
		q.topK = k
	}
}

// WithFilter restricts the query to records whose metadata matches fs.
func WithFilter(fs *vectordb.FilterSet) QueryOption {
	return func(q *queryOptions) {
		q.filter = fs
	}
}
