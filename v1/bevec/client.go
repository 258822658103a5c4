package bevec

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/bevec/v1/chromem"
	"github.com/Aleph-Alpha/bevec/v1/observability"
	"github.com/Aleph-Alpha/bevec/v1/qdrant"
	"github.com/Aleph-Alpha/bevec/v1/tracer"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

const (
	instrumentationName = "github.com/Aleph-Alpha/bevec"
	component           = "bevec"
)

// Client is the provider-independent entry point. It delegates every call
// to the configured backend and adds tracing, logging and observation.
// A Client is safe for concurrent use if its backend is.
type Client struct {
	svc         vectordb.Service
	provider    string
	defaultTopK int
	opts        options
}

// Init resolves cfg.Provider in the registry and builds the backend.
// Unknown providers and construction failures are ConfigurationErrors,
// unless the backend reported a more specific kind (an unreachable server
// is a ProviderError).
func Init(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	o := newOptions(opts)

	if normalizeName(cfg.Provider) == "" {
		return nil, vectordb.ConfigurationErrorf("init", "provider is not set: registered providers are [%s]",
			strings.Join(o.registry.Names(), ", "))
	}
	factory, err := o.registry.Resolve(cfg.Provider)
	if err != nil {
		return nil, err
	}
	provider := normalizeName(cfg.Provider)

	o.log.Info("initializing vector database client", nil, map[string]interface{}{"provider": provider})
	svc, err := factory(ctx, cfg, o.log)
	if err != nil {
		err = vectordb.EnsureTaxonomy(err, provider, "init", vectordb.KindConfiguration)
		o.log.Error("failed to initialize vector database client", err, map[string]interface{}{"provider": provider})
		return nil, err
	}
	if svc == nil {
		return nil, vectordb.ConfigurationErrorf("init", "factory returned no service").WithProvider(provider)
	}

	c := newClient(svc, o)
	c.defaultTopK = cfg.topK()
	return c, nil
}

// InitQdrant builds a client on the hosted Qdrant backend.
func InitQdrant(ctx context.Context, cfg qdrant.Config, opts ...Option) (*Client, error) {
	return Init(ctx, Config{Provider: qdrant.ProviderName, Qdrant: &cfg}, opts...)
}

// InitChromem builds a client on the embedded chromem backend.
func InitChromem(ctx context.Context, cfg chromem.Config, opts ...Option) (*Client, error) {
	return Init(ctx, Config{Provider: chromem.ProviderName, Chromem: &cfg}, opts...)
}

// New wraps an existing backend. WithRegistry has no effect here.
func New(svc vectordb.Service, opts ...Option) *Client {
	return newClient(svc, newOptions(opts))
}

func newClient(svc vectordb.Service, o options) *Client {
	return &Client{
		svc:         svc,
		provider:    svc.Provider(),
		defaultTopK: vectordb.DefaultTopK,
		opts:        o,
	}
}

// Provider returns the registry name of the backend.
func (c *Client) Provider() string {
	return c.provider
}

// Service returns the backend behind the facade.
func (c *Client) Service() vectordb.Service {
	return c.svc
}

// ListCollections returns the names of all collections.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	var names []string
	err := c.do(ctx, "list_collections", "", func(ctx context.Context) (int, error) {
		var err error
		names, err = c.svc.ListCollections(ctx)
		return len(names), err
	})
	return names, err
}

// ListIndexes is an alias of ListCollections.
func (c *Client) ListIndexes(ctx context.Context) ([]string, error) {
	return c.ListCollections(ctx)
}

// CreateCollection creates a collection of dim-sized vectors. The metric
// defaults to cosine.
func (c *Client) CreateCollection(ctx context.Context, name string, dim int, opts ...CollectionOption) error {
	spec := vectordb.CollectionSpec{Name: name, Dimension: dim}
	for _, opt := range opts {
		opt(&spec)
	}
	return c.do(ctx, "create_collection", name, func(ctx context.Context) (int, error) {
		return 0, c.svc.CreateCollection(ctx, spec.WithDefaults())
	})
}

// CreateIndex is an alias of CreateCollection.
func (c *Client) CreateIndex(ctx context.Context, name string, dim int, opts ...CollectionOption) error {
	return c.CreateCollection(ctx, name, dim, opts...)
}

// DeleteCollection drops a collection and all its records.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, "delete_collection", name, func(ctx context.Context) (int, error) {
		return 0, c.svc.DeleteCollection(ctx, name)
	})
}

// DeleteIndex is an alias of DeleteCollection.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	return c.DeleteCollection(ctx, name)
}

// GetCollection returns a handle on an existing collection.
func (c *Client) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var info *vectordb.Collection
	err := c.do(ctx, "get_collection", name, func(ctx context.Context) (int, error) {
		var err error
		info, err = c.svc.GetCollection(ctx, name)
		return 0, err
	})
	if err != nil {
		return nil, err
	}
	return &Collection{client: c, info: *info}, nil
}

// Index is an alias of GetCollection.
func (c *Client) Index(ctx context.Context, name string) (*Collection, error) {
	return c.GetCollection(ctx, name)
}

// GetOrCreateCollection returns a handle on the named collection, creating
// it first when missing. Creation needs WithDimension.
func (c *Client) GetOrCreateCollection(ctx context.Context, name string, opts ...CollectionOption) (*Collection, error) {
	spec := vectordb.CollectionSpec{Name: name}
	for _, opt := range opts {
		opt(&spec)
	}
	var info *vectordb.Collection
	err := c.do(ctx, "get_or_create_collection", name, func(ctx context.Context) (int, error) {
		var err error
		info, err = c.svc.GetOrCreateCollection(ctx, spec.WithDefaults())
		return 0, err
	})
	if err != nil {
		return nil, err
	}
	return &Collection{client: c, info: *info}, nil
}

// Upsert inserts or replaces records in a collection. The whole batch is
// validated before anything is sent.
func (c *Client) Upsert(ctx context.Context, collection string, records []vectordb.Record) error {
	return c.upsert(ctx, vectordb.UpsertRequest{Collection: collection, Records: records})
}

func (c *Client) upsert(ctx context.Context, req vectordb.UpsertRequest) error {
	return c.do(ctx, "upsert", req.Collection, func(ctx context.Context) (int, error) {
		return len(req.Records), c.svc.Upsert(ctx, req)
	})
}

// Query returns the records nearest to vector, best match first. Without
// WithTopK the client's default (10 unless configured) applies.
func (c *Client) Query(ctx context.Context, collection string, vector []float32, opts ...QueryOption) ([]vectordb.QueryResult, error) {
	return c.query(ctx, vectordb.QueryRequest{Collection: collection, Vector: vector}, opts)
}

func (c *Client) query(ctx context.Context, req vectordb.QueryRequest, opts []QueryOption) ([]vectordb.QueryResult, error) {
	q := queryOptions{topK: c.defaultTopK}
	for _, opt := range opts {
		opt(&q)
	}
	req.TopK = q.topK
	req.Filter = q.filter

	var results []vectordb.QueryResult
	err := c.do(ctx, "query", req.Collection, func(ctx context.Context) (int, error) {
		var err error
		results, err = c.svc.Query(ctx, req)
		return len(results), err
	})
	return results, err
}

// Delete removes records by ID.
func (c *Client) Delete(ctx context.Context, collection string, ids ...string) error {
	return c.do(ctx, "delete", collection, func(ctx context.Context) (int, error) {
		return len(ids), c.svc.Delete(ctx, collection, ids)
	})
}

// DeleteContents removes every record but keeps the collection.
func (c *Client) DeleteContents(ctx context.Context, collection string) error {
	return c.do(ctx, "delete_contents", collection, func(ctx context.Context) (int, error) {
		return 0, c.svc.DeleteContents(ctx, collection)
	})
}

// Close releases the backend.
func (c *Client) Close() error {
	return c.do(context.Background(), "close", "", func(context.Context) (int, error) {
		return 0, c.svc.Close()
	})
}

// do runs one backend call inside a span, logs it, reports it to the
// observer and guarantees the returned error belongs to the taxonomy.
func (c *Client) do(ctx context.Context, op, collection string, call func(context.Context) (int, error)) error {
	ctx, span := c.opts.tracer.Start(ctx, "bevec."+op, trace.WithAttributes(
		attribute.String("bevec.provider", c.provider),
		attribute.String("bevec.operation", op),
	))
	defer span.End()
	if collection != "" {
		span.SetAttributes(attribute.String("bevec.collection", collection))
	}

	start := time.Now()
	size, err := call(ctx)
	elapsed := time.Since(start)
	err = vectordb.EnsureTaxonomy(err, c.provider, op, vectordb.KindProvider)

	span.SetAttributes(attribute.Int("bevec.size", size))
	tracer.RecordErrorOnSpan(span, err)

	c.opts.log.DebugWithContext(ctx, "vector database call", err, map[string]interface{}{
		"provider":    c.provider,
		"operation":   op,
		"collection":  collection,
		"size":        size,
		"duration_ms": elapsed.Milliseconds(),
	})

	if c.opts.observer != nil {
		c.opts.observer.ObserveOperation(observability.OperationContext{
			Component: component,
			Operation: op,
			Provider:  c.provider,
			Resource:  collection,
			Duration:  elapsed,
			Error:     err,
			Size:      int64(size),
		})
	}
	return err
}
