package chromem

import (
	"context"
	"sort"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// ListCollections returns the collection names in sorted order.
func (a *Adapter) ListCollections(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, translateError("list_collections", err, false)
	}
	all := a.db.ListCollections()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CreateCollection creates an empty collection. Only the cosine metric is
// available. Creating a collection that already exists is a ProviderError.
func (a *Adapter) CreateCollection(ctx context.Context, spec vectordb.CollectionSpec) error {
	const op = "create_collection"
	spec = spec.WithDefaults()
	if err := vectordb.ValidateCollectionSpec(spec); err != nil {
		return withProvider(err)
	}
	if spec.Metric != vectordb.MetricCosine {
		return vectordb.ValidationErrorf(op, "metric %q is not supported, only %q is", spec.Metric, vectordb.MetricCosine).WithProvider(ProviderName)
	}
	if err := ctx.Err(); err != nil {
		return translateError(op, err, false)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.collection(spec.Name) != nil {
		return vectordb.ProviderErrorf(op, "collection %q already exists", spec.Name).WithProvider(ProviderName)
	}
	if _, err := a.db.CreateCollection(spec.Name, collectionMetadata(), noEmbedding); err != nil {
		return translateError(op, err, false)
	}
	a.dims[spec.Name] = spec.Dimension
	a.persistDimensionsLocked()

	a.log.Info("created collection", nil, map[string]interface{}{
		"collection": spec.Name,
		"dimension":  spec.Dimension,
	})
	return nil
}

// DeleteCollection removes a collection and its files. Deleting a missing
// collection succeeds.
func (a *Adapter) DeleteCollection(ctx context.Context, name string) error {
	const op = "delete_collection"
	if err := vectordb.ValidateCollectionName(op, name); err != nil {
		return withProvider(err)
	}
	if err := ctx.Err(); err != nil {
		return translateError(op, err, false)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.db.DeleteCollection(name); err != nil {
		return translateError(op, err, false)
	}
	if _, ok := a.dims[name]; ok {
		delete(a.dims, name)
		a.persistDimensionsLocked()
	}
	return nil
}

// GetCollection describes an existing collection.
func (a *Adapter) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	const op = "get_collection"
	if err := vectordb.ValidateCollectionName(op, name); err != nil {
		return nil, withProvider(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, translateError(op, err, false)
	}
	c := a.collection(name)
	if c == nil {
		return nil, notFound(op, name, false)
	}
	return &vectordb.Collection{
		Name:       name,
		Dimension:  a.dimension(name),
		Metric:     vectordb.MetricCosine,
		PointCount: uint64(c.Count()),
		Status:     "ready",
	}, nil
}

// GetOrCreateCollection returns the named collection, creating it from spec
// when it does not exist yet.
func (a *Adapter) GetOrCreateCollection(ctx context.Context, spec vectordb.CollectionSpec) (*vectordb.Collection, error) {
	if err := vectordb.ValidateCollectionName("get_or_create_collection", spec.Name); err != nil {
		return nil, withProvider(err)
	}
	if a.collection(spec.Name) == nil {
		if err := a.CreateCollection(ctx, spec); err != nil {
			// lost a race against another creator
			if vectordb.KindOf(err) != vectordb.KindProvider || a.collection(spec.Name) == nil {
				return nil, err
			}
		}
	}
	return a.GetCollection(ctx, spec.Name)
}

// Upsert validates the whole batch, then adds or replaces the documents.
func (a *Adapter) Upsert(ctx context.Context, req vectordb.UpsertRequest) error {
	const op = "upsert"
	if req.Dimension <= 0 {
		req.Dimension = a.dimension(req.Collection)
	}
	if err := vectordb.ValidateUpsert(req); err != nil {
		return withProvider(err)
	}
	for i, r := range req.Records {
		if vectordb.IsZeroVector(r.Values) {
			return vectordb.ValidationErrorf(op, "record %q at index %d is a zero vector, cosine similarity is undefined", r.ID, i).WithProvider(ProviderName)
		}
	}

	c := a.collection(req.Collection)
	if c == nil {
		return notFound(op, req.Collection, true)
	}
	if err := c.AddDocuments(ctx, toDocuments(req.Records), a.concurrency); err != nil {
		return translateError(op, err, true)
	}
	a.rememberDimension(req.Collection, len(req.Records[0].Values))

	a.log.Debug("upserted records", nil, map[string]interface{}{
		"collection": req.Collection,
		"count":      len(req.Records),
	})
	return nil
}

// Query returns up to TopK nearest documents by cosine similarity. TopK is
// clamped to the collection size.
func (a *Adapter) Query(ctx context.Context, req vectordb.QueryRequest) ([]vectordb.QueryResult, error) {
	const op = "query"
	if req.Dimension <= 0 {
		req.Dimension = a.dimension(req.Collection)
	}
	if err := vectordb.ValidateQuery(req); err != nil {
		return nil, withProvider(err)
	}
	if vectordb.IsZeroVector(req.Vector) {
		return nil, vectordb.ValidationErrorf(op, "query vector is a zero vector, cosine similarity is undefined").WithProvider(ProviderName)
	}
	where, err := toWhere(req.Filter)
	if err != nil {
		return nil, err
	}

	c := a.collection(req.Collection)
	if c == nil {
		return nil, notFound(op, req.Collection, true)
	}
	n := min(req.TopK, c.Count())
	if n == 0 {
		return []vectordb.QueryResult{}, nil
	}

	vector := make([]float32, len(req.Vector))
	copy(vector, req.Vector)
	res, err := c.QueryEmbedding(ctx, vector, n, where, nil)
	if err != nil {
		return nil, translateError(op, err, true)
	}
	return toResults(res), nil
}

// Delete removes documents by ID.
func (a *Adapter) Delete(ctx context.Context, collection string, ids []string) error {
	const op = "delete"
	if err := vectordb.ValidateCollectionName(op, collection); err != nil {
		return withProvider(err)
	}
	if err := vectordb.ValidateIDs(op, ids); err != nil {
		return withProvider(err)
	}
	c := a.collection(collection)
	if c == nil {
		return notFound(op, collection, true)
	}
	if err := c.Delete(ctx, nil, nil, ids...); err != nil {
		return translateError(op, err, true)
	}
	return nil
}

// DeleteContents empties a collection by dropping and recreating it. The
// remembered dimension is kept.
func (a *Adapter) DeleteContents(ctx context.Context, collection string) error {
	const op = "delete_contents"
	if err := vectordb.ValidateCollectionName(op, collection); err != nil {
		return withProvider(err)
	}
	if err := ctx.Err(); err != nil {
		return translateError(op, err, true)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.collection(collection) == nil {
		return notFound(op, collection, true)
	}
	if err := a.db.DeleteCollection(collection); err != nil {
		return translateError(op, err, true)
	}
	if _, err := a.db.CreateCollection(collection, collectionMetadata(), noEmbedding); err != nil {
		return translateError(op, err, true)
	}
	return nil
}

func collectionMetadata() map[string]string {
	return map[string]string{spaceKey: string(vectordb.MetricCosine)}
}

func withProvider(err error) error {
	if e, ok := vectordb.AsError(err); ok {
		return e.WithProvider(ProviderName)
	}
	return err
}
