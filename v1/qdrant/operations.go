package qdrant

import (
	"context"
	"sort"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// ListCollections returns all collection names, sorted.
func (a *Adapter) ListCollections(ctx context.Context) ([]string, error) {
	names, err := a.api.ListCollections(ctx)
	if err != nil {
		return nil, translateError("list_collections", err, false)
	}
	sort.Strings(names)
	return names, nil
}

// CreateCollection creates a collection with a single unnamed vector.
func (a *Adapter) CreateCollection(ctx context.Context, spec vectordb.CollectionSpec) error {
	spec = spec.WithDefaults()
	if err := vectordb.ValidateCollectionSpec(spec); err != nil {
		return withProvider(err)
	}

	err := a.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: spec.Name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(spec.Dimension),
			Distance: toDistance(spec.Metric),
		}),
	})
	if err != nil {
		return translateError("create_collection", err, false)
	}

	a.log.Info("qdrant collection created", nil, map[string]interface{}{
		"collection": spec.Name,
		"dimension":  spec.Dimension,
		"metric":     string(spec.Metric),
	})
	return nil
}

// DeleteCollection drops a collection.
func (a *Adapter) DeleteCollection(ctx context.Context, name string) error {
	if err := vectordb.ValidateCollectionName("delete_collection", name); err != nil {
		return withProvider(err)
	}
	if err := a.api.DeleteCollection(ctx, name); err != nil {
		return translateError("delete_collection", err, false)
	}
	a.log.Info("qdrant collection deleted", nil, map[string]interface{}{"collection": name})
	return nil
}

// GetCollection reads the collection's dimension, metric, point count and status.
func (a *Adapter) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	if err := vectordb.ValidateCollectionName("get_collection", name); err != nil {
		return nil, withProvider(err)
	}
	info, err := a.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, translateError("get_collection", err, false)
	}
	return toCollection(name, info), nil
}

// GetOrCreateCollection creates the collection from spec when it is missing.
// Creating requires spec.Dimension; an existing collection is returned as is.
func (a *Adapter) GetOrCreateCollection(ctx context.Context, spec vectordb.CollectionSpec) (*vectordb.Collection, error) {
	const op = "get_or_create_collection"
	if err := vectordb.ValidateCollectionName(op, spec.Name); err != nil {
		return nil, withProvider(err)
	}

	exists, err := a.api.CollectionExists(ctx, spec.Name)
	if err != nil {
		return nil, translateError(op, err, false)
	}
	if !exists {
		if err := a.CreateCollection(ctx, spec); err != nil {
			if vectordb.KindOf(err) != vectordb.KindProvider {
				return nil, err
			}
			// Qdrant answers a duplicate create with InvalidArgument, so a
			// lost race is only visible by looking again.
			if created, existsErr := a.api.CollectionExists(ctx, spec.Name); existsErr != nil || !created {
				return nil, err
			}
		}
	}
	return a.GetCollection(ctx, spec.Name)
}

// Upsert validates the whole batch, then writes it in chunks of BatchSize
// points. A backend failure in a later chunk leaves earlier chunks written.
// Without req.Dimension the collection's vector size is read first and a
// mismatching batch is never sent.
func (a *Adapter) Upsert(ctx context.Context, req vectordb.UpsertRequest) error {
	const op = "upsert"
	if err := vectordb.ValidateUpsert(req); err != nil {
		return withProvider(err)
	}
	points, err := toPoints(req.Records)
	if err != nil {
		return withProvider(err)
	}
	if req.Dimension <= 0 {
		coll, err := a.describe(ctx, op, req.Collection)
		if err != nil {
			return err
		}
		if got := len(req.Records[0].Values); coll.Dimension > 0 && coll.Dimension != got {
			return vectordb.VectorOperationErrorf(op,
				"records have %d values, collection %q expects %d", got, req.Collection, coll.Dimension).WithProvider(ProviderName)
		}
	}

	for start := 0; start < len(points); start += a.batchSize {
		end := min(start+a.batchSize, len(points))
		_, err := a.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: req.Collection,
			Points:         points[start:end],
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return translateError(op, err, true)
		}
		a.log.Debug("qdrant batch upserted", nil, map[string]interface{}{
			"collection": req.Collection,
			"from":       start,
			"to":         end,
		})
	}
	return nil
}

// Query runs a nearest-neighbour search. Euclidean (and Manhattan) distances
// are negated so that a higher score always means more similar; this needs
// the collection's metric, read once per query via GetCollectionInfo.
func (a *Adapter) Query(ctx context.Context, req vectordb.QueryRequest) ([]vectordb.QueryResult, error) {
	if err := vectordb.ValidateQuery(req); err != nil {
		return nil, withProvider(err)
	}
	filter, err := convertFilterSet(req.Filter)
	if err != nil {
		return nil, err
	}

	coll, err := a.describe(ctx, "query", req.Collection)
	if err != nil {
		return nil, err
	}
	if coll.Dimension > 0 && coll.Dimension != len(req.Vector) {
		return nil, vectordb.VectorOperationErrorf("query",
			"query vector has %d values, collection %q expects %d", len(req.Vector), req.Collection, coll.Dimension).WithProvider(ProviderName)
	}

	resp, err := a.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: req.Collection,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          qdrant.PtrOf(uint64(req.TopK)),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         filter,
	})
	if err != nil {
		return nil, translateError("query", err, true)
	}
	return parseResults(resp, coll.Metric)
}

// Delete removes points by ID. Unknown IDs are ignored by Qdrant.
func (a *Adapter) Delete(ctx context.Context, collection string, ids []string) error {
	if err := vectordb.ValidateCollectionName("delete", collection); err != nil {
		return withProvider(err)
	}
	if err := vectordb.ValidateIDs("delete", ids); err != nil {
		return withProvider(err)
	}

	_, err := a.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: toPointIDs(ids)},
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return translateError("delete", err, true)
	}
	return nil
}

// DeleteContents removes every point with an empty (match-all) filter.
func (a *Adapter) DeleteContents(ctx context.Context, collection string) error {
	if err := vectordb.ValidateCollectionName("delete_contents", collection); err != nil {
		return withProvider(err)
	}

	_, err := a.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: &qdrant.Filter{},
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return translateError("delete_contents", err, true)
	}
	a.log.Info("qdrant collection purged", nil, map[string]interface{}{"collection": collection})
	return nil
}

// describe reads a collection for a data operation; a missing collection is
// a VectorOperationError.
func (a *Adapter) describe(ctx context.Context, op, name string) (*vectordb.Collection, error) {
	info, err := a.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, translateError(op, err, true)
	}
	return toCollection(name, info), nil
}

func withProvider(err error) error {
	if e, ok := vectordb.AsError(err); ok {
		return e.WithProvider(ProviderName)
	}
	return err
}
