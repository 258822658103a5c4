package qdrant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func newTestAdapter(batch int) (*Adapter, *fakeAPI) {
	api := newFakeAPI()
	return NewAdapter(api, &Config{BatchSize: batch}, nil), api
}

func TestUpsertInvalidRecordMakesNoBackendCall(t *testing.T) {
	a, api := newTestAdapter(0)

	err := a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records: []vectordb.Record{
			{ID: "ok", Values: []float32{1, 2}},
			{ID: "", Values: []float32{1, 2}},
		},
	})

	require.Error(t, err)
	assert.True(t, vectordb.IsValidationError(err))
	assert.Equal(t, 0, api.callCount())

	e, _ := vectordb.AsError(err)
	assert.Equal(t, ProviderName, e.Provider)
}

func TestUpsertReservedMetadataKeyRejected(t *testing.T) {
	a, api := newTestAdapter(0)
	err := a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records:    []vectordb.Record{{ID: "a", Values: []float32{1}, Metadata: map[string]any{OriginalIDKey: "x"}}},
	})
	assert.True(t, vectordb.IsValidationError(err))
	assert.Equal(t, 0, api.callCount())
}

func TestUpsertSplitsIntoBatches(t *testing.T) {
	a, api := newTestAdapter(2)
	api.collections["docs"] = collectionInfo(2, qdrant.Distance_Cosine, 0)

	records := make([]vectordb.Record, 5)
	for i := range records {
		records[i] = vectordb.Record{ID: uuid.NewString(), Values: []float32{float32(i), 1}}
	}
	require.NoError(t, a.Upsert(context.Background(), vectordb.UpsertRequest{Collection: "docs", Records: records}))

	require.Len(t, api.upserts, 3)
	assert.Len(t, api.upserts[0].Points, 2)
	assert.Len(t, api.upserts[2].Points, 1)
	assert.True(t, api.upserts[0].GetWait())
	assert.Equal(t, "docs", api.upserts[1].CollectionName)
}

func TestUpsertMapsIDs(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["docs"] = collectionInfo(1, qdrant.Distance_Cosine, 0)
	u := uuid.NewString()

	require.NoError(t, a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records: []vectordb.Record{
			{ID: u, Values: []float32{1}},
			{ID: "42", Values: []float32{1}},
			{ID: "doc-1", Values: []float32{1}, Metadata: map[string]any{"genre": "jazz", "year": 1959}},
		},
	}))

	points := api.upserts[0].Points
	assert.Equal(t, u, points[0].Id.GetUuid())
	assert.NotContains(t, points[0].Payload, OriginalIDKey)

	assert.Equal(t, uint64(42), points[1].Id.GetNum())

	mapped := points[2].Id.GetUuid()
	_, err := uuid.Parse(mapped)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", points[2].Payload[OriginalIDKey].GetStringValue())
	assert.Equal(t, "jazz", points[2].Payload["genre"].GetStringValue())
	assert.Equal(t, int64(1959), points[2].Payload["year"].GetIntegerValue())

	// deterministic
	again, _ := toPointID("doc-1")
	assert.Equal(t, mapped, again.GetUuid())
}

func TestUpsertDimensionMismatchMakesNoBackendWrite(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["docs"] = collectionInfo(3, qdrant.Distance_Cosine, 0)

	err := a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records:    []vectordb.Record{{ID: "a", Values: []float32{1, 2}}},
	})
	require.Error(t, err)
	assert.True(t, vectordb.IsVectorOperationError(err))
	assert.Contains(t, err.Error(), "expects 3")
	assert.Equal(t, []string{"GetCollectionInfo"}, api.calls)
	assert.Empty(t, api.upserts)
}

func TestUpsertWithKnownDimensionSkipsLookup(t *testing.T) {
	a, api := newTestAdapter(0)

	require.NoError(t, a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records:    []vectordb.Record{{ID: "a", Values: []float32{1, 2}}},
		Dimension:  2,
	}))
	assert.Equal(t, []string{"Upsert"}, api.calls)

	err := a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records:    []vectordb.Record{{ID: "a", Values: []float32{1, 2}}},
		Dimension:  3,
	})
	assert.True(t, vectordb.IsValidationError(err))
	assert.Len(t, api.upserts, 1)
}

func TestUpsertOnMissingCollection(t *testing.T) {
	a, api := newTestAdapter(0)
	err := a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "nope",
		Records:    []vectordb.Record{{ID: "a", Values: []float32{1}}},
	})
	assert.True(t, vectordb.IsVectorOperationError(err))
	assert.True(t, vectordb.IsCollectionNotFound(err))
	assert.Empty(t, api.upserts)
}

func TestUpsertRejectsUnsignedBeyondInt64(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["docs"] = collectionInfo(1, qdrant.Distance_Cosine, 0)

	err := a.Upsert(context.Background(), vectordb.UpsertRequest{
		Collection: "docs",
		Records:    []vectordb.Record{{ID: "a", Values: []float32{1}, Metadata: map[string]any{"big": uint64(1 << 63)}}},
	})
	assert.True(t, vectordb.IsValidationError(err))
	assert.Contains(t, err.Error(), `key "big"`)
	assert.Equal(t, 0, api.callCount())
}

func TestQueryRestoresOriginalIDs(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["docs"] = collectionInfo(2, qdrant.Distance_Cosine, 2)

	mapped, _ := toPointID("doc-1")
	api.queryResp = []*qdrant.ScoredPoint{
		{
			Id:    mapped,
			Score: 0.9,
			Payload: map[string]*qdrant.Value{
				OriginalIDKey: stringValue("doc-1"),
				"genre":       stringValue("jazz"),
			},
		},
		{Id: qdrant.NewIDNum(7), Score: 0.5},
	}

	results, err := a.Query(context.Background(), vectordb.QueryRequest{Collection: "docs", Vector: []float32{1, 0}, TopK: 3})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "doc-1", results[0].ID)
	assert.Equal(t, float32(0.9), results[0].Score)
	assert.Equal(t, map[string]any{"genre": "jazz"}, results[0].Metadata)
	assert.Equal(t, "7", results[1].ID)
	assert.Nil(t, results[1].Metadata)

	require.Len(t, api.queries, 1)
	assert.Equal(t, uint64(3), api.queries[0].GetLimit())
	assert.Nil(t, api.queries[0].Filter)
}

func TestQueryNegatesEuclideanDistances(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["geo"] = collectionInfo(2, qdrant.Distance_Euclid, 2)
	api.queryResp = []*qdrant.ScoredPoint{
		{Id: qdrant.NewIDNum(1), Score: 0.1},
		{Id: qdrant.NewIDNum(2), Score: 2.5},
	}

	results, err := a.Query(context.Background(), vectordb.QueryRequest{Collection: "geo", Vector: []float32{0, 0}, TopK: 2})
	require.NoError(t, err)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Equal(t, float32(-0.1), results[0].Score)
}

func TestQueryValidationMakesNoBackendCall(t *testing.T) {
	a, api := newTestAdapter(0)
	for _, req := range []vectordb.QueryRequest{
		{Collection: "docs", Vector: []float32{1}, TopK: 0},
		{Collection: "docs", Vector: nil, TopK: 1},
		{Collection: "docs", Vector: []float32{1}, TopK: 1, Filter: vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("score", 0.5)))},
	} {
		_, err := a.Query(context.Background(), req)
		assert.True(t, vectordb.IsValidationError(err), "%+v: %v", req, err)
	}
	assert.Equal(t, 0, api.callCount())
}

func TestQueryDimensionMismatchIsVectorOperationError(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["docs"] = collectionInfo(3, qdrant.Distance_Cosine, 0)

	_, err := a.Query(context.Background(), vectordb.QueryRequest{Collection: "docs", Vector: []float32{1, 0}, TopK: 1})
	assert.True(t, vectordb.IsVectorOperationError(err))
	assert.Empty(t, api.queries)
}

func TestQueryOnMissingCollection(t *testing.T) {
	a, _ := newTestAdapter(0)
	_, err := a.Query(context.Background(), vectordb.QueryRequest{Collection: "nope", Vector: []float32{1}, TopK: 1})
	assert.True(t, vectordb.IsVectorOperationError(err))
	assert.True(t, vectordb.IsCollectionNotFound(err))
}

func TestQueryPassesFilter(t *testing.T) {
	a, api := newTestAdapter(0)
	api.collections["docs"] = collectionInfo(1, qdrant.Distance_Cosine, 0)

	_, err := a.Query(context.Background(), vectordb.QueryRequest{
		Collection: "docs",
		Vector:     []float32{1},
		TopK:       1,
		Filter:     vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("genre", "jazz"))),
	})
	require.NoError(t, err)
	require.NotNil(t, api.queries[0].Filter)
	assert.Len(t, api.queries[0].Filter.Must, 1)
}

func TestBackendErrorTranslation(t *testing.T) {
	cases := []struct {
		name   string
		method string
		err    error
		call   func(*Adapter) error
		check  func(error) bool
	}{
		{
			"upsert invalid argument", "Upsert", status.Error(codes.InvalidArgument, "wrong vector dimension"),
			func(a *Adapter) error {
				return a.Upsert(context.Background(), vectordb.UpsertRequest{Collection: "docs", Records: []vectordb.Record{{ID: "1", Values: []float32{1}}}})
			},
			vectordb.IsVectorOperationError,
		},
		{
			"upsert unavailable", "Upsert", status.Error(codes.Unavailable, "connection refused"),
			func(a *Adapter) error {
				return a.Upsert(context.Background(), vectordb.UpsertRequest{Collection: "docs", Records: []vectordb.Record{{ID: "1", Values: []float32{1}}}})
			},
			vectordb.IsProviderError,
		},
		{
			"list unauthenticated", "ListCollections", status.Error(codes.Unauthenticated, "bad key"),
			func(a *Adapter) error { _, err := a.ListCollections(context.Background()); return err },
			vectordb.IsProviderError,
		},
		{
			"create invalid argument", "CreateCollection", status.Error(codes.InvalidArgument, "bad name"),
			func(a *Adapter) error {
				return a.CreateCollection(context.Background(), vectordb.CollectionSpec{Name: "docs", Dimension: 3})
			},
			vectordb.IsProviderError,
		},
		{
			"delete contents deadline", "Delete", context.DeadlineExceeded,
			func(a *Adapter) error { return a.DeleteContents(context.Background(), "docs") },
			vectordb.IsProviderError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, api := newTestAdapter(0)
			api.collections["docs"] = collectionInfo(1, qdrant.Distance_Cosine, 0)
			api.errs[tc.method] = tc.err

			err := tc.call(a)
			require.Error(t, err)
			assert.True(t, tc.check(err), "got %v", err)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCollectionLifecycle(t *testing.T) {
	a, api := newTestAdapter(0)
	ctx := context.Background()

	require.NoError(t, a.CreateCollection(ctx, vectordb.CollectionSpec{Name: "b-docs", Dimension: 4, Metric: vectordb.MetricDotProduct}))
	require.NoError(t, a.CreateCollection(ctx, vectordb.CollectionSpec{Name: "a-docs", Dimension: 4}))
	assert.Equal(t, qdrant.Distance_Dot, api.created[0].VectorsConfig.GetParams().GetDistance())
	assert.Equal(t, qdrant.Distance_Cosine, api.created[1].VectorsConfig.GetParams().GetDistance())

	names, err := a.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-docs", "b-docs"}, names)

	coll, err := a.GetCollection(ctx, "b-docs")
	require.NoError(t, err)
	assert.Equal(t, 4, coll.Dimension)
	assert.Equal(t, vectordb.MetricDotProduct, coll.Metric)
	assert.Equal(t, "Green", coll.Status)

	require.NoError(t, a.DeleteCollection(ctx, "b-docs"))
	_, err = a.GetCollection(ctx, "b-docs")
	assert.True(t, vectordb.IsProviderError(err))
	assert.True(t, vectordb.IsCollectionNotFound(err))
}

func TestCreateCollectionValidation(t *testing.T) {
	a, api := newTestAdapter(0)
	err := a.CreateCollection(context.Background(), vectordb.CollectionSpec{Name: "docs", Dimension: 0})
	assert.True(t, vectordb.IsValidationError(err))
	err = a.CreateCollection(context.Background(), vectordb.CollectionSpec{Name: "docs", Dimension: 2, Metric: "hamming"})
	assert.True(t, vectordb.IsValidationError(err))
	assert.Equal(t, 0, api.callCount())
}

func TestGetOrCreateCollection(t *testing.T) {
	a, api := newTestAdapter(0)
	ctx := context.Background()

	coll, err := a.GetOrCreateCollection(ctx, vectordb.CollectionSpec{Name: "docs", Dimension: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, coll.Dimension)
	require.Len(t, api.created, 1)

	coll, err = a.GetOrCreateCollection(ctx, vectordb.CollectionSpec{Name: "docs"})
	require.NoError(t, err)
	assert.Equal(t, 8, coll.Dimension)
	assert.Len(t, api.created, 1)

	_, err = a.GetOrCreateCollection(ctx, vectordb.CollectionSpec{Name: "other"})
	assert.True(t, vectordb.IsValidationError(err))
}

func TestGetOrCreateCollectionLosingCreateRace(t *testing.T) {
	api := &createRaceAPI{fakeAPI: newFakeAPI()}
	a := NewAdapter(api, &Config{}, nil)

	coll, err := a.GetOrCreateCollection(context.Background(), vectordb.CollectionSpec{Name: "docs", Dimension: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, coll.Dimension)
	assert.Empty(t, api.created)
	assert.Equal(t, []string{"CollectionExists", "CreateCollection", "CollectionExists", "GetCollectionInfo"}, api.calls)
}

func TestGetOrCreateCollectionCreateFailure(t *testing.T) {
	a, api := newTestAdapter(0)
	api.errs["CreateCollection"] = status.Error(codes.PermissionDenied, "read-only key")

	_, err := a.GetOrCreateCollection(context.Background(), vectordb.CollectionSpec{Name: "docs", Dimension: 4})
	assert.True(t, vectordb.IsProviderError(err))
	assert.ErrorIs(t, err, api.errs["CreateCollection"])
}

func TestDeleteSelectors(t *testing.T) {
	a, api := newTestAdapter(0)
	ctx := context.Background()

	require.NoError(t, a.Delete(ctx, "docs", []string{"doc-1", "17"}))
	ids := api.deletes[0].GetPoints().GetPoints().GetIds()
	require.Len(t, ids, 2)
	assert.Equal(t, uint64(17), ids[1].GetNum())

	require.NoError(t, a.DeleteContents(ctx, "docs"))
	assert.NotNil(t, api.deletes[1].GetPoints().GetFilter())

	err := a.Delete(ctx, "docs", nil)
	assert.True(t, vectordb.IsValidationError(err))
	assert.Len(t, api.deletes, 2)
}

func TestProviderAndClose(t *testing.T) {
	a, api := newTestAdapter(0)
	assert.Equal(t, "qdrant", a.Provider())
	require.NoError(t, a.Close())
	assert.Equal(t, []string{"Close"}, api.calls)
}
