package qdrant

import (
	"context"
	"sync"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fakeAPI is an in-memory stand-in for *qdrant.Client that records calls.
type fakeAPI struct {
	mu          sync.Mutex
	calls       []string
	collections map[string]*qdrant.CollectionInfo
	upserts     []*qdrant.UpsertPoints
	queries     []*qdrant.QueryPoints
	deletes     []*qdrant.DeletePoints
	created     []*qdrant.CreateCollection
	queryResp   []*qdrant.ScoredPoint
	errs        map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		collections: map[string]*qdrant.CollectionInfo{},
		errs:        map[string]error{},
	}
}

func collectionInfo(dim uint64, d qdrant.Distance, points uint64) *qdrant.CollectionInfo {
	return &qdrant.CollectionInfo{
		Status:      qdrant.CollectionStatus_Green,
		PointsCount: qdrant.PtrOf(points),
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{Size: dim, Distance: d}),
			},
		},
	}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) ListCollections(ctx context.Context) ([]string, error) {
	if err := f.record("ListCollections"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.collections))
	for n := range f.collections {
		names = append(names, n)
	}
	return names, nil
}

func (f *fakeAPI) CollectionExists(ctx context.Context, name string) (bool, error) {
	if err := f.record("CollectionExists"); err != nil {
		return false, err
	}
	_, ok := f.collections[name]
	return ok, nil
}

func (f *fakeAPI) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	if err := f.record("CreateCollection"); err != nil {
		return err
	}
	if _, ok := f.collections[req.CollectionName]; ok {
		return status.Errorf(codes.InvalidArgument, "Wrong input: Collection `%s` already exists!", req.CollectionName)
	}
	params := req.VectorsConfig.GetParams()
	f.created = append(f.created, req)
	f.collections[req.CollectionName] = collectionInfo(params.GetSize(), params.GetDistance(), 0)
	return nil
}

func (f *fakeAPI) DeleteCollection(ctx context.Context, name string) error {
	if err := f.record("DeleteCollection"); err != nil {
		return err
	}
	delete(f.collections, name)
	return nil
}

func (f *fakeAPI) GetCollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	if err := f.record("GetCollectionInfo"); err != nil {
		return nil, err
	}
	info, ok := f.collections[name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "Collection `%s` doesn't exist!", name)
	}
	return info, nil
}

func (f *fakeAPI) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	if err := f.record("Upsert"); err != nil {
		return nil, err
	}
	f.upserts = append(f.upserts, req)
	return &qdrant.UpdateResult{Status: qdrant.UpdateStatus_Completed}, nil
}

func (f *fakeAPI) Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	if err := f.record("Query"); err != nil {
		return nil, err
	}
	f.queries = append(f.queries, req)
	return f.queryResp, nil
}

func (f *fakeAPI) Delete(ctx context.Context, req *qdrant.DeletePoints) (*qdrant.UpdateResult, error) {
	if err := f.record("Delete"); err != nil {
		return nil, err
	}
	f.deletes = append(f.deletes, req)
	return &qdrant.UpdateResult{Status: qdrant.UpdateStatus_Completed}, nil
}

func (f *fakeAPI) Close() error {
	return f.record("Close")
}

// createRaceAPI reports a collection as missing once and creates it right
// after, so the adapter's own create loses against a concurrent creator.
type createRaceAPI struct {
	*fakeAPI
	raced bool
}

func (r *createRaceAPI) CollectionExists(ctx context.Context, name string) (bool, error) {
	if r.raced {
		return r.fakeAPI.CollectionExists(ctx, name)
	}
	r.raced = true
	if err := r.record("CollectionExists"); err != nil {
		return false, err
	}
	r.collections[name] = collectionInfo(4, qdrant.Distance_Cosine, 0)
	return false, nil
}
