package qdrant

import (
	"context"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// API is the part of *qdrant.Client the adapter calls. Tests substitute a fake.
type API interface {
	ListCollections(ctx context.Context) ([]string, error)
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	DeleteCollection(ctx context.Context, collectionName string) error
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Delete(ctx context.Context, request *qdrant.DeletePoints) (*qdrant.UpdateResult, error)
	Close() error
}

var (
	_ API              = (*qdrant.Client)(nil)
	_ vectordb.Service = (*Adapter)(nil)
)

// Adapter implements vectordb.Service on top of Qdrant.
//
// Record IDs that are neither UUIDs nor unsigned integers are mapped to a
// deterministic UUIDv5 and the original ID is kept in the payload, so any
// string works as an ID and round-trips unchanged.
type Adapter struct {
	api       API
	batchSize int
	log       Logger
}

// NewAdapter wraps an API. cfg only contributes BatchSize and may be nil.
func NewAdapter(api API, cfg *Config, log Logger) *Adapter {
	if log == nil {
		log = nopLogger{}
	}
	batch := defaultBatchSize
	if cfg != nil && cfg.BatchSize > 0 {
		batch = cfg.BatchSize
	}
	return &Adapter{api: api, batchSize: batch, log: log}
}

// Provider returns "qdrant".
func (a *Adapter) Provider() string {
	return ProviderName
}

// Close closes the connection.
func (a *Adapter) Close() error {
	if err := a.api.Close(); err != nil {
		return translateError("close", err, false)
	}
	return nil
}
