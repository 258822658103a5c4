package vectordb

import "context"

//go:generate mockgen -source=interface.go -destination=mock_service.go -package=vectordb

// Service is the contract every vector database adapter implements.
// The facade in package bevec only ever talks to a Service, so switching
// between a hosted backend and an embedded one never touches call sites.
//
// Adapters validate their inputs with the helpers in this package before any
// backend call is made, and every error they return belongs to the taxonomy
// defined in errors.go.
//
// Example usage:
//
//	func NewIndexer(db vectordb.Service) *Indexer {
//	    return &Indexer{db: db}
//	}
//
//	// Works with any implementation:
//	// - qdrant.Open(ctx, cfg, lookup, log)
//	// - chromem.Open(ctx, cfg, lookup, log)
type Service interface {
	// Provider returns the registry name of the backend ("qdrant", "chromem", ...).
	Provider() string

	// ListCollections returns the names of all collections, sorted.
	ListCollections(ctx context.Context) ([]string, error)

	// CreateCollection creates a new collection. The CollectionSpec is validated first.
	CreateCollection(ctx context.Context, spec CollectionSpec) error

	// DeleteCollection removes a collection and everything in it.
	DeleteCollection(ctx context.Context, name string) error

	// GetCollection returns metadata about an existing collection.
	// Missing collections yield an error matching ErrCollectionNotFound.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// GetOrCreateCollection returns the collection, creating it from spec
	// when it does not exist yet. Safe to call repeatedly.
	GetOrCreateCollection(ctx context.Context, spec CollectionSpec) (*Collection, error)

	// Upsert inserts or replaces records. The whole batch is validated before
	// anything is sent; one bad record rejects the batch.
	Upsert(ctx context.Context, req UpsertRequest) error

	// Query returns up to TopK nearest neighbours ordered by descending score.
	Query(ctx context.Context, req QueryRequest) ([]QueryResult, error)

	// Delete removes records by ID. Unknown IDs are ignored.
	Delete(ctx context.Context, collection string, ids []string) error

	// DeleteContents removes every record but keeps the collection.
	DeleteContents(ctx context.Context, collection string) error

	// Close releases the backend connection.
	Close() error
}
