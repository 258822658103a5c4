package chromem

import (
	"context"
	"errors"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// ProviderName is the registry name of this backend.
const ProviderName = "chromem"

// spaceKey is stored in every collection's metadata, as Chroma does.
const spaceKey = "hnsw:space"

// Logger matches the subset of logger.Logger used by this package.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

var _ vectordb.Service = (*Adapter)(nil)

var errNoEmbedder = errors.New("chromem: documents must carry an embedding")

// noEmbedding stops chromem from falling back to its default remote
// embedding function. bevec always supplies vectors.
func noEmbedding(context.Context, string) ([]float32, error) {
	return nil, errNoEmbedder
}

// Adapter implements vectordb.Service on top of an embedded chromem-go DB.
//
// chromem does not expose the dimension of a collection, so the adapter
// records the dimension of collections it created or wrote to. Persistent
// databases keep that record in bevec_dimensions.yaml inside the database
// directory. Collections the adapter never saw report a dimension of 0
// until the first upsert.
type Adapter struct {
	db          *chromem.DB
	concurrency int
	log         Logger

	// mu serializes create/drop sequences and guards dims.
	mu   sync.Mutex
	dims map[string]int
	// dimsPath is where dims is persisted, empty for in-memory databases.
	dimsPath string
}

// Open resolves cfg against lookup and opens the database. An unusable
// path is a ConfigurationError.
func Open(ctx context.Context, cfg *Config, lookup vectordb.LookupFunc, log Logger) (*Adapter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = nopLogger{}
	}
	resolved, err := cfg.Resolve(lookup)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, translateError("init", err, false)
	}

	if resolved.InMemory {
		log.Info("opening in-memory chromem database", nil)
		return NewAdapter(chromem.NewDB(), resolved, log), nil
	}

	log.Info("opening persistent chromem database", nil, map[string]interface{}{
		"path":     resolved.Path,
		"compress": resolved.Compress,
	})
	db, err := chromem.NewPersistentDB(resolved.Path, resolved.Compress)
	if err != nil {
		return nil, &vectordb.Error{
			Kind:     vectordb.KindConfiguration,
			Op:       "init",
			Provider: ProviderName,
			Message:  "failed to open chromem database at " + resolved.Path,
			Err:      err,
		}
	}

	a := NewAdapter(db, resolved, log)
	a.dimsPath = dimensionsPath(resolved.Path)
	dims, err := loadDimensions(a.dimsPath)
	if err != nil {
		return nil, &vectordb.Error{
			Kind:     vectordb.KindConfiguration,
			Op:       "init",
			Provider: ProviderName,
			Message:  "failed to load collection dimensions",
			Err:      err,
		}
	}
	// drop entries of collections removed behind our back
	for name, dim := range dims {
		if db.GetCollection(name, noEmbedding) != nil && dim > 0 {
			a.dims[name] = dim
		}
	}
	return a, nil
}

// NewAdapter wraps an open DB. cfg only contributes Concurrency and may be nil.
func NewAdapter(db *chromem.DB, cfg *Config, log Logger) *Adapter {
	if log == nil {
		log = nopLogger{}
	}
	concurrency := 1
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	return &Adapter{db: db, concurrency: concurrency, log: log, dims: make(map[string]int)}
}

// Provider returns "chromem".
func (a *Adapter) Provider() string {
	return ProviderName
}

// Close is a no-op. Persistent databases are written on every change.
func (a *Adapter) Close() error {
	return nil
}

// DB exposes the underlying chromem database.
func (a *Adapter) DB() *chromem.DB {
	return a.db
}

func (a *Adapter) collection(name string) *chromem.Collection {
	return a.db.GetCollection(name, noEmbedding)
}

func (a *Adapter) dimension(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dims[name]
}

func (a *Adapter) rememberDimension(name string, dim int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dims[name] == 0 {
		a.dims[name] = dim
		a.persistDimensionsLocked()
	}
}
