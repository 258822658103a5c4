package bevec

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Aleph-Alpha/bevec/v1/chromem"
	"github.com/Aleph-Alpha/bevec/v1/qdrant"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// Factory builds a ready backend from the facade configuration.
// Errors should belong to the vectordb taxonomy; anything else is reported
// as a ConfigurationError by Init.
type Factory func(ctx context.Context, cfg Config, log Logger) (vectordb.Service, error)

// Registry maps provider names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry creates a registry holding the built-in providers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(qdrant.ProviderName, qdrantFactory)
	r.Register(chromem.ProviderName, chromemFactory)
	r.Register("chroma", chromemFactory)
	return r
}

// Register adds or replaces the factory for name. The last registration
// wins. Names are case-insensitive. Register panics on an empty name or a
// nil factory.
func (r *Registry) Register(name string, factory Factory) {
	key := normalizeName(name)
	if key == "" {
		panic("bevec: Register with empty provider name")
	}
	if factory == nil {
		panic("bevec: Register with nil factory for " + key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[key] = factory
}

// Resolve returns the factory registered for name. Unknown names are a
// ConfigurationError listing the registered providers.
func (r *Registry) Resolve(name string) (Factory, error) {
	key := normalizeName(name)
	r.mu.RLock()
	f, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, vectordb.ConfigurationErrorf("init", "unsupported provider %q: registered providers are [%s]",
			key, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[normalizeName(name)]
	return ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var defaultRegistry = NewDefaultRegistry()

// DefaultRegistry returns the process-wide registry used by Init unless
// WithRegistry is given.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a provider to the default registry.
func Register(name string, factory Factory) {
	defaultRegistry.Register(name, factory)
}

// Providers lists the providers of the default registry.
func Providers() []string {
	return defaultRegistry.Names()
}

func qdrantFactory(ctx context.Context, cfg Config, log Logger) (vectordb.Service, error) {
	a, err := qdrant.Open(ctx, cfg.QdrantConfig(), cfg.Lookup, log)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func chromemFactory(ctx context.Context, cfg Config, log Logger) (vectordb.Service, error) {
	a, err := chromem.Open(ctx, cfg.ChromemConfig(), cfg.Lookup, log)
	if err != nil {
		return nil, err
	}
	return a, nil
}
