package bevec

import (
	"github.com/Aleph-Alpha/bevec/v1/chromem"
	"github.com/Aleph-Alpha/bevec/v1/qdrant"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// Config selects a provider and carries its settings.
//
// Example YAML:
//
//	provider: qdrant
//	default_top_k: 10
//	qdrant:
//	  endpoint: my-cluster.cloud.qdrant.io
//	  use_tls: true
//	chromem:
//	  path: ./chroma_db
type Config struct {
	// Provider is the registry name of the backend, e.g. "qdrant" or "chromem".
	Provider string `yaml:"provider" env:"BEVEC_PROVIDER"`

	// Qdrant configures the hosted backend. nil means qdrant.DefaultConfig().
	Qdrant *qdrant.Config `yaml:"qdrant"`

	// Chromem configures the embedded backend. nil means chromem.DefaultConfig().
	Chromem *chromem.Config `yaml:"chromem"`

	// DefaultTopK is used by Query when no WithTopK option is given.
	// Zero means vectordb.DefaultTopK.
	DefaultTopK int `yaml:"default_top_k"`

	// Options carries settings for custom providers.
	Options map[string]any `yaml:"options"`

	// Lookup resolves environment fallbacks. nil means os.LookupEnv.
	Lookup vectordb.LookupFunc `yaml:"-"`
}

// QdrantConfig returns the Qdrant settings, or the defaults when unset.
func (c Config) QdrantConfig() *qdrant.Config {
	if c.Qdrant != nil {
		return c.Qdrant
	}
	return qdrant.DefaultConfig()
}

// ChromemConfig returns the chromem settings, or the defaults when unset.
func (c Config) ChromemConfig() *chromem.Config {
	if c.Chromem != nil {
		return c.Chromem
	}
	return chromem.DefaultConfig()
}

func (c Config) topK() int {
	if c.DefaultTopK > 0 {
		return c.DefaultTopK
	}
	return vectordb.DefaultTopK
}
