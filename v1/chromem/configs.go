package chromem

import (
	"os"
	"runtime"
	"strings"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// EnvPersistDirectory names the directory of the persistent store when
// Config.Path is empty.
const EnvPersistDirectory = "CHROMA_PERSIST_DIRECTORY"

const defaultPath = "./chroma_db"

// Config holds the settings of the embedded chromem-go backend.
type Config struct {
	// Path is the directory the database is persisted to. Falls back to
	// CHROMA_PERSIST_DIRECTORY, then ./chroma_db.
	Path string `yaml:"path" env:"CHROMA_PERSIST_DIRECTORY"`

	// Compress gzips the persisted documents.
	Compress bool `yaml:"compress" env:"CHROMEM_COMPRESS"`

	// InMemory keeps everything in memory and ignores Path.
	InMemory bool `yaml:"in_memory" env:"CHROMEM_IN_MEMORY"`

	// Concurrency bounds the goroutines used when adding documents.
	// Defaults to the number of CPUs.
	Concurrency int `yaml:"concurrency" env:"CHROMEM_CONCURRENCY"`
}

// DefaultConfig returns a persistent configuration whose path is resolved
// from the environment at construction time.
func DefaultConfig() *Config {
	return &Config{}
}

// FromPath returns a persistent configuration stored under path.
func FromPath(path string) *Config {
	return &Config{Path: path}
}

// InMemoryConfig returns a configuration that never touches the disk.
func InMemoryConfig() *Config {
	return &Config{InMemory: true}
}

func (c *Config) WithCompression(enabled bool) *Config {
	c.Compress = enabled
	return c
}

func (c *Config) WithConcurrency(n int) *Config {
	c.Concurrency = n
	return c
}

// Resolve returns a copy of c with empty fields filled from lookup (usually
// os.LookupEnv) and defaults.
func (c Config) Resolve(lookup vectordb.LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if !c.InMemory {
		if c.Path == "" {
			if v, ok := lookup(EnvPersistDirectory); ok {
				c.Path = strings.TrimSpace(v)
			}
		}
		if c.Path == "" {
			c.Path = defaultPath
		}
	}
	if c.Concurrency < 0 {
		return nil, vectordb.ConfigurationErrorf("init", "concurrency must not be negative, got %d", c.Concurrency).WithProvider(ProviderName)
	}
	if c.Concurrency == 0 {
		c.Concurrency = runtime.NumCPU()
	}
	return &c, nil
}
