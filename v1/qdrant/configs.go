package qdrant

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// Environment variables consulted by Resolve for fields left empty.
const (
	EnvEndpoint = "QDRANT_ENDPOINT"
	EnvPort     = "QDRANT_PORT"
	EnvAPIKey   = "QDRANT_API_KEY"
)

const (
	defaultEndpoint  = "localhost"
	defaultPort      = 6334
	defaultTimeout   = 5 * time.Second
	defaultBatchSize = 200 // points per upsert request
)

// Config holds the settings of the hosted Qdrant backend.
//
// Endpoint, Port and APIKey fall back to QDRANT_ENDPOINT, QDRANT_PORT and
// QDRANT_API_KEY when left empty. The API key is required unless
// AllowAnonymous is set (local development instances run without one).
type Config struct {
	// Endpoint is the Qdrant host, without scheme or port.
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// Port is the gRPC port, 6334 by default.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// APIKey authenticates every request.
	APIKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// UseTLS enables TLS on the gRPC connection. Qdrant Cloud requires it.
	UseTLS bool `yaml:"use_tls" env:"QDRANT_USE_TLS"`

	// AllowAnonymous skips the API key requirement.
	AllowAnonymous bool `yaml:"allow_anonymous" env:"QDRANT_ALLOW_ANONYMOUS"`

	// Timeout bounds the health check performed at construction.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// CheckCompatibility compares client and server versions on connect.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`

	// BatchSize is the number of points sent per upsert request.
	BatchSize int `yaml:"batch_size" env:"QDRANT_BATCH_SIZE"`
}

// DefaultConfig returns a Config whose connection fields are resolved from
// the environment at construction time.
func DefaultConfig() *Config {
	return &Config{
		Timeout:            defaultTimeout,
		CheckCompatibility: true,
		BatchSize:          defaultBatchSize,
	}
}

// FromEndpoint returns DefaultConfig with Endpoint set.
func FromEndpoint(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	return cfg
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

func (c *Config) WithTLS(enabled bool) *Config {
	c.UseTLS = enabled
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithBatchSize(n int) *Config {
	c.BatchSize = n
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}

// WithAnonymousAccess allows connecting without an API key.
func (c *Config) WithAnonymousAccess() *Config {
	c.AllowAnonymous = true
	return c
}

// Resolve returns a copy of c with empty fields filled from lookup (usually
// os.LookupEnv) and defaults. A missing API key is a ConfigurationError that
// names QDRANT_API_KEY.
func (c Config) Resolve(lookup vectordb.LookupFunc) (*Config, error) {
	const op = "init"
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if c.Endpoint == "" {
		c.Endpoint = get(EnvEndpoint)
	}
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}

	if c.Port == 0 {
		if raw := get(EnvPort); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil || p <= 0 || p > 65535 {
				return nil, vectordb.ConfigurationErrorf(op, "invalid %s %q: must be a port number", EnvPort, raw).WithProvider(ProviderName)
			}
			c.Port = p
		}
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Port < 0 || c.Port > 65535 {
		return nil, vectordb.ConfigurationErrorf(op, "invalid port %d", c.Port).WithProvider(ProviderName)
	}

	if c.APIKey == "" {
		c.APIKey = get(EnvAPIKey)
	}
	if c.APIKey == "" && !c.AllowAnonymous {
		return nil, vectordb.ConfigurationErrorf(op,
			"Qdrant API key not found: set Config.APIKey or the %s environment variable", EnvAPIKey).WithProvider(ProviderName)
	}

	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	return &c, nil
}
