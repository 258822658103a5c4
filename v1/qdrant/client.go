package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// ProviderName is the registry name of this backend.
const ProviderName = "qdrant"

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

// Open resolves cfg against lookup, connects, runs a health check and
// returns a ready Adapter. Configuration problems are ConfigurationErrors,
// an unreachable server is a ProviderError.
func Open(ctx context.Context, cfg *Config, lookup vectordb.LookupFunc, log Logger) (*Adapter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	resolved, err := cfg.Resolve(lookup)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(ctx, resolved, log)
	if err != nil {
		return nil, err
	}
	return NewAdapter(client.API(), resolved, log), nil
}

// Client owns the gRPC connection to Qdrant.
type Client struct {
	api *qdrant.Client
	cfg *Config
	log Logger
}

// NewClient connects with an already resolved cfg and verifies the server
// answers a health check within cfg.Timeout.
func NewClient(ctx context.Context, cfg *Config, log Logger) (*Client, error) {
	if log == nil {
		log = nopLogger{}
	}
	log.Info("connecting to qdrant", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     cfg.Port,
		"tls":      cfg.UseTLS,
	})

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   cfg.Port,
		APIKey:                 cfg.APIKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, &vectordb.Error{
			Kind:     vectordb.KindConfiguration,
			Op:       "init",
			Provider: ProviderName,
			Message:  "failed to create Qdrant client",
			Err:      err,
		}
	}

	c := &Client{api: api, cfg: cfg, log: log}
	if err := c.healthCheck(ctx); err != nil {
		_ = api.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) healthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return &vectordb.Error{
			Kind:     vectordb.KindProvider,
			Op:       "init",
			Provider: ProviderName,
			Message:  fmt.Sprintf("health check against %s:%d failed", c.cfg.Endpoint, c.cfg.Port),
			Err:      err,
		}
	}

	c.log.Info("qdrant health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// API exposes the underlying go-client for operations bevec does not cover.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}
