package qdrant

import (
	"context"
	"os"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/bevec/v1/logger"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// FXModule provides a connected *Adapter, also as vectordb.Service, for
// applications that use Qdrant directly without the bevec facade.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Supply(qdrant.FromEndpoint("qdrant.internal").WithAPIKey(key)),
//	)
//
// A *qdrant.Config and a logger.Logger must be available in the container.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewAdapterWithDI,
		func(a *Adapter) vectordb.Service { return a },
	),
	fx.Invoke(RegisterAdapterLifecycle),
)

// AdapterParams groups the dependencies of NewAdapterWithDI.
type AdapterParams struct {
	fx.In

	Config *Config
	Logger logger.Logger
}

// NewAdapterWithDI opens an Adapter from the environment-aware config.
func NewAdapterWithDI(p AdapterParams) (*Adapter, error) {
	return Open(context.Background(), p.Config, os.LookupEnv, p.Logger)
}

// RegisterAdapterLifecycle closes the connection on shutdown.
func RegisterAdapterLifecycle(lc fx.Lifecycle, a *Adapter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return a.Close()
		},
	})
}
