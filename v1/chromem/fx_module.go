package chromem

import (
	"context"
	"os"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/bevec/v1/logger"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// FXModule provides an open *Adapter, also as vectordb.Service.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    chromem.FXModule,
//	    fx.Supply(chromem.FromPath("/var/lib/app/vectors")),
//	)
//
// A *chromem.Config and a logger.Logger must be available in the container.
var FXModule = fx.Module("chromem",
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

// NewAdapterWithDI opens the database described by the injected config.
func NewAdapterWithDI(p AdapterParams) (*Adapter, error) {
	return Open(context.Background(), p.Config, os.LookupEnv, p.Logger)
}

// RegisterAdapterLifecycle closes the adapter on shutdown.
func RegisterAdapterLifecycle(lc fx.Lifecycle, a *Adapter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return a.Close()
		},
	})
}
