package bevec

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/bevec/v1/logger"
	"github.com/Aleph-Alpha/bevec/v1/observability"
)

// FXModule provides a *Client built from the bevec Config in the container
// and closes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    bevec.FXModule,
//	    fx.Supply(logger.Config{Level: logger.Info}),
//	    fx.Supply(metrics.Config{Address: ":9090"}),
//	    fx.Supply(bevec.Config{Provider: "chromem"}),
//	)
//
// The logger, observer and tracer provider are optional and picked up when
// present.
var FXModule = fx.Module("bevec",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterClientLifecycle),
)

// ClientParams groups the dependencies of NewClientWithDI.
type ClientParams struct {
	fx.In

	Config         Config
	Logger         logger.Logger          `optional:"true"`
	Observer       observability.Observer `optional:"true"`
	TracerProvider trace.TracerProvider   `optional:"true"`
}

// NewClientWithDI initializes the client from injected dependencies.
func NewClientWithDI(p ClientParams) (*Client, error) {
	var opts []Option
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.TracerProvider != nil {
		opts = append(opts, WithTracerProvider(p.TracerProvider))
	}
	return Init(context.Background(), p.Config, opts...)
}

// RegisterClientLifecycle closes the client when the application stops.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client, p ClientParams) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.Info("closing vector database client", nil, map[string]interface{}{"provider": client.Provider()})
			}
			return client.Close()
		},
	})
}
