package tracer

import (
	"context"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/bevec/v1/logger"
)

// FXModule provides *Tracer and its trace.TracerProvider, which
// bevec.FXModule picks up, and shuts the provider down on stop.
//
// A tracer.Config and a logger.Logger must be available in the container.
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(cfg Config, log logger.Logger) (*Tracer, error) { return NewClient(cfg, log) },
		func(t *Tracer) oteltrace.TracerProvider { return t.Provider() },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes and stops the tracer provider on shutdown.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.logger != nil {
				tracer.logger.Info("shutting down tracer", nil)
			}
			return tracer.Shutdown(ctx)
		},
	})
}
