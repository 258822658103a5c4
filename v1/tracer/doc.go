// Package tracer sets up OpenTelemetry tracing for bevec.
//
// The facade opens one span per operation ("bevec.upsert", "bevec.query",
// ...) on whatever trace.TracerProvider it is given. This package builds that
// provider, optionally exporting over OTLP/HTTP:
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "indexer",
//		AppEnv:       "staging",
//		EnableExport: true,
//		Endpoint:     "otel-collector:4318",
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(ctx)
//
//	client, err := bevec.Init(ctx, cfg, bevec.WithTracerProvider(tr.Provider()))
//
// RecordErrorOnSpan, SetAttributes and Attributes are small helpers shared
// with the facade.
//
// With fx, tracer.FXModule provides both *Tracer and trace.TracerProvider.
package tracer
