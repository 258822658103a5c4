// Package bevec is a unified client for vector databases.
//
// One Client covers collection management, upsert and nearest-neighbour
// query on every registered backend. Switching from the hosted Qdrant
// backend to the embedded chromem one is a configuration change:
//
//	client, err := bevec.Init(ctx, bevec.Config{Provider: "chromem"})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	coll, err := client.GetOrCreateCollection(ctx, "docs", bevec.WithDimension(3))
//	if err != nil {
//	    return err
//	}
//	err = coll.Upsert(ctx, []vectordb.Record{
//	    {ID: "a", Values: []float32{0.1, 0.2, 0.3}, Metadata: map[string]any{"lang": "en"}},
//	})
//	results, err := coll.Query(ctx, []float32{0.1, 0.2, 0.3}, bevec.WithTopK(5))
//
// # Providers
//
// Backends are looked up by name in a Registry. The default registry knows
// "qdrant", "chromem" and its alias "chroma". Custom backends implement
// vectordb.Service and are registered with a Factory:
//
//	reg := bevec.NewDefaultRegistry()
//	reg.Register("memory", func(ctx context.Context, cfg bevec.Config, log bevec.Logger) (vectordb.Service, error) {
//	    return newMemoryStore(cfg.Options), nil
//	})
//	client, err := bevec.Init(ctx, bevec.Config{Provider: "memory"}, bevec.WithRegistry(reg))
//
// Registering a name twice replaces the earlier factory.
//
// # Errors
//
// Every error returned by a Client belongs to the vectordb taxonomy. Errors
// of custom backends that do not are reported as provider errors.
//
// # Observability
//
// WithLogger, WithObserver and WithTracerProvider add a debug log line, an
// observability.OperationContext and a "bevec.<operation>" span per call.
// FXModule wires all three from the container when present.
package bevec
