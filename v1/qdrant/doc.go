// Package qdrant is the hosted backend of bevec, built on the official
// Qdrant Go client (gRPC).
//
// # Core Features
//
//   - Config with YAML tags, environment fallbacks and builder methods
//   - Health check on construction
//   - [Adapter] implementing [vectordb.Service]
//   - Batched upserts with a configurable batch size
//   - Any string works as a record ID
//   - Metadata filters translated to Qdrant conditions
//   - gRPC status codes mapped onto the bevec error taxonomy
//
// # Configuration
//
// Empty connection fields are resolved when the client is opened:
//
//	QDRANT_ENDPOINT   host, default "localhost"
//	QDRANT_PORT       gRPC port, default 6334
//	QDRANT_API_KEY    required unless Config.AllowAnonymous is set
//
// A missing key fails construction with a ConfigurationError that names
// QDRANT_API_KEY.
//
// # Basic Usage
//
//	cfg := qdrant.FromEndpoint("xyz.eu-central.aws.cloud.qdrant.io").
//	    WithAPIKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTLS(true)
//
//	db, err := qdrant.Open(ctx, cfg, os.LookupEnv, log)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	err = db.CreateCollection(ctx, vectordb.CollectionSpec{Name: "docs", Dimension: 768})
//	err = db.Upsert(ctx, vectordb.UpsertRequest{Collection: "docs", Records: records})
//	results, err := db.Query(ctx, vectordb.QueryRequest{Collection: "docs", Vector: vec, TopK: 5})
//
// Most applications go through the bevec facade instead (bevec.InitQdrant).
//
// # Record IDs
//
// Qdrant point IDs are UUIDs or unsigned integers. Canonical forms of either
// are stored as-is. Any other string is mapped to a deterministic UUIDv5 and
// the original is kept in the payload under "_bevec_id", which query results
// strip again. That key is therefore reserved in metadata.
//
// # Scores
//
// Results are ordered by descending score. For euclidean collections Qdrant
// reports distances, which are negated so that higher still means closer.
//
// # Metadata
//
// Integers come back as int64 and floats as float64.
//
// # Errors
//
// Failures of collection management are ProviderErrors. For upsert, query
// and delete, requests Qdrant rejects as invalid (dimension mismatch,
// missing collection) are VectorOperationErrors, transport and auth failures
// are ProviderErrors. Missing collections also match
// vectordb.ErrCollectionNotFound.
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    fx.Supply(qdrant.DefaultConfig()),
//	    fx.Invoke(func(db vectordb.Service) { ... }),
//	)
package qdrant
