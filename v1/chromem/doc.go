// Package chromem is the embedded bevec backend, built on chromem-go.
//
// The database lives in the process and is persisted to a directory
// (CHROMA_PERSIST_DIRECTORY, ./chroma_db by default) or kept in memory:
//
//	svc, err := chromem.Open(ctx, chromem.FromPath("./vectors"), nil, log)
//	if err != nil {
//	    return err
//	}
//	err = svc.CreateCollection(ctx, vectordb.CollectionSpec{Name: "docs", Dimension: 384})
//
// # Limitations
//
// chromem ranks by cosine similarity only; other metrics are rejected at
// collection creation. Metadata is stored as strings, so query results carry
// string values. Filters support exact matches in the Must clause.
// Zero vectors are rejected because their cosine similarity is undefined.
//
// TopK larger than the collection is clamped to the collection size.
//
// chromem keeps no vector dimension per collection. The adapter records the
// ones it sees in bevec_dimensions.yaml inside the database directory.
package chromem
