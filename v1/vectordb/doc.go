// Package vectordb defines the backend-neutral contract of bevec.
//
// # Overview
//
// Every vector database adapter implements [Service]. The package also owns
// the shared data types ([Record], [QueryResult], [Collection],
// [CollectionSpec]), the metadata filter model ([FilterSet]), the input
// validators adapters run before touching a backend, and the error taxonomy.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                     bevec.Client facade                     │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                      vectordb.Service                       │
//	│        (contract + validation + error taxonomy)             │
//	└──────────────────────────┬──────────────────────────────────┘
//	                           │
//	             ┌─────────────┴─────────────┐
//	             ▼                           ▼
//	     ┌───────────────┐           ┌────────────────┐
//	     │ qdrant.Adapter│           │chromem.Adapter │
//	     │   (hosted)    │           │  (embedded)    │
//	     └───────────────┘           └────────────────┘
//
// # Errors
//
// All errors are *[Error] values with one of four kinds. Use errors.Is with
// the sentinels or the Is* helpers:
//
//	if err := svc.Upsert(ctx, req); err != nil {
//	    switch {
//	    case vectordb.IsValidationError(err):
//	        // bad input, nothing was sent
//	    case vectordb.IsVectorOperationError(err):
//	        // the backend rejected the data
//	    case vectordb.IsProviderError(err):
//	        // the backend is unhealthy, retry later
//	    }
//	}
//
// ErrBeVec matches every error of the taxonomy.
//
// # Validation
//
// [ValidateRecords] and [ValidateQuery] run before any backend call. A batch
// with one bad record is rejected as a whole and nothing is written.
//
// # Filters
//
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(
//	        vectordb.NewMatch("genre", "jazz"),
//	        vectordb.NewNumericRange("year", vectordb.NumericRange{Gte: &from}),
//	    ),
//	    vectordb.MustNot(vectordb.NewIsNull("label")),
//	)
//
// Filters also decode from JSON with [ParseFilterSet]; the condition type is
// detected from its keys (equalTo, anyOf, noneOf, greaterThan..., after...,
// isNull, isEmpty). Adapters reject conditions their backend cannot express.
//
// # Testing
//
// [MockService] is a gomock mock of [Service]:
//
//	ctrl := gomock.NewController(t)
//	svc := vectordb.NewMockService(ctrl)
//	svc.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil)
package vectordb
