package chromem

import (
	"context"
	"errors"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// translateError maps a chromem-go error into the taxonomy. chromem only
// returns plain errors, so the kind follows from where the call came from:
// data-plane calls become VectorOperationErrors, collection management
// calls ProviderErrors.
func translateError(op string, err error, dataPlane bool) error {
	if err == nil {
		return nil
	}
	if e, ok := vectordb.AsError(err); ok {
		return e.WithProvider(ProviderName)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &vectordb.Error{Kind: vectordb.KindProvider, Op: op, Provider: ProviderName, Message: "request aborted", Err: err}
	}
	kind := vectordb.KindProvider
	if dataPlane {
		kind = vectordb.KindVectorOperation
	}
	return &vectordb.Error{Kind: kind, Op: op, Provider: ProviderName, Err: err}
}

func notFound(op, name string, dataPlane bool) error {
	kind := vectordb.KindProvider
	if dataPlane {
		kind = vectordb.KindVectorOperation
	}
	return &vectordb.Error{
		Kind:     kind,
		Op:       op,
		Provider: ProviderName,
		Message:  "collection " + name,
		Err:      vectordb.ErrCollectionNotFound,
	}
}
