package qdrant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// translateError maps a go-client error into the taxonomy.
//
// For data operations (dataPlane) a request the server rejected as malformed
// (wrong dimension, bad filter, missing collection) becomes a
// VectorOperationError. Everything else, and every failure of a collection
// operation, is a ProviderError. NotFound always carries
// vectordb.ErrCollectionNotFound.
func translateError(op string, err error, dataPlane bool) error {
	if err == nil {
		return nil
	}
	if e, ok := vectordb.AsError(err); ok {
		return e.WithProvider(ProviderName)
	}

	out := &vectordb.Error{Kind: vectordb.KindProvider, Op: op, Provider: ProviderName, Err: err}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		out.Message = "request aborted"
		return out
	}

	st, ok := status.FromError(err)
	if !ok {
		return out
	}

	switch st.Code() {
	case codes.NotFound:
		out.Err = fmt.Errorf("%w: %w", vectordb.ErrCollectionNotFound, err)
		if dataPlane {
			out.Kind = vectordb.KindVectorOperation
		}
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange,
		codes.ResourceExhausted, codes.AlreadyExists:
		if dataPlane {
			out.Kind = vectordb.KindVectorOperation
		}
	}
	return out
}
