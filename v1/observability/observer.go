// Package observability defines the hook bevec reports finished operations to.
//
// The facade calls ObserveOperation once per call, after the backend returned.
// metrics.Metrics implements Observer; tests usually use ObserverFunc.
package observability

import "time"

// OperationContext describes one finished operation.
type OperationContext struct {
	// Component is the reporting layer, "bevec" for the facade.
	Component string

	// Operation is the facade operation, e.g. "upsert" or "query".
	Operation string

	// Provider is the registry name of the backend.
	Provider string

	// Resource is the collection the operation targeted, empty for
	// operations that span all collections.
	Resource string

	Duration time.Duration

	// Error is the taxonomy error returned to the caller, nil on success.
	Error error

	// Size is the number of records sent (upsert, delete) or returned (query).
	Size int64

	Metadata map[string]interface{}
}

// Observer receives an OperationContext for every finished operation.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx OperationContext)

func (f ObserverFunc) ObserveOperation(ctx OperationContext) { f(ctx) }
