// Package metrics exports bevec operation metrics to Prometheus.
//
// *Metrics implements observability.Observer, so it plugs straight into the
// facade:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "indexer"})
//	client, err := bevec.InitQdrant(ctx, qdrant.DefaultConfig(), bevec.WithObserver(m))
//
// Every facade call then updates:
//
//	bevec_operations_total{provider, operation, outcome}
//	bevec_operation_duration_seconds{provider, operation}
//	bevec_records_total{provider, operation}
//
// outcome is "ok" or the error kind: validation_error, configuration_error,
// vector_operation_error, provider_error.
//
// With fx, metrics.FXModule provides the Observer and manages the /metrics
// HTTP server lifecycle.
package metrics
