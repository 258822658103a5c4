package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry, the bevec operation metrics and the
// HTTP server exposing them. It implements observability.Observer.
type Metrics struct {
	// Server exposes the /metrics endpoint.
	Server *http.Server

	// Registry is private to this instance so several clients in one process
	// never collide.
	Registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	recordsTotal      *prometheus.CounterVec
}

// NewMetrics creates the registry, registers the operation metrics (and the
// default collectors when enabled) and prepares, but does not start, the
// HTTP server.
//
// Registered metrics:
//   - bevec_operations_total{provider,operation,outcome}
//   - bevec_operation_duration_seconds{provider,operation}
//   - bevec_records_total{provider,operation}
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "indexer"})
//	client, err := bevec.Init(ctx, cfg, bevec.WithObserver(m))
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)
	}

	m := &Metrics{Registry: registry}
	m.operationsTotal = createCounterVec(cfg.Namespace, "bevec_operations_total",
		"Total number of bevec operations by outcome", []string{"provider", "operation", "outcome"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "bevec_operation_duration_seconds",
		"Duration of bevec operations in seconds", []string{"provider", "operation"}, prometheus.DefBuckets)
	m.recordsTotal = createCounterVec(cfg.Namespace, "bevec_records_total",
		"Records written, deleted or returned by bevec operations", []string{"provider", "operation"})

	registerer.MustRegister(m.operationsTotal, m.operationDuration, m.recordsTotal)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	addr := cfg.Address
	if addr == "" {
		addr = DefaultMetricsAddress
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.Server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return m
}
