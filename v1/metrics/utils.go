package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/bevec/v1/observability"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

var _ observability.Observer = (*Metrics)(nil)

// ObserveOperation records one finished bevec operation.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	m.operationsTotal.WithLabelValues(op.Provider, op.Operation, Outcome(op.Error)).Inc()
	m.operationDuration.WithLabelValues(op.Provider, op.Operation).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		m.recordsTotal.WithLabelValues(op.Provider, op.Operation).Add(float64(op.Size))
	}
}

// Outcome maps an operation error to the "outcome" label value.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch vectordb.KindOf(err) {
	case vectordb.KindValidation:
		return "validation_error"
	case vectordb.KindConfiguration:
		return "configuration_error"
	case vectordb.KindVectorOperation:
		return "vector_operation_error"
	}
	return "provider_error"
}

// WriteSummary writes one line per operations_total series, e.g.
// "provider=chromem operation=upsert outcome=ok 2", sorted.
func (m *Metrics) WriteSummary(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		if !strings.HasSuffix(mf.GetName(), "bevec_operations_total") {
			continue
		}
		for _, metric := range mf.GetMetric() {
			var b strings.Builder
			for _, label := range metric.GetLabel() {
				if label.GetName() == "service" {
					continue
				}
				fmt.Fprintf(&b, "%s=%s ", label.GetName(), label.GetValue())
			}
			fmt.Fprintf(&b, "%g", metric.GetCounter().GetValue())
			lines = append(lines, b.String())
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CreateCounter creates and registers an extra CounterVec on this registry.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec("", name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
