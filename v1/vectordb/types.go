package vectordb

import (
	"fmt"
	"strings"
)

// DefaultTopK is the number of neighbours returned when a caller does not ask
// for a specific amount.
const DefaultTopK = 10

// Metric is the similarity function a collection is built with.
type Metric string

const (
	MetricCosine     Metric = "cosine"
	MetricEuclidean  Metric = "euclidean"
	MetricDotProduct Metric = "dotproduct"
)

// DefaultMetric is used when a CollectionSpec leaves Metric empty.
const DefaultMetric = MetricCosine

// Metrics lists every metric accepted by ValidateCollectionSpec.
func Metrics() []Metric {
	return []Metric{MetricCosine, MetricEuclidean, MetricDotProduct}
}

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	switch m {
	case MetricCosine, MetricEuclidean, MetricDotProduct:
		return true
	}
	return false
}

// ParseMetric turns user input such as "Cosine", "dot" or "l2" into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cosine", "cos":
		return MetricCosine, nil
	case "euclidean", "euclid", "l2":
		return MetricEuclidean, nil
	case "dotproduct", "dot", "dot_product", "ip":
		return MetricDotProduct, nil
	}
	return "", ValidationErrorf("parse_metric", "unsupported metric %q: must be one of %s", s, metricList())
}

func metricList() string {
	names := make([]string, 0, len(Metrics()))
	for _, m := range Metrics() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// Record is a single vector with its identifier and optional metadata.
// Metadata values must be scalars: string, bool, integer or float.
type Record struct {
	ID       string         `json:"id" yaml:"id"`
	Values   []float32      `json:"values" yaml:"values"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// QueryResult is one neighbour returned by Query. Higher Score means more similar.
type QueryResult struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Collection describes an existing collection (an "index" on some backends).
type Collection struct {
	// Name is the unique identifier of the collection
	Name string `json:"name"`

	// Dimension is the vector length, 0 when the backend does not report it
	Dimension int `json:"dimension"`

	// Metric is the similarity function the collection was built with
	Metric Metric `json:"metric"`

	// PointCount is the number of stored records
	PointCount uint64 `json:"pointCount"`

	// Status is the backend health of the collection (e.g. "Green"), if any
	Status string `json:"status,omitempty"`
}

// CollectionSpec describes a collection to create.
type CollectionSpec struct {
	Name      string `json:"name" yaml:"name"`
	Dimension int    `json:"dimension" yaml:"dimension"`
	Metric    Metric `json:"metric,omitempty" yaml:"metric,omitempty"`
}

// WithDefaults returns a copy of s with an empty Metric replaced by DefaultMetric.
func (s CollectionSpec) WithDefaults() CollectionSpec {
	if s.Metric == "" {
		s.Metric = DefaultMetric
	}
	return s
}

// UpsertRequest carries a batch of records for one collection.
type UpsertRequest struct {
	Collection string   `json:"collection"`
	Records    []Record `json:"records"`

	// Dimension, when > 0, is the expected length of every vector.
	// Otherwise only consistency inside the batch is checked.
	Dimension int `json:"dimension,omitempty"`
}

// QueryRequest is a single nearest-neighbour search.
type QueryRequest struct {
	Collection string     `json:"collection"`
	Vector     []float32  `json:"vector"`
	TopK       int        `json:"topK"`
	Filter     *FilterSet `json:"filter,omitempty"`

	// Dimension, when > 0, is the expected query vector length.
	Dimension int `json:"dimension,omitempty"`
}

func (r Record) String() string {
	return fmt.Sprintf("Record{ID: %q, Values: %d dims, Metadata: %d keys}", r.ID, len(r.Values), len(r.Metadata))
}
