package vectordb

import (
	"math"
	"strings"
	"unicode"
)

// MaxCollectionNameLength bounds collection names on every backend.
const MaxCollectionNameLength = 255

// LookupFunc resolves environment-style keys. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ValidateCollectionName rejects empty names, surrounding whitespace, path
// separators and control characters.
func ValidateCollectionName(op, name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationErrorf(op, "collection name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return ValidationErrorf(op, "collection name %q has leading or trailing whitespace", name)
	}
	if len(name) > MaxCollectionNameLength {
		return ValidationErrorf(op, "collection name is %d bytes long, limit is %d", len(name), MaxCollectionNameLength)
	}
	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return ValidationErrorf(op, "collection name %q contains invalid character %q", name, r)
		}
	}
	return nil
}

// ValidateCollectionSpec checks a spec before a collection is created.
// An empty Metric is accepted and means DefaultMetric.
func ValidateCollectionSpec(spec CollectionSpec) error {
	const op = "create_collection"
	if err := ValidateCollectionName(op, spec.Name); err != nil {
		return err
	}
	if spec.Dimension < 1 {
		return ValidationErrorf(op, "dimension must be greater than 0, got %d", spec.Dimension)
	}
	if spec.Metric != "" && !spec.Metric.Valid() {
		return ValidationErrorf(op, "unsupported metric %q: must be one of %s", spec.Metric, metricList())
	}
	return nil
}

// ValidateUpsert checks the collection name and every record of the batch.
func ValidateUpsert(req UpsertRequest) error {
	if err := ValidateCollectionName("upsert", req.Collection); err != nil {
		return err
	}
	return ValidateRecords(req.Records, req.Dimension)
}

// ValidateRecords checks a batch of records. The first offending record
// fails the whole batch. With dimension <= 0 the first record's length
// becomes the reference for the rest of the batch.
func ValidateRecords(records []Record, dimension int) error {
	const op = "upsert"
	if len(records) == 0 {
		return ValidationErrorf(op, "records list cannot be empty")
	}

	seen := make(map[string]int, len(records))
	expected := dimension
	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			return ValidationErrorf(op, "record at index %d has an empty id", i)
		}
		if first, dup := seen[r.ID]; dup {
			return ValidationErrorf(op, "record at index %d repeats id %q from index %d", i, r.ID, first)
		}
		seen[r.ID] = i

		if len(r.Values) == 0 {
			return ValidationErrorf(op, "record %q at index %d has no values", r.ID, i)
		}
		if j, ok := firstNonFinite(r.Values); ok {
			return ValidationErrorf(op, "record %q at index %d has a non-finite value at position %d", r.ID, i, j)
		}
		if expected <= 0 {
			expected = len(r.Values)
		} else if len(r.Values) != expected {
			return ValidationErrorf(op, "record %q at index %d has %d values, expected %d", r.ID, i, len(r.Values), expected)
		}

		for k, v := range r.Metadata {
			if k == "" {
				return ValidationErrorf(op, "record %q at index %d has an empty metadata key", r.ID, i)
			}
			if !IsScalar(v) {
				return ValidationErrorf(op, "record %q at index %d has non-scalar metadata value for key %q (%T)", r.ID, i, k, v)
			}
		}
	}
	return nil
}

// ValidateQuery checks a query before it reaches a backend.
func ValidateQuery(req QueryRequest) error {
	const op = "query"
	if err := ValidateCollectionName(op, req.Collection); err != nil {
		return err
	}
	if len(req.Vector) == 0 {
		return ValidationErrorf(op, "query vector cannot be empty")
	}
	if j, ok := firstNonFinite(req.Vector); ok {
		return ValidationErrorf(op, "query vector has a non-finite value at position %d", j)
	}
	if req.Dimension > 0 && len(req.Vector) != req.Dimension {
		return ValidationErrorf(op, "query vector has %d values, expected %d", len(req.Vector), req.Dimension)
	}
	if req.TopK < 1 {
		return ValidationErrorf(op, "top_k must be greater than 0, got %d", req.TopK)
	}
	if req.Filter != nil {
		if err := req.Filter.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateIDs checks the ID list of a delete call.
func ValidateIDs(op string, ids []string) error {
	if len(ids) == 0 {
		return ValidationErrorf(op, "ids list cannot be empty")
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ValidationErrorf(op, "id at index %d is empty", i)
		}
	}
	return nil
}

// IsScalar reports whether v is a metadata value every backend can store.
func IsScalar(v any) bool {
	switch x := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	}
	return false
}

// IsZeroVector reports whether every component of v is zero.
func IsZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func firstNonFinite(v []float32) (int, bool) {
	for i, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i, true
		}
	}
	return 0, false
}
