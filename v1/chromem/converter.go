package chromem

import (
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func toDocuments(records []vectordb.Record) []chromem.Document {
	docs := make([]chromem.Document, 0, len(records))
	for _, r := range records {
		var meta map[string]string
		if len(r.Metadata) > 0 {
			meta = make(map[string]string, len(r.Metadata))
			for k, v := range r.Metadata {
				meta[k] = formatScalar(v)
			}
		}
		// chromem normalizes embeddings in place
		values := make([]float32, len(r.Values))
		copy(values, r.Values)
		docs = append(docs, chromem.Document{ID: r.ID, Metadata: meta, Embedding: values})
	}
	return docs
}

// formatScalar renders a validated metadata value the way it is stored.
func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

func toResults(res []chromem.Result) []vectordb.QueryResult {
	out := make([]vectordb.QueryResult, 0, len(res))
	for _, r := range res {
		var meta map[string]any
		if len(r.Metadata) > 0 {
			meta = make(map[string]any, len(r.Metadata))
			for k, v := range r.Metadata {
				meta[k] = v
			}
		}
		out = append(out, vectordb.QueryResult{ID: r.ID, Score: r.Similarity, Metadata: meta})
	}
	return out
}

// toWhere converts a filter into chromem's exact-match metadata map. Only
// Must clauses of exact matches on strings, bools and integers can be
// expressed.
func toWhere(fs *vectordb.FilterSet) (map[string]string, error) {
	if fs.IsEmpty() {
		return nil, nil
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		return nil, unsupportedFilter("should clauses are not supported")
	}
	if fs.MustNot != nil && len(fs.MustNot.Conditions) > 0 {
		return nil, unsupportedFilter("mustNot clauses are not supported")
	}

	where := make(map[string]string, len(fs.Must.Conditions))
	for _, c := range fs.Must.Conditions {
		m, ok := c.(*vectordb.MatchCondition)
		if !ok {
			return nil, unsupportedFilter("condition %T on %q is not supported, only exact matches are", c, c.FieldName())
		}
		switch m.Value.(type) {
		case float32, float64:
			return nil, unsupportedFilter("exact match on %q needs a string, bool or integer value, got %v", m.Field, m.Value)
		}
		val := formatScalar(m.Value)
		if prev, dup := where[m.Field]; dup && prev != val {
			return nil, unsupportedFilter("conflicting matches on %q", m.Field)
		}
		where[m.Field] = val
	}
	return where, nil
}

func unsupportedFilter(format string, args ...any) error {
	return vectordb.ValidationErrorf("query", format, args...).WithProvider(ProviderName)
}
