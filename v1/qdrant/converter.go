package qdrant

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// OriginalIDKey is the payload key holding the caller's ID when it had to be
// mapped to a UUID. It is stripped from query results.
const OriginalIDKey = "_bevec_id"

// idNamespace seeds the UUIDv5 derived from non-UUID string IDs.
var idNamespace = uuid.MustParse("6f0b3c8e-4f57-5a47-9c8a-2b7d2f0e9a11")

// toPointID converts a record ID into a Qdrant point ID. Canonical UUIDs and
// unsigned integers are used as-is; anything else becomes a UUIDv5 and mapped
// reports true.
func toPointID(id string) (pid *qdrant.PointId, mapped bool) {
	if u, err := uuid.Parse(id); err == nil && u.String() == id {
		return qdrant.NewID(id), false
	}
	if n, err := strconv.ParseUint(id, 10, 64); err == nil && strconv.FormatUint(n, 10) == id {
		return qdrant.NewIDNum(n), false
	}
	return qdrant.NewID(uuid.NewSHA1(idNamespace, []byte(id)).String()), true
}

func toPointIDs(ids []string) []*qdrant.PointId {
	out := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pid, _ := toPointID(id)
		out = append(out, pid)
	}
	return out
}

// toPoints converts validated records. Metadata using OriginalIDKey is rejected.
func toPoints(records []vectordb.Record) ([]*qdrant.PointStruct, error) {
	points := make([]*qdrant.PointStruct, 0, len(records))
	for i, r := range records {
		payload := make(map[string]*qdrant.Value, len(r.Metadata)+1)
		for k, v := range r.Metadata {
			if k == OriginalIDKey {
				return nil, vectordb.ValidationErrorf("upsert", "record %q at index %d uses reserved metadata key %q", r.ID, i, OriginalIDKey)
			}
			val, err := toValue(v)
			if err != nil {
				return nil, vectordb.ValidationErrorf("upsert", "record %q at index %d, key %q: %v", r.ID, i, k, err)
			}
			payload[k] = val
		}

		pid, mapped := toPointID(r.ID)
		if mapped {
			payload[OriginalIDKey] = stringValue(r.ID)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      pid,
			Vectors: qdrant.NewVectors(r.Values...),
			Payload: payload,
		})
	}
	return points, nil
}

func stringValue(s string) *qdrant.Value {
	return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: s}}
}

func toValue(v any) (*qdrant.Value, error) {
	switch x := v.(type) {
	case string:
		return stringValue(x), nil
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: x}}, nil
	case float32:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: float64(x)}}, nil
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: x}}, nil
	}
	if i, ok := toInt64(v); ok {
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: i}}, nil
	}
	switch v.(type) {
	case uint, uint64:
		return nil, fmt.Errorf("integer %v does not fit into a signed 64-bit payload value", v)
	}
	return nil, fmt.Errorf("unsupported metadata value type %T", v)
}

// toInt64 converts every integer type that fits into int64.
func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}

// toMatchInt accepts integers and integral floats.
func toMatchInt(v any) (int64, bool) {
	if i, ok := toInt64(v); ok {
		return i, true
	}
	var f float64
	switch x := v.(type) {
	case float32:
		f = float64(x)
	case float64:
		f = x
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// ── Results ──────────────────────────────────────────────────────────────────

var (
	errNilPointID     = errors.New("nil point ID")
	errUnknownPointID = errors.New("unexpected point ID type")
)

func parseResults(resp []*qdrant.ScoredPoint, metric vectordb.Metric) ([]vectordb.QueryResult, error) {
	results := make([]vectordb.QueryResult, 0, len(resp))
	for _, r := range resp {
		meta := convertPayload(r.GetPayload())
		id, ok := meta[OriginalIDKey].(string)
		if ok {
			delete(meta, OriginalIDKey)
		} else {
			var err error
			if id, err = extractPointID(r.GetId()); err != nil {
				return nil, vectordb.VectorOperationErrorf("query", "%v", err).WithProvider(ProviderName)
			}
		}
		if len(meta) == 0 {
			meta = nil
		}

		score := r.GetScore()
		if metric == vectordb.MetricEuclidean || metric == metricManhattan {
			// distance metrics: smaller is closer
			score = -score
		}
		results = append(results, vectordb.QueryResult{ID: id, Score: score, Metadata: meta})
	}
	return results, nil
}

func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", errNilPointID
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	}
	return "", errUnknownPointID
}

func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	}
	return nil
}

// ── Collections ──────────────────────────────────────────────────────────────

const metricManhattan vectordb.Metric = "manhattan"

func toDistance(m vectordb.Metric) qdrant.Distance {
	switch m {
	case vectordb.MetricEuclidean:
		return qdrant.Distance_Euclid
	case vectordb.MetricDotProduct:
		return qdrant.Distance_Dot
	}
	return qdrant.Distance_Cosine
}

func fromDistance(d qdrant.Distance) vectordb.Metric {
	switch d {
	case qdrant.Distance_Cosine:
		return vectordb.MetricCosine
	case qdrant.Distance_Euclid:
		return vectordb.MetricEuclidean
	case qdrant.Distance_Dot:
		return vectordb.MetricDotProduct
	case qdrant.Distance_Manhattan:
		return metricManhattan
	}
	return ""
}

// toCollection flattens the nested CollectionInfo. Only single unnamed
// vector configs report a dimension and metric.
func toCollection(name string, info *qdrant.CollectionInfo) *vectordb.Collection {
	c := &vectordb.Collection{
		Name:       name,
		Status:     info.GetStatus().String(),
		PointCount: info.GetPointsCount(),
	}
	if params, ok := info.GetConfig().GetParams().GetVectorsConfig().GetConfig().(*qdrant.VectorsConfig_Params); ok && params.Params != nil {
		c.Dimension = int(params.Params.GetSize())
		c.Metric = fromDistance(params.Params.GetDistance())
	}
	return c
}

// ── Filters ──────────────────────────────────────────────────────────────────

// convertFilterSet translates a validated FilterSet. nil or empty sets yield
// a nil filter.
func convertFilterSet(fs *vectordb.FilterSet) (*qdrant.Filter, error) {
	if fs.IsEmpty() {
		return nil, nil
	}
	filter := &qdrant.Filter{}
	var err error
	if filter.Must, err = convertConditionSet(fs.Must); err != nil {
		return nil, err
	}
	if filter.Should, err = convertConditionSet(fs.Should); err != nil {
		return nil, err
	}
	if filter.MustNot, err = convertConditionSet(fs.MustNot); err != nil {
		return nil, err
	}
	return filter, nil
}

func convertConditionSet(cs *vectordb.ConditionSet) ([]*qdrant.Condition, error) {
	if cs == nil {
		return nil, nil
	}
	out := make([]*qdrant.Condition, 0, len(cs.Conditions))
	for _, c := range cs.Conditions {
		cond, err := convertCondition(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
	}
	return out, nil
}

func convertCondition(c vectordb.FilterCondition) (*qdrant.Condition, error) {
	switch cond := c.(type) {
	case *vectordb.MatchCondition:
		return convertMatch(cond)
	case *vectordb.MatchAnyCondition:
		return convertValueList(cond.Field, cond.Values, false)
	case *vectordb.MatchExceptCondition:
		return convertValueList(cond.Field, cond.Values, true)
	case *vectordb.NumericRangeCondition:
		return qdrant.NewRange(cond.Field, &qdrant.Range{
			Gt:  cond.Range.Gt,
			Gte: cond.Range.Gte,
			Lt:  cond.Range.Lt,
			Lte: cond.Range.Lte,
		}), nil
	case *vectordb.TimeRangeCondition:
		return qdrant.NewDatetimeRange(cond.Field, &qdrant.DatetimeRange{
			Gt:  toTimestamp(cond.Range.Gt),
			Gte: toTimestamp(cond.Range.Gte),
			Lt:  toTimestamp(cond.Range.Lt),
			Lte: toTimestamp(cond.Range.Lte),
		}), nil
	case *vectordb.IsNullCondition:
		return qdrant.NewIsNull(cond.Field), nil
	case *vectordb.IsEmptyCondition:
		return qdrant.NewIsEmpty(cond.Field), nil
	}
	return nil, unsupportedFilter("unsupported condition type %T", c)
}

func convertMatch(c *vectordb.MatchCondition) (*qdrant.Condition, error) {
	switch v := c.Value.(type) {
	case string:
		return qdrant.NewMatch(c.Field, v), nil
	case bool:
		return qdrant.NewMatchBool(c.Field, v), nil
	}
	if i, ok := toMatchInt(c.Value); ok {
		return qdrant.NewMatchInt(c.Field, i), nil
	}
	return nil, unsupportedFilter("exact match on %q needs a string, bool or integer value, got %v; use a range for fractional numbers", c.Field, c.Value)
}

func convertValueList(field string, values []any, except bool) (*qdrant.Condition, error) {
	if _, ok := values[0].(string); ok {
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.(string)
		}
		if except {
			return qdrant.NewMatchExceptKeywords(field, strs...), nil
		}
		return qdrant.NewMatchKeywords(field, strs...), nil
	}

	ints := make([]int64, len(values))
	for i, v := range values {
		n, ok := toMatchInt(v)
		if !ok {
			return nil, unsupportedFilter("condition on %q supports strings or integers, got %v", field, v)
		}
		ints[i] = n
	}
	if except {
		return qdrant.NewMatchExceptInts(field, ints...), nil
	}
	return qdrant.NewMatchInts(field, ints...), nil
}

func unsupportedFilter(format string, args ...any) error {
	return vectordb.ValidationErrorf("query", format, args...).WithProvider(ProviderName)
}

func toTimestamp(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}
