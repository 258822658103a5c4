package vectordb

import (
	"bytes"
	"encoding/json"
	"time"
)

// FilterCondition is a single metadata predicate. Adapters translate
// conditions to their native filter format and reject the ones they cannot
// express with a ValidationError.
type FilterCondition interface {
	// FieldName is the metadata key the condition applies to.
	FieldName() string

	validate(op string) error
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// Use with QueryRequest.Filter or the facade's WithFilter option.
//
// Example:
//
//	filters := vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("genre", "jazz")),
//	    vectordb.MustNot(vectordb.NewMatchAny("year", 1999, 2000)),
//	)
type FilterSet struct {
	// Must: All conditions must match (AND)
	Must *ConditionSet `json:"must,omitempty"`
	// Should: At least one condition must match (OR)
	Should *ConditionSet `json:"should,omitempty"`
	// MustNot: None of the conditions should match (NOT)
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet holds a group of conditions for a single clause.
type ConditionSet struct {
	Conditions []FilterCondition
}

// IsEmpty reports whether the set has no condition at all.
func (f *FilterSet) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Must.len() == 0 && f.Should.len() == 0 && f.MustNot.len() == 0
}

func (cs *ConditionSet) len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Conditions)
}

// Validate checks every condition of every clause.
func (f *FilterSet) Validate() error {
	const op = "filter"
	if f == nil {
		return nil
	}
	for _, cs := range []*ConditionSet{f.Must, f.Should, f.MustNot} {
		if cs == nil {
			continue
		}
		for i, c := range cs.Conditions {
			if c == nil {
				return ValidationErrorf(op, "condition at index %d is nil", i)
			}
			if c.FieldName() == "" {
				return ValidationErrorf(op, "condition at index %d has an empty field", i)
			}
			if err := c.validate(op); err != nil {
				return err
			}
		}
	}
	return nil
}

// ── Match Conditions ─────────────────────────────────────────────────────────

// MatchCondition represents an exact match filter (WHERE field = value).
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"equalTo"`
}

func (c *MatchCondition) FieldName() string { return c.Field }

func (c *MatchCondition) validate(op string) error {
	if !IsScalar(c.Value) {
		return ValidationErrorf(op, "match on %q needs a scalar value, got %T", c.Field, c.Value)
	}
	return nil
}

// MatchAnyCondition matches if value is one of the given values (IN operator).
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"anyOf"`
}

func (c *MatchAnyCondition) FieldName() string { return c.Field }

func (c *MatchAnyCondition) validate(op string) error {
	return validateValueList(op, c.Field, c.Values)
}

// MatchExceptCondition matches if value is NOT one of the given values (NOT IN).
type MatchExceptCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"noneOf"`
}

func (c *MatchExceptCondition) FieldName() string { return c.Field }

func (c *MatchExceptCondition) validate(op string) error {
	return validateValueList(op, c.Field, c.Values)
}

// ── Range Conditions ─────────────────────────────────────────────────────────

// NumericRange defines bounds for numeric filtering.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"`
	Lt  *float64 `json:"lessThan,omitempty"`
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`
}

// NumericRangeCondition filters by numeric range.
type NumericRangeCondition struct {
	Field string
	Range NumericRange
}

func (c *NumericRangeCondition) FieldName() string { return c.Field }

func (c *NumericRangeCondition) validate(op string) error {
	r := c.Range
	if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
		return ValidationErrorf(op, "range on %q has no bounds", c.Field)
	}
	return nil
}

func (c *NumericRangeCondition) MarshalJSON() ([]byte, error) {
	type wire struct {
		Field string `json:"field"`
		NumericRange
	}
	return json.Marshal(wire{Field: c.Field, NumericRange: c.Range})
}

func (c *NumericRangeCondition) UnmarshalJSON(data []byte) error {
	var w struct {
		Field string `json:"field"`
		NumericRange
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Field, c.Range = w.Field, w.NumericRange
	return nil
}

// TimeRange defines bounds for datetime filtering.
type TimeRange struct {
	Gt  *time.Time `json:"after,omitempty"`
	Gte *time.Time `json:"atOrAfter,omitempty"`
	Lt  *time.Time `json:"before,omitempty"`
	Lte *time.Time `json:"atOrBefore,omitempty"`
}

// TimeRangeCondition filters by datetime range over RFC 3339 metadata values.
type TimeRangeCondition struct {
	Field string
	Range TimeRange
}

func (c *TimeRangeCondition) FieldName() string { return c.Field }

func (c *TimeRangeCondition) validate(op string) error {
	r := c.Range
	if r.Gt == nil && r.Gte == nil && r.Lt == nil && r.Lte == nil {
		return ValidationErrorf(op, "time range on %q has no bounds", c.Field)
	}
	return nil
}

func (c *TimeRangeCondition) MarshalJSON() ([]byte, error) {
	type wire struct {
		Field string `json:"field"`
		TimeRange
	}
	return json.Marshal(wire{Field: c.Field, TimeRange: c.Range})
}

func (c *TimeRangeCondition) UnmarshalJSON(data []byte) error {
	var w struct {
		Field string `json:"field"`
		TimeRange
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Field, c.Range = w.Field, w.TimeRange
	return nil
}

// ── Null/Empty Conditions ────────────────────────────────────────────────────

// IsNullCondition checks if a field has a null value.
type IsNullCondition struct {
	Field  string `json:"field"`
	IsNull bool   `json:"isNull"`
}

func (c *IsNullCondition) FieldName() string { return c.Field }

func (c *IsNullCondition) validate(string) error { return nil }

// IsEmptyCondition checks if a field is missing, null or an empty list.
type IsEmptyCondition struct {
	Field   string `json:"field"`
	IsEmpty bool   `json:"isEmpty"`
}

func (c *IsEmptyCondition) FieldName() string { return c.Field }

func (c *IsEmptyCondition) validate(string) error { return nil }

// ── Helpers ──────────────────────────────────────────────────────────────────

func validateValueList(op, field string, values []any) error {
	if len(values) == 0 {
		return ValidationErrorf(op, "condition on %q needs at least one value", field)
	}
	var first valueClass
	for i, v := range values {
		if !IsScalar(v) {
			return ValidationErrorf(op, "condition on %q has non-scalar value at index %d (%T)", field, i, v)
		}
		class := classify(v)
		if i == 0 {
			first = class
			continue
		}
		if class != first {
			return ValidationErrorf(op, "condition on %q mixes value types: %T at index %d, %T at index 0", field, v, i, values[0])
		}
	}
	return nil
}

type valueClass uint8

const (
	classString valueClass = iota + 1
	classBool
	classNumber
)

func classify(v any) valueClass {
	switch v.(type) {
	case string:
		return classString
	case bool:
		return classBool
	}
	return classNumber
}

// ── JSON Serialization ───────────────────────────────────────────────────────

// MarshalJSON writes the conditions as a plain array.
func (cs *ConditionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Conditions)
}

// UnmarshalJSON detects each condition's type from the keys it carries:
// equalTo, anyOf, noneOf, numeric bounds, time bounds, isNull or isEmpty.
func (cs *ConditionSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ValidationErrorf("parse_filter", "conditions must be an array: %v", err)
	}
	cs.Conditions = make([]FilterCondition, 0, len(raw))
	for i, r := range raw {
		c, err := parseCondition(r)
		if err != nil {
			return ValidationErrorf("parse_filter", "condition at index %d: %v", i, err)
		}
		cs.Conditions = append(cs.Conditions, c)
	}
	return nil
}

func parseCondition(data json.RawMessage) (FilterCondition, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	has := func(names ...string) bool {
		for _, n := range names {
			if _, ok := keys[n]; ok {
				return true
			}
		}
		return false
	}

	var c FilterCondition
	switch {
	case has("equalTo"):
		c = &MatchCondition{}
	case has("anyOf"):
		c = &MatchAnyCondition{}
	case has("noneOf"):
		c = &MatchExceptCondition{}
	case has("greaterThan", "greaterThanOrEqualTo", "lessThan", "lessThanOrEqualTo"):
		c = &NumericRangeCondition{}
	case has("after", "atOrAfter", "before", "atOrBefore"):
		c = &TimeRangeCondition{}
	case has("isNull"):
		c = &IsNullCondition{}
	case has("isEmpty"):
		c = &IsEmptyCondition{}
	default:
		return nil, ValidationErrorf("parse_filter", "unknown condition %s", string(data))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(c); err != nil {
		return nil, err
	}
	normalizeNumbers(c)
	return c, nil
}

// normalizeNumbers turns json.Number values into int64 when integral,
// float64 otherwise.
func normalizeNumbers(c FilterCondition) {
	switch t := c.(type) {
	case *MatchCondition:
		t.Value = fromJSONNumber(t.Value)
	case *MatchAnyCondition:
		for i := range t.Values {
			t.Values[i] = fromJSONNumber(t.Values[i])
		}
	case *MatchExceptCondition:
		for i := range t.Values {
			t.Values[i] = fromJSONNumber(t.Values[i])
		}
	}
}

func fromJSONNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// ParseFilterSet decodes a JSON filter such as
//
//	{"must": [{"field": "genre", "equalTo": "jazz"}]}
func ParseFilterSet(data []byte) (*FilterSet, error) {
	var fs FilterSet
	if err := json.Unmarshal(data, &fs); err != nil {
		if _, ok := AsError(err); ok {
			return nil, err
		}
		return nil, ValidationErrorf("parse_filter", "invalid filter: %v", err)
	}
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	return &fs, nil
}
