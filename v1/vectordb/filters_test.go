package vectordb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterSetDetectsConditionTypes(t *testing.T) {
	raw := `{
		"must": [
			{"field": "genre", "equalTo": "jazz"},
			{"field": "year", "greaterThanOrEqualTo": 1950, "lessThan": 1970}
		],
		"should": [
			{"field": "label", "anyOf": ["blue note", "impulse"]},
			{"field": "released", "after": "2001-01-01T00:00:00Z"}
		],
		"mustNot": [
			{"field": "rating", "noneOf": [1, 2]},
			{"field": "notes", "isNull": true},
			{"field": "tags", "isEmpty": true}
		]
	}`

	fs, err := ParseFilterSet([]byte(raw))
	require.NoError(t, err)

	require.Len(t, fs.Must.Conditions, 2)
	match, ok := fs.Must.Conditions[0].(*MatchCondition)
	require.True(t, ok)
	assert.Equal(t, "jazz", match.Value)

	rng, ok := fs.Must.Conditions[1].(*NumericRangeCondition)
	require.True(t, ok)
	require.NotNil(t, rng.Range.Gte)
	assert.Equal(t, 1950.0, *rng.Range.Gte)
	assert.Nil(t, rng.Range.Gt)

	require.Len(t, fs.Should.Conditions, 2)
	assert.IsType(t, &MatchAnyCondition{}, fs.Should.Conditions[0])
	tr, ok := fs.Should.Conditions[1].(*TimeRangeCondition)
	require.True(t, ok)
	assert.True(t, tr.Range.Gt.Equal(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))

	require.Len(t, fs.MustNot.Conditions, 3)
	except, ok := fs.MustNot.Conditions[0].(*MatchExceptCondition)
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), int64(2)}, except.Values)
	assert.IsType(t, &IsNullCondition{}, fs.MustNot.Conditions[1])
	assert.IsType(t, &IsEmptyCondition{}, fs.MustNot.Conditions[2])
}

func TestParseFilterSetRejectsUnknownCondition(t *testing.T) {
	_, err := ParseFilterSet([]byte(`{"must": [{"field": "x", "like": "y"}]}`))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestParseFilterSetRejectsMalformedJSON(t *testing.T) {
	_, err := ParseFilterSet([]byte(`{"must": `))
	assert.True(t, IsValidationError(err))
}

func TestFilterSetJSONRoundTrip(t *testing.T) {
	lo := 3.5
	fs := NewFilterSet(
		Must(NewMatch("genre", "jazz"), NewNumericRange("score", NumericRange{Gt: &lo})),
		MustNot(NewMatchExcept("label", "x", "y")),
	)
	data, err := json.Marshal(fs)
	require.NoError(t, err)

	back, err := ParseFilterSet(data)
	require.NoError(t, err)
	require.Len(t, back.Must.Conditions, 2)
	assert.Equal(t, "genre", back.Must.Conditions[0].FieldName())
	got := back.Must.Conditions[1].(*NumericRangeCondition)
	assert.Equal(t, lo, *got.Range.Gt)
}

func TestFilterSetValidate(t *testing.T) {
	assert.NoError(t, (*FilterSet)(nil).Validate())
	assert.True(t, (*FilterSet)(nil).IsEmpty())
	assert.True(t, NewFilterSet().IsEmpty())

	bad := []*FilterSet{
		NewFilterSet(Must(NewMatch("", "x"))),
		NewFilterSet(Must(NewMatch("k", []int{1}))),
		NewFilterSet(Should(NewMatchAny("k"))),
		NewFilterSet(Should(NewMatchAny("k", "a", 1))),
		NewFilterSet(MustNot(NewNumericRange("k", NumericRange{}))),
		NewFilterSet(Must(NewTimeRange("k", TimeRange{}))),
		NewFilterSet(Must(nil)),
	}
	for i, fs := range bad {
		err := fs.Validate()
		assert.True(t, IsValidationError(err), "case %d: %v", i, err)
	}

	assert.NoError(t, NewFilterSet(Must(NewMatchAny("k", 1, int64(2), 3.0))).Validate())
}

func TestNewFilterSetAppendsRepeatedClauses(t *testing.T) {
	fs := NewFilterSet(
		Must(NewMatch("genre", "jazz")),
		Should(NewMatch("tag", "live")),
		Must(NewIsEmpty("label")),
	)
	require.Len(t, fs.Must.Conditions, 2)
	assert.Equal(t, "label", fs.Must.Conditions[1].FieldName())
	assert.Len(t, fs.Should.Conditions, 1)
	assert.Nil(t, fs.MustNot)
}
