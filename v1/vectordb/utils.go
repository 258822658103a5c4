package vectordb

// ── FilterSet Constructors ───────────────────────────────────────────────────

// FilterClause adds conditions to one clause of a FilterSet.
type FilterClause func(*FilterSet)

// NewFilterSet builds a FilterSet from clauses. Repeating a clause kind
// appends to it.
//
// Example:
//
//	vectordb.NewFilterSet(
//	    vectordb.Must(vectordb.NewMatch("status", "published")),
//	    vectordb.Should(vectordb.NewMatch("tag", "ml"), vectordb.NewMatch("tag", "ai")),
//	)
func NewFilterSet(clauses ...FilterClause) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must adds conditions that all have to match.
func Must(conditions ...FilterCondition) FilterClause {
	return func(fs *FilterSet) { fs.Must = appendConditions(fs.Must, conditions) }
}

// Should adds conditions of which at least one has to match.
func Should(conditions ...FilterCondition) FilterClause {
	return func(fs *FilterSet) { fs.Should = appendConditions(fs.Should, conditions) }
}

// MustNot adds conditions none of which may match.
func MustNot(conditions ...FilterCondition) FilterClause {
	return func(fs *FilterSet) { fs.MustNot = appendConditions(fs.MustNot, conditions) }
}

func appendConditions(cs *ConditionSet, conditions []FilterCondition) *ConditionSet {
	if cs == nil {
		cs = &ConditionSet{}
	}
	cs.Conditions = append(cs.Conditions, conditions...)
	return cs
}

// ── Condition Constructors ───────────────────────────────────────────────────
// Values are checked by FilterSet.Validate, which every Query runs.

func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values}
}

func NewMatchExcept(field string, values ...any) *MatchExceptCondition {
	return &MatchExceptCondition{Field: field, Values: values}
}

func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r}
}

func NewTimeRange(field string, t TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Field: field, Range: t}
}

// NewIsNull matches records whose field is explicitly null.
func NewIsNull(field string) *IsNullCondition {
	return &IsNullCondition{Field: field, IsNull: true}
}

// NewIsEmpty matches records whose field is missing, null or an empty list.
func NewIsEmpty(field string) *IsEmptyCondition {
	return &IsEmptyCondition{Field: field, IsEmpty: true}
}
