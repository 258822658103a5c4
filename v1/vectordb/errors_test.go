package vectordb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsMatchTheirSentinels(t *testing.T) {
	cases := []struct {
		err      *Error
		sentinel error
		check    func(error) bool
	}{
		{ProviderErrorf("list_collections", "down"), ErrProvider, IsProviderError},
		{ConfigurationErrorf("init", "no key"), ErrConfiguration, IsConfigurationError},
		{VectorOperationErrorf("upsert", "bad dim"), ErrVectorOperation, IsVectorOperationError},
		{ValidationErrorf("query", "empty"), ErrValidation, IsValidationError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Kind.String(), func(t *testing.T) {
			assert.ErrorIs(t, tc.err, ErrBeVec)
			assert.ErrorIs(t, tc.err, tc.sentinel)
			assert.True(t, tc.check(tc.err))
			assert.True(t, IsBeVecError(tc.err))

			for _, other := range []error{ErrProvider, ErrConfiguration, ErrVectorOperation, ErrValidation} {
				if other != tc.sentinel {
					assert.NotErrorIs(t, tc.err, other)
				}
			}
		})
	}
}

func TestErrorMessageCarriesProviderOpAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindProvider, "list_collections", cause).WithProvider("qdrant")

	assert.Equal(t, "provider error [qdrant] list_collections: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapKeepsExistingKind(t *testing.T) {
	inner := ValidationErrorf("upsert", "records list cannot be empty")
	wrapped := fmt.Errorf("context: %w", inner)

	got := Wrap(KindProvider, "upsert", wrapped)
	assert.Same(t, inner, got)
	assert.Equal(t, KindValidation, got.Kind)
}

func TestEnsureTaxonomy(t *testing.T) {
	assert.NoError(t, EnsureTaxonomy(nil, "qdrant", "query", KindProvider))

	foreign := errors.New("boom")
	err := EnsureTaxonomy(foreign, "custom", "query", KindProvider)
	require.Error(t, err)
	assert.True(t, IsProviderError(err))
	assert.ErrorIs(t, err, foreign)

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "custom", e.Provider)
	assert.Equal(t, "query", e.Op)

	// provider already set is kept
	own := ValidationErrorf("query", "bad").WithProvider("chromem")
	err = EnsureTaxonomy(own, "other", "query", KindProvider)
	e, _ = AsError(err)
	assert.Equal(t, "chromem", e.Provider)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCollectionNotFoundSurvivesWrapping(t *testing.T) {
	err := &Error{Kind: KindProvider, Op: "get_collection", Err: fmt.Errorf("%w: docs", ErrCollectionNotFound)}
	assert.True(t, IsCollectionNotFound(err))
	assert.True(t, IsProviderError(err))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("x")))
}
