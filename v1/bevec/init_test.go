package bevec

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/bevec/v1/chromem"
	"github.com/Aleph-Alpha/bevec/v1/logger"
	"github.com/Aleph-Alpha/bevec/v1/observability"
	"github.com/Aleph-Alpha/bevec/v1/qdrant"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func noEnv(string) (string, bool) { return "", false }

func TestInitQdrantWithoutAPIKey(t *testing.T) {
	_, err := Init(context.Background(), Config{Provider: "qdrant", Lookup: noEnv})
	require.Error(t, err)
	assert.True(t, vectordb.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "QDRANT_API_KEY")

	t.Setenv(qdrant.EnvAPIKey, "")
	_, err = InitQdrant(context.Background(), *qdrant.DefaultConfig())
	assert.True(t, vectordb.IsConfigurationError(err))
}

func TestInitChromemRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, err := InitChromem(ctx, chromem.Config{Path: filepath.Join(t.TempDir(), "db")})
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "chromem", client.Provider())

	coll, err := client.GetOrCreateCollection(ctx, "docs", WithDimension(3))
	require.NoError(t, err)

	err = coll.Upsert(ctx, []vectordb.Record{
		{ID: "a", Values: []float32{1, 0, 0}, Metadata: map[string]any{"lang": "en"}},
		{ID: "b", Values: []float32{0, 1, 0}, Metadata: map[string]any{"lang": "de"}},
	})
	require.NoError(t, err)

	// the handle knows the dimension, so a short vector never reaches the backend
	err = coll.Upsert(ctx, []vectordb.Record{{ID: "c", Values: []float32{1, 0}}})
	assert.True(t, vectordb.IsValidationError(err))

	results, err := coll.Query(ctx, []float32{0.9, 0.1, 0})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].ID)

	results, err = client.Query(ctx, "docs", []float32{1, 0, 0},
		WithFilter(vectordb.NewFilterSet(vectordb.Must(vectordb.NewMatch("lang", "de")))))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].ID)

	_, err = client.Query(ctx, "docs", []float32{1, 0, 0}, WithTopK(0))
	assert.True(t, vectordb.IsValidationError(err))

	require.NoError(t, client.DeleteContents(ctx, "docs"))
	fresh, err := coll.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), fresh.Info().PointCount)
}

func TestInitChromemAlias(t *testing.T) {
	client, err := Init(context.Background(), Config{
		Provider: "Chroma",
		Chromem:  chromem.InMemoryConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, "chromem", client.Provider())
}

func TestFXModule(t *testing.T) {
	var (
		client   *Client
		observed int
	)
	app := fxtest.New(t,
		fx.Supply(Config{Provider: "chromem", Chromem: chromem.InMemoryConfig()}),
		fx.Provide(
			func() logger.Logger { return logger.NewNop() },
			func() observability.Observer {
				return observability.ObserverFunc(func(observability.OperationContext) { observed++ })
			},
		),
		FXModule,
		fx.Populate(&client),
	)
	app.RequireStart()

	require.NotNil(t, client)
	_, err := client.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, observed)

	app.RequireStop()
	assert.Equal(t, 2, observed)
}
