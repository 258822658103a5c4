package bevec

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func staticFactory(svc vectordb.Service) Factory {
	return func(context.Context, Config, Logger) (vectordb.Service, error) {
		return svc, nil
	}
}

func TestDefaultRegistryProviders(t *testing.T) {
	assert.Equal(t, []string{"chroma", "chromem", "qdrant"}, NewDefaultRegistry().Names())
	assert.True(t, DefaultRegistry().Has("QDRANT"))
	assert.Contains(t, Providers(), "chromem")
}

func TestRegistryLastWriteWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := vectordb.NewMockService(ctrl)
	second := vectordb.NewMockService(ctrl)

	reg := NewRegistry()
	reg.Register("memory", staticFactory(first))
	reg.Register(" Memory ", staticFactory(second))
	assert.Equal(t, []string{"memory"}, reg.Names())

	f, err := reg.Resolve("MEMORY")
	require.NoError(t, err)
	svc, err := f(context.Background(), Config{}, nopLogger{})
	require.NoError(t, err)
	assert.Same(t, second, svc)
}

func TestRegistryUnknownProvider(t *testing.T) {
	reg := NewRegistry()
	reg.Register("memory", staticFactory(nil))

	_, err := reg.Resolve("pinecone")
	require.Error(t, err)
	assert.True(t, vectordb.IsConfigurationError(err))
	assert.Contains(t, err.Error(), `"pinecone"`)
	assert.Contains(t, err.Error(), "memory")
	assert.False(t, reg.Has("pinecone"))
}

func TestRegistryRejectsNilFactory(t *testing.T) {
	reg := NewRegistry()
	assert.Panics(t, func() { reg.Register("x", nil) })
	assert.Panics(t, func() { reg.Register("  ", staticFactory(nil)) })
}

func TestRegistryConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Register("p", staticFactory(nil))
			_, _ = reg.Resolve("p")
			_ = reg.Names()
		}()
	}
	wg.Wait()
	assert.True(t, reg.Has("p"))
}

func TestInitWithScopedRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := vectordb.NewMockService(ctrl)
	svc.EXPECT().Provider().Return("memory").AnyTimes()

	var got Config
	reg := NewRegistry()
	reg.Register("memory", func(_ context.Context, cfg Config, _ Logger) (vectordb.Service, error) {
		got = cfg
		return svc, nil
	})

	client, err := Init(context.Background(), Config{Provider: "Memory", Options: map[string]any{"size": 3}}, WithRegistry(reg))
	require.NoError(t, err)
	assert.Equal(t, "memory", client.Provider())
	assert.Equal(t, 3, got.Options["size"])

	// the default registry is untouched
	assert.False(t, DefaultRegistry().Has("memory"))
}

func TestInitFactoryErrors(t *testing.T) {
	reg := NewRegistry()
	reg.Register("broken", func(context.Context, Config, Logger) (vectordb.Service, error) {
		return nil, errors.New("boom")
	})
	reg.Register("offline", func(context.Context, Config, Logger) (vectordb.Service, error) {
		return nil, vectordb.ProviderErrorf("init", "unreachable")
	})
	reg.Register("empty", func(context.Context, Config, Logger) (vectordb.Service, error) {
		return nil, nil
	})

	_, err := Init(context.Background(), Config{Provider: "broken"}, WithRegistry(reg))
	assert.True(t, vectordb.IsConfigurationError(err))
	e, ok := vectordb.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "broken", e.Provider)

	_, err = Init(context.Background(), Config{Provider: "offline"}, WithRegistry(reg))
	assert.True(t, vectordb.IsProviderError(err))

	_, err = Init(context.Background(), Config{Provider: "empty"}, WithRegistry(reg))
	assert.True(t, vectordb.IsConfigurationError(err))

	_, err = Init(context.Background(), Config{}, WithRegistry(reg))
	assert.True(t, vectordb.IsConfigurationError(err))
}
