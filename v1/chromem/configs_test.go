package chromem

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func TestResolvePath(t *testing.T) {
	env := func(m map[string]string) vectordb.LookupFunc {
		return func(k string) (string, bool) {
			v, ok := m[k]
			return v, ok
		}
	}

	cfg, err := DefaultConfig().Resolve(env(nil))
	require.NoError(t, err)
	assert.Equal(t, "./chroma_db", cfg.Path)
	assert.Equal(t, runtime.NumCPU(), cfg.Concurrency)

	cfg, err = DefaultConfig().Resolve(env(map[string]string{EnvPersistDirectory: "/data/vectors"}))
	require.NoError(t, err)
	assert.Equal(t, "/data/vectors", cfg.Path)

	cfg, err = FromPath("explicit").WithConcurrency(2).Resolve(env(map[string]string{EnvPersistDirectory: "/data/vectors"}))
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Path)
	assert.Equal(t, 2, cfg.Concurrency)

	cfg, err = InMemoryConfig().Resolve(env(map[string]string{EnvPersistDirectory: "/data/vectors"}))
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)

	_, err = FromPath("x").WithConcurrency(-1).Resolve(env(nil))
	assert.True(t, vectordb.IsConfigurationError(err))
}

func TestOpenUnusablePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := Open(context.Background(), FromPath(file), nil, nil)
	require.Error(t, err)
	assert.True(t, vectordb.IsConfigurationError(err))
}

func TestOpenCorruptDimensionsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dimensionsPath(dir), []byte("music: [not, a, number"), 0o600))

	_, err := Open(context.Background(), FromPath(dir), nil, nil)
	assert.True(t, vectordb.IsConfigurationError(err))
}
