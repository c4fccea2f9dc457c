package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kgeyst.com/text2video/pkg/common"
)

func makeModelCache(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "huggingface")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hub", "models--damo-vilab"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hub", "models--damo-vilab", "weights.safetensors"), []byte("w"), 0644))
	return dir
}

func TestClearCachesRemovesModelCache(t *testing.T) {
	dir := makeModelCache(t)
	var logs bytes.Buffer
	cleaner := NewCacheCleaner(common.NewConfig(map[string]any{ConfigKeyModelCacheDirectory: dir}), common.NewWriterLogger(&logs))

	cleaner.ClearCaches()

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
	assert.Empty(t, logs.String())

	// a second run has nothing to remove and must not complain
	cleaner.ClearCaches()
	assert.Empty(t, logs.String())
}

func TestClearCachesKeepsModelCacheWhenDisabled(t *testing.T) {
	dir := makeModelCache(t)
	cleaner := NewCacheCleaner(common.NewConfig(map[string]any{
		ConfigKeyModelCacheDirectory: dir,
		ConfigKeyClearModelCache:     false,
	}), common.NewWriterLogger(&bytes.Buffer{}))

	cleaner.ClearCaches()

	_, err := os.Stat(filepath.Join(dir, "hub", "models--damo-vilab", "weights.safetensors"))
	assert.NoError(t, err)
}

func TestDefaultModelCacheDirectory(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, ".cache", "huggingface"), defaultModelCacheDirectory())
}
