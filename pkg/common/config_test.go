package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigTypedValues(t *testing.T) {
	path := writeConfigFile(t, `
outputPath: clip.webm
numFrames: 8
guidanceScale: 9.5
lowMemoryThresholdGB: 4
clearModelCache: false
inferenceTimeout: 1500
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "clip.webm", config.GetString("outputPath"))
	assert.Equal(t, 8, config.GetIntOrDefault("numFrames", 4))
	assert.Equal(t, 9.5, config.GetFloatOrDefault("guidanceScale", 7.5))
	assert.Equal(t, 4.0, config.GetFloatOrDefault("lowMemoryThresholdGB", 8))
	assert.False(t, config.GetBoolOrDefault("clearModelCache", true))
	assert.Equal(t, 1500*time.Millisecond, config.GetDurationOrDefault("inferenceTimeout", time.Hour))
}

func TestConfigDefaultsOnMissingOrMistypedKeys(t *testing.T) {
	config := NewConfig(map[string]any{
		"numFrames":       "eight",
		"clearModelCache": "no",
		"outputPath":      42,
	})

	assert.Equal(t, "", config.GetString("missing"))
	assert.Equal(t, "output.mp4", config.GetStringOrDefault("outputPath", "output.mp4"))
	assert.Equal(t, 4, config.GetIntOrDefault("numFrames", 4))
	assert.Equal(t, 7.5, config.GetFloatOrDefault("guidanceScale", 7.5))
	assert.True(t, config.GetBoolOrDefault("clearModelCache", true))
	assert.Equal(t, time.Minute, config.GetDurationOrDefault("lockTimeout", time.Minute))
}

func TestLoadConfigOrDefaultToleratesMissingFile(t *testing.T) {
	config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fallback", config.GetStringOrDefault("logPath", "fallback"))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigOrDefaultRejectsMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "numFrames: [1, 2\n")
	_, err := LoadConfigOrDefault(path)
	assert.Error(t, err)
}
