package api

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"kgeyst.com/text2video/pkg/common"
	"kgeyst.com/text2video/pkg/text2video/domain"
)

func TestGenerateVideoRejectsEmptyPrompt(t *testing.T) {
	var console bytes.Buffer
	text2video := NewAPI(common.NewConfig(map[string]any{
		ConfigKeyLogPath: filepath.Join(t.TempDir(), "log.txt"),
	}), &console)

	path, err := text2video.GenerateVideo("   ")
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
	assert.Empty(t, path)
	assert.Empty(t, console.String())
}

func TestGenerateVideoToRejectsUnknownContainer(t *testing.T) {
	text2video := NewAPI(common.NewConfig(map[string]any{
		ConfigKeyLogPath: filepath.Join(t.TempDir(), "log.txt"),
	}), &bytes.Buffer{})

	err := text2video.GenerateVideoTo("a cat", "cat.mov")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOutputFormat)
}
