package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kgeyst.com/text2video/pkg/common"
)

func TestInferenceParamsFromConfigOverrides(t *testing.T) {
	params := NewInferenceParamsFromConfig(common.NewConfig(map[string]any{
		ConfigKeyNumFrames:      16,
		ConfigKeyInferenceSteps: 25,
		ConfigKeyGuidanceScale:  9,
		ConfigKeyWidth:          512,
		ConfigKeyHeight:         320,
		ConfigKeyFPS:            8,
		ConfigKeySeed:           42,
	}))

	assert.Equal(t, InferenceParams{
		NumFrames:         16,
		NumInferenceSteps: 25,
		GuidanceScale:     9,
		Width:             512,
		Height:            320,
		FPS:               8,
		Seed:              42,
	}, params)
}

func TestPipelineOptionsModelIsConfigurable(t *testing.T) {
	options := NewPipelineOptionsFromConfig(common.NewConfig(map[string]any{ConfigKeyModelID: "ali-vilab/text-to-video-ms-1.7b"}))
	assert.Equal(t, "ali-vilab/text-to-video-ms-1.7b", options.ModelID)
	assert.Equal(t, DeviceCPU, options.Device)
}

func TestInferenceParamsValidate(t *testing.T) {
	valid := NewInferenceParamsFromConfig(common.NewConfig(nil))
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(p *InferenceParams)
		want   error
	}{
		{name: "odd width", mutate: func(p *InferenceParams) { p.Width = 250 }, want: ErrInvalidDimensions},
		{name: "zero height", mutate: func(p *InferenceParams) { p.Height = 0 }, want: ErrInvalidDimensions},
		{name: "no frames", mutate: func(p *InferenceParams) { p.NumFrames = 0 }, want: ErrInvalidParams},
		{name: "no steps", mutate: func(p *InferenceParams) { p.NumInferenceSteps = -1 }, want: ErrInvalidParams},
		{name: "no fps", mutate: func(p *InferenceParams) { p.FPS = 0 }, want: ErrInvalidParams},
		{name: "negative guidance", mutate: func(p *InferenceParams) { p.GuidanceScale = -1 }, want: ErrInvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)
			assert.ErrorIs(t, params.Validate(), tc.want)
		})
	}
}

func TestFramesCountHandlesNil(t *testing.T) {
	var frames *Frames
	assert.Equal(t, 0, frames.Count())
	assert.Equal(t, 2, (&Frames{Paths: []string{"a", "b"}}).Count())
}

func TestFormatGB(t *testing.T) {
	assert.Equal(t, "8.00 GB", FormatGB(8*BytesPerGB))
	assert.Equal(t, "1.50 GB", FormatGB(3*BytesPerGB/2))
	assert.Equal(t, "0.00 GB", FormatGB(0))
}
