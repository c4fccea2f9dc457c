package domain

import (
	"context"
	"errors"
	"fmt"

	"kgeyst.com/text2video/pkg/common"
)

var (
	ErrInvalidDimensions = errors.New("width and height must be positive multiples of 8")
	ErrInvalidParams     = errors.New("invalid inference parameters")
	ErrNoFrames          = errors.New("the model produced no frames")
)

const (
	DefaultModelID = "damo-vilab/text-to-video-ms-1.7b"
	// DeviceCPU everything runs on the CPU: the machines we target have no usable GPU.
	DeviceCPU     = "cpu"
	DTypeFloat32  = "float32"
	DeviceMapAuto = "balanced"
)

// PipelineOptions how the pretrained pipeline is loaded.
type PipelineOptions struct {
	ModelID        string
	Device         string
	DType          string
	UseSafetensors bool
	// LowCPUMemUsage loads weights lazily instead of materializing a randomly initialized model first.
	LowCPUMemUsage bool
	DeviceMap      string
}

// MemorySavingOptions trade speed for a smaller peak memory footprint.
type MemorySavingOptions struct {
	// AttentionSlicing computes attention in several steps instead of all at once.
	AttentionSlicing bool
	// VAESlicing decodes latents one frame at a time.
	VAESlicing bool
	// SequentialCPUOffload keeps submodules off the execution device until they're needed.
	SequentialCPUOffload bool
}

// InferenceParams parameters of a single generation run. The defaults are deliberately minimal so that
// generation finishes on a CPU in reasonable time.
type InferenceParams struct {
	NumFrames         int
	NumInferenceSteps int
	GuidanceScale     float64
	Width             int
	Height            int
	FPS               int
	Seed              uint64
}

// Frames still images produced by a pipeline, in playback order. Files are named after Pattern (printf-style, 0-based).
type Frames struct {
	Directory string
	Pattern   string
	Paths     []string
}

func (f *Frames) Count() int {
	if f == nil {
		return 0
	}
	return len(f.Paths)
}

// PipelineLoader loads a pretrained diffusion pipeline.
type PipelineLoader interface {
	LoadPipeline(ctx context.Context, options PipelineOptions) (VideoPipeline, error)
}

// VideoPipeline a loaded text-to-video pipeline. Close must be called to release everything the pipeline holds.
type VideoPipeline interface {
	ConfigureMemorySaving(options MemorySavingOptions) error
	Generate(ctx context.Context, prompt string, params InferenceParams) (*Frames, error)
	Close() error
}

func NewPipelineOptionsFromConfig(config *common.Config) PipelineOptions {
	return PipelineOptions{
		ModelID:        config.GetStringOrDefault(ConfigKeyModelID, DefaultModelID),
		Device:         DeviceCPU,
		DType:          DTypeFloat32,
		UseSafetensors: true,
		LowCPUMemUsage: true,
		DeviceMap:      DeviceMapAuto,
	}
}

// DefaultMemorySavingOptions everything which reduces memory usage is turned on.
func DefaultMemorySavingOptions() MemorySavingOptions {
	return MemorySavingOptions{
		AttentionSlicing:     true,
		VAESlicing:           true,
		SequentialCPUOffload: true,
	}
}

func NewInferenceParamsFromConfig(config *common.Config) InferenceParams {
	return InferenceParams{
		NumFrames:         config.GetIntOrDefault(ConfigKeyNumFrames, 4),
		NumInferenceSteps: config.GetIntOrDefault(ConfigKeyInferenceSteps, 10),
		GuidanceScale:     config.GetFloatOrDefault(ConfigKeyGuidanceScale, 7.5),
		Width:             config.GetIntOrDefault(ConfigKeyWidth, 256),
		Height:            config.GetIntOrDefault(ConfigKeyHeight, 144),
		FPS:               config.GetIntOrDefault(ConfigKeyFPS, 4),
		Seed:              uint64(config.GetIntOrDefault(ConfigKeySeed, 0)),
	}
}

// Validate checks the parameters before anything expensive is done with them.
func (p InferenceParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Width%8 != 0 || p.Height%8 != 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.NumFrames <= 0 {
		return fmt.Errorf("%w: number of frames must be positive, got %d", ErrInvalidParams, p.NumFrames)
	}
	if p.NumInferenceSteps <= 0 {
		return fmt.Errorf("%w: number of inference steps must be positive, got %d", ErrInvalidParams, p.NumInferenceSteps)
	}
	if p.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidParams, p.FPS)
	}
	if p.GuidanceScale < 0 {
		return fmt.Errorf("%w: guidance scale must not be negative, got %v", ErrInvalidParams, p.GuidanceScale)
	}
	return nil
}
