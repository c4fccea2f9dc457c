package diffusion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"kgeyst.com/text2video/pkg/common"
	"kgeyst.com/text2video/pkg/text2video/domain"
)

const (
	// ConfigKeyEnginePath the path to the native inference engine binary (text2video-engine in the working directory
	// by default)
	ConfigKeyEnginePath = "enginePath"
	// ConfigKeyInferenceTimeout when to stop if the model takes too long to generate the frames, in milliseconds
	ConfigKeyInferenceTimeout = "inferenceTimeout"
)

const (
	// FramePattern the engine writes frames as frame_0000.png, frame_0001.png etc.
	FramePattern    = "frame_%04d.png"
	frameGlob       = "frame_*.png"
	configFileName  = "config.json"
	framesDirectory = "frames"
	stderrTailSize  = 4096
)

// ErrPipelineClosed the pipeline can't be used after Close.
var ErrPipelineClosed = errors.New("pipeline is closed")

// EngineError the engine process exited with an error. Message is the tail of what it wrote to stderr.
type EngineError struct {
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("video generation failed: %v", e.Err)
	}
	return fmt.Sprintf("video generation failed: %s", e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// engineConfig is what the engine reads from the --config file.
type engineConfig struct {
	Prompt               string  `json:"prompt"`
	ModelID              string  `json:"model_id"`
	Device               string  `json:"device"`
	DType                string  `json:"torch_dtype"`
	UseSafetensors       bool    `json:"use_safetensors"`
	LowCPUMemUsage       bool    `json:"low_cpu_mem_usage"`
	DeviceMap            string  `json:"device_map,omitempty"`
	AttentionSlicing     bool    `json:"attention_slicing"`
	VAESlicing           bool    `json:"vae_slicing"`
	SequentialCPUOffload bool    `json:"sequential_cpu_offload"`
	NumFrames            int     `json:"num_frames"`
	NumInferenceSteps    int     `json:"num_inference_steps"`
	GuidanceScale        float64 `json:"guidance_scale"`
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	FPS                  int     `json:"fps"`
	Seed                 uint64  `json:"seed"`
	FramePattern         string  `json:"frame_pattern"`
}

type PipelineLoader struct {
	enginePath            string
	inferenceTimeout      time.Duration
	workDirectoryProvider domain.WorkDirectoryProvider
	logger                common.Logger
}

// NewPipelineLoader creates a loader for pipelines run by the native engine. We hook up to the engine by launching
// a subprocess for each generation: crashes (including out-of-memory kills, which are common on the machines we
// target) do not take the whole program down, and all memory held by the model is returned to the OS when
// the process exits.
func NewPipelineLoader(workDirectoryProvider domain.WorkDirectoryProvider, config *common.Config, logger common.Logger) *PipelineLoader {
	return &PipelineLoader{
		enginePath:            config.GetStringOrDefault(ConfigKeyEnginePath, defaultEnginePath()),
		inferenceTimeout:      config.GetDurationOrDefault(ConfigKeyInferenceTimeout, 3*time.Hour),
		workDirectoryProvider: workDirectoryProvider,
		logger:                logger,
	}
}

func (p *PipelineLoader) LoadPipeline(ctx context.Context, options domain.PipelineOptions) (domain.VideoPipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(p.enginePath); err != nil {
		return nil, fmt.Errorf("engine not found at %s: %w", p.enginePath, err)
	}
	workDirectory, err := p.workDirectoryProvider.CreateWorkDirectory()
	if err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	return &pipeline{
		enginePath:       p.enginePath,
		inferenceTimeout: p.inferenceTimeout,
		workDirectory:    workDirectory,
		options:          options,
		logger:           p.logger,
	}, nil
}

type pipeline struct {
	enginePath       string
	inferenceTimeout time.Duration
	workDirectory    string
	options          domain.PipelineOptions
	memorySaving     domain.MemorySavingOptions
	logger           common.Logger
	closed           bool
}

func (p *pipeline) ConfigureMemorySaving(options domain.MemorySavingOptions) error {
	if p.closed {
		return ErrPipelineClosed
	}
	p.memorySaving = options
	return nil
}

func (p *pipeline) Generate(ctx context.Context, prompt string, params domain.InferenceParams) (*domain.Frames, error) {
	if p.closed {
		return nil, ErrPipelineClosed
	}
	configPath := filepath.Join(p.workDirectory, configFileName)
	err := p.writeEngineConfig(configPath, prompt, params)
	if err != nil {
		return nil, err
	}
	outputDirectory := filepath.Join(p.workDirectory, framesDirectory)
	err = os.MkdirAll(outputDirectory, 0755)
	if err != nil {
		return nil, err
	}
	err = p.runEngine(ctx, configPath, outputDirectory)
	if err != nil {
		return nil, err
	}
	return collectFrames(outputDirectory)
}

// Close removes the frames together with the rest of the work directory, so the frames must be exported before that.
func (p *pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return os.RemoveAll(p.workDirectory)
}

func (p *pipeline) writeEngineConfig(path, prompt string, params domain.InferenceParams) error {
	payload, err := json.MarshalIndent(p.buildEngineConfig(prompt, params), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal engine config: %w", err)
	}
	p.logger.Log("engine config:\n" + string(payload))
	return os.WriteFile(path, payload, 0644)
}

func (p *pipeline) buildEngineConfig(prompt string, params domain.InferenceParams) engineConfig {
	return engineConfig{
		Prompt:               prompt,
		ModelID:              p.options.ModelID,
		Device:               p.options.Device,
		DType:                p.options.DType,
		UseSafetensors:       p.options.UseSafetensors,
		LowCPUMemUsage:       p.options.LowCPUMemUsage,
		DeviceMap:            p.options.DeviceMap,
		AttentionSlicing:     p.memorySaving.AttentionSlicing,
		VAESlicing:           p.memorySaving.VAESlicing,
		SequentialCPUOffload: p.memorySaving.SequentialCPUOffload,
		NumFrames:            params.NumFrames,
		NumInferenceSteps:    params.NumInferenceSteps,
		GuidanceScale:        params.GuidanceScale,
		Width:                params.Width,
		Height:               params.Height,
		FPS:                  params.FPS,
		Seed:                 params.Seed,
		FramePattern:         FramePattern,
	}
}

func (p *pipeline) runEngine(ctx context.Context, configPath, outputDirectory string) error {
	ctx, cancelFunc := context.WithTimeout(ctx, p.inferenceTimeout)
	defer cancelFunc()
	cmd := exec.CommandContext(ctx, p.enginePath, "--config", configPath, "--output-dir", outputDirectory)
	stderr := common.NewTailBuffer(stderrTailSize)
	cmd.Stderr = stderr
	cmd.Stdout = os.Stdout
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("engine stopped: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &EngineError{Message: stderr.String(), Err: err}
	}
	return fmt.Errorf("start engine: %w", err)
}

func collectFrames(directory string) (*domain.Frames, error) {
	paths, err := filepath.Glob(filepath.Join(directory, frameGlob))
	if err != nil {
		return nil, err
	}
	// zero-padded names sort in playback order
	sort.Strings(paths)
	return &domain.Frames{
		Directory: directory,
		Pattern:   filepath.Join(directory, FramePattern),
		Paths:     paths,
	}, nil
}

func defaultEnginePath() string {
	name := "text2video-engine"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return name
	}
	return filepath.Join(workingDirectory, name)
}
