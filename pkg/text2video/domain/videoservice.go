package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"kgeyst.com/text2video/pkg/common"
)

var (
	ErrEmptyPrompt             = errors.New("prompt is empty")
	ErrUnsupportedOutputFormat = errors.New("unsupported output format (expected .mp4, .webm or .gif)")
)

// DefaultOutputPath where the video is saved unless told otherwise.
const DefaultOutputPath = "output.mp4"

// VideoService is the main orchestrator: it checks memory, clears caches, loads the pipeline, runs inference, exports
// the frames and cleans up after itself whatever happens. User-facing progress messages go to `console`; details
// go to the logger.
type VideoService struct {
	mutex               sync.Mutex
	memoryInspector     MemoryInspector
	cacheCleaner        CacheCleaner
	pipelineLoader      PipelineLoader
	videoExporter       VideoExporter
	namedMutexAcquirer  NamedMutexAcquirer
	pipelineOptions     PipelineOptions
	memorySavingOptions MemorySavingOptions
	inferenceParams     InferenceParams
	lowMemoryThreshold  uint64
	lockTimeout         time.Duration
	console             io.Writer
	logger              common.Logger
}

func NewVideoService(
	memoryInspector MemoryInspector,
	cacheCleaner CacheCleaner,
	pipelineLoader PipelineLoader,
	videoExporter VideoExporter,
	namedMutexAcquirer NamedMutexAcquirer,
	console io.Writer,
	config *common.Config,
	logger common.Logger,
) *VideoService {
	return &VideoService{
		memoryInspector:     memoryInspector,
		cacheCleaner:        cacheCleaner,
		pipelineLoader:      pipelineLoader,
		videoExporter:       videoExporter,
		namedMutexAcquirer:  namedMutexAcquirer,
		pipelineOptions:     NewPipelineOptionsFromConfig(config),
		memorySavingOptions: DefaultMemorySavingOptions(),
		inferenceParams:     NewInferenceParamsFromConfig(config),
		lowMemoryThreshold:  uint64(config.GetIntOrDefault(ConfigKeyLowMemoryThresholdGB, 8)) * BytesPerGB,
		lockTimeout:         config.GetDurationOrDefault(ConfigKeyLockTimeout, 10*time.Minute),
		console:             console,
		logger:              logger,
	}
}

// Generate generates a video for `prompt` and saves it to `outputPath` (DefaultOutputPath if empty).
// Any failure during loading, inference or export is reported to the console (with a hint for the known
// Windows paging file problem) and returned as is.
func (v *VideoService) Generate(ctx context.Context, prompt, outputPath string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}
	if !common.IsVideoFormat(outputPath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedOutputFormat, outputPath)
	}
	if err := v.inferenceParams.Validate(); err != nil {
		return err
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	namedMutex, err := v.namedMutexAcquirer.AcquireNamedMutex(ctx, InferenceMutexName, v.lockTimeout)
	if err != nil {
		return fmt.Errorf("wait for another generation to finish: %w", err)
	}
	defer namedMutex.Release()

	v.printf("Using %s for generation\n", strings.ToUpper(v.pipelineOptions.Device))
	v.checkMemory(ctx)
	v.cacheCleaner.ClearCaches()

	var pipeline VideoPipeline
	defer func() {
		if pipeline != nil {
			if err := pipeline.Close(); err != nil {
				v.logger.Log("failed to close the pipeline: " + err.Error())
			}
		}
		v.cacheCleaner.ClearCaches()
	}()
	err = v.generate(ctx, prompt, outputPath, &pipeline)
	if err != nil {
		v.reportFailure(err)
		return err
	}
	return nil
}

func (v *VideoService) generate(ctx context.Context, prompt, outputPath string, pipeline *VideoPipeline) error {
	loaded, err := v.pipelineLoader.LoadPipeline(ctx, v.pipelineOptions)
	if err != nil {
		return err
	}
	*pipeline = loaded
	err = loaded.ConfigureMemorySaving(v.memorySavingOptions)
	if err != nil {
		return err
	}
	v.printf("Generating video for prompt: %s\n", prompt)
	frames, err := loaded.Generate(ctx, prompt, v.inferenceParams)
	if err != nil {
		return err
	}
	if frames.Count() == 0 {
		return ErrNoFrames
	}
	err = v.videoExporter.Export(ctx, frames, outputPath, v.inferenceParams.FPS)
	if err != nil {
		return err
	}
	v.printf("Video saved to: %s\n", outputPath)
	return nil
}

// checkMemory never fails the run; low memory is only reported.
func (v *VideoService) checkMemory(ctx context.Context) {
	stats, err := v.memoryInspector.VirtualMemory(ctx)
	if err != nil {
		v.logger.Log("failed to inspect memory: " + err.Error())
		return
	}
	v.printf("Available memory: %s\n", FormatGB(stats.Available))
	v.printf("Total memory: %s\n", FormatGB(stats.Total))
	if stats.Available < v.lowMemoryThreshold {
		v.printf("Warning: Low memory available. Results may be unstable.\n")
	}
}

func (v *VideoService) reportFailure(err error) {
	v.logger.Log("video generation failed: " + err.Error())
	v.printf("Error during video generation: %s\n", err)
	if IsPagingFileError(err) {
		v.printf("%s", PagingFileHint)
	}
}

func (v *VideoService) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(v.console, format, args...)
}
