package api

import (
	"context"
	"io"
	"time"

	"kgeyst.com/text2video/pkg/common"
	"kgeyst.com/text2video/pkg/text2video/domain"
	"kgeyst.com/text2video/pkg/text2video/infrastructure/diffusion"
	"kgeyst.com/text2video/pkg/text2video/infrastructure/ffmpeg"
	"kgeyst.com/text2video/pkg/text2video/infrastructure/filesystem"
	"kgeyst.com/text2video/pkg/text2video/infrastructure/gopsutil"
	"kgeyst.com/text2video/pkg/text2video/infrastructure/juju"
	"kgeyst.com/text2video/pkg/text2video/infrastructure/logging"
)

type api struct {
	videoService *domain.VideoService
	outputPath   string
}

// See domain/config.go
const (
	ConfigKeyLogPath    = domain.ConfigKeyLogPath
	ConfigKeyOutputPath = domain.ConfigKeyOutputPath
)

// API is the entrypoint to text2video. It shouldn't contain any logic of its own; it glues all the components together
// and provides a public interface for domain.VideoService.
type API interface {
	// GenerateVideo generates a video for `prompt` and saves it to the configured output path ("output.mp4" by default).
	// Returns the path of the saved video.
	GenerateVideo(prompt string) (string, error)
	// GenerateVideoTo is the same as GenerateVideo, except the output path is given explicitly. The extension selects
	// the container: .mp4, .webm or .gif.
	GenerateVideoTo(prompt string, outputPath string) error
}

// NewAPI `console` receives progress messages meant for the user (usually os.Stdout).
func NewAPI(config *common.Config, console io.Writer) API {
	logger := common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, "log.txt"))
	workDirectoryProvider := filesystem.NewWorkDirectoryProvider(config)
	pipelineLoader := logging.NewPipelineLoaderDecorator(
		diffusion.NewPipelineLoader(workDirectoryProvider, config, logger),
		logger,
	)
	videoService := domain.NewVideoService(
		gopsutil.NewMemoryInspector(),
		filesystem.NewCacheCleaner(config, logger),
		pipelineLoader,
		ffmpeg.NewVideoExporter(config, logger),
		juju.NewNamedMutexAcquirer(time.Second),
		console,
		config,
		logger,
	)
	return &api{
		videoService: videoService,
		outputPath:   config.GetStringOrDefault(ConfigKeyOutputPath, domain.DefaultOutputPath),
	}
}

func (a *api) GenerateVideo(prompt string) (string, error) {
	err := a.GenerateVideoTo(prompt, a.outputPath)
	if err != nil {
		return "", err
	}
	return a.outputPath, nil
}

func (a *api) GenerateVideoTo(prompt string, outputPath string) error {
	return a.videoService.Generate(context.Background(), prompt, outputPath)
}
