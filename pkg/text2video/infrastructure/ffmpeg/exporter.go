package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"kgeyst.com/text2video/pkg/common"
	"kgeyst.com/text2video/pkg/text2video/domain"
)

const (
	// ConfigKeyFFmpegPath the path to the ffmpeg binary ("ffmpeg", i.e. looked up in PATH, by default)
	ConfigKeyFFmpegPath = "ffmpegPath"
	// ConfigKeyExportTimeout when to give up encoding, in milliseconds
	ConfigKeyExportTimeout = "exportTimeout"
)

const stderrTailSize = 2048

type VideoExporter struct {
	ffmpegPath string
	timeout    time.Duration
	logger     common.Logger
}

func NewVideoExporter(config *common.Config, logger common.Logger) *VideoExporter {
	return &VideoExporter{
		ffmpegPath: config.GetStringOrDefault(ConfigKeyFFmpegPath, "ffmpeg"),
		timeout:    config.GetDurationOrDefault(ConfigKeyExportTimeout, 5*time.Minute),
		logger:     logger,
	}
}

func (v *VideoExporter) Export(ctx context.Context, frames *domain.Frames, outputPath string, fps int) error {
	if frames.Count() == 0 {
		return domain.ErrNoFrames
	}
	args, err := buildFFmpegArgs(frames.Pattern, outputPath, fps)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	ctx, cancelFunc := context.WithTimeout(ctx, v.timeout)
	defer cancelFunc()
	v.logger.Log(fmt.Sprintf("exporting %d frames: %s %v", frames.Count(), v.ffmpegPath, args))
	cmd := exec.CommandContext(ctx, v.ffmpegPath, args...)
	stderr := common.NewTailBuffer(stderrTailSize)
	cmd.Stderr = stderr
	err = cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg stopped: %w", ctxErr)
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, stderr.String())
	}
	return nil
}

func buildFFmpegArgs(framePattern, outputPath string, fps int) ([]string, error) {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-framerate", strconv.Itoa(fps),
		"-start_number", "0",
		"-i", framePattern,
	}
	switch common.VideoExtension(outputPath) {
	case ".mp4":
		args = append(args,
			"-c:v", "libx264",
			"-pix_fmt", "yuv420p",
			"-movflags", "+faststart",
		)
	case ".webm":
		args = append(args,
			"-c:v", "libvpx-vp9",
			"-pix_fmt", "yuv420p",
			"-b:v", "0",
			"-crf", "32",
		)
	case ".gif":
		args = append(args,
			"-filter_complex", "[0:v]split[a][b];[a]palettegen[p];[b][p]paletteuse",
			"-loop", "0",
		)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedOutputFormat, outputPath)
	}
	args = append(args, "-r", strconv.Itoa(fps), outputPath)
	return args, nil
}
