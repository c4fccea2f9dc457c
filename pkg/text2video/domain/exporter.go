package domain

import "context"

// VideoExporter encodes frames into a video file. The container is selected by the extension of `outputPath`.
type VideoExporter interface {
	Export(ctx context.Context, frames *Frames, outputPath string, fps int) error
}
