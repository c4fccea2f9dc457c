package logging

import (
	"context"
	"fmt"
	"time"

	"kgeyst.com/text2video/pkg/common"
	"kgeyst.com/text2video/pkg/text2video/domain"
)

type pipelineLoaderDecorator struct {
	wrappedPipelineLoader domain.PipelineLoader
	logger                common.Logger
}

// NewPipelineLoaderDecorator logs how long loading takes; pipelines it returns are decorated too.
func NewPipelineLoaderDecorator(wrappedPipelineLoader domain.PipelineLoader, logger common.Logger) domain.PipelineLoader {
	return &pipelineLoaderDecorator{
		wrappedPipelineLoader: wrappedPipelineLoader,
		logger:                logger,
	}
}

func (p *pipelineLoaderDecorator) LoadPipeline(ctx context.Context, options domain.PipelineOptions) (domain.VideoPipeline, error) {
	p.logger.Log(fmt.Sprintf("loading pipeline %s (device=%s, dtype=%s, device map=%s)", options.ModelID, options.Device, options.DType, options.DeviceMap))
	t := time.Now()
	pipeline, err := p.wrappedPipelineLoader.LoadPipeline(ctx, options)
	if err != nil {
		return nil, err
	}
	p.logger.Log(fmt.Sprintf("pipeline loaded (took %d ms)", time.Since(t).Milliseconds()))
	return &pipelineDecorator{
		wrappedPipeline: pipeline,
		logger:          p.logger,
	}, nil
}

type pipelineDecorator struct {
	wrappedPipeline domain.VideoPipeline
	logger          common.Logger
}

func (p *pipelineDecorator) ConfigureMemorySaving(options domain.MemorySavingOptions) error {
	p.logger.Log(fmt.Sprintf("memory saving: attention slicing=%t, VAE slicing=%t, sequential CPU offload=%t",
		options.AttentionSlicing, options.VAESlicing, options.SequentialCPUOffload))
	return p.wrappedPipeline.ConfigureMemorySaving(options)
}

func (p *pipelineDecorator) Generate(ctx context.Context, prompt string, params domain.InferenceParams) (*domain.Frames, error) {
	p.logger.Log(fmt.Sprintf("\n================\n prompt:\n%s\n params: %+v\n================\n", prompt, params))
	t := time.Now()
	frames, err := p.wrappedPipeline.Generate(ctx, prompt, params)
	if err != nil {
		return nil, err
	}
	p.logger.Log(fmt.Sprintf("generated %d frames in %s (took %d ms)", frames.Count(), frames.Directory, time.Since(t).Milliseconds()))
	return frames, nil
}

func (p *pipelineDecorator) Close() error {
	return p.wrappedPipeline.Close()
}
