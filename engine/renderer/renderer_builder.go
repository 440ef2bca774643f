package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption configures a renderer in NewRenderer before the GPU is requested.
type RendererBuilderOption func(*renderer)

// WithPipeline queues a pipeline to be registered as soon as the surface is configured.
//
// Parameters:
//   - p: the pipeline description
//
// Returns:
//   - RendererBuilderOption: the option
func WithPipeline(p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) { r.pendingPipelines = append(r.pendingPipelines, p) }
}

// WithPipelines queues several pipelines in order.
func WithPipelines(pipelines ...pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) { r.pendingPipelines = append(r.pendingPipelines, pipelines...) }
}

// WithPresentMode selects vsync or uncapped presentation. Defaults to PresentModeVSync.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) { r.pendingPresentMode = &mode }
}

// WithMSAA sets the sample count of the color target. NewRenderer rejects counts other than
// MSAAOff and MSAA4x.
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) { r.sampleCount = count }
}

// WithClearColor sets the color every frame starts from.
//
// Parameters:
//   - color: red, green, blue and alpha in [0, 1]
//
// Returns:
//   - RendererBuilderOption: the option
func WithClearColor(color [4]float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = wgpu.Color{R: color[0], G: color[1], B: color[2], A: color[3]}
	}
}

// WithForceSoftwareRenderer requests the fallback adapter, e.g. lavapipe on machines without a GPU.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) { r.forceFallbackAdapter = force }
}
