package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererBuilderOptions(t *testing.T) {
	a := pipeline.NewPipeline("a")
	b := pipeline.NewPipeline("b")
	c := pipeline.NewPipeline("c")

	r := &renderer{}
	for _, opt := range []RendererBuilderOption{
		WithPipeline(a),
		WithPipelines(b, c),
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAA4x),
		WithClearColor([4]float64{0.1, 0.2, 0.3, 1}),
		WithForceSoftwareRenderer(true),
	} {
		opt(r)
	}

	require.Len(t, r.pendingPipelines, 3)
	assert.Equal(t, "a", r.pendingPipelines[0].PipelineKey())
	assert.Equal(t, "c", r.pendingPipelines[2].PipelineKey())
	require.NotNil(t, r.pendingPresentMode)
	assert.Equal(t, PresentModeUncapped, *r.pendingPresentMode)
	assert.Equal(t, MSAA4x, r.sampleCount)
	assert.Equal(t, wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}, r.clearColor)
	assert.True(t, r.forceFallbackAdapter)
}

func TestMSAASampleCountValid(t *testing.T) {
	assert.True(t, MSAAOff.Valid())
	assert.True(t, MSAA4x.Valid())
	assert.False(t, MSAASampleCount(2).Valid())
	assert.False(t, MSAASampleCount(8).Valid())
	assert.False(t, MSAASampleCount(0).Valid())
}
