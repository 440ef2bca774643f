package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vertexSource   = "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }"
	fragmentSource = "@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(); }"
)

func mustShader(t *testing.T, key string, shaderType shader.ShaderType, source string) shader.Shader {
	t.Helper()
	s, err := shader.NewShaderFromSource(key, shaderType, source)
	require.NoError(t, err)
	return s
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("mesh")

	assert.Equal(t, "mesh", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
}

func TestPipelineOptions(t *testing.T) {
	vert := mustShader(t, "vert", shader.ShaderTypeVertex, vertexSource)
	frag := mustShader(t, "frag", shader.ShaderTypeFragment, fragmentSource)

	p := NewPipeline("mesh",
		WithVertexShader(vert),
		WithFragmentShader(frag),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendEnabled(true),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	require.NoError(t, p.Validate())
	assert.Same(t, vert, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, frag, p.Shader(shader.ShaderTypeFragment))
	assert.Nil(t, p.Shader(shader.ShaderType(9)))
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
}

func TestReleaseWithoutRenderPipeline(t *testing.T) {
	p := NewPipeline("mesh")
	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.RenderPipeline())
}

func TestPipelineValidate(t *testing.T) {
	vert := mustShader(t, "vert", shader.ShaderTypeVertex, vertexSource)
	frag := mustShader(t, "frag", shader.ShaderTypeFragment, fragmentSource)

	assert.ErrorContains(t, NewPipeline("a", WithVertexShader(vert)).Validate(), "both")
	assert.ErrorContains(t, NewPipeline("b", WithVertexShader(frag), WithFragmentShader(frag)).Validate(), "not a vertex")
	assert.ErrorContains(t, NewPipeline("c", WithVertexShader(vert), WithFragmentShader(vert)).Validate(), "not a fragment")
}
