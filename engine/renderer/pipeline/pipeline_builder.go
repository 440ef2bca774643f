package pipeline

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a Pipeline in NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader binds the vertex stage.
//
// Parameters:
//   - s: a shader parsed as ShaderTypeVertex
//
// Returns:
//   - PipelineBuilderOption: the option
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) { p.vertexShader = s }
}

// WithFragmentShader binds the fragment stage.
//
// Parameters:
//   - s: a shader parsed as ShaderTypeFragment
//
// Returns:
//   - PipelineBuilderOption: the option
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) { p.fragmentShader = s }
}

// WithDepthTestEnabled turns depth testing on or off.
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) { p.depthTestEnabled = enabled }
}

// WithDepthWriteEnabled turns depth writes on or off.
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) { p.depthWriteEnabled = enabled }
}

// WithBlendEnabled turns alpha blending on or off.
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) { p.blendEnabled = enabled }
}

// WithCullMode sets which faces are discarded.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) { p.cullMode = mode }
}

// WithTopology sets how indices are assembled into primitives.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) { p.topology = topology }
}

// WithFrontFace sets the winding order of front faces.
func WithFrontFace(face wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) { p.frontFace = face }
}

// WithWriteMask limits which color channels are written.
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) { p.writeMask = mask }
}
