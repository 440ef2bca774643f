// Package pipeline describes render pipelines before and after the renderer builds them on the GPU.
package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline pairs a vertex and a fragment shader with the fixed-function state the renderer needs
// to build a GPU render pipeline. The renderer stores the built pipeline back on it.
type Pipeline interface {
	// PipelineKey returns the key the renderer caches this pipeline under.
	PipelineKey() string

	// Shader returns the shader bound to a stage, or nil.
	//
	// Parameters:
	//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
	//
	// Returns:
	//   - shader.Shader: the stage's shader, or nil when unset or the stage is unknown
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the built GPU pipeline, or nil until the renderer registers it.
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled reports whether fragments are depth tested. When false every fragment
	// passes and draw order decides visibility.
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether depth is written. Ignored while the depth test is off.
	DepthWriteEnabled() bool

	// BlendEnabled reports whether BlendState is applied to the color target.
	BlendEnabled() bool

	// BlendState returns the blend equations used when blending is enabled.
	BlendState() *wgpu.BlendState

	CullMode() wgpu.CullMode
	Topology() wgpu.PrimitiveTopology
	FrontFace() wgpu.FrontFace
	WriteMask() wgpu.ColorWriteMask

	// Validate checks that both stages are set and hold shaders of the right type.
	//
	// Returns:
	//   - error: an error naming the pipeline and the offending shader, or nil
	Validate() error

	// SetRenderPipeline stores the GPU pipeline built by the renderer, releasing any previous one.
	//
	// Parameters:
	//   - rp: the built pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The description stays usable for another registration.
	Release()
}

var _ Pipeline = &pipeline{}

type pipeline struct {
	pipelineKey string

	vertexShader   shader.Shader
	fragmentShader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	blendState        *wgpu.BlendState
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// alphaBlend is straight alpha blending over the destination.
var alphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// NewPipeline creates a pipeline description. Without options it depth tests and writes, does not
// blend or cull, draws counter-clockwise triangle lists and writes every color channel.
//
// Parameters:
//   - pipelineKey: the cache key
//   - opts: functional options
//
// Returns:
//   - Pipeline: the description, not yet built on the GPU
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	blend := alphaBlend
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendState:        &blend,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string { return p.pipelineKey }

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	}
	return nil
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline { return p.renderPipeline }
func (p *pipeline) DepthTestEnabled() bool               { return p.depthTestEnabled }
func (p *pipeline) DepthWriteEnabled() bool              { return p.depthWriteEnabled }
func (p *pipeline) BlendEnabled() bool                   { return p.blendEnabled }
func (p *pipeline) BlendState() *wgpu.BlendState         { return p.blendState }
func (p *pipeline) CullMode() wgpu.CullMode              { return p.cullMode }
func (p *pipeline) Topology() wgpu.PrimitiveTopology     { return p.topology }
func (p *pipeline) FrontFace() wgpu.FrontFace            { return p.frontFace }
func (p *pipeline) WriteMask() wgpu.ColorWriteMask       { return p.writeMask }

func (p *pipeline) Validate() error {
	switch {
	case p.vertexShader == nil || p.fragmentShader == nil:
		return fmt.Errorf("pipeline %s: requires both a vertex and a fragment shader", p.pipelineKey)
	case p.vertexShader.ShaderType() != shader.ShaderTypeVertex:
		return fmt.Errorf("pipeline %s: shader %s is not a vertex shader", p.pipelineKey, p.vertexShader.Key())
	case p.fragmentShader.ShaderType() != shader.ShaderTypeFragment:
		return fmt.Errorf("pipeline %s: shader %s is not a fragment shader", p.pipelineKey, p.fragmentShader.Key())
	}
	return nil
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	if p.renderPipeline != nil && p.renderPipeline != rp {
		p.renderPipeline.Release()
	}
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
