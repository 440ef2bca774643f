package renderer

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertex := p.Shader(shader.ShaderTypeVertex)
	fragment := p.Shader(shader.ShaderTypeFragment)
	if vertex == nil || fragment == nil {
		return errors.New("a render pipeline needs a vertex and a fragment shader")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.targets.configured {
		return errors.New("surface must be configured before pipelines are registered")
	}

	vs, err := b.compile(vertex)
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := b.compile(fragment)
	if err != nil {
		return err
	}
	defer fs.Release()

	layout, err := b.pipelineLayout(p.PipelineKey(), mergeBindGroupLayouts(
		vertex.BindGroupLayoutDescriptors(),
		fragment.BindGroupLayoutDescriptors(),
	))
	if err != nil {
		return err
	}
	defer layout.Release()

	var vertexBuffers []wgpu.VertexBufferLayout
	for slot := range len(vertex.VertexLayouts()) {
		vertexBuffers = append(vertexBuffers, vertex.VertexLayout(slot)...)
	}

	target := wgpu.ColorTargetState{Format: b.targets.format, WriteMask: p.WriteMask()}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	rp, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertex.EntryPoint(),
			Buffers:    vertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragment.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		DepthStencil: depthStencilState(p),
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  ^uint32(0),
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline %q: %w", p.PipelineKey(), err)
	}
	p.SetRenderPipeline(rp)
	return nil
}

// compile creates the shader module for s. Errors name the stage and shader key.
func (b *wgpuRendererBackendImpl) compile(s shader.Shader) (*wgpu.ShaderModule, error) {
	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return nil, fmt.Errorf("compile %s shader %q: %w", s.ShaderType(), s.Key(), err)
	}
	return module, nil
}

// pipelineLayout creates one bind group layout per group index up to the highest declared.
// Undeclared groups below it get an empty layout.
func (b *wgpuRendererBackendImpl) pipelineLayout(label string, groups map[int]wgpu.BindGroupLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	count := 0
	for g := range groups {
		count = max(count, g+1)
	}

	layouts := make([]*wgpu.BindGroupLayout, 0, count)
	defer func() {
		for _, l := range layouts {
			l.Release()
		}
	}()
	for g := range count {
		desc := groups[g]
		l, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return nil, fmt.Errorf("create layout for group %d of %q: %w", g, label, err)
		}
		layouts = append(layouts, l)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout %q: %w", label, err)
	}
	return layout, nil
}

// depthStencilState always attaches the depth target; with the depth test off every fragment
// passes and nothing is written.
func depthStencilState(p pipeline.Pipeline) *wgpu.DepthStencilState {
	always := wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways}
	state := &wgpu.DepthStencilState{
		Format:       depthFormat,
		DepthCompare: wgpu.CompareFunctionAlways,
		StencilFront: always,
		StencilBack:  always,
	}
	if p.DepthTestEnabled() {
		state.DepthCompare = wgpu.CompareFunctionLess
		state.DepthWriteEnabled = p.DepthWriteEnabled()
	}
	return state
}

// mergeBindGroupLayouts combines the vertex and fragment stage layouts into the pipeline's.
// A binding declared by both stages keeps the vertex entry with both visibility bits set.
// Entries come out sorted by binding.
//
// Parameters:
//   - vertexLayouts: layouts parsed from the vertex shader, keyed by group
//   - fragmentLayouts: layouts parsed from the fragment shader, keyed by group
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged layouts keyed by group
func mergeBindGroupLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := maps.Clone(vertexLayouts)
	if merged == nil {
		merged = map[int]wgpu.BindGroupLayoutDescriptor{}
	}

	for g, frag := range fragmentLayouts {
		vert, shared := merged[g]
		if !shared {
			merged[g] = frag
			continue
		}

		byBinding := make(map[uint32]wgpu.BindGroupLayoutEntry, len(vert.Entries)+len(frag.Entries))
		for _, e := range vert.Entries {
			byBinding[e.Binding] = e
		}
		for _, e := range frag.Entries {
			if existing, ok := byBinding[e.Binding]; ok {
				existing.Visibility |= e.Visibility
				e = existing
			}
			byBinding[e.Binding] = e
		}

		entries := slices.SortedFunc(maps.Values(byBinding), func(a, b wgpu.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{Label: vert.Label, Entries: entries}
	}
	return merged
}
