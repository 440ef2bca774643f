package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/compositor"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformGroup is the bind group holding a program's named uniforms.
const UniformGroup = 0

// program is the implementation of the Program interface.
type program struct {
	renderer    Renderer
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	mesh     bind_group_provider.BindGroupProvider
	uniforms bind_group_provider.BindGroupProvider

	// locations caches UniformLocation results by name, including misses.
	locations map[string]int
	// pending holds uniform writes staged since the last Draw.
	pending []bind_group_provider.BufferWrite
}

// Program binds a registered pipeline to one mesh and the uniform buffers of the pipeline's
// uniform group. Uniform slots are addressed by the variable name declared in WGSL and resolve
// to the variable's binding index.
type Program interface {
	compositor.UniformBackend

	// PipelineKey returns the key of the pipeline this program draws with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Uniforms returns the provider holding the uniform buffers and bind group.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the uniform provider
	Uniforms() bind_group_provider.BindGroupProvider

	// Release frees the uniform buffers and bind group.
	Release()
}

var _ Program = &program{}

// NewProgram creates the uniform buffers for the registered pipeline's uniform group and returns a
// Program drawing mesh with it.
//
// Parameters:
//   - r: the renderer the pipeline is registered with
//   - pipelineKey: the key of a registered pipeline
//   - mesh: a provider whose vertex and index buffers were created with InitMeshBuffers
//
// Returns:
//   - Program: the new program
//   - error: an error if the pipeline is unknown or the uniform bind group could not be created
func NewProgram(r Renderer, pipelineKey string, mesh bind_group_provider.BindGroupProvider) (Program, error) {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return nil, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	vs := p.Shader(shader.ShaderTypeVertex)
	fs := p.Shader(shader.ShaderTypeFragment)

	merged := mergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	uniforms := bind_group_provider.NewBindGroupProvider(pipelineKey + " Uniforms")
	if desc, ok := merged[UniformGroup]; ok {
		if err := r.InitBindGroup(uniforms, desc); err != nil {
			return nil, fmt.Errorf("program %q uniforms: %w", pipelineKey, err)
		}
	}

	common.Logger().Debug("program created",
		"pipeline", pipelineKey,
		"vertex_uniforms", vs.VarNames(UniformGroup),
		"fragment_uniforms", fs.VarNames(UniformGroup),
	)

	return &program{
		renderer:       r,
		pipelineKey:    pipelineKey,
		vertexShader:   vs,
		fragmentShader: fs,
		mesh:           mesh,
		uniforms:       uniforms,
		locations:      make(map[string]int),
	}, nil
}

func (p *program) PipelineKey() string {
	return p.pipelineKey
}

func (p *program) Uniforms() bind_group_provider.BindGroupProvider {
	return p.uniforms
}

func (p *program) UniformLocation(name string) int {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := -1
	for _, s := range []shader.Shader{p.vertexShader, p.fragmentShader} {
		if binding, ok := s.BindGroupFromVarName(UniformGroup, name); ok {
			loc = binding
			break
		}
	}
	p.locations[name] = loc
	return loc
}

func (p *program) SetUniformMatrix(location int, m mgl32.Mat4) {
	if location < 0 {
		return
	}
	p.pending = append(p.pending, bind_group_provider.MatrixWrite(p.uniforms, location, m))
}

// Draw flushes staged uniform writes, then records and presents one frame drawing the mesh.
func (p *program) Draw() error {
	if len(p.pending) > 0 {
		p.renderer.WriteBuffers(bind_group_provider.CollapseWrites(p.pending))
		p.pending = nil
	}

	if err := p.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	var bindGroups []bind_group_provider.BindGroupProvider
	if p.uniforms.BindGroup() != nil {
		bindGroups = append(bindGroups, p.uniforms)
	}
	drawErr := p.renderer.DrawCall(p.pipelineKey, p.mesh, 1, bindGroups)
	p.renderer.EndFrame()
	p.renderer.Present()
	return drawErr
}

func (p *program) Release() {
	p.uniforms.Release()
	p.pending = nil
}
