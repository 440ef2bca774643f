package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupProvider owns the GPU objects behind one drawable concern. The viewer uses two:
// the mesh provider, holding vertex and index buffers, and a program's uniform provider,
// holding one buffer per uniform binding plus the bind group tying them together.
//
// The Renderer allocates everything through the setters (InitMeshBuffers, InitBindGroup);
// callers only create the provider, queue BufferWrites against it and Release it at shutdown.
type BindGroupProvider interface {
	// Label names the provider in logs and GPU debug labels.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from, or nil before InitBindGroup.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer at a binding, or nil when there is none.
	//
	// Parameters:
	//   - binding: the @binding index inside the provider's group
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns every uniform buffer keyed by binding index. The map is owned by the provider.
	Buffers() map[int]*wgpu.Buffer

	// VertexBuffer returns the vertex buffer, or nil for uniform-only providers.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the uint32 index buffer, or nil for uniform-only providers.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns how many indices one draw of this provider consumes.
	IndexCount() int

	// HasMeshBuffers reports whether both the vertex and index buffers exist.
	//
	// Returns:
	//   - bool: true once InitMeshBuffers succeeded for this provider
	HasMeshBuffers() bool

	// SetBindGroup stores the bind group created by the Renderer.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout created by the Renderer.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the uniform buffer created for a binding.
	//
	// Parameters:
	//   - binding: the @binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer stores the uploaded vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the uploaded index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices drawn.
	SetIndexCount(count int)

	// Release frees every GPU object the provider holds and resets it to its unallocated state.
	// Safe to call more than once.
	Release()
}

var _ BindGroupProvider = &bindGroupProvider{}

type bindGroupProvider struct {
	label string

	// uniform side, set by InitBindGroup
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer

	// mesh side, set by InitMeshBuffers
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// NewBindGroupProvider creates an empty provider. No GPU objects exist until the Renderer fills it.
//
// Parameters:
//   - label: the debug label, also used as the prefix of GPU resource labels
//   - options: functional options
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{label: label, buffers: map[int]*wgpu.Buffer{}}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string                         { return p.label }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup             { return p.bindGroup }
func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout { return p.bindGroupLayout }
func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer        { return p.buffers[binding] }
func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer          { return p.buffers }
func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer             { return p.vertexBuffer }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer              { return p.indexBuffer }
func (p *bindGroupProvider) IndexCount() int                        { return p.indexCount }

func (p *bindGroupProvider) HasMeshBuffers() bool {
	return p.vertexBuffer != nil && p.indexBuffer != nil
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup)              { p.bindGroup = bg }
func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) { p.bindGroupLayout = bgl }
func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer)             { p.vertexBuffer = buf }
func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer)              { p.indexBuffer = buf }
func (p *bindGroupProvider) SetIndexCount(count int)                      { p.indexCount = count }

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = map[int]*wgpu.Buffer{}
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) Release() {
	// the bind group references the buffers, so it goes first
	if p.bindGroup != nil {
		p.bindGroup.Release()
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
	}
	for _, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
	}
	for _, buf := range []*wgpu.Buffer{p.vertexBuffer, p.indexBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	*p = bindGroupProvider{label: p.label, buffers: map[int]*wgpu.Buffer{}}
}
