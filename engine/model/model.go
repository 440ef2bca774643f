package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	vertices              []GPUVertex
	indices               []uint32
	meshProvider          bind_group_provider.BindGroupProvider
	vertexData, indexData []byte
}

// Model defines the interface for a GPU-ready triangle mesh.
// It keeps the CPU copy of the vertices and indices, their serialized upload form, and the
// BindGroupProvider that holds the GPU buffers once the renderer has uploaded them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the CPU-side vertices.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices returns the CPU-side triangle indices.
	//
	// Returns:
	//   - []uint32: the indices, three per triangle
	Indices() []uint32

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Validate checks that the mesh is a non-empty triangle list whose indices are in range.
	//
	// Returns:
	//   - error: nil if the mesh can be drawn
	Validate() error
}

var _ Model = &model{}

// NewModel creates a new Model and serializes its mesh for upload.
// A mesh provider named after the model is created when none is supplied.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{name: "model"}
	for _, option := range options {
		option(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + "_mesh")
	}
	m.vertexData = MarshalVertices(m.vertices)
	m.indexData = MarshalIndices(m.indices)
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) Validate() error {
	if len(m.vertices) == 0 {
		return fmt.Errorf("model %q has no vertices", m.name)
	}
	if len(m.indices) == 0 || len(m.indices)%3 != 0 {
		return fmt.Errorf("model %q has %d indices, want a positive multiple of 3", m.name, len(m.indices))
	}
	for i, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("model %q index %d references vertex %d of %d", m.name, i, idx, len(m.vertices))
		}
	}
	return nil
}
