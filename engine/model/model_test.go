package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Color: [3]float32{0.25, 0.5, 0.75}}

	assert.Equal(t, GPUVertexSize, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, GPUVertexSize)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])))
}

func TestViewerMeshShape(t *testing.T) {
	m := NewViewerMesh()

	require.NoError(t, m.Validate())
	assert.Equal(t, "viewer_mesh", m.Name())
	assert.Len(t, m.Vertices(), 12)
	assert.Equal(t, 18, m.IndexCount())
	assert.Len(t, m.VertexData(), 12*GPUVertexSize)
	assert.Len(t, m.IndexData(), 18*4)
	require.NotNil(t, m.MeshProvider())
	assert.Equal(t, "viewer_mesh_mesh", m.MeshProvider().Label())
}

func TestViewerMeshQuads(t *testing.T) {
	vertices := ViewerMeshVertices()

	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(0), vertices[i].Position[2], "front vertex %d", i)
		assert.Equal(t, colorFront, vertices[i].Color)
	}
	for i := 4; i < 8; i++ {
		assert.Equal(t, float32(-1), vertices[i].Position[2], "back vertex %d", i)
		assert.Equal(t, colorBack, vertices[i].Color)
	}
	for i := 8; i < 12; i++ {
		assert.Equal(t, float32(0.5), vertices[i].Position[1], "top vertex %d", i)
		assert.Equal(t, colorTop, vertices[i].Color)
	}
}

func TestViewerMeshIndicesStayWithinQuad(t *testing.T) {
	indices := ViewerMeshIndices()

	for tri := 0; tri < len(indices)/3; tri++ {
		quad := uint32(tri / 2)
		for _, idx := range indices[tri*3 : tri*3+3] {
			assert.Equal(t, quad, idx/4, "triangle %d", tri)
		}
	}
}

func TestMarshalIndices(t *testing.T) {
	buf := MarshalIndices([]uint32{7, 256})

	require.Len(t, buf, 8)
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(256), binary.LittleEndian.Uint32(buf[4:8]))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ModelBuilderOption
		wantErr string
	}{
		{"no vertices", []ModelBuilderOption{WithIndices([]uint32{0, 0, 0})}, "no vertices"},
		{"partial triangle", []ModelBuilderOption{
			WithVertices(ViewerMeshVertices()), WithIndices([]uint32{0, 1}),
		}, "multiple of 3"},
		{"out of range", []ModelBuilderOption{
			WithVertices(ViewerMeshVertices()[:3]), WithIndices([]uint32{0, 1, 3}),
		}, "references vertex 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModel(tt.opts...).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWithMeshProvider(t *testing.T) {
	provider := bind_group_provider.NewBindGroupProvider("shared")
	m := NewViewerMesh(WithMeshProvider(provider))

	assert.Same(t, provider, m.MeshProvider())
}
