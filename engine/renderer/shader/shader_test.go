package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `
// vertex input
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec3<f32>,
};

struct Light {
    direction: vec3<f32>,
    intensity: f32,
};

/* @group(3) @binding(0) var<uniform> commented: f32; */
@group(0) @binding(0) var<uniform> u_ModelMatrix: mat4x4<f32>;
@group(0) @binding(2) var<uniform> u_Perspective: mat4x4<f32>;
@group(0) @binding(1) var<uniform> u_ViewMatrix: mat4x4<f32>;
@group(1) @binding(0) var<uniform> light: Light;
@group(1) @binding(1) var<storage, read> lights: array<Light, 4>;

@vertex
fn vs_main(vin: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = u_Perspective * u_ViewMatrix * u_ModelMatrix * vec4<f32>(vin.position, 1.0);
    out.color = vin.color;
    return out;
}
`

const testFragmentSource = `
struct FragmentInput {
    @location(0) color: vec3<f32>,
};

@fragment
fn fs_main(fin: FragmentInput) -> @location(0) vec4<f32> {
    return vec4<f32>(fin.color, 1.0);
}
`

func TestNewShaderFromSourceVertex(t *testing.T) {
	s, err := NewShaderFromSource("vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, "vert", s.Key())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Equal(t, "vs_main", s.EntryPoint())
	require.NotNil(t, s.Module())
	assert.Equal(t, "vert", s.Module().Label)
	assert.Equal(t, testVertexSource, s.Module().WGSLDescriptor.Code)
}

func TestVertexLayoutSkipsOutputStructs(t *testing.T) {
	s, err := NewShaderFromSource("vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	require.Len(t, s.VertexLayouts(), 1)
	layout := s.VertexLayout(0)
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(24), layout[0].ArrayStride)
	require.Len(t, layout[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout[0].Attributes[0].Format)
	assert.Equal(t, uint64(0), layout[0].Attributes[0].Offset)
	assert.Equal(t, uint32(1), layout[0].Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(12), layout[0].Attributes[1].Offset)
}

func TestBindGroupFromVarName(t *testing.T) {
	s, err := NewShaderFromSource("vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	tests := []struct {
		group   int
		name    string
		binding int
		found   bool
	}{
		{0, "u_ModelMatrix", 0, true},
		{0, "u_ViewMatrix", 1, true},
		{0, "u_Perspective", 2, true},
		{1, "light", 0, true},
		{0, "light", -1, false},
		{0, "u_Missing", -1, false},
		{3, "commented", -1, false},
	}
	for _, tt := range tests {
		binding, found := s.BindGroupFromVarName(tt.group, tt.name)
		assert.Equal(t, tt.binding, binding, tt.name)
		assert.Equal(t, tt.found, found, tt.name)
	}
	assert.Equal(t, "u_ViewMatrix", s.BindGroupVarName(0, 1))
	assert.Empty(t, s.BindGroupVarName(2, 0))
}

func TestBindGroupLayoutDescriptors(t *testing.T) {
	s, err := NewShaderFromSource("vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	require.Len(t, s.BindGroupLayoutDescriptors(), 2)

	group0 := s.BindGroupLayoutDescriptor(0)
	require.Len(t, group0.Entries, 3)
	for i, entry := range group0.Entries {
		assert.Equal(t, uint32(i), entry.Binding, "entries are sorted by binding")
		assert.Equal(t, wgpu.ShaderStageVertex, entry.Visibility)
		assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
		assert.Equal(t, uint64(64), entry.Buffer.MinBindingSize)
	}

	group1 := s.BindGroupLayoutDescriptor(1)
	require.Len(t, group1.Entries, 2)
	assert.Equal(t, uint64(16), group1.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, group1.Entries[1].Buffer.Type)
	assert.Equal(t, uint64(64), group1.Entries[1].Buffer.MinBindingSize)
}

func TestNewShaderFromSourceFragment(t *testing.T) {
	s, err := NewShaderFromSource("frag", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}

func TestNewShaderFromSourceErrors(t *testing.T) {
	_, err := NewShaderFromSource("empty", ShaderTypeVertex, "  \n")
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = NewShaderFromSource("frag_as_vert", ShaderTypeVertex, testFragmentSource)
	assert.ErrorIs(t, err, ErrEntryPointNotFound)
	assert.Contains(t, err.Error(), "@vertex")
}

func TestNewShaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frag.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(testFragmentSource), 0o644))

	s, err := NewShader("frag", ShaderTypeFragment, path)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())

	_, err = NewShader("missing", ShaderTypeFragment, filepath.Join(t.TempDir(), "nope.wgsl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewShader("blank", ShaderTypeFragment, "")
	assert.Error(t, err)
}

func TestViewerAssets(t *testing.T) {
	vert, err := NewShader("vert", ShaderTypeVertex, filepath.Join("..", "..", "..", "assets", "shaders", "vert.wgsl"))
	require.NoError(t, err)
	frag, err := NewShader("frag", ShaderTypeFragment, filepath.Join("..", "..", "..", "assets", "shaders", "frag.wgsl"))
	require.NoError(t, err)

	for binding, name := range []string{"u_ModelMatrix", "u_ViewMatrix", "u_Perspective"} {
		got, ok := vert.BindGroupFromVarName(0, name)
		assert.True(t, ok, name)
		assert.Equal(t, binding, got, name)
	}
	assert.Equal(t, uint64(24), vert.VertexLayout(0)[0].ArrayStride)
	assert.Equal(t, "fs_main", frag.EntryPoint())
}

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "ShaderType(7)", ShaderType(7).String())
}

func TestVarNames(t *testing.T) {
	s, err := NewShaderFromSource("vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, []string{"u_ModelMatrix", "u_ViewMatrix", "u_Perspective"}, s.VarNames(0))
	assert.Equal(t, []string{"light", "lights"}, s.VarNames(1))
	assert.Nil(t, s.VarNames(3))
}
