package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragmentSource = `
@fragment
fn fs_main(@location(0) color: vec3<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(color, 1.0);
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadViewerShaders(t *testing.T) {
	l := NewLoader(WithWorkers(2))
	err := l.LoadShaders(
		ShaderRequest{Key: "vert", Type: shader.ShaderTypeVertex, Path: "../../assets/shaders/vert.wgsl"},
		ShaderRequest{Key: "frag", Type: shader.ShaderTypeFragment, Path: "../../assets/shaders/frag.wgsl"},
	)
	require.NoError(t, err)

	vert := l.Shader("vert")
	require.NotNil(t, vert)
	assert.Equal(t, "vs_main", vert.EntryPoint())
	assert.Equal(t, shader.ShaderTypeVertex, vert.ShaderType())

	frag := l.Shader("frag")
	require.NotNil(t, frag)
	assert.Equal(t, "fs_main", frag.EntryPoint())

	assert.Len(t, l.Shaders(), 2)
	assert.Nil(t, l.Shader("missing"))
}

func TestLoadShadersJoinsErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "frag.wgsl", fragmentSource)
	wrongStage := writeFile(t, dir, "not_vertex.wgsl", fragmentSource)

	l := NewLoader()
	err := l.LoadShaders(
		ShaderRequest{Key: "frag", Type: shader.ShaderTypeFragment, Path: good},
		ShaderRequest{Key: "vert", Type: shader.ShaderTypeVertex, Path: wrongStage},
		ShaderRequest{Key: "missing", Type: shader.ShaderTypeVertex, Path: filepath.Join(dir, "nope.wgsl")},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, shader.ErrEntryPointNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// The successful request is still cached.
	assert.NotNil(t, l.Shader("frag"))
	assert.Nil(t, l.Shader("vert"))
	assert.Nil(t, l.Shader("missing"))
}

func TestLoadShadersRejectsBadRequests(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "frag.wgsl", fragmentSource)

	l := NewLoader()
	err := l.LoadShaders(
		ShaderRequest{Key: "", Type: shader.ShaderTypeFragment, Path: path},
		ShaderRequest{Key: "frag", Type: shader.ShaderTypeFragment, Path: path},
		ShaderRequest{Key: "frag", Type: shader.ShaderTypeFragment, Path: path},
	)
	assert.Error(t, err)
	assert.NotNil(t, l.Shader("frag"))
}

func TestCachedShadersAreNotReloaded(t *testing.T) {
	cached, err := shader.NewShaderFromSource("frag", shader.ShaderTypeFragment, fragmentSource)
	require.NoError(t, err)

	l := NewLoader(WithShader("frag", cached), WithQueueSize(4))
	// The path does not exist; a reload would fail.
	require.NoError(t, l.LoadShaders(ShaderRequest{Key: "frag", Type: shader.ShaderTypeFragment, Path: "does/not/exist.wgsl"}))
	assert.Same(t, cached, l.Shader("frag"))
}

func TestShadersReturnsCopy(t *testing.T) {
	cached, err := shader.NewShaderFromSource("frag", shader.ShaderTypeFragment, fragmentSource)
	require.NoError(t, err)

	l := NewLoader(WithShader("frag", cached))
	m := l.Shaders()
	delete(m, "frag")
	assert.NotNil(t, l.Shader("frag"))
}
