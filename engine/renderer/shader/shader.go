// Package shader loads WGSL sources and extracts what pipeline creation and uniform lookup need:
// the stage entry point, vertex buffer layouts and the declared bind group resources.
package shader

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType is the pipeline stage a shader is written for.
type ShaderType int

const (
	ShaderTypeVertex ShaderType = iota
	ShaderTypeFragment
)

// String returns the stage's WGSL attribute name.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderType(%d)", int(t))
}

func (t ShaderType) visibility() wgpu.ShaderStage {
	if t == ShaderTypeFragment {
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageVertex
}

var (
	// ErrEmptySource is returned for blank shader sources.
	ErrEmptySource = errors.New("shader source is empty")

	// ErrEntryPointNotFound is returned when no function carries the stage attribute.
	ErrEntryPointNotFound = errors.New("shader entry point not found")
)

// Shader is a parsed WGSL shader for one stage.
type Shader interface {
	// Key returns the identifier the shader was created with.
	Key() string

	// Source returns the WGSL text.
	Source() string

	// ShaderType returns the stage.
	ShaderType() ShaderType

	// EntryPoint returns the name of the function tagged with the stage attribute, e.g. "vs_main".
	EntryPoint() string

	// Module returns the descriptor the renderer compiles into a shader module.
	Module() *wgpu.ShaderModuleDescriptor

	// VertexLayout returns the buffer layouts of the n-th vertex input struct, or nil.
	//
	// Parameters:
	//   - key: the struct's position among the vertex input structs
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, or nil
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts returns every vertex input layout keyed by struct position. Empty for fragment shaders.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor returns the layout of a group, or the zero descriptor when the
	// shader declares nothing in it.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: entries sorted by binding, visible to this stage
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every declared group's layout keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the variable declared at a group and binding, or "".
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the variable name, or ""
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName resolves a variable name to its binding inside a group.
	//
	// Parameters:
	//   - group: the @group index
	//   - varName: the variable name as declared
	//
	// Returns:
	//   - int: the @binding index, or -1
	//   - bool: false when the group does not declare varName
	BindGroupFromVarName(group int, varName string) (int, bool)

	// VarNames lists the variables declared in a group ordered by binding.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - []string: the names, or nil when the group is empty
	VarNames(group int) []string
}

var _ Shader = &shader{}

type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string
	module     *wgpu.ShaderModuleDescriptor

	vertexLayouts map[int][]wgpu.VertexBufferLayout
	groups        map[int]wgpu.BindGroupLayoutDescriptor

	// names maps group -> binding -> variable; bindings is the reverse index.
	names    map[int]map[int]string
	bindings map[int]map[string]int
}

// NewShader reads and parses a WGSL file.
//
// Parameters:
//   - key: the shader's identifier
//   - shaderType: the stage
//   - sourcePath: the .wgsl file
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error wrapping the read failure, ErrEmptySource or ErrEntryPointNotFound
func NewShader(key string, shaderType ShaderType, sourcePath string) (Shader, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("shader %s: no source path provided", key)
	}
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShaderFromSource(key, shaderType, string(data))
}

// NewShaderFromSource parses WGSL held in memory.
//
// Parameters:
//   - key: the shader's identifier
//   - shaderType: the stage
//   - source: the WGSL text
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrEmptySource or ErrEntryPointNotFound wrapped with the key
func NewShaderFromSource(key string, shaderType ShaderType, source string) (Shader, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrEmptySource)
	}
	entryPoint := parseEntryPoint(source, shaderType)
	if entryPoint == "" {
		return nil, fmt.Errorf("shader %s: %w: no @%s function", key, ErrEntryPointNotFound, shaderType)
	}

	s := &shader{
		key:           key,
		source:        source,
		shaderType:    shaderType,
		entryPoint:    entryPoint,
		vertexLayouts: map[int][]wgpu.VertexBufferLayout{},
		bindings:      map[int]map[string]int{},
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
		},
	}
	if shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(source)
	}
	s.groups, s.names = parseBindGroupLayouts(source, shaderType.visibility())
	for group, byBinding := range s.names {
		s.bindings[group] = make(map[string]int, len(byBinding))
		for binding, name := range byBinding {
			s.bindings[group][name] = binding
		}
	}
	return s, nil
}

func (s *shader) Key() string                          { return s.key }
func (s *shader) Source() string                       { return s.source }
func (s *shader) ShaderType() ShaderType               { return s.shaderType }
func (s *shader) EntryPoint() string                   { return s.entryPoint }
func (s *shader) Module() *wgpu.ShaderModuleDescriptor { return s.module }

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.groups[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.groups
}

func (s *shader) BindGroupVarName(group, binding int) string {
	return s.names[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	if binding, ok := s.bindings[group][varName]; ok {
		return binding, true
	}
	return -1, false
}

func (s *shader) VarNames(group int) []string {
	byBinding := s.names[group]
	if len(byBinding) == 0 {
		return nil
	}
	bindings := make([]int, 0, len(byBinding))
	for b := range byBinding {
		bindings = append(bindings, b)
	}
	slices.Sort(bindings)

	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = byBinding[b]
	}
	return names
}
