package bind_group_provider

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// BufferWrite is one queued upload into the uniform buffer behind a provider's binding.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// MatrixWrite builds the write that replaces a mat4x4<f32> uniform with m.
//
// Parameters:
//   - provider: the provider owning the uniform buffer
//   - binding: the binding index of the uniform
//   - m: the matrix, encoded column-major
//
// Returns:
//   - BufferWrite: a write of common.Mat4Size bytes at offset 0
func MatrixWrite(provider BindGroupProvider, binding int, m mgl32.Mat4) BufferWrite {
	return BufferWrite{
		Provider: provider,
		Binding:  binding,
		Data:     common.Mat4ToBytes(m),
	}
}

type writeTarget struct {
	provider BindGroupProvider
	binding  int
	offset   uint64
}

// CollapseWrites drops every write that a later write to the same provider, binding and offset
// overwrites. Surviving writes keep their relative order.
//
// Parameters:
//   - writes: the queued writes in submission order
//
// Returns:
//   - []BufferWrite: a new slice holding only the last write per target
func CollapseWrites(writes []BufferWrite) []BufferWrite {
	last := make(map[writeTarget]int, len(writes))
	for i, w := range writes {
		last[writeTarget{w.Provider, w.Binding, w.Offset}] = i
	}
	out := make([]BufferWrite, 0, len(last))
	for i, w := range writes {
		if last[writeTarget{w.Provider, w.Binding, w.Offset}] == i {
			out = append(out, w)
		}
	}
	return out
}
