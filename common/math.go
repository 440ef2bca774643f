package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4Size is the byte size of a 4x4 float32 matrix as laid out in a uniform buffer.
const Mat4Size = 16 * 4

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mat4ToBytes encodes a matrix as 16 little-endian float32 values in column-major order,
// the layout WGSL expects for a mat4x4<f32> uniform.
//
// Parameters:
//   - m: the matrix to encode
//
// Returns:
//   - []byte: a freshly allocated 64-byte buffer
func Mat4ToBytes(m mgl32.Mat4) []byte {
	buf := make([]byte, Mat4Size)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// BytesToMat4 decodes 64 little-endian bytes into a matrix. It is the inverse of Mat4ToBytes.
// Short input leaves the trailing elements zero.
//
// Parameters:
//   - data: encoded matrix bytes
//
// Returns:
//   - mgl32.Mat4: the decoded matrix
func BytesToMat4(data []byte) mgl32.Mat4 {
	var m mgl32.Mat4
	for i := range m {
		if (i+1)*4 > len(data) {
			break
		}
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return m
}
