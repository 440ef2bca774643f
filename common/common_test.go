package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, float32(0.1), Coalesce(float32(0), float32(0.1)))
}

func TestMat4ToBytesColumnMajor(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	data := Mat4ToBytes(m)
	require.Len(t, data, Mat4Size)

	decoded := BytesToMat4(data)
	assert.Equal(t, m, decoded)
	// translation lives in the last column
	assert.Equal(t, float32(1), decoded[12])
	assert.Equal(t, float32(2), decoded[13])
	assert.Equal(t, float32(3), decoded[14])
}

func TestBytesToMat4Short(t *testing.T) {
	m := BytesToMat4(Mat4ToBytes(mgl32.Ident4())[:8])
	assert.Equal(t, float32(1), m[0])
	assert.Equal(t, float32(0), m[15])
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]uint32{}))
	assert.Len(t, SliceToBytes([]uint32{1, 2, 3}), 12)
}

func TestLoggerDefaultsToSilent(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("frame", "n", 1)
	assert.Contains(t, buf.String(), "frame")

	SetLogger(nil)
	Logger().Info("dropped")
	assert.NotContains(t, buf.String(), "dropped")
}
