package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// recordingCamera counts the calls a controller makes.
type recordingCamera struct {
	Camera
	looks    [][2]int32
	forward  []float32
	backward []float32
	left     []float32
	right    []float32
}

func newRecordingCamera() *recordingCamera {
	return &recordingCamera{Camera: NewCamera()}
}

func (r *recordingCamera) MouseLook(x, y int32)      { r.looks = append(r.looks, [2]int32{x, y}) }
func (r *recordingCamera) MoveForward(speed float32)  { r.forward = append(r.forward, speed) }
func (r *recordingCamera) MoveBackward(speed float32) { r.backward = append(r.backward, speed) }
func (r *recordingCamera) MoveLeft(speed float32)     { r.left = append(r.left, speed) }
func (r *recordingCamera) MoveRight(speed float32)    { r.right = append(r.right, speed) }

func TestControllerKeyMapping(t *testing.T) {
	tests := []struct {
		name string
		key  uint32
		get  func(r *recordingCamera) []float32
	}{
		{"W", common.KeyW, func(r *recordingCamera) []float32 { return r.forward }},
		{"Up", common.KeyUp, func(r *recordingCamera) []float32 { return r.forward }},
		{"S", common.KeyS, func(r *recordingCamera) []float32 { return r.backward }},
		{"Down", common.KeyDown, func(r *recordingCamera) []float32 { return r.backward }},
		{"A", common.KeyA, func(r *recordingCamera) []float32 { return r.left }},
		{"Left", common.KeyLeft, func(r *recordingCamera) []float32 { return r.left }},
		{"D", common.KeyD, func(r *recordingCamera) []float32 { return r.right }},
		{"Right", common.KeyRight, func(r *recordingCamera) []float32 { return r.right }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController()
			cam := newRecordingCamera()

			cc.KeyDown(tt.key)
			cc.Apply(cam)
			cc.Apply(cam)
			assert.Equal(t, []float32{0.1, 0.1}, tt.get(cam))

			cc.KeyUp(tt.key)
			cc.Apply(cam)
			assert.Len(t, tt.get(cam), 2)
		})
	}
}

func TestControllerIgnoresUnboundKeys(t *testing.T) {
	cc := NewCameraController()
	cam := newRecordingCamera()

	cc.KeyDown(common.KeySpace)
	cc.Apply(cam)

	assert.Empty(t, cam.forward)
	assert.Empty(t, cam.backward)
	assert.Empty(t, cam.left)
	assert.Empty(t, cam.right)
}

func TestControllerAliasKeysMoveOncePerFrame(t *testing.T) {
	cc := NewCameraController()
	cam := newRecordingCamera()

	cc.KeyDown(common.KeyW)
	cc.KeyDown(common.KeyUp)
	cc.Apply(cam)
	assert.Len(t, cam.forward, 1)

	cc.KeyUp(common.KeyW)
	assert.True(t, cc.Held(DirectionForward))
	cc.KeyUp(common.KeyUp)
	assert.False(t, cc.Held(DirectionForward))
}

func TestControllerAggregatesMouseOncePerFrame(t *testing.T) {
	cc := NewCameraController()
	cam := newRecordingCamera()

	cc.Apply(cam)
	assert.Empty(t, cam.looks)

	cc.MouseMove(10, 1)
	cc.MouseMove(25, 2)
	cc.MouseMove(40, 3)
	cc.Apply(cam)
	assert.Equal(t, [][2]int32{{40, 3}}, cam.looks)

	cc.Apply(cam)
	assert.Len(t, cam.looks, 1)
}

func TestControllerDrivesRealCamera(t *testing.T) {
	cc := NewCameraController()
	cam := NewCamera()

	cc.MouseMove(0, 0)
	cc.Apply(cam)
	assert.True(t, cam.HasPriorSample())

	cc.KeyDown(common.KeyW)
	for range 10 {
		cc.Apply(cam)
	}
	assertVec3(t, mgl32.Vec3{0, 0, -1}, cam.Eye())
}

func TestControllerTimeScaledMovement(t *testing.T) {
	cc := NewCameraController(WithTimeScaledMovement(2))
	cam := newRecordingCamera()

	assert.True(t, cc.TimeScaled())
	cc.KeyDown(common.KeyD)
	cc.ApplyDelta(cam, 0.5)
	assert.Equal(t, []float32{1}, cam.right)
}

func TestControllerApplyDeltaIgnoresTimeByDefault(t *testing.T) {
	cc := NewCameraController(WithMoveSpeed(0.25))
	cam := newRecordingCamera()

	cc.KeyDown(common.KeyS)
	cc.ApplyDelta(cam, 3)
	assert.Equal(t, []float32{0.25}, cam.backward)
	assert.Equal(t, float32(0.25), cc.MoveSpeed())
}

func TestControllerCustomBindings(t *testing.T) {
	cc := NewCameraController(WithKeyBindings(map[uint32]Direction{common.KeySpace: DirectionForward}))
	cam := newRecordingCamera()

	cc.KeyDown(common.KeyW)
	cc.KeyDown(common.KeySpace)
	cc.Apply(cam)
	assert.Len(t, cam.forward, 1)
}
