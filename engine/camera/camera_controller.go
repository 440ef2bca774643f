package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Direction identifies one of the four movement operations of a Camera.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionBackward
	DirectionLeft
	DirectionRight
)

// CameraController collects raw input between frames and applies it to a Camera once per frame.
// Key events toggle held movement directions; pointer events are aggregated so that the
// camera receives at most one MouseLook sample per frame.
//
// A CameraController is not safe for concurrent use; window callbacks and Apply run on the
// render loop thread.
type CameraController interface {
	// KeyDown marks the direction bound to keyCode as held. Unbound keys are ignored.
	//
	// Parameters:
	//   - keyCode: virtual key code (see common.Key*)
	KeyDown(keyCode uint32)

	// KeyUp releases the direction bound to keyCode.
	//
	// Parameters:
	//   - keyCode: virtual key code (see common.Key*)
	KeyUp(keyCode uint32)

	// MouseMove records the latest pointer position. With a captured cursor the position is
	// unbounded, so the difference between two frames is the total relative motion.
	//
	// Parameters:
	//   - x, y: pointer coordinates
	MouseMove(x, y int32)

	// Apply feeds the collected input to cam using the per-frame move speed.
	//
	// Parameters:
	//   - cam: the camera to drive
	Apply(cam Camera)

	// ApplyDelta feeds the collected input to cam. In time-scaled mode the move speed is
	// multiplied by deltaTime; otherwise it behaves exactly like Apply.
	//
	// Parameters:
	//   - cam: the camera to drive
	//   - deltaTime: seconds since the previous frame
	ApplyDelta(cam Camera, deltaTime float32)

	// Held reports whether a movement direction is currently held.
	//
	// Parameters:
	//   - dir: the direction to query
	//
	// Returns:
	//   - bool: true while any key bound to dir is down
	Held(dir Direction) bool

	// MoveSpeed returns the distance applied per Move call.
	//
	// Returns:
	//   - float32: per-frame distance, or units per second in time-scaled mode
	MoveSpeed() float32

	// TimeScaled reports whether movement is scaled by frame time.
	//
	// Returns:
	//   - bool: true when time-scaled movement is enabled
	TimeScaled() bool
}

type cameraControllerImpl struct {
	bindings map[uint32]Direction
	held     map[uint32]bool

	moveSpeed  float32
	timeScaled bool

	mouseX, mouseY int32
	mouseDirty     bool
}

var _ CameraController = &cameraControllerImpl{}

// DefaultKeyBindings maps WASD and the arrow keys to the four movement directions.
//
// Returns:
//   - map[uint32]Direction: a fresh binding table
func DefaultKeyBindings() map[uint32]Direction {
	return map[uint32]Direction{
		common.KeyW:     DirectionForward,
		common.KeyUp:    DirectionForward,
		common.KeyS:     DirectionBackward,
		common.KeyDown:  DirectionBackward,
		common.KeyA:     DirectionLeft,
		common.KeyLeft:  DirectionLeft,
		common.KeyD:     DirectionRight,
		common.KeyRight: DirectionRight,
	}
}

// NewCameraController creates a controller with the default key bindings and a move speed
// of 0.1 units per frame.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		bindings:  DefaultKeyBindings(),
		held:      make(map[uint32]bool),
		moveSpeed: 0.1,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) KeyDown(keyCode uint32) {
	if _, ok := cc.bindings[keyCode]; ok {
		cc.held[keyCode] = true
	}
}

func (cc *cameraControllerImpl) KeyUp(keyCode uint32) {
	delete(cc.held, keyCode)
}

func (cc *cameraControllerImpl) MouseMove(x, y int32) {
	cc.mouseX, cc.mouseY = x, y
	cc.mouseDirty = true
}

func (cc *cameraControllerImpl) Apply(cam Camera) {
	cc.apply(cam, cc.moveSpeed)
}

func (cc *cameraControllerImpl) ApplyDelta(cam Camera, deltaTime float32) {
	speed := cc.moveSpeed
	if cc.timeScaled {
		speed *= deltaTime
	}
	cc.apply(cam, speed)
}

func (cc *cameraControllerImpl) Held(dir Direction) bool {
	for key := range cc.held {
		if cc.bindings[key] == dir {
			return true
		}
	}
	return false
}

func (cc *cameraControllerImpl) MoveSpeed() float32 {
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) TimeScaled() bool {
	return cc.timeScaled
}

func (cc *cameraControllerImpl) apply(cam Camera, speed float32) {
	if cc.mouseDirty {
		cam.MouseLook(cc.mouseX, cc.mouseY)
		cc.mouseDirty = false
	}

	// Opposite keys cancel out; each direction moves at most once per frame
	// even when both of its keys are held.
	if cc.Held(DirectionForward) {
		cam.MoveForward(speed)
	}
	if cc.Held(DirectionBackward) {
		cam.MoveBackward(speed)
	}
	if cc.Held(DirectionLeft) {
		cam.MoveLeft(speed)
	}
	if cc.Held(DirectionRight) {
		cam.MoveRight(speed)
	}
}
