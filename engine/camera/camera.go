package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	eye           mgl32.Vec3
	viewDirection mgl32.Vec3
	up            mgl32.Vec3

	// lookSensitivity is the yaw in degrees applied per unit of horizontal pointer motion.
	lookSensitivity float32

	lastMousePosition mgl32.Vec2
	hasPriorSample    bool
}

// Camera defines the interface for a free-fly camera.
// The camera owns an eye position, a view direction and a fixed up vector, and produces
// the view matrix from them. Orientation changes only through yaw around the up vector.
//
// A Camera is not safe for concurrent use; it is owned by the render loop.
type Camera interface {
	// ViewMatrix returns the look-at matrix for the current eye and view direction.
	// It does not mutate the camera.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// MouseLook yaws the view direction around the up vector by the horizontal difference
	// between the previous pointer sample and this one. The first call only records the sample.
	// Vertical motion is accepted and ignored.
	//
	// Parameters:
	//   - x: horizontal pointer coordinate
	//   - y: vertical pointer coordinate
	MouseLook(x, y int32)

	// MoveForward translates the eye along the view direction.
	//
	// Parameters:
	//   - speed: distance scale, applied without validation
	MoveForward(speed float32)

	// MoveBackward translates the eye against the view direction.
	//
	// Parameters:
	//   - speed: distance scale, applied without validation
	MoveBackward(speed float32)

	// MoveLeft translates the eye against cross(viewDirection, up).
	//
	// Parameters:
	//   - speed: distance scale, applied without validation
	MoveLeft(speed float32)

	// MoveRight translates the eye along cross(viewDirection, up).
	//
	// Parameters:
	//   - speed: distance scale, applied without validation
	MoveRight(speed float32)

	// Eye returns the world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Eye() mgl32.Vec3

	// ViewDirection returns the current view direction. It is not renormalised after rotation.
	//
	// Returns:
	//   - mgl32.Vec3: the view direction
	ViewDirection() mgl32.Vec3

	// Up returns the up vector fixed at construction.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// HasPriorSample reports whether MouseLook has recorded a pointer sample yet.
	//
	// Returns:
	//   - bool: true after the first MouseLook call
	HasPriorSample() bool

	// LookSensitivity returns the yaw in degrees applied per unit of pointer motion.
	//
	// Returns:
	//   - float32: degrees per pointer unit
	LookSensitivity() float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at the origin looking down -Z with +Y up.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		eye:             mgl32.Vec3{0, 0, 0},
		viewDirection:   mgl32.Vec3{0, 0, -1},
		up:              mgl32.Vec3{0, 1, 0},
		lookSensitivity: 0.01,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.eye.Add(c.viewDirection), c.up)
}

func (c *cameraImpl) MouseLook(x, y int32) {
	current := mgl32.Vec2{float32(x), float32(y)}
	if !c.hasPriorSample {
		c.lastMousePosition = current
		c.hasPriorSample = true
		return
	}

	delta := c.lastMousePosition.Sub(current)
	angle := mgl32.DegToRad(delta.X() * c.lookSensitivity)
	c.viewDirection = mgl32.QuatRotate(angle, c.up).Rotate(c.viewDirection)
	c.lastMousePosition = current
}

func (c *cameraImpl) MoveForward(speed float32) {
	c.eye = c.eye.Add(c.viewDirection.Mul(speed))
}

func (c *cameraImpl) MoveBackward(speed float32) {
	c.eye = c.eye.Sub(c.viewDirection.Mul(speed))
}

func (c *cameraImpl) MoveLeft(speed float32) {
	c.eye = c.eye.Sub(c.right().Mul(speed))
}

func (c *cameraImpl) MoveRight(speed float32) {
	c.eye = c.eye.Add(c.right().Mul(speed))
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) ViewDirection() mgl32.Vec3 {
	return c.viewDirection
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) HasPriorSample() bool {
	return c.hasPriorSample
}

func (c *cameraImpl) LookSensitivity() float32 {
	return c.lookSensitivity
}

// right is the unnormalised strafe axis. Its length follows the view direction.
func (c *cameraImpl) right() mgl32.Vec3 {
	return c.viewDirection.Cross(c.up)
}
