package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithEye sets the initial eye position.
//
// Parameters:
//   - eye: world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the eye position
func WithEye(eye mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = eye
	}
}

// WithViewDirection sets the initial view direction.
//
// Parameters:
//   - dir: direction the camera faces
//
// Returns:
//   - CameraBuilderOption: a function that sets the view direction
func WithViewDirection(dir mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewDirection = dir
	}
}

// WithUp sets the camera's up vector. The up vector cannot be changed after construction.
//
// Parameters:
//   - up: the up vector, expected to be unit length
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithLookSensitivity sets how many degrees the camera yaws per unit of pointer motion.
//
// Parameters:
//   - degreesPerUnit: yaw scale
//
// Returns:
//   - CameraBuilderOption: a function that sets the look sensitivity
func WithLookSensitivity(degreesPerUnit float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lookSensitivity = degreesPerUnit
	}
}
