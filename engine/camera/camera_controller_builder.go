package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithMoveSpeed sets the distance applied per frame while a movement key is held.
//
// Parameters:
//   - speed: distance per frame (or per second with WithTimeScaledMovement)
//
// Returns:
//   - CameraControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithKeyBindings replaces the key to direction table.
//
// Parameters:
//   - bindings: virtual key code to movement direction
//
// Returns:
//   - CameraControllerOption: functional option to set the key bindings
func WithKeyBindings(bindings map[uint32]Direction) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bindings = bindings
	}
}

// WithTimeScaledMovement makes ApplyDelta scale the move speed by frame time, turning the
// speed into units per second.
//
// Parameters:
//   - unitsPerSecond: movement speed in world units per second
//
// Returns:
//   - CameraControllerOption: functional option to enable time-scaled movement
func WithTimeScaledMovement(unitsPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = unitsPerSecond
		cc.timeScaled = true
	}
}
