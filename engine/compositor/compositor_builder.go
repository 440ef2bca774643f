package compositor

// FrameCompositorBuilderOption is a functional option for configuring a FrameCompositor.
type FrameCompositorBuilderOption func(*frameCompositor)

// WithViewport sets the startup viewport size used for the projection aspect ratio.
// SetViewport replaces it when a resizable window changes size.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithViewport(width, height int) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.viewportWidth = width
		fc.viewportHeight = height
	}
}

// WithModelOffset sets the model translation along Z.
//
// Parameters:
//   - offset: world-space Z offset
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithModelOffset(offset float32) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.modelOffset = offset
	}
}

// WithModelScale sets the uniform model scale.
//
// Parameters:
//   - scale: scale factor applied on all axes
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithModelScale(scale float32) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.modelScale = scale
	}
}

// WithRotationStep sets how many degrees the model angle decreases per frame.
//
// Parameters:
//   - degrees: per-frame decrement
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithRotationStep(degrees float32) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.rotationStep = degrees
	}
}

// WithTimeScaledRotation makes the model angle decrease by degreesPerSecond * deltaTime
// instead of a fixed step per frame.
//
// Parameters:
//   - degreesPerSecond: rotation speed
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithTimeScaledRotation(degreesPerSecond float32) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.degreesPerSecond = degreesPerSecond
		fc.timeScaled = true
	}
}

// WithFovY sets the vertical field of view in degrees.
//
// Parameters:
//   - degrees: vertical field of view
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithFovY(degrees float32) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.fovY = degrees
	}
}

// WithClipPlanes sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - FrameCompositorBuilderOption: option function to apply
func WithClipPlanes(near, far float32) FrameCompositorBuilderOption {
	return func(fc *frameCompositor) {
		fc.near = near
		fc.far = far
	}
}
