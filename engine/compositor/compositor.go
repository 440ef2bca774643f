package compositor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform slot names the shader program must declare.
const (
	UniformModelMatrix = "u_ModelMatrix"
	UniformViewMatrix  = "u_ViewMatrix"
	UniformPerspective = "u_Perspective"
)

// ErrUniformNotFound is returned by Frame when the program does not declare one of the uniform slots.
var ErrUniformNotFound = errors.New("uniform slot not found")

// ViewSource supplies the view matrix for a frame. camera.Camera satisfies it.
type ViewSource interface {
	ViewMatrix() mgl32.Mat4
}

// UniformBackend is the shader program the compositor draws with.
type UniformBackend interface {
	// UniformLocation resolves a uniform slot by name.
	//
	// Parameters:
	//   - name: the uniform variable name
	//
	// Returns:
	//   - int: the slot, or -1 when the program has no such uniform
	UniformLocation(name string) int

	// SetUniformMatrix stores a 4x4 matrix in a resolved slot.
	//
	// Parameters:
	//   - location: a slot returned by UniformLocation
	//   - m: the matrix to upload
	SetUniformMatrix(location int, m mgl32.Mat4)

	// Draw issues the indexed draw of the mesh with the current uniforms.
	//
	// Returns:
	//   - error: error if the draw could not be recorded
	Draw() error
}

// FrameCompositor advances the model animation and pushes the model, view and projection
// matrices to the shader program once per frame, then draws the mesh.
//
// A FrameCompositor is not safe for concurrent use; it is owned by the render loop.
type FrameCompositor interface {
	// Frame composes and draws one frame. The model angle advances by the rotation step
	// regardless of deltaTime unless time-scaled rotation is enabled. A missing uniform slot
	// stops the frame before anything is drawn and returns an error wrapping ErrUniformNotFound.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - view: source of the view matrix
	//   - backend: the program receiving uniforms and the draw
	//
	// Returns:
	//   - error: nil on success
	Frame(deltaTime float32, view ViewSource, backend UniformBackend) error

	// ModelAngle returns the current model rotation about +Y in degrees.
	//
	// Returns:
	//   - float32: the angle in degrees, unbounded
	ModelAngle() float32

	// FrameCount returns how many frames have been composed.
	//
	// Returns:
	//   - uint64: number of Frame calls that advanced the animation
	FrameCount() uint64

	// ModelMatrix returns translate(offset) * rotateY(angle) * scale for the current angle.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection for the current viewport.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// SetViewport changes the viewport the projection aspect ratio is taken from.
	// Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	SetViewport(width, height int)
}

type frameCompositor struct {
	modelAngle   float32
	modelOffset  float32
	modelScale   float32
	rotationStep float32

	// degreesPerSecond replaces rotationStep when timeScaled is set.
	degreesPerSecond float32
	timeScaled       bool

	viewportWidth  int
	viewportHeight int
	fovY           float32
	near           float32
	far            float32

	frameCount uint64
}

var _ FrameCompositor = &frameCompositor{}

// NewFrameCompositor creates a compositor for a 640x480 viewport with the mesh placed two
// units in front of the origin at half scale, spinning 0.1 degrees per frame.
//
// Parameters:
//   - options: functional options to configure the compositor
//
// Returns:
//   - FrameCompositor: the newly created compositor
func NewFrameCompositor(options ...FrameCompositorBuilderOption) FrameCompositor {
	fc := &frameCompositor{
		modelAngle:     0,
		modelOffset:    -2.0,
		modelScale:     0.5,
		rotationStep:   0.1,
		viewportWidth:  640,
		viewportHeight: 480,
		fovY:           45,
		near:           0.1,
		far:            10.0,
	}
	for _, option := range options {
		option(fc)
	}
	return fc
}

func (fc *frameCompositor) Frame(deltaTime float32, view ViewSource, backend UniformBackend) error {
	if fc.timeScaled {
		fc.modelAngle -= fc.degreesPerSecond * deltaTime
	} else {
		fc.modelAngle -= fc.rotationStep
	}
	fc.frameCount++

	uniforms := [...]struct {
		name  string
		value mgl32.Mat4
	}{
		{UniformModelMatrix, fc.ModelMatrix()},
		{UniformViewMatrix, view.ViewMatrix()},
		{UniformPerspective, fc.ProjectionMatrix()},
	}

	for _, u := range uniforms {
		loc := backend.UniformLocation(u.name)
		if loc < 0 {
			return fmt.Errorf("%w: %q", ErrUniformNotFound, u.name)
		}
		backend.SetUniformMatrix(loc, u.value)
	}

	if err := backend.Draw(); err != nil {
		return fmt.Errorf("failed to draw frame %d: %w", fc.frameCount, err)
	}
	return nil
}

func (fc *frameCompositor) ModelAngle() float32 {
	return fc.modelAngle
}

func (fc *frameCompositor) FrameCount() uint64 {
	return fc.frameCount
}

func (fc *frameCompositor) ModelMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(0, 0, fc.modelOffset)
	rotate := mgl32.HomogRotate3DY(mgl32.DegToRad(fc.modelAngle))
	scale := mgl32.Scale3D(fc.modelScale, fc.modelScale, fc.modelScale)
	return translate.Mul4(rotate).Mul4(scale)
}

func (fc *frameCompositor) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(fc.viewportWidth) / float32(fc.viewportHeight)
	return mgl32.Perspective(mgl32.DegToRad(fc.fovY), aspect, fc.near, fc.far)
}

func (fc *frameCompositor) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	fc.viewportWidth = width
	fc.viewportHeight = height
}
