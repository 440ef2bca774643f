package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func assertVec3(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], epsilon, "component %d of %v", i, actual)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Eye())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.ViewDirection())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.False(t, c.HasPriorSample())
	assert.Equal(t, float32(0.01), c.LookSensitivity())
}

func TestCameraOptions(t *testing.T) {
	c := NewCamera(
		WithEye(mgl32.Vec3{1, 2, 3}),
		WithViewDirection(mgl32.Vec3{1, 0, 0}),
		WithUp(mgl32.Vec3{0, 0, 1}),
		WithLookSensitivity(0.5),
	)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Eye())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, c.ViewDirection())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Up())
	assert.Equal(t, float32(0.5), c.LookSensitivity())
}

func TestInitialViewMatrixMatchesLookAt(t *testing.T) {
	c := NewCamera()

	expected := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	assert.True(t, c.ViewMatrix().ApproxEqualThreshold(expected, epsilon))
	// looking down -Z from the origin is the identity view
	assert.True(t, c.ViewMatrix().ApproxEqualThreshold(mgl32.Ident4(), epsilon))
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	c := NewCamera(WithEye(mgl32.Vec3{3, -1, 7}))
	c.MouseLook(0, 0)
	c.MouseLook(-4000, 12)
	c.MoveForward(2.5)
	c.MoveRight(0.7)

	p := c.ViewMatrix().Mul4x1(c.Eye().Vec4(1))
	assertVec3(t, mgl32.Vec3{0, 0, 0}, p.Vec3())
}

func TestViewMatrixIsPure(t *testing.T) {
	c := NewCamera(WithEye(mgl32.Vec3{1, 0, 2}))
	c.MouseLook(10, 0)
	c.MouseLook(90, 0)

	eye, dir := c.Eye(), c.ViewDirection()
	first := c.ViewMatrix()
	second := c.ViewMatrix()

	assert.Equal(t, first, second)
	assert.Equal(t, eye, c.Eye())
	assert.Equal(t, dir, c.ViewDirection())
}

func TestFirstMouseLookOnlySeeds(t *testing.T) {
	c := NewCamera()

	c.MouseLook(500, 300)

	assert.True(t, c.HasPriorSample())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.ViewDirection())
}

func TestMouseLookRotation(t *testing.T) {
	c := NewCamera()
	c.MouseLook(0, 0)

	// delta.x = 0 - 100 = -100, times 0.01 is -1 degree around +Y
	c.MouseLook(100, 0)

	angle := mgl32.DegToRad(-1)
	expected := mgl32.Rotate3DY(angle).Mul3x1(mgl32.Vec3{0, 0, -1})
	assertVec3(t, expected, c.ViewDirection())
	assertVec3(t, mgl32.Vec3{0.0174524, 0, -0.9998477}, c.ViewDirection())
}

func TestMouseLookUsesPreviousSample(t *testing.T) {
	stepped := NewCamera()
	stepped.MouseLook(0, 0)
	stepped.MouseLook(50, 0)
	stepped.MouseLook(100, 0)

	direct := NewCamera()
	direct.MouseLook(0, 0)
	direct.MouseLook(100, 0)

	assertVec3(t, direct.ViewDirection(), stepped.ViewDirection())
}

func TestMouseLookIgnoresVerticalMotion(t *testing.T) {
	c := NewCamera()
	c.MouseLook(0, 0)
	c.MouseLook(0, 5000)

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.ViewDirection())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestMoveForwardBackwardSymmetry(t *testing.T) {
	c := NewCamera(WithEye(mgl32.Vec3{1, 2, 3}))
	c.MouseLook(0, 0)
	c.MouseLook(1234, 0)

	start := c.Eye()
	c.MoveForward(0.1)
	assertVec3(t, start.Add(c.ViewDirection().Mul(0.1)), c.Eye())

	c.MoveBackward(0.1)
	assertVec3(t, start, c.Eye())
}

func TestStrafeIsOrthogonalAndSymmetric(t *testing.T) {
	c := NewCamera()
	c.MouseLook(0, 0)
	c.MouseLook(-777, 0)

	start := c.Eye()
	c.MoveRight(0.1)
	displacement := c.Eye().Sub(start)

	require.Greater(t, displacement.Len(), float32(0))
	assert.InDelta(t, 0, displacement.Dot(c.ViewDirection()), epsilon)
	assert.InDelta(t, 0, displacement.Dot(c.Up()), epsilon)

	c.MoveLeft(0.1)
	assertVec3(t, start, c.Eye())
}

func TestMoveRightFollowsCrossProduct(t *testing.T) {
	c := NewCamera()

	c.MoveRight(1)
	// cross((0,0,-1), (0,1,0)) = (1,0,0)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Eye())

	c.MoveLeft(2)
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, c.Eye())
}

func TestZeroSpeedIsNoOp(t *testing.T) {
	c := NewCamera(WithEye(mgl32.Vec3{4, 5, 6}))

	c.MoveForward(0)
	c.MoveBackward(0)
	c.MoveLeft(0)
	c.MoveRight(0)

	assert.Equal(t, mgl32.Vec3{4, 5, 6}, c.Eye())
}
