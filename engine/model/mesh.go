package model

// Quad colors of the viewer mesh.
var (
	colorFront = [3]float32{1, 1, 0}
	colorBack  = [3]float32{0.5, 1, 0.5}
	colorTop   = [3]float32{1, 0.5, 0}
)

// ViewerMeshVertices returns the three quads drawn by the viewer: a yellow quad on z=0, a green
// quad on z=-1 and an orange quad on y=0.5. Each quad has four corners.
//
// Returns:
//   - []GPUVertex: 12 vertices
func ViewerMeshVertices() []GPUVertex {
	return []GPUVertex{
		// front, z = 0
		{Position: [3]float32{-0.5, -0.5, 0}, Color: colorFront},
		{Position: [3]float32{0.5, -0.5, 0}, Color: colorFront},
		{Position: [3]float32{-0.5, 0.5, 0}, Color: colorFront},
		{Position: [3]float32{0.5, 0.5, 0}, Color: colorFront},
		// back, z = -1
		{Position: [3]float32{-0.5, -0.5, -1}, Color: colorBack},
		{Position: [3]float32{0.5, -0.5, -1}, Color: colorBack},
		{Position: [3]float32{-0.5, 0.5, -1}, Color: colorBack},
		{Position: [3]float32{0.5, 0.5, -1}, Color: colorBack},
		// top, y = 0.5
		{Position: [3]float32{-0.5, 0.5, 0}, Color: colorTop},
		{Position: [3]float32{0.5, 0.5, 0}, Color: colorTop},
		{Position: [3]float32{-0.5, 0.5, -1}, Color: colorTop},
		{Position: [3]float32{0.5, 0.5, -1}, Color: colorTop},
	}
}

// ViewerMeshIndices returns two triangles per quad of ViewerMeshVertices.
//
// Returns:
//   - []uint32: 18 indices
func ViewerMeshIndices() []uint32 {
	return []uint32{
		2, 0, 1, 3, 2, 1,
		6, 4, 5, 7, 6, 5,
		10, 8, 9, 11, 10, 9,
	}
}

// NewViewerMesh builds the Model drawn by the viewer.
//
// Parameters:
//   - options: extra options applied after the mesh data
//
// Returns:
//   - Model: the three-quad model
func NewViewerMesh(options ...ModelBuilderOption) Model {
	opts := append([]ModelBuilderOption{
		WithName("viewer_mesh"),
		WithVertices(ViewerMeshVertices()),
		WithIndices(ViewerMeshIndices()),
	}, options...)
	return NewModel(opts...)
}
