package neptune

// Memory layout of the records exchanged across the batch boundary.
// Both records are tightly packed little-endian float32 sequences.
const (
	// TransformFloats is the number of float32 fields in a Transform.
	TransformFloats = 7
	// TransformSize is the size of a Transform in bytes.
	TransformSize = TransformFloats * 4

	// MatrixFloats is the number of float32 elements in a Matrix.
	MatrixFloats = 16
	// MatrixSize is the size of a Matrix in bytes.
	MatrixSize = MatrixFloats * 4
)

// Transform describes one 2D object: where it is, how it is rotated and
// scaled, and which point of it the rotation pivots around.
//
// The field order is part of the boundary contract and must not change:
// x, y, rotation, size_x, size_y, origin_x, origin_y.
type Transform struct {
	// X and Y are the world-space position of the pivot.
	X, Y float32

	// Rotation is the angle about the Z axis, in degrees.
	// It is not normalized; any finite value is valid.
	Rotation float32

	// SizeX and SizeY are non-uniform scale factors. Zero is valid and
	// produces a degenerate matrix.
	SizeX, SizeY float32

	// OriginX and OriginY locate the pivot as a fraction of the size,
	// typically in [0, 1]. (0.5, 0.5) pivots around the center.
	OriginX, OriginY float32
}

// IdentityTransform returns the descriptor that composes to the identity
// matrix: no translation, no rotation, unit size, pivot at the corner.
func IdentityTransform() Transform {
	return Transform{SizeX: 1, SizeY: 1}
}

// Pivot returns the pivot offset in local units, that is the translation
// subtracted before scaling.
func (t Transform) Pivot() (px, py float32) {
	return -t.OriginX * t.SizeX, -t.OriginY * t.SizeY
}
