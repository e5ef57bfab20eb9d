package neptune

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Matrix is a 4x4 float32 matrix in row-major order:
//
//	m[4*r + c] is the element in row r and column c (0-indexed)
//
// The memory layout is the same as [f32.Mat4], so the two convert freely.
//
// Builders in this file (Identity, Translation, RotationZ, Scaling) and
// Multiply use column-vector algebra: a point p is transformed as M * p and
// the translation lives in the last column. Composed results handed to
// callers are stored transposed; see [Compose].
type Matrix [16]float32

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(x, y, z float32) Matrix {
	return Matrix{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scaling creates a non-uniform scale matrix.
func Scaling(x, y, z float32) Matrix {
	return Matrix{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a rotation about the Z axis. The angle is in degrees;
// positive angles rotate +X towards +Y.
func RotationZ(degrees float32) Matrix {
	sin, cos := math.Sincos(float64(degrees) * (math.Pi / 180))
	s, c := float32(sin), float32(cos)
	return Matrix{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Multiply returns m * other.
//
// Every element is a full four-term dot product, so non-finite values
// anywhere in an operand spread the way a general 4x4 product spreads them.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[4*row+col] = m[4*row]*other[col] +
				m[4*row+1]*other[4+col] +
				m[4*row+2]*other[8+col] +
				m[4*row+3]*other[12+col]
		}
	}
	return r
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// At returns the element m_rc using the 1-indexed row and column of the
// public m11..m44 naming.
func (m Matrix) At(r, c int) float32 {
	return m[4*(r-1)+(c-1)]
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// TransformPoint applies a composed (row-vector, see [Compose]) matrix to
// the point (x, y, 0, 1).
func (m Matrix) TransformPoint(x, y float32) (float32, float32) {
	return x*m[0] + y*m[4] + m[12], x*m[1] + y*m[5] + m[13]
}

// Mat4 returns m as an [f32.Mat4].
func (m Matrix) Mat4() f32.Mat4 {
	return f32.Mat4(m)
}

// MatrixFromMat4 converts an [f32.Mat4] to a Matrix.
func MatrixFromMat4(m f32.Mat4) Matrix {
	return Matrix(m)
}
