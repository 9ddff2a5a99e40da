package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation2D returns the 2x2 rotation matrix [[cosθ, -sinθ], [sinθ, cosθ]].
func Rotation2D(theta float64) mgl64.Mat2 {
	return mgl64.Rotate2D(theta)
}

// Apply returns the product m·v.
func Apply(m mgl64.Mat2, v mgl64.Vec2) mgl64.Vec2 {
	return m.Mul2x1(v)
}

// ComposeRotations returns the matrix product m1·m2.
func ComposeRotations(m1, m2 mgl64.Mat2) mgl64.Mat2 {
	return m1.Mul2(m2)
}

// TransposeRotation returns mᵗ, which is the inverse of m when m is a rotation.
func TransposeRotation(m mgl64.Mat2) mgl64.Mat2 {
	return m.Transpose()
}

// RotationAngle recovers the signed angle of a rotation matrix, in (-π, π].
func RotationAngle(m mgl64.Mat2) float64 {
	return math.Atan2(m.At(1, 0), m.At(0, 0))
}

// IsRotation reports whether m is orthonormal with determinant +1 within tol.
func IsRotation(m mgl64.Mat2, tol float64) bool {
	if math.Abs(m.Det()-1) > tol {
		return false
	}
	return mat2AlmostEqual(m.Transpose().Mul2(m), mgl64.Ident2(), tol)
}

// mat2AlmostEqual compares element-wise with an absolute tolerance. mgl64's ApproxEqual
// family is relative and degenerates to tol² against exact zeros.
func mat2AlmostEqual(a, b mgl64.Mat2, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func vec2AlmostEqual(a, b mgl64.Vec2, tol float64) bool {
	return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol
}
