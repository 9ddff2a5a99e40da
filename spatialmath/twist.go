package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SmallAngleEpsilon is the magnitude of rotation below which V(θ) and its inverse are
// evaluated from their Taylor series rather than the closed form, which divides by θ.
const SmallAngleEpsilon = 1e-9

// Twist is an element of the Lie algebra se(2): linear velocity (VX, VY) expressed in the
// body frame and angular rate Omega, all per unit time.
type Twist struct {
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Omega float64 `json:"omega"`
}

// Scale returns the twist multiplied by alpha.
func (tw Twist) Scale(alpha float64) Twist {
	return Twist{VX: alpha * tw.VX, VY: alpha * tw.VY, Omega: alpha * tw.Omega}
}

// Linear returns the linear part of the twist.
func (tw Twist) Linear() mgl64.Vec2 {
	return mgl64.Vec2{tw.VX, tw.VY}
}

// Exp returns the rigid motion generated by following tw for unit time.
func Exp(tw Twist) SE2 {
	return SE2{
		R: Rotation2D(tw.Omega),
		T: Apply(V(tw.Omega), tw.Linear()),
	}
}

// Log returns the twist whose exponential is g. The recovered angular rate is in (-π, π].
func Log(g SE2) Twist {
	omega := g.Angle()
	v := Apply(VInverse(omega), g.T)
	return Twist{VX: v.X(), VY: v.Y(), Omega: omega}
}

// V returns the matrix [[sinθ/θ, -(1-cosθ)/θ], [(1-cosθ)/θ, sinθ/θ]] which maps the linear
// part of a twist to the translation of its exponential.
func V(theta float64) mgl64.Mat2 {
	if math.Abs(theta) < SmallAngleEpsilon {
		return vSeries(theta)
	}
	return vClosedForm(theta)
}

// VInverse returns the inverse of V(θ).
func VInverse(theta float64) mgl64.Mat2 {
	if math.Abs(theta) < SmallAngleEpsilon {
		return vInverseSeries(theta)
	}
	return vInverseClosedForm(theta)
}

// vCoefficients returns sinθ/θ and (1-cosθ)/θ. 1-cosθ is computed as 2sin²(θ/2) so small
// angles above the series threshold do not lose precision to cancellation.
func vCoefficients(theta float64) (float64, float64) {
	half := math.Sin(theta / 2)
	return math.Sin(theta) / theta, 2 * half * half / theta
}

func vClosedForm(theta float64) mgl64.Mat2 {
	s, c := vCoefficients(theta)
	return mgl64.Mat2FromRows(mgl64.Vec2{s, -c}, mgl64.Vec2{c, s})
}

func vSeries(theta float64) mgl64.Mat2 {
	s := 1 - theta*theta/6
	c := theta / 2
	return mgl64.Mat2FromRows(mgl64.Vec2{s, -c}, mgl64.Vec2{c, s})
}

func vInverseClosedForm(theta float64) mgl64.Mat2 {
	s, c := vCoefficients(theta)
	det := s*s + c*c
	return mgl64.Mat2FromRows(mgl64.Vec2{s / det, c / det}, mgl64.Vec2{-c / det, s / det})
}

// vInverseSeries is the second order expansion of V⁻¹, taken directly rather than by
// dividing through the series determinant.
func vInverseSeries(theta float64) mgl64.Mat2 {
	a := 1 - theta*theta/12
	b := theta / 2
	return mgl64.Mat2FromRows(mgl64.Vec2{a, b}, mgl64.Vec2{-b, a})
}
