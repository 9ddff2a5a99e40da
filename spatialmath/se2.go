// Package spatialmath implements planar rigid motion: poses, the SE(2) group with its
// exponential and logarithm maps, and interpolation between timestamped poses.
package spatialmath

import (
	"math"
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/num/dualcmplx"
)

// SE2 is a rigid motion of the plane: a rotation R followed by a translation T. It is used
// both for poses (the transform from a body frame to the world frame) and for relative
// transforms between poses. SE2 is a fixed-size value; every operation returns a new value.
type SE2 struct {
	R mgl64.Mat2
	T mgl64.Vec2
}

// NewIdentitySE2 returns (I, 0), the two-sided identity of Compose.
func NewIdentitySE2() SE2 {
	return SE2{R: mgl64.Ident2()}
}

// NewSE2 returns the rigid motion rotating by theta and then translating by (x, y).
func NewSE2(x, y, theta float64) SE2 {
	return SE2{R: Rotation2D(theta), T: mgl64.Vec2{x, y}}
}

// NewSE2FromPose returns the transform from the body frame of p to the world frame.
func NewSE2FromPose(p Pose) SE2 {
	return NewSE2(p.X, p.Y, p.Yaw)
}

// Pose decodes the transform into a pose whose yaw is in (-π, π].
func (g SE2) Pose() Pose {
	return Pose{X: g.T.X(), Y: g.T.Y(), Yaw: WrapToPi(g.Angle())}
}

// Angle returns the signed rotation angle of the transform.
func (g SE2) Angle() float64 {
	return RotationAngle(g.R)
}

// Inverse returns the transform g⁻¹ such that g∘g⁻¹ is the identity.
func (g SE2) Inverse() SE2 {
	rInv := TransposeRotation(g.R)
	return SE2{R: rInv, T: Apply(rInv, g.T.Mul(-1))}
}

// Compose returns g∘h: the transform that applies h and then g.
func (g SE2) Compose(h SE2) SE2 {
	return SE2{
		R: ComposeRotations(g.R, h.R),
		T: g.T.Add(Apply(g.R, h.T)),
	}
}

// Between returns g⁻¹∘h, the transform of h expressed in the frame of g.
func (g SE2) Between(h SE2) SE2 {
	return g.Inverse().Compose(h)
}

// TransformPoint maps a point from the frame of g into the parent frame.
func (g SE2) TransformPoint(p r2.Point) r2.Point {
	v := g.T.Add(Apply(g.R, mgl64.Vec2{p.X, p.Y}))
	return r2.Point{X: v.X(), Y: v.Y()}
}

// DualComplex encodes the transform as a unit dual complex number, the planar analogue of
// a dual quaternion. The rotation is applied first, then the displacement.
func (g SE2) DualComplex() dualcmplx.Number {
	half := g.Angle() / 2
	rotate := dualcmplx.Number{Real: complex(math.Cos(half), math.Sin(half))}
	displace := dualcmplx.Number{Real: 1, Dual: complex(g.T.X()/2, g.T.Y()/2)}
	return dualcmplx.Mul(displace, rotate)
}

// NewSE2FromDualComplex decodes a dual complex number produced by DualComplex, or any
// product of such numbers. The real part is rescaled to unit modulus first.
func NewSE2FromDualComplex(z dualcmplx.Number) SE2 {
	if l := dualcmplx.Abs(z); l != 1 && l != 0 {
		z.Real *= complex(1/l, 0)
	}
	origin := dualcmplx.Number{Real: 1}
	moved := dualcmplx.Mul(dualcmplx.Mul(z, origin), dualcmplx.Conj(z))
	return NewSE2(real(moved.Dual), imag(moved.Dual), 2*cmplx.Phase(z.Real))
}

// SE2AlmostEqual reports whether the rotation and translation parts of a and b agree
// element-wise within epsilon.
func SE2AlmostEqual(a, b SE2, epsilon float64) bool {
	return mat2AlmostEqual(a.R, b.R, epsilon) && vec2AlmostEqual(a.T, b.T, epsilon)
}
