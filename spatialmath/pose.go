package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// defaultPoseEpsilon is the tolerance used by PoseAlmostEqual.
const defaultPoseEpsilon = 1e-9

// Pose is a position in a fixed planar frame and a heading in radians. Yaw is stored as
// given; it is not required to lie in (-π, π].
type Pose struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Yaw float64 `json:"yaw"`
}

// NewPose returns the pose (x, y, yaw).
func NewPose(x, y, yaw float64) Pose {
	return Pose{X: x, Y: y, Yaw: yaw}
}

// NewZeroPose returns a pose at the origin facing along +X.
func NewZeroPose() Pose {
	return Pose{}
}

// Point returns the position of the pose.
func (p Pose) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Heading returns the unit vector the pose faces along.
func (p Pose) Heading() r2.Point {
	sin, cos := math.Sincos(p.Yaw)
	return r2.Point{X: cos, Y: sin}
}

// Normalized returns the pose with its yaw wrapped into (-π, π].
func (p Pose) Normalized() Pose {
	p.Yaw = WrapToPi(p.Yaw)
	return p
}

// IsFinite reports whether every component of the pose is a finite number.
func (p Pose) IsFinite() bool {
	for _, v := range []float64{p.X, p.Y, p.Yaw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Pose) String() string {
	return fmt.Sprintf("{X:%.6f Y:%.6f Yaw:%.6f}", p.X, p.Y, p.Yaw)
}

// PoseAlmostEqual returns whether two poses are within 1e-9 of each other in position
// and heading. Headings are compared modulo 2π.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, defaultPoseEpsilon)
}

// PoseAlmostEqualEps is PoseAlmostEqual with a caller-chosen tolerance.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon &&
		math.Abs(a.Y-b.Y) <= epsilon &&
		AngleAlmostEqual(a.Yaw, b.Yaw, epsilon)
}
