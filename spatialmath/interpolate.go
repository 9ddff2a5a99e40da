package spatialmath

import (
	"strings"

	"github.com/pkg/errors"
)

// Interpolator returns the pose a fraction alpha of the way from p0 to p1.
type Interpolator func(p0, p1 Pose, alpha float64) Pose

// Names accepted by InterpolatorByName.
const (
	InterpolationSE2    = "se2"
	InterpolationLinear = "linear"
)

// Interpolate returns the pose a fraction alpha of the way along the constant-twist screw
// motion from p0 to p1. Alpha outside [0, 1] extrapolates along the same screw. The
// returned yaw is in (-π, π]. Inputs must be finite; NaN or infinite components give
// unspecified output.
func Interpolate(p0, p1 Pose, alpha float64) Pose {
	// Rebuild the end heading from the wrapped delta so a turn across ±π is read as the
	// short way round.
	dYaw := WrapToPi(p1.Yaw - p0.Yaw)

	t0 := NewSE2FromPose(p0)
	t1 := NewSE2(p1.X, p1.Y, p0.Yaw+dYaw)

	xi := Log(t0.Between(t1))
	return t0.Compose(Exp(xi.Scale(alpha))).Pose()
}

// InterpolateXYYaw is Interpolate over raw pose components.
func InterpolateXYYaw(x0, y0, yaw0, x1, y1, yaw1, alpha float64) (float64, float64, float64) {
	p := Interpolate(NewPose(x0, y0, yaw0), NewPose(x1, y1, yaw1), alpha)
	return p.X, p.Y, p.Yaw
}

// Lerp interpolates position along the straight line from p0 to p1 and heading linearly
// along the shortest turn. It approximates Interpolate when the rotation is small.
func Lerp(p0, p1 Pose, alpha float64) Pose {
	dYaw := WrapToPi(p1.Yaw - p0.Yaw)
	return Pose{
		X:   p0.X + alpha*(p1.X-p0.X),
		Y:   p0.Y + alpha*(p1.Y-p0.Y),
		Yaw: WrapToPi(p0.Yaw + alpha*dYaw),
	}
}

// InterpolatorByName returns the interpolator registered under name ("se2" or "linear").
// An empty name selects "se2".
func InterpolatorByName(name string) (Interpolator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", InterpolationSE2:
		return Interpolate, nil
	case InterpolationLinear, "lerp":
		return Lerp, nil
	default:
		return nil, errors.Errorf("unknown interpolation method %q", name)
	}
}
