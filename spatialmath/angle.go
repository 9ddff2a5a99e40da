package spatialmath

import "math"

// WrapToPi returns the angle equivalent to theta (mod 2π) in the range (-π, π].
// The result is undefined for NaN or infinite input.
func WrapToPi(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// AngleBetween returns the signed smallest rotation taking heading from to heading to.
func AngleBetween(from, to float64) float64 {
	return WrapToPi(to - from)
}

// AngleAlmostEqual reports whether two headings are within tol radians of each other,
// treating angles that differ by a multiple of 2π as equal.
func AngleAlmostEqual(a, b, tol float64) bool {
	return math.Abs(AngleBetween(a, b)) <= tol
}
