package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestWrapToPi(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 1.2, 1.2},
		{"negative in range", -2.5, -2.5},
		{"pi stays pi", math.Pi, math.Pi},
		{"minus pi maps to pi", -math.Pi, math.Pi},
		{"three pi", 3 * math.Pi, math.Pi},
		{"just past pi", math.Pi + 0.25, -math.Pi + 0.25},
		{"just before minus pi", -math.Pi - 0.25, math.Pi - 0.25},
		{"far positive", 100*math.Pi + 0.5, 0.5},
		{"far negative", -7.5, -7.5 + 2*math.Pi},
		{"many turns", 1e4*2*math.Pi - 1, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := WrapToPi(tc.in)
			test.That(t, got, test.ShouldAlmostEqual, tc.expected, 1e-9)
			test.That(t, got, test.ShouldBeGreaterThan, -math.Pi)
			test.That(t, got, test.ShouldBeLessThanOrEqualTo, math.Pi)
		})
	}
}

func TestWrapToPiCongruent(t *testing.T) {
	for a := -50.0; a <= 50; a += 0.37 {
		w := WrapToPi(a)
		turns := (a - w) / (2 * math.Pi)
		test.That(t, turns, test.ShouldAlmostEqual, math.Round(turns), 1e-9)
	}
}

func TestAngleBetween(t *testing.T) {
	from := 170 * math.Pi / 180
	to := -170 * math.Pi / 180
	test.That(t, AngleBetween(from, to), test.ShouldAlmostEqual, 20*math.Pi/180, 1e-12)
	test.That(t, AngleBetween(to, from), test.ShouldAlmostEqual, -20*math.Pi/180, 1e-12)
	test.That(t, AngleAlmostEqual(math.Pi, -math.Pi, 1e-12), test.ShouldBeTrue)
	test.That(t, AngleAlmostEqual(0.1, 0.1+2*math.Pi, 1e-12), test.ShouldBeTrue)
	test.That(t, AngleAlmostEqual(0.1, 0.2, 1e-3), test.ShouldBeFalse)
}
