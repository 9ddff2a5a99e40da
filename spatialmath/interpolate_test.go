package spatialmath

import (
	"math"
	"sync"
	"testing"

	"go.viam.com/test"
)

var posePairs = []struct {
	name   string
	p0, p1 Pose
}{
	{"screw", NewPose(0, 0, 0), NewPose(5, 5, math.Pi/2)},
	{"offset start", NewPose(1, 2, 0.3), NewPose(4, -1, 2.0)},
	{"reverse turn", NewPose(-3, 7, -1), NewPose(-6, 2, -2.8)},
	{"pure rotation", NewPose(2, 2, 0), NewPose(2, 2, 3)},
	{"straight", NewPose(0, 0, 0), NewPose(10, 0, 0)},
	{"across pi", NewPose(0, 0, 170*math.Pi/180), NewPose(1, 0, -170*math.Pi/180)},
	{"unwrapped yaw", NewPose(0, 0, 0.5), NewPose(3, 1, 0.5+4*math.Pi+0.2)},
	{"tiny rotation", NewPose(1, 1, 0.2), NewPose(4, 3, 0.2+5e-10)},
}

func TestInterpolateEndpoints(t *testing.T) {
	for _, pair := range posePairs {
		t.Run(pair.name, func(t *testing.T) {
			start := Interpolate(pair.p0, pair.p1, 0)
			end := Interpolate(pair.p0, pair.p1, 1)
			test.That(t, PoseAlmostEqual(start, pair.p0), test.ShouldBeTrue)
			test.That(t, PoseAlmostEqual(end, pair.p1), test.ShouldBeTrue)
			test.That(t, start.Yaw, test.ShouldBeBetweenOrEqual, -math.Pi, math.Pi)
			test.That(t, end.Yaw, test.ShouldBeBetweenOrEqual, -math.Pi, math.Pi)
		})
	}
}

func TestInterpolateZeroMotion(t *testing.T) {
	for _, p := range []Pose{NewZeroPose(), NewPose(2, -1, 1), NewPose(-5, 3, -3)} {
		for _, alpha := range []float64{-1, 0, 0.3, 0.5, 1, 2.5} {
			got := Interpolate(p, p, alpha)
			test.That(t, PoseAlmostEqual(got, p), test.ShouldBeTrue)
		}
		// A full turn between identical poses is no motion at all.
		spun := p
		spun.Yaw += 2 * math.Pi
		test.That(t, PoseAlmostEqual(Interpolate(p, spun, 0.5), p), test.ShouldBeTrue)
	}
}

func TestInterpolatePureRotation(t *testing.T) {
	got := Interpolate(NewZeroPose(), NewPose(0, 0, math.Pi/2), 0.5)
	test.That(t, got.X, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, got.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, got.Yaw, test.ShouldAlmostEqual, math.Pi/4, 1e-12)
}

func TestInterpolateStraightLine(t *testing.T) {
	p0, p1 := NewZeroPose(), NewPose(10, 0, 0)
	got := Interpolate(p0, p1, 0.5)
	test.That(t, got.X, test.ShouldAlmostEqual, 5, 1e-12)
	test.That(t, got.Y, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, got.Yaw, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, PoseAlmostEqualEps(got, Lerp(p0, p1, 0.5), 1e-6), test.ShouldBeTrue)

	// Heading held while moving sideways is still a straight line.
	side := Interpolate(NewPose(0, 0, 1), NewPose(-3, 4, 1), 0.25)
	test.That(t, PoseAlmostEqualEps(side, NewPose(-0.75, 1, 1), 1e-12), test.ShouldBeTrue)
}

func TestInterpolateScrewMotion(t *testing.T) {
	p0, p1 := NewZeroPose(), NewPose(5, 5, math.Pi/2)
	got := Interpolate(p0, p1, 0.3)
	test.That(t, got.X, test.ShouldAlmostEqual, 2.2699524986977337, 1e-9)
	test.That(t, got.Y, test.ShouldAlmostEqual, 0.5449673790581606, 1e-9)
	test.That(t, got.Yaw, test.ShouldAlmostEqual, 0.3*math.Pi/2, 1e-12)

	lin := Lerp(p0, p1, 0.3)
	test.That(t, lin.X, test.ShouldAlmostEqual, 1.5, 1e-12)
	test.That(t, lin.Y, test.ShouldAlmostEqual, 1.5, 1e-12)
	test.That(t, lin.Yaw, test.ShouldAlmostEqual, got.Yaw, 1e-12)
	test.That(t, math.Abs(got.X-lin.X), test.ShouldBeGreaterThan, 0.5)
	test.That(t, math.Abs(got.Y-lin.Y), test.ShouldBeGreaterThan, 0.5)

	// Every point on the path lies on the circle of radius 5 about (0, 5).
	for alpha := 0.0; alpha <= 1; alpha += 0.1 {
		p := Interpolate(p0, p1, alpha)
		test.That(t, math.Hypot(p.X, p.Y-5), test.ShouldAlmostEqual, 5, 1e-9)
	}
}

func TestInterpolateAcrossPi(t *testing.T) {
	p0 := NewPose(0, 0, 170*math.Pi/180)
	p1 := NewPose(0, 0, -170*math.Pi/180)
	mid := Interpolate(p0, p1, 0.5)
	test.That(t, AngleAlmostEqual(mid.Yaw, math.Pi, 1e-9), test.ShouldBeTrue)

	quarter := Interpolate(p0, p1, 0.25)
	test.That(t, quarter.Yaw, test.ShouldAlmostEqual, 175*math.Pi/180, 1e-9)

	moving := Interpolate(p0, NewPose(1, 0, -170*math.Pi/180), 0.5)
	test.That(t, moving.X, test.ShouldAlmostEqual, 0.5, 1e-9)
	test.That(t, moving.Y, test.ShouldAlmostEqual, -0.04374433176296195, 1e-9)
}

func TestInterpolateExtrapolates(t *testing.T) {
	p0, p1 := NewZeroPose(), NewPose(5, 5, math.Pi/2)
	got := Interpolate(p0, p1, 2)
	test.That(t, got.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, got.Y, test.ShouldAlmostEqual, 10, 1e-9)
	test.That(t, AngleAlmostEqual(got.Yaw, math.Pi, 1e-9), test.ShouldBeTrue)

	back := Interpolate(p0, p1, -0.5)
	test.That(t, back.X, test.ShouldAlmostEqual, -3.5355339059327373, 1e-9)
	test.That(t, back.Y, test.ShouldAlmostEqual, 1.4644660940672622, 1e-9)
	test.That(t, back.Yaw, test.ShouldAlmostEqual, -math.Pi/4, 1e-9)
}

func TestInterpolateAgreesWithLerpForSmallRotations(t *testing.T) {
	p0 := NewPose(1, -1, 0.4)
	p1 := NewPose(1.5, -0.8, 0.4+1e-7)
	for alpha := 0.0; alpha <= 1; alpha += 0.125 {
		test.That(t, PoseAlmostEqualEps(Interpolate(p0, p1, alpha), Lerp(p0, p1, alpha), 1e-6), test.ShouldBeTrue)
	}
}

func TestInterpolateXYYaw(t *testing.T) {
	x, y, yaw := InterpolateXYYaw(0, 0, 0, 5, 5, math.Pi/2, 0.3)
	want := Interpolate(NewZeroPose(), NewPose(5, 5, math.Pi/2), 0.3)
	test.That(t, NewPose(x, y, yaw), test.ShouldResemble, want)
}

func TestInterpolateConcurrent(t *testing.T) {
	p0, p1 := NewPose(1, 2, 0.3), NewPose(4, -1, 2.0)
	want := Interpolate(p0, p1, 0.6)
	var wg sync.WaitGroup
	results := make([]Pose, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Interpolate(p0, p1, 0.6)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		test.That(t, got, test.ShouldResemble, want)
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(NewPose(0, 0, 170*math.Pi/180), NewPose(2, 4, -170*math.Pi/180), 0.75)
	test.That(t, got.X, test.ShouldAlmostEqual, 1.5, 1e-12)
	test.That(t, got.Y, test.ShouldAlmostEqual, 3, 1e-12)
	test.That(t, got.Yaw, test.ShouldAlmostEqual, -175*math.Pi/180, 1e-12)
}

func TestInterpolatorByName(t *testing.T) {
	p0, p1 := NewZeroPose(), NewPose(5, 5, math.Pi/2)
	for _, tc := range []struct {
		name string
		want Pose
	}{
		{"", Interpolate(p0, p1, 0.3)},
		{"se2", Interpolate(p0, p1, 0.3)},
		{" SE2 ", Interpolate(p0, p1, 0.3)},
		{"linear", Lerp(p0, p1, 0.3)},
		{"lerp", Lerp(p0, p1, 0.3)},
	} {
		interp, err := InterpolatorByName(tc.name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, interp(p0, p1, 0.3), test.ShouldResemble, tc.want)
	}
	_, err := InterpolatorByName("cubic")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cubic")
}
