package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/se2/logging"
	"go.viam.com/se2/spatialmath"
	"go.viam.com/se2/trajectory"
)

func TestFromReaderDefaults(t *testing.T) {
	conf, err := FromReader(strings.NewReader(`{"step": 0.5}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Method, test.ShouldEqual, spatialmath.InterpolationSE2)
	test.That(t, conf.Step, test.ShouldEqual, 0.5)
	test.That(t, conf.BackwardThreshold, test.ShouldEqual, trajectory.DefaultBackwardThreshold)
	test.That(t, conf.LogLevel, test.ShouldEqual, DefaultLogLevel)

	level, err := conf.Level()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, logging.INFO)

	interp, err := conf.Interpolator()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, interp, test.ShouldNotBeNil)
}

func TestFromReaderErrors(t *testing.T) {
	_, err := FromReader(strings.NewReader(`{"step": 1, "unknown": true}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown")

	_, err = FromReader(strings.NewReader(`{`))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromReader(strings.NewReader(`{}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "step")
}

func TestValidate(t *testing.T) {
	conf := &Config{Method: "spline", Step: -1, FrameStep: 0.3, LogLevel: "loud"}
	err := conf.Validate("job")
	test.That(t, err, test.ShouldNotBeNil)
	msg := err.Error()
	test.That(t, msg, test.ShouldContainSubstring, `unknown interpolation method "spline"`)
	test.That(t, msg, test.ShouldContainSubstring, "only one of step and frame_step")
	test.That(t, msg, test.ShouldContainSubstring, "step must be a positive number")
	test.That(t, msg, test.ShouldContainSubstring, "loud")

	conf = &Config{Method: "linear", FrameStep: 0.3, BackwardThreshold: -0.2}
	test.That(t, conf.Validate("job"), test.ShouldBeNil)
	test.That(t, conf.BackwardThreshold, test.ShouldEqual, -0.2)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	err := os.WriteFile(path, []byte(`{"frame_step": 0.3, "method": "linear", "log_level": "debug"}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	conf, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, conf.FrameStep, test.ShouldEqual, 0.3)
	test.That(t, conf.Method, test.ShouldEqual, spatialmath.InterpolationLinear)

	_, err = Read(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read config file")
}

func TestResampleWithConfig(t *testing.T) {
	nodes := []trajectory.Node{
		trajectory.NewNode(0, 0, 0, 0),
		trajectory.NewNode(1, 5, 5, math.Pi/2),
	}
	for _, tc := range []struct {
		conf  *Config
		count int
	}{
		{&Config{Step: 0.25}, 5},
		{&Config{FrameStep: 0.5, Method: "linear"}, 3},
	} {
		test.That(t, tc.conf.Validate(""), test.ShouldBeNil)
		opts, err := tc.conf.TrajectoryOptions(logging.NewTestLogger(t))
		test.That(t, err, test.ShouldBeNil)
		traj, err := trajectory.New(nodes, opts...)
		test.That(t, err, test.ShouldBeNil)
		out, err := tc.conf.Resample(traj)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldHaveLength, tc.count)
	}

	conf := &Config{Method: "spline"}
	_, err := conf.TrajectoryOptions(logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestResampleWindow(t *testing.T) {
	nodes := []trajectory.Node{
		trajectory.NewNode(0, 0, 0, 0),
		trajectory.NewNode(2, 4, 0, 0),
	}
	resample := func(conf *Config) ([]trajectory.Node, error) {
		test.That(t, conf.Validate(""), test.ShouldBeNil)
		opts, err := conf.TrajectoryOptions(logging.NewTestLogger(t))
		test.That(t, err, test.ShouldBeNil)
		traj, err := trajectory.New(nodes, opts...)
		test.That(t, err, test.ShouldBeNil)
		return conf.Resample(traj)
	}

	out, err := resample(&Config{Step: 0.5, Start: ptr(1.0)})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 3)
	test.That(t, out[0].Time, test.ShouldEqual, 1)
	test.That(t, out[0].X, test.ShouldAlmostEqual, 2, 1e-9)

	_, err = resample(&Config{Step: 1, End: ptr(4.0)})
	test.That(t, errors.Is(err, trajectory.ErrOutOfRange), test.ShouldBeTrue)

	out, err = resample(&Config{Step: 1, End: ptr(4.0), Extrapolate: true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldHaveLength, 5)
	test.That(t, out[4].Time, test.ShouldEqual, 4)
	test.That(t, out[4].X, test.ShouldAlmostEqual, 8, 1e-9)
}

func TestValidateWindow(t *testing.T) {
	conf := &Config{FrameStep: 0.5, Start: ptr(0.0)}
	err := conf.Validate("job")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "start and end only apply to step")

	conf = &Config{Step: 0.5, Start: ptr(2.0), End: ptr(1.0)}
	err = conf.Validate("job")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "end 1 is before start 2")

	conf = &Config{Step: 0.5, End: ptr(math.Inf(1))}
	err = conf.Validate("job")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "end must be finite")

	parsed, err := FromReader(strings.NewReader(`{"step": 1, "start": -1, "end": 3, "extrapolate": true}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *parsed.Start, test.ShouldEqual, -1)
	test.That(t, *parsed.End, test.ShouldEqual, 3)
}

func ptr(v float64) *float64 {
	return &v
}
