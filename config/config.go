// Package config defines the structures to configure trajectory resampling and analysis jobs.
package config

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/se2/logging"
	"go.viam.com/se2/spatialmath"
	"go.viam.com/se2/trajectory"
)

// Defaults applied by Validate to fields left unset.
const (
	DefaultMethod   = spatialmath.InterpolationSE2
	DefaultLogLevel = "info"
)

// A Config describes how a trajectory should be resampled and analysed.
type Config struct {
	// Method names the interpolator, "se2" or "linear".
	Method string `json:"method,omitempty"`
	// Step resamples the trajectory every Step units of its time axis.
	Step float64 `json:"step,omitempty"`
	// FrameStep resamples the trajectory every FrameStep frames (node indices), e.g. 0.3.
	// Exactly one of Step and FrameStep must be set.
	FrameStep float64 `json:"frame_step,omitempty"`
	// Start and End override the time window sampled with Step. Either may be left unset to
	// use the first or last node time.
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
	// Extrapolate allows a Start or End outside the recorded time span.
	Extrapolate bool `json:"extrapolate,omitempty"`
	// Degrees marks input yaw values as degrees instead of radians.
	Degrees bool `json:"degrees,omitempty"`
	// BackwardThreshold is the forward-step value below which a step counts as backwards.
	// It is usually negative; zero selects trajectory.DefaultBackwardThreshold.
	BackwardThreshold float64 `json:"backward_threshold,omitempty"`
	LogLevel          string  `json:"log_level,omitempty"`

	// ConfigFilePath is the path the config was read from, if any.
	ConfigFilePath string `json:"-"`
}

// Validate ensures all parts of the config are valid, filling in defaults, and returns every
// problem found.
func (conf *Config) Validate(path string) error {
	var errs error
	if conf.Method == "" {
		conf.Method = DefaultMethod
	}
	if _, err := spatialmath.InterpolatorByName(conf.Method); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, err))
	}

	switch {
	case conf.Step == 0 && conf.FrameStep == 0:
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "step"))
	case conf.Step != 0 && conf.FrameStep != 0:
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.New("only one of step and frame_step may be set")))
	}
	if !positiveOrZero(conf.Step) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("step must be a positive number, got %v", conf.Step)))
	}
	if !positiveOrZero(conf.FrameStep) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("frame_step must be a positive number, got %v", conf.FrameStep)))
	}

	if conf.FrameStep != 0 && (conf.Start != nil || conf.End != nil) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.New("start and end only apply to step")))
	}
	for name, v := range map[string]*float64{"start": conf.Start, "end": conf.End} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			errs = multierr.Append(errs, utils.NewConfigValidationError(path,
				errors.Errorf("%s must be finite", name)))
		}
	}
	if conf.Start != nil && conf.End != nil && *conf.End < *conf.Start {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("end %v is before start %v", *conf.End, *conf.Start)))
	}

	if conf.BackwardThreshold == 0 {
		conf.BackwardThreshold = trajectory.DefaultBackwardThreshold
	}
	if math.IsNaN(conf.BackwardThreshold) || math.IsInf(conf.BackwardThreshold, 0) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.New("backward_threshold must be finite")))
	}

	if conf.LogLevel == "" {
		conf.LogLevel = DefaultLogLevel
	}
	if _, err := logging.LevelFromString(conf.LogLevel); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, err))
	}
	return errs
}

// Interpolator returns the interpolator selected by Method.
func (conf *Config) Interpolator() (spatialmath.Interpolator, error) {
	return spatialmath.InterpolatorByName(conf.Method)
}

// Level returns the log level selected by LogLevel.
func (conf *Config) Level() (logging.Level, error) {
	return logging.LevelFromString(conf.LogLevel)
}

func positiveOrZero(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// TrajectoryOptions returns the trajectory options selected by the config.
func (conf *Config) TrajectoryOptions(logger logging.Logger) ([]trajectory.Option, error) {
	interp, err := conf.Interpolator()
	if err != nil {
		return nil, err
	}
	return []trajectory.Option{
		trajectory.WithInterpolator(interp),
		trajectory.WithExtrapolation(conf.Extrapolate),
		trajectory.WithLogger(logger),
	}, nil
}

// Resample resamples traj by Step or FrameStep, whichever is set. Step sampling covers
// [Start, End], defaulting to the span of traj.
func (conf *Config) Resample(traj *trajectory.Trajectory) ([]trajectory.Node, error) {
	if conf.FrameStep > 0 {
		return traj.ResampleFrames(conf.FrameStep)
	}
	start, end := traj.Start(), traj.End()
	if conf.Start != nil {
		start = *conf.Start
	}
	if conf.End != nil {
		end = *conf.End
	}
	return traj.ResampleRange(start, end, conf.Step)
}
