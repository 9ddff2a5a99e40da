package trajectory

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/se2/utils"
)

const (
	// sampleEpsilon absorbs rounding when a step evenly divides the span.
	sampleEpsilon = 1e-9
	// MaxSamples bounds the number of nodes a single resample may produce.
	MaxSamples = 1e7
)

// Resample returns nodes every step units of time from Start, always ending with a node at End.
func (traj *Trajectory) Resample(step float64) ([]Node, error) {
	return traj.ResampleRange(traj.Start(), traj.End(), step)
}

// ResampleRange returns nodes every step units of time from start, always ending with a node
// at end. Times outside the trajectory need extrapolation enabled.
func (traj *Trajectory) ResampleRange(start, end, step float64) ([]Node, error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return nil, errors.Errorf("resample range [%v, %v] must be finite", start, end)
	}
	if end < start {
		return nil, errors.Errorf("resample range end %v is before start %v", end, start)
	}
	times, err := sampleTimes(start, end, step)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(times))
	for _, t := range times {
		p, err := traj.At(t)
		if err != nil {
			return nil, err
		}
		out = append(out, Node{Time: t, Pose: p})
	}
	traj.logger.Debugw("resampled", "start", start, "end", end, "step", step, "nodes", len(out))
	return out, nil
}

// ResampleFrames returns nodes every frameStep frames, always ending with the last node.
func (traj *Trajectory) ResampleFrames(frameStep float64) ([]Node, error) {
	frames, err := sampleTimes(0, float64(len(traj.nodes)-1), frameStep)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(frames))
	for _, f := range frames {
		n, err := traj.AtFrame(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	traj.logger.Debugw("resampled frames", "frame_step", frameStep, "nodes", len(out))
	return out, nil
}

// sampleTimes returns start, start+step, ... up to end, with end appended when the step does not
// land on it.
func sampleTimes(start, end, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, errors.Errorf("step must be a positive finite number, got %v", step)
	}
	span := end - start
	if span == 0 {
		return []float64{start}, nil
	}
	n := span / step
	if n > MaxSamples {
		return nil, errors.Errorf("step %v over span %v gives %.3g samples, more than the limit of %.0f",
			step, span, n, float64(MaxSamples))
	}
	steps := int(math.Floor(n + sampleEpsilon))
	if steps == 0 {
		return []float64{start, end}, nil
	}
	times := floats.Span(make([]float64, steps+1), start, start+float64(steps)*step)
	last := times[steps]
	if last < end && !utils.Float64AlmostEqual(last, end, sampleEpsilon*math.Max(1, math.Abs(end))) {
		times = append(times, end)
	} else {
		times[steps] = end
	}
	return times, nil
}
