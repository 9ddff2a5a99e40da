package trajectory

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/se2/spatialmath"
)

// DefaultBackwardThreshold is the forward step below which motion counts as backwards.
// It is a little below zero so that jitter in a stationary recording is ignored.
const DefaultBackwardThreshold = -0.01

// ForwardSteps returns, for each node after the first, the displacement from the previous node
// projected onto the previous node's heading. Negative values mean the pose moved backwards
// relative to where it was facing.
func ForwardSteps(nodes []Node) []float64 {
	if len(nodes) < 2 {
		return nil
	}
	steps := make([]float64, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		d := nodes[i].Point().Sub(nodes[i-1].Point())
		steps = append(steps, d.Dot(nodes[i-1].Heading()))
	}
	return steps
}

// BackwardSteps returns the indices of the nodes whose forward step is below threshold.
func BackwardSteps(nodes []Node, threshold float64) []int {
	steps := ForwardSteps(nodes)
	backward := lo.Filter(lo.Range(len(steps)), func(i, _ int) bool { return steps[i] < threshold })
	return lo.Map(backward, func(i, _ int) int { return i + 1 })
}

// TravelHeadings returns the direction of travel of each segment, ignoring the recorded yaw.
func TravelHeadings(nodes []Node) []float64 {
	if len(nodes) < 2 {
		return nil
	}
	headings := make([]float64, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		d := nodes[i].Point().Sub(nodes[i-1].Point())
		headings = append(headings, math.Atan2(d.Y, d.X))
	}
	return headings
}

// TravelHeadingChanges returns the wrapped change in travel direction between consecutive
// segments.
func TravelHeadingChanges(nodes []Node) []float64 {
	headings := TravelHeadings(nodes)
	if len(headings) < 2 {
		return nil
	}
	changes := make([]float64, 0, len(headings)-1)
	for i := 1; i < len(headings); i++ {
		changes = append(changes, spatialmath.AngleBetween(headings[i-1], headings[i]))
	}
	return changes
}

// HeadingStats summarises how much a path meanders.
type HeadingStats struct {
	// MeanAbsChange is the average absolute change in travel direction per segment.
	MeanAbsChange float64 `json:"mean_abs_change"`
	// TotalAbsChange is the total absolute change in travel direction.
	TotalAbsChange float64 `json:"total_abs_change"`
	// MaxAbsChange is the sharpest single turn.
	MaxAbsChange float64 `json:"max_abs_change"`
	Segments     int     `json:"segments"`
}

// ComputeHeadingStats returns the meander statistics of the path through the nodes. Paths
// with fewer than three nodes have no heading changes and yield zero stats.
func ComputeHeadingStats(nodes []Node) (HeadingStats, error) {
	changes := TravelHeadingChanges(nodes)
	res := HeadingStats{Segments: max(len(nodes)-1, 0)}
	if len(changes) == 0 {
		return res, nil
	}
	abs := lo.Map(changes, func(d float64, _ int) float64 { return math.Abs(d) })

	var err error
	if res.MeanAbsChange, err = stats.Mean(abs); err != nil {
		return HeadingStats{}, errors.Wrap(err, "mean heading change")
	}
	if res.TotalAbsChange, err = stats.Sum(abs); err != nil {
		return HeadingStats{}, errors.Wrap(err, "total heading change")
	}
	if res.MaxAbsChange, err = stats.Max(abs); err != nil {
		return HeadingStats{}, errors.Wrap(err, "max heading change")
	}
	return res, nil
}
