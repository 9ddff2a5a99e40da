// Package trajectory samples timestamped planar poses with the SE(2) interpolation engine.
package trajectory

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/se2/logging"
	"go.viam.com/se2/spatialmath"
)

var (
	// ErrEmpty is returned when a trajectory is built from no nodes.
	ErrEmpty = errors.New("trajectory must contain at least one node")
	// ErrOutOfRange is returned for queries outside the recorded span when extrapolation is off.
	ErrOutOfRange = errors.New("query is outside the trajectory")
)

// A Node is a pose recorded at a point in time.
type Node struct {
	Time float64 `json:"t"`
	spatialmath.Pose
}

// NewNode returns a node at time t.
func NewNode(t, x, y, yaw float64) Node {
	return Node{Time: t, Pose: spatialmath.NewPose(x, y, yaw)}
}

func (n Node) String() string {
	return fmt.Sprintf("{T:%.6f X:%.6f Y:%.6f Yaw:%.6f}", n.Time, n.X, n.Y, n.Yaw)
}

// A Trajectory is an ordered, immutable sequence of nodes with strictly increasing times.
// It is safe for concurrent use.
type Trajectory struct {
	nodes       []Node
	interpolate spatialmath.Interpolator
	extrapolate bool
	logger      logging.Logger
}

// An Option configures a Trajectory.
type Option func(*Trajectory)

// WithInterpolator sets the interpolator used between nodes. The default is spatialmath.Interpolate.
func WithInterpolator(interp spatialmath.Interpolator) Option {
	return func(traj *Trajectory) {
		if interp != nil {
			traj.interpolate = interp
		}
	}
}

// WithExtrapolation allows queries before the first and after the last node, continuing the
// motion of the nearest segment.
func WithExtrapolation(extrapolate bool) Option {
	return func(traj *Trajectory) {
		traj.extrapolate = extrapolate
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(traj *Trajectory) {
		if logger != nil {
			traj.logger = logger
		}
	}
}

// New validates the nodes and returns a trajectory over a copy of them.
func New(nodes []Node, opts ...Option) (*Trajectory, error) {
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	traj := &Trajectory{
		nodes:       append([]Node(nil), nodes...),
		interpolate: spatialmath.Interpolate,
		logger:      logging.NewBlankLogger("trajectory"),
	}
	for _, opt := range opts {
		opt(traj)
	}
	traj.logger.Debugw("built trajectory", "nodes", len(nodes), "start", traj.Start(), "end", traj.End())
	return traj, nil
}

// Validate returns every problem that prevents the nodes from forming a trajectory.
func Validate(nodes []Node) error {
	if len(nodes) == 0 {
		return ErrEmpty
	}
	var errs error
	for i, n := range nodes {
		if math.IsNaN(n.Time) || math.IsInf(n.Time, 0) || !n.IsFinite() {
			errs = multierr.Append(errs, errors.Errorf("node %d has non-finite values %v", i, n))
			continue
		}
		if i > 0 && n.Time <= nodes[i-1].Time {
			errs = multierr.Append(errs, errors.Errorf("node %d time %v is not after previous time %v", i, n.Time, nodes[i-1].Time))
		}
	}
	return errs
}

// Len returns the number of nodes.
func (traj *Trajectory) Len() int {
	return len(traj.nodes)
}

// Nodes returns a copy of the nodes.
func (traj *Trajectory) Nodes() []Node {
	return append([]Node(nil), traj.nodes...)
}

// Poses returns the poses of the nodes in order.
func (traj *Trajectory) Poses() []spatialmath.Pose {
	return lo.Map(traj.nodes, func(n Node, _ int) spatialmath.Pose { return n.Pose })
}

// Start returns the time of the first node.
func (traj *Trajectory) Start() float64 {
	return traj.nodes[0].Time
}

// End returns the time of the last node.
func (traj *Trajectory) End() float64 {
	return traj.nodes[len(traj.nodes)-1].Time
}

// At returns the pose at time t.
func (traj *Trajectory) At(t float64) (spatialmath.Pose, error) {
	if math.IsNaN(t) {
		return spatialmath.Pose{}, errors.Wrap(ErrOutOfRange, "time is NaN")
	}
	if t < traj.Start() || t > traj.End() {
		if !traj.extrapolate {
			return spatialmath.Pose{}, errors.Wrapf(ErrOutOfRange, "time %v not in [%v, %v]", t, traj.Start(), traj.End())
		}
		traj.logger.Debugw("extrapolating", "t", t)
	}
	if len(traj.nodes) == 1 {
		return traj.nodes[0].Pose, nil
	}

	// first node strictly after t, so the bracketing segment starts one before it.
	idx := sort.Search(len(traj.nodes), func(i int) bool { return traj.nodes[i].Time > t })
	i := lo.Clamp(idx-1, 0, len(traj.nodes)-2)
	n0, n1 := traj.nodes[i], traj.nodes[i+1]
	alpha := (t - n0.Time) / (n1.Time - n0.Time)
	return traj.interpolate(n0.Pose, n1.Pose, alpha), nil
}

// AtFrame returns the node at fractional frame index f, so that 2.3 lies 0.3 of the way
// from node 2 to node 3.
func (traj *Trajectory) AtFrame(f float64) (Node, error) {
	last := float64(len(traj.nodes) - 1)
	if math.IsNaN(f) {
		return Node{}, errors.Wrap(ErrOutOfRange, "frame is NaN")
	}
	if f < 0 || f > last {
		if !traj.extrapolate {
			return Node{}, errors.Wrapf(ErrOutOfRange, "frame %v not in [0, %v]", f, last)
		}
		traj.logger.Debugw("extrapolating", "frame", f)
	}
	if len(traj.nodes) == 1 {
		return traj.nodes[0], nil
	}

	i := lo.Clamp(int(math.Floor(f)), 0, len(traj.nodes)-2)
	n0, n1 := traj.nodes[i], traj.nodes[i+1]
	alpha := f - float64(i)
	return Node{
		Time: n0.Time + alpha*(n1.Time-n0.Time),
		Pose: traj.interpolate(n0.Pose, n1.Pose, alpha),
	}, nil
}
