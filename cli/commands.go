package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"go.viam.com/se2/config"
	"go.viam.com/se2/logging"
	"go.viam.com/se2/spatialmath"
	"go.viam.com/se2/trajectory"
	"go.viam.com/se2/utils"
)

var defaultCompareAlphas = []float64{0, 0.25, 0.5, 0.75, 1}

type appState struct {
	logger logging.Logger
}

func (s *appState) before(c *cli.Context) error {
	level := logging.WARN
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	s.logger = logging.NewWriterLogger("se2", level, c.App.ErrWriter)
	return nil
}

func posesFromFlags(c *cli.Context) (spatialmath.Pose, spatialmath.Pose, error) {
	from, err := parsePose(c.String(fromFlag), c.Bool(degreesFlag))
	if err != nil {
		return spatialmath.Pose{}, spatialmath.Pose{}, errors.Wrapf(err, "--%s", fromFlag)
	}
	to, err := parsePose(c.String(toFlag), c.Bool(degreesFlag))
	if err != nil {
		return spatialmath.Pose{}, spatialmath.Pose{}, errors.Wrapf(err, "--%s", toFlag)
	}
	return from, to, nil
}

// InterpolateAction prints a single interpolated pose.
func (s *appState) InterpolateAction(c *cli.Context) error {
	from, to, err := posesFromFlags(c)
	if err != nil {
		return err
	}
	interp, err := spatialmath.InterpolatorByName(c.String(methodFlag))
	if err != nil {
		return err
	}
	alpha := c.Float64(alphaFlag)
	if alpha < 0 || alpha > 1 {
		warningf(c.App.ErrWriter, "alpha %v is outside [0, 1], extrapolating", alpha)
	}
	p := interp(from, to, alpha)
	s.logger.Debugw("interpolated", "from", from, "to", to, "alpha", alpha, "method", c.String(methodFlag), "pose", p)
	printf(c.App.Writer, "%s", poseString(p, c.Bool(degreesFlag)))
	return nil
}

// CompareAction prints a table of SE(2) and linear interpolation at several alphas.
func (s *appState) CompareAction(c *cli.Context) error {
	from, to, err := posesFromFlags(c)
	if err != nil {
		return err
	}
	degrees := c.Bool(degreesFlag)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Alpha", "SE2 X", "SE2 Y", "SE2 Yaw", "Linear X", "Linear Y", "Linear Yaw", "Deviation"})
	alphas := c.Float64Slice(alphaFlag)
	if len(alphas) == 0 {
		alphas = defaultCompareAlphas
	}
	for _, alpha := range alphas {
		screw := spatialmath.Interpolate(from, to, alpha)
		lin := spatialmath.Lerp(from, to, alpha)
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3f", alpha),
			fmt.Sprintf("%.6f", screw.X),
			fmt.Sprintf("%.6f", screw.Y),
			yawString(screw.Yaw, degrees),
			fmt.Sprintf("%.6f", lin.X),
			fmt.Sprintf("%.6f", lin.Y),
			yawString(lin.Yaw, degrees),
			fmt.Sprintf("%.6f", screw.Point().Sub(lin.Point()).Norm()),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// ResampleAction resamples a trajectory file according to a config file.
func (s *appState) ResampleAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("resample takes exactly one INPUT file")
	}
	conf, err := config.Read(c.String(configFlag))
	if err != nil {
		return err
	}
	logger := s.logger.Sublogger("resample")
	if !c.Bool(debugFlag) {
		level, err := conf.Level()
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	nodes, err := readNodes(c.Args().First(), conf.Degrees)
	if err != nil {
		return err
	}
	opts, err := conf.TrajectoryOptions(logger)
	if err != nil {
		return err
	}
	traj, err := trajectory.New(nodes, opts...)
	if err != nil {
		return errors.Wrapf(err, "invalid trajectory %q", c.Args().First())
	}
	out, err := conf.Resample(traj)
	if err != nil {
		return err
	}
	if conf.Degrees {
		out = lo.Map(out, func(n trajectory.Node, _ int) trajectory.Node {
			n.Yaw = utils.RadToDeg(n.Yaw)
			return n
		})
	}
	logger.Infow("resampled trajectory", "input", c.Args().First(), "in", len(nodes), "out", len(out))

	path := c.String(outputFlag)
	if path == "" {
		return writeNodes(c.App.Writer, out, c.String(formatFlag))
	}
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create output %q", path)
	}
	return errors.Wrapf(writeAndClose(f, out, c.String(formatFlag)), "output %q", path)
}

// writeAndClose writes nodes to wc and closes it, returning the close error if the write
// succeeded.
func writeAndClose(wc io.WriteCloser, nodes []trajectory.Node, format string) error {
	if err := writeNodes(wc, nodes, format); err != nil {
		goutils.UncheckedError(wc.Close())
		return err
	}
	return wc.Close()
}

type analysis struct {
	path     string
	nodes    int
	stats    trajectory.HeadingStats
	backward []int
}

// AnalyzeAction reports heading statistics and backward steps for each input file.
func (s *appState) AnalyzeAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("analyze takes at least one INPUT file")
	}
	threshold := c.Float64(thresholdFlag)
	degrees := c.Bool(degreesFlag)
	logger := s.logger.Sublogger("analyze")

	results, err := utils.MapInParallel(c.Context, c.Args().Slice(), func(ctx context.Context, path string) (analysis, error) {
		nodes, err := readNodes(path, degrees)
		if err != nil {
			return analysis{}, err
		}
		if err := trajectory.Validate(nodes); err != nil {
			return analysis{}, errors.Wrapf(err, "invalid trajectory %q", path)
		}
		stats, err := trajectory.ComputeHeadingStats(nodes)
		if err != nil {
			return analysis{}, errors.Wrapf(err, "trajectory %q", path)
		}
		logger.Debugw("analyzed", "input", path, "nodes", len(nodes))
		return analysis{
			path:     path,
			nodes:    len(nodes),
			stats:    stats,
			backward: trajectory.BackwardSteps(nodes, threshold),
		}, nil
	})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Input", "Nodes", "Mean |dHeading|", "Total |dHeading|", "Max |dHeading|", "Backward Steps"})
	for _, res := range results {
		t.AppendRow(table.Row{
			filepath.Base(res.path),
			res.nodes,
			fmt.Sprintf("%.6f", res.stats.MeanAbsChange),
			fmt.Sprintf("%.6f", res.stats.TotalAbsChange),
			fmt.Sprintf("%.6f", res.stats.MaxAbsChange),
			joinInts(res.backward),
		})
		if len(res.backward) > 0 {
			warningf(c.App.ErrWriter, "%s moves backwards at %d of %d steps", filepath.Base(res.path), len(res.backward), res.nodes-1)
		}
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

func readNodes(path string, degrees bool) ([]trajectory.Node, error) {
	nodes, err := trajectory.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if degrees {
		nodes = lo.Map(nodes, func(n trajectory.Node, _ int) trajectory.Node {
			n.Yaw = utils.DegToRad(n.Yaw)
			return n
		})
	}
	return nodes, nil
}

func writeNodes(w io.Writer, nodes []trajectory.Node, format string) error {
	switch format {
	case formatCSV:
		return trajectory.WriteCSV(w, nodes)
	case formatJSON:
		return trajectory.WriteJSON(w, nodes)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}
