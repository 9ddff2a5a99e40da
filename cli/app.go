// Package cli contains the se2 command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/se2/spatialmath"
	"go.viam.com/se2/trajectory"
)

const (
	// Flags.
	debugFlag     = "debug"
	fromFlag      = "from"
	toFlag        = "to"
	alphaFlag     = "alpha"
	methodFlag    = "method"
	degreesFlag   = "degrees"
	configFlag    = "config"
	outputFlag    = "output"
	formatFlag    = "format"
	thresholdFlag = "threshold"

	formatCSV  = "csv"
	formatJSON = "json"
)

var poseFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     fromFlag,
		Usage:    "start pose as `X,Y,YAW`",
		Required: true,
	},
	&cli.StringFlag{
		Name:     toFlag,
		Usage:    "end pose as `X,Y,YAW`",
		Required: true,
	},
	&cli.BoolFlag{
		Name:  degreesFlag,
		Usage: "read and print yaw in degrees",
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	state := &appState{}
	return &cli.App{
		Name:            "se2",
		Usage:           "interpolate and analyse planar poses",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: state.before,
		Commands: []*cli.Command{
			{
				Name:      "interpolate",
				Usage:     "print the pose a fraction of the way between two poses",
				UsageText: "se2 interpolate --from X,Y,YAW --to X,Y,YAW --alpha A [--method se2|linear]",
				Flags: append([]cli.Flag{
					&cli.Float64Flag{
						Name:  alphaFlag,
						Usage: "interpolation parameter, 0 at --from and 1 at --to",
						Value: 0.5,
					},
					&cli.StringFlag{
						Name:  methodFlag,
						Usage: "interpolation `METHOD`, se2 or linear",
						Value: spatialmath.InterpolationSE2,
					},
				}, poseFlags...),
				Action: state.InterpolateAction,
			},
			{
				Name:  "compare",
				Usage: "print se2 and linear interpolation side by side",
				Flags: append([]cli.Flag{
					&cli.Float64SliceFlag{
						Name:  alphaFlag,
						Usage: "interpolation parameters to compare, 0, 0.25, 0.5, 0.75 and 1 if unset",
					},
				}, poseFlags...),
				Action: state.CompareAction,
			},
			{
				Name:      "resample",
				Usage:     "resample a recorded trajectory",
				ArgsUsage: "INPUT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     configFlag,
						Aliases:  []string{"c"},
						Usage:    "load resampling configuration from `FILE`",
						Required: true,
					},
					&cli.StringFlag{
						Name:  outputFlag,
						Usage: "write resampled nodes to `FILE` instead of stdout",
					},
					&cli.StringFlag{
						Name:  formatFlag,
						Usage: "output format, csv or json",
						Value: formatCSV,
					},
				},
				Action: state.ResampleAction,
			},
			{
				Name:      "analyze",
				Usage:     "report meandering and backward motion of recorded trajectories",
				ArgsUsage: "INPUT...",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  thresholdFlag,
						Usage: "forward step below which a step counts as backwards",
						Value: trajectory.DefaultBackwardThreshold,
					},
					&cli.BoolFlag{
						Name:  degreesFlag,
						Usage: "input yaw is in degrees",
					},
				},
				Action: state.AnalyzeAction,
			},
		},
	}
}

