package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/se2/spatialmath"
	"go.viam.com/se2/utils"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	if _, err := color.New(color.Bold, color.FgYellow).Fprint(w, "Warning: "); err != nil {
		return
	}
	printf(w, format, a...)
}

// parsePose parses "x,y,yaw". With degrees set yaw is read as degrees.
func parsePose(s string, degrees bool) (spatialmath.Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return spatialmath.Pose{}, errors.Errorf("pose %q must have the form X,Y,YAW", s)
	}
	values := make([]float64, 0, 3)
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return spatialmath.Pose{}, errors.Wrapf(err, "pose %q", s)
		}
		values = append(values, v)
	}
	p := spatialmath.NewPose(values[0], values[1], values[2])
	if degrees {
		p.Yaw = utils.DegToRad(p.Yaw)
	}
	if !p.IsFinite() {
		return spatialmath.Pose{}, errors.Errorf("pose %q must be finite", s)
	}
	return p, nil
}

// yawString formats yaw in radians, or degrees when degrees is set.
func yawString(yaw float64, degrees bool) string {
	if degrees {
		return fmt.Sprintf("%.6f", utils.RadToDeg(yaw))
	}
	return fmt.Sprintf("%.6f", yaw)
}

func poseString(p spatialmath.Pose, degrees bool) string {
	return fmt.Sprintf("x=%.6f y=%.6f yaw=%s", p.X, p.Y, yawString(p.Yaw, degrees))
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(lo.Map(values, func(v, _ int) string { return strconv.Itoa(v) }), ",")
}
