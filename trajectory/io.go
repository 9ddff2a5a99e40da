package trajectory

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

var csvHeader = []string{"t", "x", "y", "yaw"}

// ReadJSON reads nodes from a JSON array of {"t", "x", "y", "yaw"} objects.
func ReadJSON(r io.Reader) ([]Node, error) {
	var nodes []Node
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, errors.Wrap(err, "cannot decode trajectory json")
	}
	return nodes, nil
}

// WriteJSON writes nodes as a JSON array.
func WriteJSON(w io.Writer, nodes []Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(nodes), "cannot encode trajectory json")
}

// ReadCSV reads nodes from CSV with a header naming the t, x, y and yaw columns in any order.
// Extra columns are ignored.
func ReadCSV(r io.Reader) ([]Node, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "cannot read csv header")
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var errs error
	for _, name := range csvHeader {
		if _, ok := columns[name]; !ok {
			errs = multierr.Append(errs, errors.Errorf("csv header is missing column %q", name))
		}
	}
	if errs != nil {
		return nil, errs
	}

	var nodes []Node
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read csv line %d", line)
		}
		values := make([]float64, len(csvHeader))
		for i, name := range csvHeader {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[columns[name]]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %q", line, name)
			}
			values[i] = v
		}
		nodes = append(nodes, NewNode(values[0], values[1], values[2], values[3]))
	}
	return nodes, nil
}

// WriteCSV writes nodes as CSV with a t,x,y,yaw header.
func WriteCSV(w io.Writer, nodes []Node) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return errors.Wrap(err, "cannot write csv header")
	}
	for _, n := range nodes {
		record := []string{formatFloat(n.Time), formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Yaw)}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "cannot write csv record")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "cannot flush csv")
}

// ReadFile reads nodes from a .json or .csv file.
func ReadFile(path string) ([]Node, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open trajectory %q", path)
	}
	defer utils.UncheckedErrorFunc(f.Close)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, errors.Errorf("unsupported trajectory file extension %q", ext)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
