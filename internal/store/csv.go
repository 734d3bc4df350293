// Package store persists trajectories: the delimited text format, per-run
// directories, and JSON/SVG exports.
package store

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

// Header of the trajectory text format. Forces are reconstructed from the
// force model at write time; dof and velocity are converted to degrees for
// angular dofs, forces are not.
const Header = "time,dof,velocity,ext_force,lenz_force"

const radToDeg = 180 / math.Pi

// WriteCSV serializes a trajectory with its derived force columns. Each
// field is written with 12-digit scientific precision. The lenz_force
// column holds -Lenz(q)*v, the braking force actually applied.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory, fm dynamo.ForceModel, isAngle bool) error {
	bw := bufio.NewWriter(w)

	transform := 1.0
	if isAngle {
		transform = radToDeg
	}

	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		t, q, v := traj.At(i)
		_, err := fmt.Fprintf(bw, "%.12e,%.12e,%.12e,%.12e,%.12e\n",
			t, q*transform, v*transform,
			fm.External(t, q), -fm.Lenz(q)*v)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveCSV writes the trajectory format to a file.
func SaveCSV(path string, traj *dynamo.Trajectory, fm dynamo.ForceModel, isAngle bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, traj, fm, isAngle)
}

// ReadCSV parses the trajectory format back into time/position/velocity
// samples, undoing the degree conversion for angular dofs. The force
// columns are derived data and dropped.
func ReadCSV(r io.Reader, isAngle bool) (*dynamo.Trajectory, error) {
	transform := 1.0
	if isAngle {
		transform = radToDeg
	}

	traj := dynamo.NewTrajectory(64)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if line == 1 {
			if text != Header {
				return nil, fmt.Errorf("store: unexpected header %q", text)
			}
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) != 5 {
			return nil, fmt.Errorf("store: line %d has %d fields, want 5", line, len(fields))
		}

		vals := make([]float64, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("store: line %d: %w", line, err)
			}
			vals[i] = v
		}

		traj.Append(vals[0], vals[1]/transform, vals[2]/transform)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return traj, nil
}

// LoadCSV reads the trajectory format from a file.
func LoadCSV(path string, isAngle bool) (*dynamo.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	traj, err := ReadCSV(f, isAngle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return traj, nil
}
