package store

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/force"
)

func sampleTrajectory() *dynamo.Trajectory {
	traj := dynamo.NewTrajectory(3)
	traj.Append(0.0, 0.0, 0.0)
	traj.Append(0.5, 0.25, 0.5)
	traj.Append(1.0, 1.0, 1.0)
	return traj
}

func sampleModel() dynamo.ForceModel {
	return force.Analytic{
		Ext:  force.Constant(1.0),
		Coef: force.Damping(-0.5),
	}
}

func TestWriteCSVGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTrajectory(), sampleModel(), false); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "trajectory", buf.Bytes())
}

func TestCSVRoundTrip(t *testing.T) {
	for _, isAngle := range []bool{false, true} {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, sampleTrajectory(), sampleModel(), isAngle); err != nil {
			t.Fatalf("WriteCSV(isAngle=%v) failed: %v", isAngle, err)
		}

		got, err := ReadCSV(&buf, isAngle)
		if err != nil {
			t.Fatalf("ReadCSV(isAngle=%v) failed: %v", isAngle, err)
		}

		want := sampleTrajectory()
		if got.Len() != want.Len() {
			t.Fatalf("round trip lost samples: %d vs %d", got.Len(), want.Len())
		}
		for i := 0; i < want.Len(); i++ {
			wt, wq, wv := want.At(i)
			gt, gq, gv := got.At(i)
			if math.Abs(gt-wt) > 1e-11 || math.Abs(gq-wq) > 1e-11 || math.Abs(gv-wv) > 1e-11 {
				t.Errorf("isAngle=%v sample %d: got (%g, %g, %g), want (%g, %g, %g)",
					isAngle, i, gt, gq, gv, wt, wq, wv)
			}
		}
	}
}

func TestWriteCSVAngleConversion(t *testing.T) {
	traj := dynamo.NewTrajectory(1)
	traj.Append(0.0, math.Pi, math.Pi/2)

	fm := force.Analytic{
		Ext:  force.Constant(3.0),
		Coef: force.Damping(-2.0),
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, traj, fm, true); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	fields := strings.Split(lines[1], ",")
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(fields))
	}

	parse := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("bad field %q: %v", s, err)
		}
		return v
	}

	if got := parse(fields[1]); math.Abs(got-180.0) > 1e-9 {
		t.Errorf("dof = %g, want 180 degrees", got)
	}
	if got := parse(fields[2]); math.Abs(got-90.0) > 1e-9 {
		t.Errorf("velocity = %g, want 90 degrees", got)
	}
	// Forces stay in natural units while dof and velocity become degrees.
	if got := parse(fields[3]); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("ext_force = %g, want 3", got)
	}
	if got := parse(fields[4]); math.Abs(got-2.0*math.Pi/2) > 1e-9 {
		t.Errorf("lenz_force = %g, want %g", got, 2.0*math.Pi/2)
	}
}

func TestReadCSVBadHeader(t *testing.T) {
	in := "t,x,v\n0,0,0\n"
	if _, err := ReadCSV(strings.NewReader(in), false); err == nil {
		t.Fatal("expected header error")
	}
}

func TestReadCSVShortRow(t *testing.T) {
	in := Header + "\n1.0,2.0\n"
	if _, err := ReadCSV(strings.NewReader(in), false); err == nil {
		t.Fatal("expected field-count error")
	}
}

func TestReadCSVBadNumber(t *testing.T) {
	in := Header + "\nnope,0,0,0,0\n"
	if _, err := ReadCSV(strings.NewReader(in), false); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveLoadCSV(t *testing.T) {
	path := t.TempDir() + "/traj.csv"
	if err := SaveCSV(path, sampleTrajectory(), sampleModel(), false); err != nil {
		t.Fatalf("SaveCSV failed: %v", err)
	}

	got, err := LoadCSV(path, false)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if got.Len() != 3 {
		t.Errorf("loaded %d samples, want 3", got.Len())
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(t.TempDir()+"/absent.csv", false); err == nil {
		t.Fatal("expected error for missing file")
	}
}
