package dynamo

import (
	"math"
	"testing"
)

type constantForce struct {
	ext  float64
	lenz float64
}

func (c constantForce) External(t, q float64) float64 { return c.ext }
func (c constantForce) Lenz(q float64) float64        { return c.lenz }

func TestStateClone(t *testing.T) {
	s := State{1.0, 2.0}
	c := s.Clone()

	c[0] = 9.0
	if s[0] != 1.0 {
		t.Error("clone should not share backing array")
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1.0, -2.0}).IsValid() {
		t.Error("finite state should be valid")
	}
	if (State{math.NaN(), 0}).IsValid() {
		t.Error("NaN state should be invalid")
	}
	if (State{0, math.Inf(1)}).IsValid() {
		t.Error("Inf state should be invalid")
	}
}

func TestBrakedDerive(t *testing.T) {
	sys := Braked(constantForce{ext: 2.0, lenz: -0.5})

	dx := sys.Derive(State{1.0, 4.0}, 0)

	if dx[0] != 4.0 {
		t.Errorf("expected dq/dt = velocity (4.0), got %f", dx[0])
	}
	// dv/dt = ext + lenz*v = 2 - 0.5*4 = 0
	if dx[1] != 0.0 {
		t.Errorf("expected dv/dt 0.0, got %f", dx[1])
	}

	if sys.Dim() != 2 {
		t.Errorf("expected dim 2, got %d", sys.Dim())
	}
}

func TestTrajectoryAppend(t *testing.T) {
	traj := NewTrajectory(4)

	traj.Append(0, 1.0, 0)
	traj.Append(0.5, 1.2, 0.4)

	if traj.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", traj.Len())
	}

	tt, q, v := traj.At(1)
	if tt != 0.5 || q != 1.2 || v != 0.4 {
		t.Errorf("unexpected sample: (%f, %f, %f)", tt, q, v)
	}

	tt, q, v = traj.Last()
	if tt != 0.5 || q != 1.2 || v != 0.4 {
		t.Errorf("unexpected last sample: (%f, %f, %f)", tt, q, v)
	}
}

func TestTrajectoryLastEmpty(t *testing.T) {
	traj := NewTrajectory(0)
	tt, q, v := traj.Last()
	if tt != 0 || q != 0 || v != 0 {
		t.Error("empty trajectory should report zeros")
	}
}

func TestTrajectoryClone(t *testing.T) {
	traj := NewTrajectory(2)
	traj.Append(0, 1.0, 0)

	c := traj.Clone()
	c.Append(1.0, 2.0, 1.0)

	if traj.Len() != 1 {
		t.Error("clone should not mutate the original")
	}
	if c.Len() != 2 {
		t.Error("clone should accept appends")
	}
}
