package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/force"
)

// rampDown is a hand-built trajectory: speed climbs to 3 then decays to
// near zero.
func rampDown() *dynamo.Trajectory {
	traj := dynamo.NewTrajectory(8)
	traj.Append(0.0, 0.0, 0.0)
	traj.Append(1.0, 1.0, 2.0)
	traj.Append(2.0, 3.0, 3.0)
	traj.Append(3.0, 5.0, 1.0)
	traj.Append(4.0, 5.5, 0.1)
	traj.Append(5.0, 5.6, 0.001)
	return traj
}

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed()
	got := Apply(rampDown(), m)["peak_speed"]
	if got != 3.0 {
		t.Errorf("peak_speed = %g, want 3", got)
	}
}

func TestPeakSpeedNegativeVelocity(t *testing.T) {
	traj := dynamo.NewTrajectory(2)
	traj.Append(0, 0, -4.0)
	traj.Append(1, -4, -2.0)

	if got := Apply(traj, NewPeakSpeed())["peak_speed"]; got != 4.0 {
		t.Errorf("peak_speed = %g, want 4", got)
	}
}

func TestStoppingTime(t *testing.T) {
	got := Apply(rampDown(), NewStoppingTime(0.01))["stopping_time"]
	if got != 5.0 {
		t.Errorf("stopping_time = %g, want 5", got)
	}
}

func TestStoppingTimeNeverStops(t *testing.T) {
	traj := dynamo.NewTrajectory(3)
	traj.Append(0, 0, 0)
	traj.Append(1, 1, 2)
	traj.Append(2, 3, 2)

	got := Apply(traj, NewStoppingTime(0.01))["stopping_time"]
	if !math.IsNaN(got) {
		t.Errorf("stopping_time = %g, want NaN", got)
	}
}

func TestDisplacement(t *testing.T) {
	got := Apply(rampDown(), NewDisplacement())["displacement"]
	if got != 5.6 {
		t.Errorf("displacement = %g, want 5.6", got)
	}
}

func TestDisplacementEmpty(t *testing.T) {
	traj := dynamo.NewTrajectory(0)
	if got := Apply(traj, NewDisplacement())["displacement"]; got != 0 {
		t.Errorf("displacement of empty trajectory = %g, want 0", got)
	}
}

func TestLenzDissipation(t *testing.T) {
	fm := force.Analytic{Coef: force.Damping(-2.0)}

	// Constant speed 3 over 2 seconds: power = 2*9 = 18, energy = 36.
	traj := dynamo.NewTrajectory(3)
	traj.Append(0, 0, 3.0)
	traj.Append(1, 3, 3.0)
	traj.Append(2, 6, 3.0)

	got := Apply(traj, NewLenzDissipation(fm))["lenz_dissipation"]
	if math.Abs(got-36.0) > 1e-12 {
		t.Errorf("lenz_dissipation = %g, want 36", got)
	}
}

func TestLenzDissipationUnbraked(t *testing.T) {
	fm := force.Analytic{}
	got := Apply(rampDown(), NewLenzDissipation(fm))["lenz_dissipation"]
	if got != 0 {
		t.Errorf("lenz_dissipation = %g, want 0 without a Lenz term", got)
	}
}

func TestMetricsReset(t *testing.T) {
	peak := NewPeakSpeed()
	Apply(rampDown(), peak)

	quiet := dynamo.NewTrajectory(1)
	quiet.Append(0, 0, 0.5)
	if got := Apply(quiet, peak)["peak_speed"]; got != 0.5 {
		t.Errorf("peak_speed after reset = %g, want 0.5", got)
	}
}
