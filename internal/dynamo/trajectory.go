package dynamo

// Trajectory holds the sampled output of one integration run. Samples are
// append-only with strictly increasing times starting at 0. A trajectory
// returned by the solver must be treated as immutable.
type Trajectory struct {
	Times      []float64
	Positions  []float64
	Velocities []float64
}

func NewTrajectory(capacity int) *Trajectory {
	if capacity < 0 {
		capacity = 0
	}
	return &Trajectory{
		Times:      make([]float64, 0, capacity),
		Positions:  make([]float64, 0, capacity),
		Velocities: make([]float64, 0, capacity),
	}
}

func (tr *Trajectory) Append(t, q, v float64) {
	tr.Times = append(tr.Times, t)
	tr.Positions = append(tr.Positions, q)
	tr.Velocities = append(tr.Velocities, v)
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// At returns the i-th sample as (time, position, velocity).
func (tr *Trajectory) At(i int) (float64, float64, float64) {
	return tr.Times[i], tr.Positions[i], tr.Velocities[i]
}

// Last returns the final sample, or zeros for an empty trajectory.
func (tr *Trajectory) Last() (float64, float64, float64) {
	n := len(tr.Times)
	if n == 0 {
		return 0, 0, 0
	}
	return tr.Times[n-1], tr.Positions[n-1], tr.Velocities[n-1]
}

func (tr *Trajectory) Clone() *Trajectory {
	c := NewTrajectory(tr.Len())
	c.Times = append(c.Times, tr.Times...)
	c.Positions = append(c.Positions, tr.Positions...)
	c.Velocities = append(c.Velocities, tr.Velocities...)
	return c
}
