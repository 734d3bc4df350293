package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// ForceModel supplies the two scalar functions driving the dynamics.
// External is the forcing term divided by the body inertia; Lenz is the
// unitary eddy-current coefficient divided by the body inertia.
// Implementations must be stateless with respect to integration.
type ForceModel interface {
	External(t, q float64) float64
	Lenz(q float64) float64
}

type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Integrator advances a system by one fixed step.
type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Advancer integrates from t to target using internal adaptive substeps.
// The returned state is the estimate at target.
type Advancer interface {
	Advance(sys System, x State, t, target, tol float64) (State, error)
}

type braked struct {
	fm ForceModel
}

// Braked wraps a force model as the first-order system
//
//	dq/dt = v
//	dv/dt = External(t, q) + Lenz(q)*v
func Braked(fm ForceModel) System {
	return braked{fm: fm}
}

func (b braked) Dim() int { return 2 }

func (b braked) Derive(x State, t float64) State {
	q, v := x[0], x[1]
	return State{v, b.fm.External(t, q) + b.fm.Lenz(q)*v}
}
