package integrators

import (
	"math"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

// Doubling turns any fixed-step integrator into an adaptive advancer by
// comparing one full step against two half steps and bisecting until the
// disagreement is within tolerance.
type Doubling struct {
	inner    dynamo.Integrator
	maxDepth int
}

func NewDoubling(inner dynamo.Integrator) *Doubling {
	return &Doubling{inner: inner, maxDepth: 24}
}

func (d *Doubling) Advance(sys dynamo.System, x dynamo.State, t, target, tol float64) (dynamo.State, error) {
	if target <= t {
		return x.Clone(), nil
	}
	return d.step(sys, x, t, target-t, tol, 0)
}

func (d *Doubling) step(sys dynamo.System, x dynamo.State, t, dt, tol float64, depth int) (dynamo.State, error) {
	if depth > d.maxDepth {
		return x, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrStepTooSmall}
	}

	x1 := d.inner.Step(sys, x, t, dt)
	xh := d.inner.Step(sys, x, t, dt/2)
	x2 := d.inner.Step(sys, xh, t+dt/2, dt/2)

	diff := 0.0
	for i := range x1 {
		diff += (x1[i] - x2[i]) * (x1[i] - x2[i])
	}

	if math.Sqrt(diff) > tol {
		xm, err := d.step(sys, x, t, dt/2, tol, depth+1)
		if err != nil {
			return xm, err
		}
		return d.step(sys, xm, t+dt/2, dt/2, tol, depth+1)
	}

	if !x2.IsValid() {
		return x, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrInvalidState}
	}
	return x2, nil
}
