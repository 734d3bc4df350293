package integrators

import (
	"math"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

// Adams-Bashforth predictor / Adams-Moulton corrector coefficients (order 4)
var (
	abp = [4]float64{55.0 / 24.0, -59.0 / 24.0, 37.0 / 24.0, -9.0 / 24.0}
	amc = [4]float64{9.0 / 24.0, 19.0 / 24.0, -5.0 / 24.0, 1.0 / 24.0}
)

// Milne factor relating the predictor-corrector gap to the local error.
const milne = 19.0 / 270.0

// Adams is an adaptive 4th-order Adams-Bashforth-Moulton predictor-corrector
// for smooth non-stiff systems. It self-starts with RK4, keeps a uniform
// derivative history, and rescales its internal step from the
// predictor-corrector disagreement. History is rebuilt whenever the step
// changes.
type Adams struct {
	safety      float64
	minScale    float64
	maxScale    float64
	maxSubsteps int
	minStep     float64

	starter *RK4
	hist    []dynamo.State // derivative history, hist[0] most recent
	h       float64
}

func NewAdams() *Adams {
	return &Adams{
		safety:      0.9,
		minScale:    0.2,
		maxScale:    4.0,
		maxSubsteps: 100000,
		minStep:     1e-13,
		starter:     NewRK4(),
	}
}

// Step satisfies dynamo.Integrator for fixed-step comparisons.
func (a *Adams) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	next, err := a.Advance(sys, x, t, t+dt, 1e-6)
	if err != nil {
		return x.Clone()
	}
	return next
}

func (a *Adams) Advance(sys dynamo.System, x dynamo.State, t, target, tol float64) (dynamo.State, error) {
	if target <= t {
		return x.Clone(), nil
	}
	if a.h <= 0 || a.h > target-t {
		a.h = (target - t) / 8
	}
	a.hist = a.hist[:0]

	cur := x.Clone()
	for steps := 0; t < target; steps++ {
		if steps >= a.maxSubsteps {
			return cur, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrStepBudget}
		}

		rem := target - t
		if rem <= a.h {
			// Final clipped substep breaks the uniform spacing; take it
			// with the starter instead.
			next := a.starter.Step(sys, cur, t, rem)
			if !next.IsValid() {
				return cur, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrInvalidState}
			}
			return next, nil
		}

		if len(a.hist) < 3 {
			a.push(sys.Derive(cur, t))
			next := a.starter.Step(sys, cur, t, a.h)
			if !next.IsValid() {
				return cur, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrInvalidState}
			}
			cur = next
			t += a.h
			continue
		}

		a.push(sys.Derive(cur, t))
		n := len(cur)

		xp := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			xp[i] = cur[i] + a.h*(abp[0]*a.hist[0][i]+abp[1]*a.hist[1][i]+abp[2]*a.hist[2][i]+abp[3]*a.hist[3][i])
		}
		fp := sys.Derive(xp, t+a.h)

		xc := make(dynamo.State, n)
		for i := 0; i < n; i++ {
			xc[i] = cur[i] + a.h*(amc[0]*fp[i]+amc[1]*a.hist[0][i]+amc[2]*a.hist[1][i]+amc[3]*a.hist[2][i])
		}

		errMax := 0.0
		for i := 0; i < n; i++ {
			est := milne * math.Abs(xc[i]-xp[i])
			scale := math.Abs(cur[i]) + math.Abs(a.h*a.hist[0][i]) + 1e-10
			errMax = math.Max(errMax, est/scale)
		}
		errRatio := errMax / tol

		if errRatio > 1 {
			scale := math.Max(a.minScale, a.safety*math.Pow(errRatio, -0.25))
			a.h *= scale
			a.hist = a.hist[:0]
			if a.h < a.minStep {
				return cur, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrStepTooSmall}
			}
			continue
		}

		if !xc.IsValid() {
			return cur, &dynamo.StepError{Time: t, Wrapped: dynamo.ErrInvalidState}
		}

		cur = xc
		t += a.h

		if errRatio < 0.01 {
			scale := a.maxScale
			if errRatio > 0 {
				scale = math.Min(a.maxScale, a.safety*math.Pow(errRatio, -0.2))
			}
			if scale > 1 {
				a.h *= scale
				a.hist = a.hist[:0]
			}
		}
	}

	return cur, nil
}

func (a *Adams) push(f dynamo.State) {
	a.hist = append([]dynamo.State{f.Clone()}, a.hist...)
	if len(a.hist) > 4 {
		a.hist = a.hist[:4]
	}
}
