package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/force"
)

// Params configures one integration run. QMin/QMax bound the valid
// position domain; crossing either bound (or equality) terminates the run
// normally.
type Params struct {
	TMax float64
	Dt   float64
	Q0   float64
	QMin float64
	QMax float64
	Tol  float64
}

func DefaultParams() Params {
	return Params{
		TMax: 10.0,
		Dt:   0.01,
		Q0:   0.0,
		QMin: math.Inf(-1),
		QMax: math.Inf(1),
		Tol:  1e-6,
	}
}

func (p Params) Validate() error {
	if p.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", p.Dt)
	}
	if p.TMax <= 0 {
		return fmt.Errorf("sim: t_max must be positive, got %g", p.TMax)
	}
	if p.Dt >= p.TMax {
		return fmt.Errorf("sim: dt (%g) must be strictly less than t_max (%g)", p.Dt, p.TMax)
	}
	if p.QMin >= p.QMax {
		return fmt.Errorf("sim: domain bounds inverted (q_min %g >= q_max %g)", p.QMin, p.QMax)
	}
	if p.Q0 <= p.QMin || p.Q0 >= p.QMax {
		return fmt.Errorf("sim: q0 (%g) outside domain (%g, %g)", p.Q0, p.QMin, p.QMax)
	}
	if p.Tol <= 0 {
		return fmt.Errorf("sim: tolerance must be positive, got %g", p.Tol)
	}
	return nil
}

// Capacity is the upper bound on trajectory length for given params.
func (p Params) Capacity() int {
	return int(p.TMax/p.Dt) + 2
}

type Solver struct {
	adv dynamo.Advancer
}

func New(adv dynamo.Advancer) *Solver {
	return &Solver{adv: adv}
}

// Solve integrates the braked dynamics from (q0, 0) at t=0, sampling every
// Dt, until the horizon is reached, the position leaves (QMin, QMax), or
// the stepper fails. A stepper failure truncates the trajectory without
// surfacing an error; domain exit is the intended stopping rule. Initial
// velocity is always zero.
func (s *Solver) Solve(ctx context.Context, fm dynamo.ForceModel, p Params) (*dynamo.Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sys := dynamo.Braked(fm)
	traj := dynamo.NewTrajectory(p.Capacity())

	x := dynamo.State{p.Q0, 0}
	t := 0.0
	traj.Append(t, x[0], x[1])

	for t < p.TMax {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		next, err := s.adv.Advance(sys, x, t, t+p.Dt, p.Tol)
		if err != nil || !next.IsValid() {
			break
		}

		x = next
		t += p.Dt

		// Domain exit is the intended stopping rule; the sample that
		// crossed the bound is not recorded. Equality counts as exit.
		if x[0] <= p.QMin || x[0] >= p.QMax {
			break
		}
		traj.Append(t, x[0], x[1])
	}

	return traj, nil
}

// CompareMagnet runs the same setup with and without the Lenz term, the
// workflow behind with/without-magnet plots.
func (s *Solver) CompareMagnet(ctx context.Context, fm dynamo.ForceModel, p Params) (with, without *dynamo.Trajectory, err error) {
	with, err = s.Solve(ctx, fm, p)
	if err != nil {
		return nil, nil, err
	}
	without, err = s.Solve(ctx, force.Unbraked(fm), p)
	if err != nil {
		return nil, nil, err
	}
	return with, without, nil
}
