package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/force"
)

// Ensemble runs the same force model over a set of parameter variants,
// at most Workers at a time. Force models are read-only and each run owns
// its trajectory buffer and advancer, so runs are independent.
type Ensemble struct {
	fm       dynamo.ForceModel
	advancer func() dynamo.Advancer

	// Workers caps concurrent runs; zero or negative means GOMAXPROCS.
	Workers int
}

func NewEnsemble(fm dynamo.ForceModel, advancer func() dynamo.Advancer) *Ensemble {
	return &Ensemble{fm: fm, advancer: advancer}
}

func (e *Ensemble) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Run solves one trajectory per params entry. The first error (including
// cancellation) is returned, but every run completes or is canceled before
// Run returns.
func (e *Ensemble) Run(ctx context.Context, params []Params) ([]*dynamo.Trajectory, error) {
	trajs := make([]*dynamo.Trajectory, len(params))
	errs := make([]error, len(params))

	sem := make(chan struct{}, e.workers())
	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			solver := New(e.advancer())
			trajs[idx], errs[idx] = solver.Solve(ctx, e.fm, params[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trajs, nil
}

// RunScales solves one trajectory per Lenz scale factor under shared
// params, for magnet-strength sweeps.
func (e *Ensemble) RunScales(ctx context.Context, p Params, scales []float64) ([]*dynamo.Trajectory, error) {
	trajs := make([]*dynamo.Trajectory, len(scales))
	errs := make([]error, len(scales))

	sem := make(chan struct{}, e.workers())
	var wg sync.WaitGroup
	for i := range scales {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			solver := New(e.advancer())
			scaled := force.Scaled{Model: e.fm, Factor: scales[idx]}
			trajs[idx], errs[idx] = solver.Solve(ctx, scaled, p)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trajs, nil
}
