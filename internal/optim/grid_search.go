// Package optim tunes braking parameters by exhaustive search.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/metrics"
	"github.com/san-kum/lenzsim/internal/sim"
)

// Objective scores one trajectory; lower is better.
type Objective func(traj *dynamo.Trajectory) float64

// GridSearch evaluates an objective over a range of Lenz scale factors.
type GridSearch struct {
	scales []float64
}

func NewGridSearch(lo, hi float64, n int) *GridSearch {
	if n < 2 {
		n = 2
	}
	scales := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range scales {
		scales[i] = lo + float64(i)*step
	}
	return &GridSearch{scales: scales}
}

func (g *GridSearch) Scales() []float64 { return g.scales }

// Search runs every candidate through the ensemble and returns the scale
// with the lowest objective. Trajectories the objective maps to NaN are
// skipped.
func (g *GridSearch) Search(ctx context.Context, ens *sim.Ensemble, p sim.Params, obj Objective) (bestScale, bestValue float64, err error) {
	trajs, err := ens.RunScales(ctx, p, g.scales)
	if err != nil {
		return 0, 0, err
	}

	bestValue = math.Inf(1)
	bestScale = g.scales[0]
	for i, traj := range trajs {
		val := obj(traj)
		if math.IsNaN(val) {
			continue
		}
		if val < bestValue {
			bestValue = val
			bestScale = g.scales[i]
		}
	}
	return bestScale, bestValue, nil
}

// StoppingTimeTarget builds an objective minimizing the distance between
// the run's stopping time and a target. Runs that never stop score NaN.
func StoppingTimeTarget(target, threshold float64) Objective {
	return func(traj *dynamo.Trajectory) float64 {
		m := metrics.NewStoppingTime(threshold)
		stop := metrics.Apply(traj, m)[m.Name()]
		if math.IsNaN(stop) {
			return math.NaN()
		}
		return math.Abs(stop - target)
	}
}
