package force

import (
	"fmt"
	"sort"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

// Table is a piecewise-linear interpolant over sampled (position, value)
// pairs. Evaluation outside the sampled range clamps to the boundary
// values. Positions must be strictly increasing; this is a precondition
// of the interpolation, not validated beyond the length check.
type Table struct {
	xs, ys []float64
}

func NewTable(xs, ys []float64) (*Table, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("force: table columns differ in length (%d vs %d)", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("force: table needs at least 2 rows, got %d", len(xs))
	}
	t := &Table{
		xs: make([]float64, len(xs)),
		ys: make([]float64, len(ys)),
	}
	copy(t.xs, xs)
	copy(t.ys, ys)
	return t, nil
}

func (tb *Table) Len() int { return len(tb.xs) }

// At evaluates the interpolant with flat extrapolation at both ends.
func (tb *Table) At(x float64) float64 {
	n := len(tb.xs)
	if x <= tb.xs[0] {
		return tb.ys[0]
	}
	if x >= tb.xs[n-1] {
		return tb.ys[n-1]
	}

	// Index of the first sample > x; the segment is [i-1, i].
	i := sort.SearchFloat64s(tb.xs, x)
	if tb.xs[i] == x {
		return tb.ys[i]
	}

	x0, x1 := tb.xs[i-1], tb.xs[i]
	y0, y1 := tb.ys[i-1], tb.ys[i]
	frac := (x - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}

// Tabulated is a force model whose Lenz coefficient comes from a measured
// table, paired with a closed-form external forcing.
type Tabulated struct {
	Ext   func(t, q float64) float64
	Table *Table
}

func (m Tabulated) External(t, q float64) float64 {
	if m.Ext == nil {
		return 0
	}
	return m.Ext(t, q)
}

func (m Tabulated) Lenz(q float64) float64 {
	return m.Table.At(q)
}

// Scaled multiplies the Lenz coefficient of an existing model by Factor,
// leaving the external forcing untouched. A factor of zero removes the
// magnet entirely.
type Scaled struct {
	Model  dynamo.ForceModel
	Factor float64
}

func (s Scaled) External(t, q float64) float64 { return s.Model.External(t, q) }

func (s Scaled) Lenz(q float64) float64 { return s.Factor * s.Model.Lenz(q) }

// Unbraked strips the Lenz term from a model, for with/without-magnet
// comparisons.
func Unbraked(fm dynamo.ForceModel) dynamo.ForceModel {
	return Scaled{Model: fm, Factor: 0}
}
