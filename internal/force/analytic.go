// Package force provides the force model variants consumed by the solver:
// closed-form (Analytic) and table-driven (Tabulated) external forcing and
// Lenz coefficients.
package force

// Analytic wraps closed-form callables as a force model. Nil functions
// contribute zero.
type Analytic struct {
	Ext  func(t, q float64) float64
	Coef func(q float64) float64
}

func (a Analytic) External(t, q float64) float64 {
	if a.Ext == nil {
		return 0
	}
	return a.Ext(t, q)
}

func (a Analytic) Lenz(q float64) float64 {
	if a.Coef == nil {
		return 0
	}
	return a.Coef(q)
}

// Constant returns a forcing term that ignores time and position.
func Constant(c float64) func(t, q float64) float64 {
	return func(t, q float64) float64 { return c }
}

// Damping returns a position-independent Lenz coefficient.
func Damping(c float64) func(q float64) float64 {
	return func(q float64) float64 { return c }
}
