// Package scenario maps named physical setups to force models and solver
// defaults.
package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/lenzsim/internal/dynamo"
	"github.com/san-kum/lenzsim/internal/force"
	"github.com/san-kum/lenzsim/internal/sim"
)

// Scenario describes one physical setup: how the external forcing and the
// default Lenz coefficient are built, whether the dof is an angle, and
// sensible solver defaults.
type Scenario struct {
	Name        string
	Description string
	IsAngle     bool
	External    func(t, q float64) float64
	DefaultLenz func(q float64) float64
	Defaults    sim.Params
}

// Model builds the scenario's force model. When a table is given it
// replaces the default Lenz coefficient; scale multiplies whichever is
// active.
func (sc Scenario) Model(table *force.Table, scale float64) dynamo.ForceModel {
	var fm dynamo.ForceModel
	if table != nil {
		fm = force.Tabulated{Ext: sc.External, Table: table}
	} else {
		fm = force.Analytic{Ext: sc.External, Coef: sc.DefaultLenz}
	}
	if scale != 1 {
		fm = force.Scaled{Model: fm, Factor: scale}
	}
	return fm
}

type Registry struct {
	scenarios map[string]Scenario
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]Scenario)}

	const gravity = 9.81

	r.Register(Scenario{
		Name:        "pendulum",
		Description: "pendulum swinging past an eddy-current magnet",
		IsAngle:     true,
		External: func(t, q float64) float64 {
			return -gravity * math.Sin(q)
		},
		DefaultLenz: force.Damping(-0.3),
		Defaults: sim.Params{
			TMax: 20.0,
			Dt:   0.01,
			Q0:   1.2,
			QMin: -math.Pi,
			QMax: math.Pi,
			Tol:  1e-6,
		},
	})

	r.Register(Scenario{
		Name:        "rail",
		Description: "mass sliding down an inclined conducting rail",
		External: func(t, q float64) float64 {
			return gravity * math.Sin(math.Pi/12)
		},
		DefaultLenz: force.Damping(-1.5),
		Defaults: sim.Params{
			TMax: 10.0,
			Dt:   0.01,
			Q0:   0.05,
			QMin: 0,
			QMax: 2.0,
			Tol:  1e-6,
		},
	})

	r.Register(Scenario{
		Name:        "spring",
		Description: "spring-mass oscillator with eddy-current damping",
		External: func(t, q float64) float64 {
			return -4.0 * q
		},
		DefaultLenz: force.Damping(-0.2),
		Defaults: sim.Params{
			TMax: 30.0,
			Dt:   0.01,
			Q0:   0.5,
			QMin: -2.0,
			QMax: 2.0,
			Tol:  1e-6,
		},
	})

	return r
}

func (r *Registry) Register(sc Scenario) {
	r.scenarios[sc.Name] = sc
}

func (r *Registry) Get(name string) (Scenario, error) {
	sc, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s", name)
	}
	return sc, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
