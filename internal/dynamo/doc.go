// Package dynamo provides core primitives for simulating a single degree
// of freedom subject to an external forcing term and an eddy-current
// (Lenz) braking force.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: vector representing system state {position, velocity}
//   - [ForceModel]: external forcing and unitary Lenz coefficient
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator] / [Advancer]: numerical stepping interfaces
//   - [Trajectory]: sampled output of one integration run
//
// # Example
//
//	fm := force.Analytic{Ext: force.Constant(1.0)}
//	solver := sim.New(integrators.NewAdams())
//	traj, _ := solver.Solve(ctx, fm, sim.DefaultParams())
//
// # Thread Safety
//
// ForceModel implementations are stateless and safe to share. Integrator
// instances carry scratch buffers and are NOT safe for concurrent use;
// each parallel run needs its own (see sim.Ensemble).
package dynamo
