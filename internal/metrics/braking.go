// Package metrics derives summary quantities from braking trajectories.
package metrics

import (
	"math"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

type Metric interface {
	Name() string
	Observe(t, q, v float64)
	Value() float64
	Reset()
}

// Apply runs each metric over the trajectory and collects final values.
func Apply(traj *dynamo.Trajectory, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < traj.Len(); i++ {
		t, q, v := traj.At(i)
		for _, m := range ms {
			m.Observe(t, q, v)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// PeakSpeed tracks the largest |velocity| seen.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(t, q, v float64) {
	p.peak = math.Max(p.peak, math.Abs(v))
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// StoppingTime records the first time |velocity| drops below the threshold
// after the speed peak. NaN if the body never slows back down.
type StoppingTime struct {
	threshold float64
	peak      float64
	stopped   bool
	stopAt    float64
}

func NewStoppingTime(threshold float64) *StoppingTime {
	return &StoppingTime{threshold: threshold}
}

func (s *StoppingTime) Name() string { return "stopping_time" }

func (s *StoppingTime) Observe(t, q, v float64) {
	speed := math.Abs(v)
	if speed > s.peak {
		s.peak = speed
		return
	}
	if !s.stopped && s.peak > s.threshold && speed < s.threshold {
		s.stopped = true
		s.stopAt = t
	}
}

func (s *StoppingTime) Value() float64 {
	if !s.stopped {
		return math.NaN()
	}
	return s.stopAt
}

func (s *StoppingTime) Reset() {
	s.peak = 0
	s.stopped = false
	s.stopAt = 0
}

// Displacement is the net change in the degree of freedom.
type Displacement struct {
	first   float64
	last    float64
	samples int
}

func NewDisplacement() *Displacement { return &Displacement{} }

func (d *Displacement) Name() string { return "displacement" }

func (d *Displacement) Observe(t, q, v float64) {
	if d.samples == 0 {
		d.first = q
	}
	d.last = q
	d.samples++
}

func (d *Displacement) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.last - d.first
}

func (d *Displacement) Reset() {
	d.first = 0
	d.last = 0
	d.samples = 0
}

// LenzDissipation integrates the power absorbed by the eddy-current brake,
// -Lenz(q)*v^2, over the trajectory (rectangle rule between samples).
type LenzDissipation struct {
	Model dynamo.ForceModel

	prevT   float64
	total   float64
	samples int
}

func NewLenzDissipation(fm dynamo.ForceModel) *LenzDissipation {
	return &LenzDissipation{Model: fm}
}

func (l *LenzDissipation) Name() string { return "lenz_dissipation" }

func (l *LenzDissipation) Observe(t, q, v float64) {
	if l.samples > 0 {
		l.total += -l.Model.Lenz(q) * v * v * (t - l.prevT)
	}
	l.prevT = t
	l.samples++
}

func (l *LenzDissipation) Value() float64 { return l.total }

func (l *LenzDissipation) Reset() {
	l.prevT = 0
	l.total = 0
	l.samples = 0
}
