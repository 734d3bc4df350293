package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lenzsim/internal/dynamo"
)

func TestAdams_UniformMotion(t *testing.T) {
	adams := NewAdams()
	sys := &freeParticle{}
	x := dynamo.State{2.0, 0.5}

	next, err := adams.Advance(sys, x, 0, 1.0, 1e-9)
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}

	if math.Abs(next[0]-2.5) > 1e-9 {
		t.Errorf("expected position 2.5, got %.12f", next[0])
	}
	if math.Abs(next[1]-0.5) > 1e-12 {
		t.Errorf("expected velocity 0.5, got %.12f", next[1])
	}
}

func TestAdams_MatchesAnalytic(t *testing.T) {
	adams := NewAdams()
	sys := &harmonicOscillator{}

	x := dynamo.State{1.0, 0.0}
	tNow := 0.0
	dt := 0.1

	for i := 0; i < 50; i++ {
		next, err := adams.Advance(sys, x, tNow, tNow+dt, 1e-9)
		if err != nil {
			t.Fatalf("Advance failed at t=%.2f: %v", tNow, err)
		}
		x = next
		tNow += dt
	}

	if math.Abs(x[0]-math.Cos(tNow)) > 1e-6 {
		t.Errorf("position off analytic solution: got %.8f, want %.8f", x[0], math.Cos(tNow))
	}
	if math.Abs(x[1]+math.Sin(tNow)) > 1e-6 {
		t.Errorf("velocity off analytic solution: got %.8f, want %.8f", x[1], -math.Sin(tNow))
	}
}

func TestAdams_NoBackwardTarget(t *testing.T) {
	adams := NewAdams()
	sys := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	next, err := adams.Advance(sys, x, 1.0, 1.0, 1e-6)
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	if next[0] != 1.0 || next[1] != 0.0 {
		t.Error("zero-length advance should return the input state")
	}
}

func TestAdams_InvalidDerivative(t *testing.T) {
	adams := NewAdams()
	sys := &blowUp{}
	x := dynamo.State{1.0, 0.0}

	_, err := adams.Advance(sys, x, 0, 1.0, 1e-6)
	if err == nil {
		t.Fatal("expected error for NaN-producing system")
	}

	var stepErr *dynamo.StepError
	if !errors.As(err, &stepErr) {
		t.Errorf("expected StepError, got %T", err)
	}
}

func TestDoubling_MatchesAnalytic(t *testing.T) {
	adv := NewDoubling(NewRK4())
	sys := &harmonicOscillator{}

	x, err := adv.Advance(sys, dynamo.State{1.0, 0.0}, 0, 2.0, 1e-9)
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}

	if math.Abs(x[0]-math.Cos(2.0)) > 1e-6 {
		t.Errorf("position off analytic solution: got %.8f, want %.8f", x[0], math.Cos(2.0))
	}
}

func TestDoubling_EulerConverges(t *testing.T) {
	adv := NewDoubling(NewEuler())
	sys := &harmonicOscillator{}

	x, err := adv.Advance(sys, dynamo.State{1.0, 0.0}, 0, 1.0, 1e-8)
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}

	if math.Abs(x[0]-math.Cos(1.0)) > 1e-3 {
		t.Errorf("position off analytic solution: got %.8f, want %.8f", x[0], math.Cos(1.0))
	}
}

type freeParticle struct{}

func (f *freeParticle) Dim() int { return 2 }

func (f *freeParticle) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], 0}
}

type blowUp struct{}

func (b *blowUp) Dim() int { return 2 }

func (b *blowUp) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{math.NaN(), math.NaN()}
}
