package force

import (
	"math"
	"testing"
)

func TestTableInterpolation(t *testing.T) {
	tb, err := NewTable([]float64{0, 1, 2}, []float64{0, 10, 20})
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{0.5, 5},   // midpoint of first segment
		{1.5, 15},  // midpoint of second segment
		{0, 0},     // exact node
		{1, 10},    // exact node
		{2, 20},    // exact node
		{5, 20},    // flat extrapolation above
		{-5, 0},    // flat extrapolation below
		{0.25, 2.5},
	}

	for _, tt := range tests {
		got := tb.At(tt.x)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("At(%g) = %g, want %g", tt.x, got, tt.want)
		}
	}
}

func TestTableTooShort(t *testing.T) {
	if _, err := NewTable([]float64{1}, []float64{2}); err == nil {
		t.Error("expected error for single-row table")
	}
	if _, err := NewTable(nil, nil); err == nil {
		t.Error("expected error for empty table")
	}
}

func TestTableLengthMismatch(t *testing.T) {
	if _, err := NewTable([]float64{0, 1, 2}, []float64{0, 1}); err == nil {
		t.Error("expected error for mismatched columns")
	}
}

func TestTableCopiesInput(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{0, 10}
	tb, err := NewTable(xs, ys)
	if err != nil {
		t.Fatal(err)
	}

	ys[1] = 999
	if tb.At(1) != 10 {
		t.Error("table should not alias caller slices")
	}
}

func TestAnalyticNilFuncs(t *testing.T) {
	var a Analytic
	if a.External(1, 2) != 0 {
		t.Error("nil external should contribute zero")
	}
	if a.Lenz(3) != 0 {
		t.Error("nil lenz should contribute zero")
	}
}

func TestScaled(t *testing.T) {
	fm := Analytic{
		Ext:  Constant(2.0),
		Coef: Damping(-0.5),
	}

	s := Scaled{Model: fm, Factor: 3}
	if s.External(0, 0) != 2.0 {
		t.Error("scaling should not touch the external forcing")
	}
	if s.Lenz(0) != -1.5 {
		t.Errorf("expected scaled lenz -1.5, got %f", s.Lenz(0))
	}

	u := Unbraked(fm)
	if u.Lenz(0) != 0 {
		t.Error("unbraked model should have zero lenz coefficient")
	}
	if u.External(0, 0) != 2.0 {
		t.Error("unbraked model should keep the external forcing")
	}
}

func TestTabulatedModel(t *testing.T) {
	tb, err := NewTable([]float64{0, 1}, []float64{-1, -3})
	if err != nil {
		t.Fatal(err)
	}

	fm := Tabulated{Ext: Constant(1.0), Table: tb}
	if fm.External(0, 0.5) != 1.0 {
		t.Error("unexpected external force")
	}
	if math.Abs(fm.Lenz(0.5)+2) > 1e-12 {
		t.Errorf("expected lenz -2 at midpoint, got %f", fm.Lenz(0.5))
	}
}
