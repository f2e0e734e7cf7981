package schedule

import (
	"math"
	"testing"
)

// endpoints and monotonicity
func TestLinear(t *testing.T) {
	s := Lin(1.0, 0.1)
	if s.At(0) != 1.0 {
		t.Errorf("At(0) = %v, want 1.0", s.At(0))
	}
	if s.At(1) != 0.1 {
		t.Errorf("At(1) = %v, want 0.1", s.At(1))
	}
	// affine in progress: midpoint is the mean of the bounds
	mid := s.At(0.5)
	if math.Abs(mid-0.55) > 1e-12 {
		t.Errorf("At(0.5) = %v, want 0.55", mid)
	}
	prev := s.At(0)
	for p := 0.1; p <= 1.0; p += 0.1 {
		v := s.At(p)
		if v > prev {
			t.Errorf("not non-increasing at %v: %v > %v", p, v, prev)
		}
		prev = v
	}
}

func TestExponential(t *testing.T) {
	s, err := Exp(1.0, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.At(0)-1.0) > 1e-12 {
		t.Errorf("At(0) = %v, want 1.0", s.At(0))
	}
	if math.Abs(s.At(1)-0.01) > 1e-12 {
		t.Errorf("At(1) = %v, want 0.01", s.At(1))
	}
	if math.Abs(s.At(0.5)-0.1) > 1e-12 {
		t.Errorf("At(0.5) = %v, want 0.1", s.At(0.5))
	}
}

// start == end degenerates to a constant for either curve
func TestConstant(t *testing.T) {
	for _, curve := range []Curve{Linear, Exponential} {
		s, err := New(0.5, 0.5, curve)
		if err != nil {
			t.Fatal(err)
		}
		for p := 0.0; p <= 1.0; p += 0.125 {
			if s.At(p) != 0.5 {
				t.Errorf("curve %v: At(%v) = %v, want 0.5", curve, p, s.At(p))
			}
		}
	}
}

// degenerate exponential bounds are rejected at construction
func TestExponentialRejectsNonPositive(t *testing.T) {
	if _, err := Exp(0, 0.1); err == nil {
		t.Error("Exp(0, 0.1) should fail")
	}
	if _, err := Exp(1, 0); err == nil {
		t.Error("Exp(1, 0) should fail")
	}
	if _, err := Exp(-1, 1); err == nil {
		t.Error("Exp(-1, 1) should fail")
	}
}

func TestParseCurve(t *testing.T) {
	if c, err := ParseCurve("lin"); err != nil || c != Linear {
		t.Errorf("ParseCurve(lin) = %v, %v", c, err)
	}
	if c, err := ParseCurve("exp"); err != nil || c != Exponential {
		t.Errorf("ParseCurve(exp) = %v, %v", c, err)
	}
	if _, err := ParseCurve("cos"); err == nil {
		t.Error("ParseCurve(cos) should fail")
	}
}

// progress outside [0,1] clamps to the bounds
func TestClamp(t *testing.T) {
	s := Lin(2, 1)
	if s.At(-1) != 2 {
		t.Errorf("At(-1) = %v, want 2", s.At(-1))
	}
	if s.At(2) != 1 {
		t.Errorf("At(2) = %v, want 1", s.At(2))
	}
}

func FuzzScheduleBounded(f *testing.F) {
	f.Add(1.0, 0.1, 0.5)
	f.Add(0.01, 5.0, 0.9)
	f.Fuzz(func(t *testing.T, start, end, p float64) {
		if math.IsNaN(start) || math.IsNaN(end) || math.IsNaN(p) ||
			math.IsInf(start, 0) || math.IsInf(end, 0) || math.IsInf(end-start, 0) {
			return
		}
		s := Lin(start, end)
		v := s.At(p)
		lo, hi := start, end
		if lo > hi {
			lo, hi = hi, lo
		}
		if v < lo-1e-9 || v > hi+1e-9 {
			t.Errorf("Lin(%v,%v).At(%v) = %v outside bounds", start, end, p, v)
		}
	})
}
