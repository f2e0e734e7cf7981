package kernel

import (
	"math"
	"testing"
)

// influence at the center is exactly 1 for any positive radius
func TestCenterInfluence(t *testing.T) {
	for _, k := range []Kernel{Gaussian{}, Bubble{}} {
		for _, r := range []float64{0.1, 1, 3, 100} {
			if got := k.Influence(0, r); got != 1 {
				t.Errorf("%T.Influence(0, %v) = %v, want 1", k, r, got)
			}
		}
	}
}

func TestGaussian(t *testing.T) {
	g := Gaussian{}
	want := math.Exp(-0.5)
	if got := g.Influence(1, 1); math.Abs(got-want) > 1e-12 {
		t.Errorf("Influence(1, 1) = %v, want %v", got, want)
	}
	// non-increasing in distance
	prev := g.Influence(0, 2)
	for d := 0.5; d < 10; d += 0.5 {
		v := g.Influence(d, 2)
		if v > prev {
			t.Errorf("influence increased at d=%v: %v > %v", d, v, prev)
		}
		prev = v
	}
}

func TestBubble(t *testing.T) {
	b := Bubble{}
	if b.Influence(1, 1) != 1 {
		t.Error("Influence(1, 1) should be 1 at the boundary")
	}
	if b.Influence(1.001, 1) != 0 {
		t.Error("Influence(1.001, 1) should be 0")
	}
}

// zero radius degenerates to a bubble of radius 0: only the BMU updates
func TestZeroRadius(t *testing.T) {
	for _, k := range []Kernel{Gaussian{}, Bubble{}} {
		if got := k.Influence(0, 0); got != 1 {
			t.Errorf("%T.Influence(0, 0) = %v, want 1", k, got)
		}
		if got := k.Influence(1, 0); got != 0 {
			t.Errorf("%T.Influence(1, 0) = %v, want 0", k, got)
		}
	}
}

func TestParse(t *testing.T) {
	if k, err := Parse("gauss"); err != nil {
		t.Fatal(err)
	} else if _, ok := k.(Gaussian); !ok {
		t.Errorf("Parse(gauss) = %T", k)
	}
	if k, err := Parse("bubble"); err != nil {
		t.Fatal(err)
	} else if _, ok := k.(Bubble); !ok {
		t.Errorf("Parse(bubble) = %T", k)
	}
	if _, err := Parse("mexican-hat"); err == nil {
		t.Error("Parse(mexican-hat) should fail")
	}
}
