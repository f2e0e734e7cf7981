// Package kernel implements neighborhood functions converting grid
// distance and the current radius into an update strength in [0, 1].
package kernel

import "math"

import "github.com/pkg/errors"

// Kernel is a neighborhood function. Influence must return 1 at zero
// distance for any positive radius and must be non-increasing in the
// distance.
type Kernel interface {

	// Influence returns the update strength for a unit at grid
	// distance d when the neighborhood radius is radius.
	Influence(d, radius float64) float64
}

// Parse resolves a kernel name into a concrete kernel.
// Accepts "gauss" and "bubble".
func Parse(str string) (Kernel, error) {
	switch str {
	case "gauss":
		return Gaussian{}, nil
	case "bubble":
		return Bubble{}, nil
	}
	return nil, errors.Errorf("not a neighborhood kernel: %q. Must be one of (gauss|bubble)", str)
}

// Gaussian is the Gaussian neighborhood: exp(-d² / 2r²).
type Gaussian struct{}

// Influence returns exp(-d²/(2r²)). A zero radius concentrates the
// update on the best matching unit alone.
func (Gaussian) Influence(d, radius float64) float64 {
	if d == 0 {
		return 1
	}
	if radius <= 0 {
		return 0
	}
	return math.Exp(-(d * d) / (2 * radius * radius))
}

// String returns the parseable name of the kernel.
func (Gaussian) String() string { return "gauss" }

// Bubble is the step neighborhood: 1 inside the radius, 0 outside.
type Bubble struct{}

// Influence returns 1 if d <= radius, else 0.
func (Bubble) Influence(d, radius float64) float64 {
	if d <= radius {
		return 1
	}
	return 0
}

// String returns the parseable name of the kernel.
func (Bubble) String() string { return "bubble" }
