// Package schedule implements decaying learning parameters interpolated
// over the training horizon.
package schedule

import "fmt"
import "math"

import "github.com/pkg/errors"

// Curve selects how a Schedule interpolates between its bounds.
type Curve byte

const (
	// Linear interpolates on a straight line between start and end.
	Linear Curve = iota
	// Exponential interpolates on an exponential curve between start and end.
	// Requires both bounds to be positive.
	Exponential
)

// ParseCurve parses a curve name. Accepts "lin" and "exp".
func ParseCurve(str string) (Curve, error) {
	switch str {
	case "lin":
		return Linear, nil
	case "exp":
		return Exponential, nil
	}
	return 0, errors.Errorf("not a curve: %q. Must be one of (lin|exp)", str)
}

// String returns the parseable name of the curve.
func (c Curve) String() string {
	if c == Exponential {
		return "exp"
	}
	return "lin"
}

// Schedule is a parameter decaying from a start to an end value across
// the training horizon. The curve is resolved at construction time, so
// At performs no dispatch.
type Schedule struct {
	start float64
	end   float64
	curve Curve
	at    func(progress float64) float64
}

// New creates a schedule. Exponential schedules require positive bounds.
func New(start, end float64, curve Curve) (s *Schedule, err error) {
	s = &Schedule{start: start, end: end, curve: curve}
	switch curve {
	case Linear:
		s.at = func(p float64) float64 {
			return start + p*(end-start)
		}
	case Exponential:
		if start <= 0 || end <= 0 {
			return nil, errors.Errorf("exponential schedule bounds must be positive, got start=%v end=%v", start, end)
		}
		ratio := end / start
		s.at = func(p float64) float64 {
			return start * math.Pow(ratio, p)
		}
	default:
		return nil, errors.Errorf("unknown curve: %d", curve)
	}
	if start == end {
		// one less source of rounding noise
		s.at = func(float64) float64 { return start }
	}
	return s, nil
}

// MustNew creates a schedule and panics on invalid bounds.
func MustNew(start, end float64, curve Curve) *Schedule {
	s, err := New(start, end, curve)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// Lin creates a linearly decaying schedule.
func Lin(start, end float64) *Schedule {
	return MustNew(start, end, Linear)
}

// Exp creates an exponentially decaying schedule.
func Exp(start, end float64) (*Schedule, error) {
	return New(start, end, Exponential)
}

// At returns the parameter value for training progress in [0, 1].
// Progress outside the interval is clamped.
func (s *Schedule) At(progress float64) float64 {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	return s.at(progress)
}

// String returns the schedule in "start,end,curve" form.
func (s *Schedule) String() string {
	return fmt.Sprintf("%g,%g,%s", s.start, s.end, s.curve)
}

// Start returns the schedule's start bound.
func (s *Schedule) Start() float64 { return s.start }

// End returns the schedule's end bound.
func (s *Schedule) End() float64 { return s.end }

// Curve returns the schedule's curve.
func (s *Schedule) Curve() Curve { return s.curve }
