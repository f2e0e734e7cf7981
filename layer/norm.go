package layer

import "math"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/stat"

// Norm selects the per-column normalization of a numeric layer.
type Norm byte

const (
	// None leaves values untouched.
	None Norm = iota
	// Gauss maps values to z-scores: (x - mean) / std.
	Gauss
	// Unit maps values to [0, 1] by the observed range.
	Unit
)

// ParseNorm parses a normalizer name. Accepts "none", "gauss" and "unit".
func ParseNorm(str string) (Norm, error) {
	switch str {
	case "none":
		return None, nil
	case "gauss":
		return Gauss, nil
	case "unit":
		return Unit, nil
	}
	return 0, errors.Errorf("not a normalizer: %q. Must be one of (none|gauss|unit)", str)
}

// String returns the parseable name of the normalizer.
func (n Norm) String() string {
	switch n {
	case Gauss:
		return "gauss"
	case Unit:
		return "unit"
	}
	return "none"
}

// Transform is a fitted linear column transform. Apply computes
// (x + Offset) * Scale; Invert undoes it for de-normalized exports.
type Transform struct {
	Offset float64 `json:"offset"`
	Scale  float64 `json:"scale"`
}

func identity() Transform { return Transform{Offset: 0, Scale: 1} }

// Apply normalizes a raw value. NaN (no-data) passes through.
func (t Transform) Apply(v float64) float64 {
	return (v + t.Offset) * t.Scale
}

// Invert de-normalizes an encoded value back to data units.
func (t Transform) Invert(v float64) float64 {
	return v/t.Scale - t.Offset
}

// FitNorm computes the transform for one column. NaN values are treated
// as no-data and skipped. Zero-variance and empty columns fall back to
// the identity transform rather than failing.
func FitNorm(values []float64, norm Norm) Transform {
	if norm == None {
		return identity()
	}
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return identity()
	}
	switch norm {
	case Gauss:
		mean, std := stat.MeanStdDev(valid, nil)
		if std == 0 || math.IsNaN(std) {
			return identity()
		}
		return Transform{Offset: -mean, Scale: 1 / std}
	case Unit:
		min, max := valid[0], valid[0]
		for _, v := range valid[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if max == min {
			return identity()
		}
		return Transform{Offset: -min, Scale: 1 / (max - min)}
	}
	return identity()
}
