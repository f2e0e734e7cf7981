package layer

import "math"

// sqDistance is the squared Euclidean distance between two segments.
// NaN components (no-data) are skipped.
func sqDistance(a, b []float64) float64 {
	var sum float64
	for i, av := range a {
		bv := b[i]
		if math.IsNaN(av) || math.IsNaN(bv) {
			continue
		}
		d := av - bv
		sum += d * d
	}
	return sum
}

// Distance returns the weighted multi-layer distance between a sample
// and a prototype: the sum over layers of the layer weight times the
// squared Euclidean distance of the layer's segments. It is
// deterministic and commutative; the layer order is fixed by
// configuration.
func Distance(layers []*Layer, sample, prototype []float64) float64 {
	var sum float64
	var start int
	for _, l := range layers {
		end := start + l.Width()
		sum += l.weight * sqDistance(sample[start:end], prototype[start:end])
		start = end
	}
	return sum
}
