// Package layer implements the named, independently weighted and
// normalized data layers of a Super-SOM, and the weighted multi-layer
// distance built on top of them.
//
// A numeric layer groups one or more numeric columns, each normalized
// by a fitted linear transform. A categorical layer encodes a single
// column as a one-hot segment over the category levels observed at fit
// time. Layers are fitted once over the full dataset before training
// and are immutable afterwards.
package layer

import "math"
import "sort"

import "github.com/pkg/errors"

// Source provides raw dataset columns for fitting and bulk encoding.
type Source interface {

	// NumericColumn returns the named numeric column, with NaN for
	// missing values. Reports false if the column does not exist.
	NumericColumn(name string) ([]float64, bool)

	// CategoricalColumn returns the named categorical column, with ""
	// for missing values. Reports false if the column does not exist.
	CategoricalColumn(name string) ([]string, bool)
}

// Layer is one named data layer. Exactly one of the numeric or
// categorical encodings is active, resolved at construction time.
type Layer struct {
	name    string
	columns []string
	weight  float64
	categ   bool

	norm  Norm
	trans []Transform // per column, numeric only

	levels []string // sorted category levels, categorical only
	index  map[string]int

	fitted bool
}

// Cont creates a continuous (numeric) layer over the given columns.
func Cont(name string, columns []string, weight float64, norm Norm) *Layer {
	return &Layer{name: name, columns: columns, weight: weight, norm: norm}
}

// Cat creates a categorical layer over a single column.
func Cat(name string, column string, weight float64) *Layer {
	return &Layer{name: name, columns: []string{column}, weight: weight, categ: true}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Columns returns the source column names of the layer.
func (l *Layer) Columns() []string { return l.columns }

// Weight returns the layer's distance weight.
func (l *Layer) Weight() float64 { return l.weight }

// Categorical reports whether the layer is categorical.
func (l *Layer) Categorical() bool { return l.categ }

// Norm returns the numeric layer's normalizer.
func (l *Layer) Norm() Norm { return l.norm }

// Levels returns the category levels observed at fit time, sorted.
func (l *Layer) Levels() []string { return l.levels }

// Width returns the encoded segment width. Valid only after Fit.
func (l *Layer) Width() int {
	if l.categ {
		return len(l.levels)
	}
	return len(l.columns)
}

// Fit computes the layer's encoding parameters from the dataset. It
// must be called exactly once, before training.
func (l *Layer) Fit(src Source) error {
	if l.fitted {
		return errors.Errorf("layer %q: already fitted", l.name)
	}
	if l.weight < 0 {
		return errors.Errorf("layer %q: negative weight %v", l.name, l.weight)
	}
	if l.categ {
		values, ok := src.CategoricalColumn(l.columns[0])
		if !ok {
			return errors.Errorf("layer %q: categorical column %q not found", l.name, l.columns[0])
		}
		seen := make(map[string]struct{})
		for _, v := range values {
			if v == "" {
				continue // no-data
			}
			seen[v] = struct{}{}
		}
		l.levels = make([]string, 0, len(seen))
		for v := range seen {
			l.levels = append(l.levels, v)
		}
		sort.Strings(l.levels)
		l.index = make(map[string]int, len(l.levels))
		for i, v := range l.levels {
			l.index[v] = i
		}
	} else {
		l.trans = make([]Transform, len(l.columns))
		for i, col := range l.columns {
			values, ok := src.NumericColumn(col)
			if !ok {
				return errors.Errorf("layer %q: numeric column %q not found", l.name, col)
			}
			l.trans[i] = FitNorm(values, l.norm)
		}
	}
	l.fitted = true
	return nil
}

// Encode writes the layer's segment for one raw row into dst, which
// must have length Width. Missing cells encode as NaN (no-data). The
// row index is carried into unknown-category errors; pass a negative
// row for single queries outside a dataset.
func (l *Layer) Encode(numeric map[string]float64, categorical map[string]string, row int, dst []float64) error {
	if !l.fitted {
		return errors.Errorf("layer %q: not fitted", l.name)
	}
	if l.categ {
		v, ok := categorical[l.columns[0]]
		if !ok || v == "" {
			for i := range dst {
				dst[i] = math.NaN()
			}
			return nil
		}
		idx, ok := l.index[v]
		if !ok {
			return &UnknownCategoryError{Layer: l.name, Value: v, Row: row}
		}
		for i := range dst {
			dst[i] = 0
		}
		dst[idx] = 1
		return nil
	}
	for i, col := range l.columns {
		v, ok := numeric[col]
		if !ok {
			dst[i] = math.NaN()
			continue
		}
		dst[i] = l.trans[i].Apply(v)
	}
	return nil
}

// Decode de-normalizes a numeric segment back to data units, writing
// into dst of length Width.
func (l *Layer) Decode(segment []float64, dst []float64) {
	for i := range l.columns {
		dst[i] = l.trans[i].Invert(segment[i])
	}
}

// Class returns the level with the highest activation in a one-hot
// segment of a categorical layer, or "" if all components are no-data.
func (l *Layer) Class(segment []float64) string {
	best, found := 0, false
	for i, v := range segment {
		if math.IsNaN(v) {
			continue
		}
		if !found || v > segment[best] {
			best, found = i, true
		}
	}
	if !found || len(l.levels) == 0 {
		return ""
	}
	return l.levels[best]
}

// NormalizeWeights rescales the layers' weights so they sum to 1.
// Called once at setup, before fitting.
func NormalizeWeights(layers []*Layer) {
	var sum float64
	for _, l := range layers {
		sum += l.weight
	}
	if sum <= 0 {
		return
	}
	for _, l := range layers {
		l.weight /= sum
	}
}

// TotalWidth returns the combined encoded width of the fitted layers,
// equal to the prototype vector width.
func TotalWidth(layers []*Layer) (o int) {
	for _, l := range layers {
		o += l.Width()
	}
	return
}
