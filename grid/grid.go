// Package grid implements the rectangular array of prototype-holding
// units of a SOM, with exhaustive best-matching-unit search.
package grid

import "math"
import "math/rand"

import "github.com/pkg/errors"

// Metric computes the distance between a sample and a prototype.
type Metric func(sample, prototype []float64) float64

// Grid is a fixed rows×cols array of units, each holding a prototype
// vector of the same width. Unit-to-unit grid distances are
// precomputed at construction.
type Grid struct {
	rows  int
	cols  int
	width int
	torus bool

	protos []float64 // rows*cols*width, row-major
	dists  []float64 // (rows*cols)², Euclidean on (row, col)

	tallies []map[string]int // per-unit label counts, lazily allocated
}

// New creates a grid with all prototype components zero. Dimensions
// and width must be positive.
func New(rows, cols, width int, torus bool) (g *Grid, err error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Errorf("grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if width <= 0 {
		return nil, errors.Errorf("prototype width must be positive, got %d", width)
	}
	g = &Grid{
		rows:    rows,
		cols:    cols,
		width:   width,
		torus:   torus,
		protos:  make([]float64, rows*cols*width),
		tallies: make([]map[string]int, rows*cols),
	}
	g.calcDistances()
	return g, nil
}

func (g *Grid) calcDistances() {
	n := g.rows * g.cols
	g.dists = make([]float64, n*n)
	for i := 0; i < n; i++ {
		r1, c1 := g.Coords(i)
		for j := 0; j < n; j++ {
			r2, c2 := g.Coords(j)
			dr := float64(r1 - r2)
			dc := float64(c1 - c2)
			if g.torus {
				dr = wrap(dr, float64(g.rows))
				dc = wrap(dc, float64(g.cols))
			}
			g.dists[i*n+j] = math.Sqrt(dr*dr + dc*dc)
		}
	}
}

func wrap(d, size float64) float64 {
	d = math.Abs(d)
	if size-d < d {
		return size - d
	}
	return d
}

// InitRandom fills all prototypes with uniform values in [0, 1).
func (g *Grid) InitRandom(rng *rand.Rand) {
	for i := range g.protos {
		g.protos[i] = rng.Float64()
	}
}

// InitSamples seeds each prototype with a randomly drawn sample.
func (g *Grid) InitSamples(samples [][]float64, rng *rand.Rand) {
	for i := 0; i < g.Len(); i++ {
		copy(g.At(i), samples[rng.Intn(len(samples))])
	}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Width returns the prototype vector width.
func (g *Grid) Width() int { return g.width }

// Torus reports whether grid distances wrap around the edges.
func (g *Grid) Torus() bool { return g.torus }

// Len returns the number of units.
func (g *Grid) Len() int { return g.rows * g.cols }

// Index returns the unit index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Coords returns (row, col) for a unit index.
func (g *Grid) Coords(index int) (row, col int) {
	return index / g.cols, index % g.cols
}

// At returns the prototype vector of the unit at index. The slice
// aliases grid storage; each unit owns only its own prototype.
func (g *Grid) At(index int) []float64 {
	return g.protos[index*g.width : (index+1)*g.width]
}

// UnitDistance returns the precomputed grid distance between two units.
func (g *Grid) UnitDistance(i, j int) float64 {
	return g.dists[i*g.rows*g.cols+j]
}

// FindBMU returns the unit index with the minimum distance to the
// sample, scanning all units exhaustively. Ties resolve to the unit
// with the smallest row, then the smallest column, because the
// row-major scan keeps the first minimum.
func (g *Grid) FindBMU(sample []float64, metric Metric) int {
	min := math.MaxFloat64
	idx := 0
	for i := 0; i < g.Len(); i++ {
		if d := metric(sample, g.At(i)); d < min {
			min = d
			idx = i
		}
	}
	return idx
}

// Tally counts a label hit on a unit, for downstream visualization only.
func (g *Grid) Tally(index int, label string) {
	if g.tallies[index] == nil {
		g.tallies[index] = make(map[string]int)
	}
	g.tallies[index][label]++
}

// Majority returns the most frequent label tallied on a unit, or ""
// if none. Count ties resolve to the lexicographically smallest label.
func (g *Grid) Majority(index int) (o string) {
	var best int
	for label, count := range g.tallies[index] {
		if count > best || (count == best && (o == "" || label < o)) {
			best = count
			o = label
		}
	}
	return
}

// Means returns the per-component mean over all prototypes.
func (g *Grid) Means() []float64 {
	means := make([]float64, g.width)
	for i := 0; i < g.Len(); i++ {
		p := g.At(i)
		for c, v := range p {
			means[c] += v
		}
	}
	n := float64(g.Len())
	for c := range means {
		means[c] /= n
	}
	return means
}
