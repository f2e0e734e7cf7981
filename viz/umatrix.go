package viz

import "math"

import "gonum.org/v1/plot"
import "gonum.org/v1/plot/palette"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/vg"

import "github.com/neurlang/som/grid"

// umatrix holds the mean prototype distance of each unit to its direct
// grid neighbors. Cluster borders show up as ridges.
type umatrix struct {
	rows, cols int
	values     []float64
}

func newUMatrix(snap *grid.Snapshot) umatrix {
	u := umatrix{
		rows:   snap.Rows,
		cols:   snap.Cols,
		values: make([]float64, snap.Rows*snap.Cols),
	}
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			p := snap.At(snap.Index(row, col))
			var sum float64
			var n int
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nr, nc := row+d[0], col+d[1]
				if nr < 0 || nr >= snap.Rows || nc < 0 || nc >= snap.Cols {
					continue
				}
				sum += protoDistance(p, snap.At(snap.Index(nr, nc)))
				n++
			}
			if n > 0 {
				u.values[snap.Index(row, col)] = sum / float64(n)
			}
		}
	}
	return u
}

// protoDistance is the Euclidean distance between two prototypes.
func protoDistance(a, b []float64) float64 {
	var sum float64
	for i, av := range a {
		d := av - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (u umatrix) Dims() (c, r int) { return u.cols, u.rows }

func (u umatrix) Z(c, r int) float64 { return u.values[r*u.cols+c] }

func (u umatrix) X(c int) float64 { return float64(c) }

func (u umatrix) Y(r int) float64 { return float64(r) }

// UMatrixPNG renders the unified distance matrix of a snapshot as a
// PNG heatmap.
func UMatrixPNG(path string, snap *grid.Snapshot, title string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"
	p.Add(plotter.NewHeatMap(newUMatrix(snap), palette.Heat(12, 255)))
	return p.Save(5*vg.Inch, 5*vg.Inch, path)
}
