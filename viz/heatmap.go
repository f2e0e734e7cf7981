// Package viz renders read-only grid snapshots and finalized models
// for inspection: heatmap frames of prototype planes, class maps and
// CSV exports. It consumes snapshots out of band and never touches
// trainer state.
package viz

import "fmt"

import "gonum.org/v1/plot"
import "gonum.org/v1/plot/palette"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/vg"

import "github.com/neurlang/som/grid"

// plane adapts one prototype component across the grid to a plottable
// surface.
type plane struct {
	snap *grid.Snapshot
	dim  int
}

func (p plane) Dims() (c, r int) { return p.snap.Cols, p.snap.Rows }

func (p plane) Z(c, r int) float64 { return p.snap.At(p.snap.Index(r, c))[p.dim] }

func (p plane) X(c int) float64 { return float64(c) }

func (p plane) Y(r int) float64 { return float64(r) }

// HeatmapPNG renders one prototype component plane of a snapshot as a
// PNG heatmap.
func HeatmapPNG(path string, snap *grid.Snapshot, dim int, title string) error {
	if dim < 0 || dim >= snap.Width {
		return fmt.Errorf("component %d out of range, width is %d", dim, snap.Width)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"
	p.Add(plotter.NewHeatMap(plane{snap: snap, dim: dim}, palette.Heat(12, 255)))
	return p.Save(5*vg.Inch, 5*vg.Inch, path)
}
