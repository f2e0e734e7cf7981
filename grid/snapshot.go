package grid

import "github.com/google/uuid"

// Snapshot is a read-only copy of the grid state, handed to
// out-of-band consumers such as frame exporters. It shares no storage
// with the live grid.
type Snapshot struct {
	Run    uuid.UUID
	Step   int
	Rows   int
	Cols   int
	Width  int
	Protos []float64 // row-major copy
	Labels []string  // majority label per unit, "" where untallied
}

// Snapshot copies the grid state at the given training step.
func (g *Grid) Snapshot(run uuid.UUID, step int) *Snapshot {
	s := &Snapshot{
		Run:    run,
		Step:   step,
		Rows:   g.rows,
		Cols:   g.cols,
		Width:  g.width,
		Protos: make([]float64, len(g.protos)),
		Labels: make([]string, g.Len()),
	}
	copy(s.Protos, g.protos)
	for i := 0; i < g.Len(); i++ {
		s.Labels[i] = g.Majority(i)
	}
	return s
}

// At returns the copied prototype vector of the unit at index.
func (s *Snapshot) At(index int) []float64 {
	return s.Protos[index*s.Width : (index+1)*s.Width]
}

// Index returns the unit index for (row, col).
func (s *Snapshot) Index(row, col int) int { return row*s.Cols + col }
