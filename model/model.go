// Package model implements the immutable snapshot of a trained
// Super-SOM: read-only best-match queries and persistence.
package model

import "github.com/google/uuid"

import "github.com/neurlang/som/datasets"
import "github.com/neurlang/som/grid"
import "github.com/neurlang/som/layer"

// Info records the training setup a model was produced with, for
// provenance only; queries never consult it. Schedules are in
// "start,end,curve" form.
type Info struct {
	Alpha    string `json:"alpha"`
	Radius   string `json:"radius"`
	Decay    string `json:"decay,omitempty"`
	Kernel   string `json:"kernel"`
	Epochs   int    `json:"epochs,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
	Seed     int64  `json:"seed"`
}

// Model is a frozen trained map. It owns a private copy of the grid
// state; queries never mutate it.
type Model struct {
	id     uuid.UUID
	rows   int
	cols   int
	width  int
	protos []float64
	labels []string
	layers []*layer.Layer
	info   Info
}

// New freezes a trained grid and its fitted layers into a model.
// Called by the trainer at finalize; the trainer hands over grid
// ownership and keeps no reference.
func New(id uuid.UUID, g *grid.Grid, layers []*layer.Layer, info Info) *Model {
	snap := g.Snapshot(id, -1)
	return &Model{
		id:     id,
		rows:   snap.Rows,
		cols:   snap.Cols,
		width:  snap.Width,
		protos: snap.Protos,
		labels: snap.Labels,
		layers: layers,
		info:   info,
	}
}

// ID returns the identifier assigned at finalize.
func (m *Model) ID() uuid.UUID { return m.id }

// Rows returns the grid row count.
func (m *Model) Rows() int { return m.rows }

// Cols returns the grid column count.
func (m *Model) Cols() int { return m.cols }

// Width returns the prototype vector width.
func (m *Model) Width() int { return m.width }

// Len returns the number of units.
func (m *Model) Len() int { return m.rows * m.cols }

// Layers returns the fitted layer metadata.
func (m *Model) Layers() []*layer.Layer { return m.layers }

// Info returns the recorded training setup.
func (m *Model) Info() Info { return m.info }

// Prototype returns a copy of the prototype vector at a unit index.
func (m *Model) Prototype(index int) []float64 {
	o := make([]float64, m.width)
	copy(o, m.protos[index*m.width:(index+1)*m.width])
	return o
}

// Label returns the majority label tallied on a unit during training,
// or "".
func (m *Model) Label(index int) string { return m.labels[index] }

// Coords returns (row, col) for a unit index.
func (m *Model) Coords(index int) (row, col int) {
	return index / m.cols, index % m.cols
}

// Snapshot returns the frozen grid state as a read-only snapshot, for
// rendering a finalized model.
func (m *Model) Snapshot() *grid.Snapshot {
	s := &grid.Snapshot{
		Run:    m.id,
		Step:   -1,
		Rows:   m.rows,
		Cols:   m.cols,
		Width:  m.width,
		Protos: make([]float64, len(m.protos)),
		Labels: make([]string, len(m.labels)),
	}
	copy(s.Protos, m.protos)
	copy(s.Labels, m.labels)
	return s
}

// Query encodes a raw row through the fitted layers and returns the
// grid coordinates of its best matching unit. A category absent at
// fit time returns a *layer.UnknownCategoryError and leaves the model
// untouched.
func (m *Model) Query(r datasets.Row) (row, col int, err error) {
	sample := make([]float64, m.width)
	start := 0
	for _, l := range m.layers {
		end := start + l.Width()
		if err := l.Encode(r.Numeric, r.Categorical, -1, sample[start:end]); err != nil {
			return 0, 0, err
		}
		start = end
	}
	idx := m.QuerySample(sample)
	row, col = m.Coords(idx)
	return row, col, nil
}

// QuerySample returns the unit index best matching an already encoded
// sample vector, with the same exhaustive scan and tie-break as
// training: the first minimum in row-major order wins.
func (m *Model) QuerySample(sample []float64) int {
	min := -1.0
	idx := 0
	for i := 0; i < m.Len(); i++ {
		p := m.protos[i*m.width : (i+1)*m.width]
		if d := layer.Distance(m.layers, sample, p); min < 0 || d < min {
			min = d
			idx = i
		}
	}
	return idx
}
