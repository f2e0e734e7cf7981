package viz_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neurlang/som/datasets"
	"github.com/neurlang/som/grid"
	"github.com/neurlang/som/kernel"
	"github.com/neurlang/som/layer"
	"github.com/neurlang/som/model"
	"github.com/neurlang/som/schedule"
	"github.com/neurlang/som/trainer"
	"github.com/neurlang/som/viz"
)

func trained(t *testing.T) (*model.Model, *datasets.Table, *grid.Snapshot) {
	t.Helper()
	tab := datasets.NewTable()
	if err := tab.AddNumeric("x", []float64{0, 1, 10, 11}); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddCategorical("c", []string{"a", "a", "b", "b"}); err != nil {
		t.Fatal(err)
	}
	tr, err := trainer.New(trainer.Config{
		Rows: 2, Cols: 3,
		Layers: []*layer.Layer{
			layer.Cont("x", []string{"x"}, 1, layer.Gauss),
			layer.Cat("c", "c", 1),
		},
		Alpha:         schedule.Lin(0.5, 0.01),
		Radius:        schedule.Lin(1, 0.1),
		Kernel:        kernel.Gaussian{},
		Epochs:        2,
		Seed:          9,
		SampleInit:    true,
		LabelColumn:   "c",
		SnapshotEvery: 8,
	}, tab)
	if err != nil {
		t.Fatal(err)
	}
	var snap *grid.Snapshot
	tr.OnSnapshot(func(s *grid.Snapshot) { snap = s })
	if err := tr.Train(context.Background()); err != nil {
		t.Fatal(err)
	}
	m, err := tr.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if snap == nil {
		t.Fatal("no snapshot received")
	}
	return m, tab, snap
}

func TestWriteUnits(t *testing.T) {
	m, _, _ := trained(t)
	var buf bytes.Buffer
	if err := viz.WriteUnits(&buf, m); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+m.Len() {
		t.Fatalf("got %d lines, want %d", len(lines), 1+m.Len())
	}
	if lines[0] != "index,row,col,x,c" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,0,0,") {
		t.Errorf("first unit = %q", lines[1])
	}
}

func TestWriteNearest(t *testing.T) {
	m, tab, _ := trained(t)
	var buf bytes.Buffer
	if err := viz.WriteNearest(&buf, m, tab); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+tab.Len() {
		t.Fatalf("got %d lines, want %d", len(lines), 1+tab.Len())
	}
}

func TestHeatmapPNG(t *testing.T) {
	_, _, snap := trained(t)
	path := filepath.Join(t.TempDir(), "plane.png")
	if err := viz.HeatmapPNG(path, snap, 0, "x"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty heatmap file")
	}
	if err := viz.HeatmapPNG(path, snap, 99, "oops"); err == nil {
		t.Error("out-of-range component should fail")
	}
}

func TestUMatrixPNG(t *testing.T) {
	_, _, snap := trained(t)
	path := filepath.Join(t.TempDir(), "umatrix.png")
	if err := viz.UMatrixPNG(path, snap, "u-matrix"); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("u-matrix not written: %v", err)
	}
}

func TestClassMapPNG(t *testing.T) {
	_, _, snap := trained(t)
	path := filepath.Join(t.TempDir(), "classes.png")
	if err := viz.ClassMapPNG(path, snap, 8); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("class map not written: %v", err)
	}
}
