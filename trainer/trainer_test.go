package trainer

import (
	"context"
	"math"
	"testing"

	"github.com/neurlang/som/datasets"
	"github.com/neurlang/som/grid"
	"github.com/neurlang/som/kernel"
	"github.com/neurlang/som/layer"
	"github.com/neurlang/som/schedule"
)

func twoClusterTable(t *testing.T) *datasets.Table {
	t.Helper()
	tab := datasets.NewTable()
	if err := tab.AddNumeric("x", []float64{0, 1, 10, 11}); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddCategorical("c", []string{"a", "a", "b", "b"}); err != nil {
		t.Fatal(err)
	}
	return tab
}

func twoClusterConfig() Config {
	return Config{
		Rows: 2, Cols: 2,
		Layers: []*layer.Layer{
			layer.Cont("x", []string{"x"}, 1, layer.Gauss),
			layer.Cat("c", "c", 1),
		},
		Alpha:      schedule.Lin(0.5, 0.01),
		Radius:     schedule.Lin(1, 0.1),
		Kernel:     kernel.Gaussian{},
		Epochs:     1,
		Seed:       42,
		SampleInit: true,
	}
}

func TestValidation(t *testing.T) {
	tab := twoClusterTable(t)
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"size", func(c *Config) { c.Rows = 0 }},
		{"layers", func(c *Config) { c.Layers = nil }},
		{"weights", func(c *Config) { c.Layers[0] = layer.Cont("x", []string{"x"}, -1, layer.None) }},
		{"alpha", func(c *Config) { c.Alpha = nil }},
		{"radius", func(c *Config) { c.Radius = nil }},
		{"neigh", func(c *Config) { c.Kernel = nil }},
		{"epochs", func(c *Config) { c.Epochs = 0 }},
		{"epochs", func(c *Config) { c.Episodes = 3 }},
		{"snapshot", func(c *Config) { c.SnapshotEvery = -1 }},
	}
	for _, tc := range cases {
		cfg := twoClusterConfig()
		tc.mutate(&cfg)
		_, err := New(cfg, tab)
		ce, ok := err.(*ConfigError)
		if !ok {
			t.Errorf("%s: err = %v, want *ConfigError", tc.name, err)
			continue
		}
		if ce.Param != tc.name {
			t.Errorf("param = %q, want %q", ce.Param, tc.name)
		}
	}
}

func TestDataErrors(t *testing.T) {
	cfg := twoClusterConfig()
	if _, err := New(cfg, datasets.NewTable()); err == nil {
		t.Error("empty table should fail")
	} else if _, ok := err.(*DataError); !ok {
		t.Errorf("err = %v, want *DataError", err)
	}

	// declared layer column missing from the table
	tab := datasets.NewTable()
	if err := tab.AddNumeric("y", []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	cfg = twoClusterConfig()
	if _, err := New(cfg, tab); err == nil {
		t.Error("missing column should fail")
	} else if _, ok := err.(*DataError); !ok {
		t.Errorf("err = %v, want *DataError", err)
	}

	// missing label column
	cfg = twoClusterConfig()
	cfg.LabelColumn = "nope"
	if _, err := New(cfg, twoClusterTable(t)); err == nil {
		t.Error("missing label column should fail")
	}
}

// identical seed, config and dataset give bit-identical grids,
// independent of the worker count
func TestDeterminism(t *testing.T) {
	run := func(workers int) []float64 {
		cfg := twoClusterConfig()
		cfg.Episodes = 64
		cfg.Epochs = 0
		cfg.Workers = workers
		tr, err := New(cfg, twoClusterTable(t))
		if err != nil {
			t.Fatal(err)
		}
		if err := tr.Train(context.Background()); err != nil {
			t.Fatal(err)
		}
		m, err := tr.Finalize()
		if err != nil {
			t.Fatal(err)
		}
		var protos []float64
		for i := 0; i < m.Len(); i++ {
			protos = append(protos, m.Prototype(i)...)
		}
		return protos
	}
	a, b, c := run(1), run(1), run(4)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at component %d: %v != %v", i, a[i], b[i])
		}
		if a[i] != c[i] {
			t.Fatalf("worker count changes result at component %d: %v != %v", i, a[i], c[i])
		}
	}
}

// one update moves the BMU prototype strictly closer to the sample
func TestMonotoneLocalConvergence(t *testing.T) {
	tab := datasets.NewTable()
	if err := tab.AddNumeric("x", []float64{1}); err != nil {
		t.Fatal(err)
	}
	for _, alpha := range []float64{0.01, 0.5, 1.0} {
		cfg := Config{
			Rows: 1, Cols: 1,
			Layers: []*layer.Layer{layer.Cont("x", []string{"x"}, 1, layer.None)},
			Alpha:  schedule.Lin(alpha, alpha),
			Radius: schedule.Lin(0, 0),
			Kernel: kernel.Gaussian{},
			Epochs: 1,
			Seed:   7,
		}
		tr, err := New(cfg, tab)
		if err != nil {
			t.Fatal(err)
		}
		before := tr.grid.At(0)[0]
		if err := tr.Train(context.Background()); err != nil {
			t.Fatal(err)
		}
		after := tr.grid.At(0)[0]
		if math.Abs(1-after) >= math.Abs(1-before) {
			t.Errorf("alpha %v: distance did not decrease: |1-%v| vs |1-%v|", alpha, after, before)
		}
		want := before + alpha*(1-before)
		if after != want {
			t.Errorf("alpha %v: update = %v, want %v", alpha, after, want)
		}
	}
}

// two well-separated clusters end up on disjoint units
func TestEndToEnd(t *testing.T) {
	cfg := twoClusterConfig()
	cfg.LabelColumn = "c"
	tab := twoClusterTable(t)
	tr, err := New(cfg, tab)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Train(context.Background()); err != nil {
		t.Fatal(err)
	}
	m, err := tr.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	units := make([][2]int, tab.Len())
	for i := range units {
		r, c, err := m.Query(tab.Row(i))
		if err != nil {
			t.Fatal(err)
		}
		units[i] = [2]int{r, c}
	}
	// rows 0 and 1 land on the same or an adjacent unit
	if dr, dc := units[0][0]-units[1][0], units[0][1]-units[1][1]; dr < -1 || dr > 1 || dc < -1 || dc > 1 {
		t.Errorf("rows 0 and 1 are not adjacent: %v vs %v", units[0], units[1])
	}
	// disjoint from the units matched by rows 2 and 3
	for _, a := range units[:2] {
		for _, b := range units[2:] {
			if a == b {
				t.Errorf("clusters overlap on unit %v: %v", a, units)
			}
		}
	}
}

// cancellation between steps leaves a usable, finalizable grid
func TestCancellation(t *testing.T) {
	cfg := twoClusterConfig()
	cfg.Epochs = 1000
	tr, err := New(cfg, twoClusterTable(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.Train(ctx); err != context.Canceled {
		t.Errorf("Train = %v, want context.Canceled", err)
	}
	if tr.State() != Finished {
		t.Errorf("state = %v, want finished", tr.State())
	}
	m, err := tr.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Query(twoClusterTable(t).Row(0)); err != nil {
		t.Errorf("partially trained model not queryable: %v", err)
	}
}

// a trainer runs once and finalizes once
func TestLifecycle(t *testing.T) {
	tr, err := New(twoClusterConfig(), twoClusterTable(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Finalize(); err == nil {
		t.Error("finalize before training should fail")
	}
	if err := tr.Train(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := tr.Train(context.Background()); err == nil {
		t.Error("second Train should fail")
	}
	if _, err := tr.Finalize(); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Finalize(); err == nil {
		t.Error("second Finalize should fail")
	}
}

// snapshots arrive at the configured interval and share no state
func TestSnapshots(t *testing.T) {
	cfg := twoClusterConfig()
	cfg.Epochs = 2 // horizon 8
	cfg.SnapshotEvery = 4
	tr, err := New(cfg, twoClusterTable(t))
	if err != nil {
		t.Fatal(err)
	}
	var steps []int
	var snaps []*grid.Snapshot
	tr.OnSnapshot(func(s *grid.Snapshot) {
		steps = append(steps, s.Step)
		snaps = append(snaps, s)
		s.Protos[0] = 12345 // must not leak into training
	})
	if err := tr.Train(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(steps) != 2 || steps[0] != 4 || steps[1] != 8 {
		t.Errorf("snapshot steps = %v, want [4 8]", steps)
	}
	if snaps[1].Protos[0] == 12345 {
		t.Error("snapshots share prototype storage")
	}
	for _, s := range snaps {
		if s.Run != tr.ID() {
			t.Errorf("snapshot run = %v, want %v", s.Run, tr.ID())
		}
	}
}

// full-pass decay with factor 1 collapses all prototypes to the means
func TestDecay(t *testing.T) {
	tab := datasets.NewTable()
	if err := tab.AddNumeric("x", []float64{0, 4}); err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		Rows: 2, Cols: 2,
		Layers: []*layer.Layer{layer.Cont("x", []string{"x"}, 1, layer.None)},
		Alpha:  schedule.Lin(0, 0),
		Radius: schedule.Lin(1, 1),
		Decay:  schedule.Lin(1, 1),
		Kernel: kernel.Gaussian{},
		Epochs: 1,
		Seed:   3,
	}
	tr, err := New(cfg, tab)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Train(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := tr.grid.At(0)[0]
	for i := 1; i < tr.grid.Len(); i++ {
		if tr.grid.At(i)[0] != first {
			t.Errorf("unit %d = %v, want %v", i, tr.grid.At(i)[0], first)
		}
	}
}
