// Package trainer drives the Super-SOM training loop: it owns the grid
// and the parameter schedules for the duration of one run, fits the
// data layers, and applies the Kohonen update step over a fixed
// horizon of steps.
package trainer

import "context"
import "fmt"
import "math"
import "math/rand"

import "github.com/google/uuid"
import "github.com/pkg/errors"

import "github.com/neurlang/som/datasets"
import "github.com/neurlang/som/grid"
import "github.com/neurlang/som/layer"
import "github.com/neurlang/som/model"
import "github.com/neurlang/som/parallel"

// State is the trainer's lifecycle phase.
type State byte

const (
	// Initialized means the configuration is validated, layers are
	// fitted and the grid is seeded, but no step has run.
	Initialized State = iota
	// Training means the step loop is executing.
	Training
	// Finished means the step budget is exhausted or the run was
	// cancelled; the grid holds the last fully applied state.
	Finished
	// Finalized means the grid ownership moved to a model; the
	// trainer cannot be reused.
	Finalized
)

func (s State) String() string {
	switch s {
	case Training:
		return "training"
	case Finished:
		return "finished"
	case Finalized:
		return "finalized"
	}
	return "initialized"
}

// Trainer executes one training run. It exclusively owns its grid and
// schedules; a new run needs a new Trainer.
type Trainer struct {
	cfg     Config
	layers  []*layer.Layer
	grid    *grid.Grid
	samples [][]float64
	labels  []string
	rng     *rand.Rand
	run     uuid.UUID
	state   State
	horizon int
	workers int

	onSnapshot func(*grid.Snapshot)
}

// New validates the configuration, fits the layers over the full
// dataset, encodes all rows and seeds the grid. Any configuration or
// data-shape problem is reported here, never mid-loop.
func New(cfg Config, tab *datasets.Table) (t *Trainer, err error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if tab == nil || tab.Len() == 0 {
		return nil, &DataError{Row: -1, Err: errors.New("empty dataset")}
	}

	t = &Trainer{
		cfg:     cfg,
		layers:  cfg.Layers,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		run:     uuid.New(),
		workers: cfg.Workers,
	}
	if t.workers <= 0 {
		t.workers = parallel.Workers()
	}
	if cfg.Epochs > 0 {
		t.horizon = cfg.Epochs * tab.Len()
	} else {
		t.horizon = cfg.Episodes
	}

	layer.NormalizeWeights(t.layers)
	for _, l := range t.layers {
		if err := l.Fit(tab); err != nil {
			return nil, &DataError{Row: -1, Err: err}
		}
	}
	width := layer.TotalWidth(t.layers)
	if width == 0 {
		return nil, &DataError{Row: -1, Err: errors.New("all layers encode to zero width")}
	}

	// encode the whole dataset once, before training
	t.samples = make([][]float64, tab.Len())
	for i := range t.samples {
		row := tab.Row(i)
		sample := make([]float64, width)
		start := 0
		for _, l := range t.layers {
			end := start + l.Width()
			if err := l.Encode(row.Numeric, row.Categorical, i, sample[start:end]); err != nil {
				return nil, &DataError{Row: i, Err: err}
			}
			start = end
		}
		t.samples[i] = sample
	}

	if cfg.LabelColumn != "" {
		col, ok := tab.CategoricalColumn(cfg.LabelColumn)
		if !ok {
			return nil, &DataError{Row: -1, Err: errors.Errorf("label column %q not found", cfg.LabelColumn)}
		}
		t.labels = col
	}

	t.grid, err = grid.New(cfg.Rows, cfg.Cols, width, cfg.Torus)
	if err != nil {
		return nil, &ConfigError{Param: "size", Err: err}
	}
	if cfg.SampleInit {
		t.grid.InitSamples(t.samples, t.rng)
		t.scrubPrototypes()
	} else {
		t.grid.InitRandom(t.rng)
	}
	return t, nil
}

// scrubPrototypes replaces no-data components copied from seeding
// samples; a NaN prototype component would never recover during
// training.
func (t *Trainer) scrubPrototypes() {
	for i := 0; i < t.grid.Len(); i++ {
		p := t.grid.At(i)
		for c, v := range p {
			if math.IsNaN(v) {
				p[c] = t.rng.Float64()
			}
		}
	}
}

// ID returns the run's identifier.
func (t *Trainer) ID() uuid.UUID { return t.run }

// State returns the trainer's lifecycle phase.
func (t *Trainer) State() State { return t.state }

// Horizon returns the total step count of the run.
func (t *Trainer) Horizon() int { return t.horizon }

// OnSnapshot registers the snapshot consumer called every
// SnapshotEvery steps with a read-only grid copy. Must be set before
// Train.
func (t *Trainer) OnSnapshot(fn func(*grid.Snapshot)) {
	t.onSnapshot = fn
}

// Train executes the full step budget. Cancellation is checked
// between steps only; on cancellation the grid remains in the last
// fully applied state and can still be finalized. Train can run at
// most once per Trainer.
func (t *Trainer) Train(ctx context.Context) error {
	if t.state != Initialized {
		return errors.Errorf("trainer is %v, cannot train again", t.state)
	}
	t.state = Training

	n := len(t.samples)
	metric := func(sample, prototype []float64) float64 {
		return layer.Distance(t.layers, sample, prototype)
	}

	for step := 0; step < t.horizon; step++ {
		if err := ctx.Err(); err != nil {
			t.state = Finished
			return err
		}

		var idx int
		if t.cfg.Episodes > 0 {
			idx = t.rng.Intn(n)
		} else {
			idx = step % n
		}
		sample := t.samples[idx]

		progress := float64(step) / float64(t.horizon)
		alpha := t.cfg.Alpha.At(progress)
		radius := t.cfg.Radius.At(progress)

		bmu := t.grid.FindBMU(sample, metric)
		if t.labels != nil && t.labels[idx] != "" {
			t.grid.Tally(bmu, t.labels[idx])
		}

		// Each unit owns and writes only its own prototype, so the
		// update partitions over the workers without locking.
		parallel.ForEach(t.grid.Len(), t.workers, func(i int) {
			infl := t.cfg.Kernel.Influence(t.grid.UnitDistance(bmu, i), radius)
			if infl <= 0 {
				return
			}
			rate := alpha * infl
			p := t.grid.At(i)
			for c, sv := range sample {
				if math.IsNaN(sv) {
					continue // no-data dimension
				}
				p[c] += rate * (sv - p[c])
			}
		})

		if t.cfg.Decay != nil && (step+1)%n == 0 {
			t.decay(t.cfg.Decay.At(progress))
		}

		if t.onSnapshot != nil && t.cfg.SnapshotEvery > 0 && (step+1)%t.cfg.SnapshotEvery == 0 {
			t.onSnapshot(t.grid.Snapshot(t.run, step+1))
		}
	}

	t.state = Finished
	return nil
}

// decay pulls every prototype component toward the component mean,
// once per full pass over the dataset.
func (t *Trainer) decay(d float64) {
	means := t.grid.Means()
	parallel.ForEach(t.grid.Len(), t.workers, func(i int) {
		p := t.grid.At(i)
		for c, v := range p {
			p[c] = v - d*(v-means[c])
		}
	})
}

// Finalize moves grid ownership into an immutable model. The trainer
// keeps no reference and cannot be trained or finalized again. A
// cancelled run finalizes to a partially trained model.
func (t *Trainer) Finalize() (*model.Model, error) {
	if t.state != Finished {
		return nil, errors.Errorf("trainer is %v, need finished training to finalize", t.state)
	}
	t.state = Finalized
	info := model.Info{
		Alpha:    t.cfg.Alpha.String(),
		Radius:   t.cfg.Radius.String(),
		Kernel:   fmt.Sprint(t.cfg.Kernel),
		Epochs:   t.cfg.Epochs,
		Episodes: t.cfg.Episodes,
		Seed:     t.cfg.Seed,
	}
	if t.cfg.Decay != nil {
		info.Decay = t.cfg.Decay.String()
	}
	m := model.New(t.run, t.grid, t.layers, info)
	t.grid = nil
	t.samples = nil
	return m, nil
}
