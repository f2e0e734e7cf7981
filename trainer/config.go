package trainer

import "fmt"

import "github.com/neurlang/som/kernel"
import "github.com/neurlang/som/layer"
import "github.com/neurlang/som/schedule"

// Config holds everything one training run needs. All fields are
// validated eagerly by New; training never starts on a partially
// valid configuration.
type Config struct {
	// Rows and Cols give the grid shape.
	Rows int
	Cols int
	// Torus makes grid distances wrap around the edges.
	Torus bool

	// Layers are the unfitted data layers, in configuration order.
	// Weights are normalized to sum to 1 at setup.
	Layers []*layer.Layer

	// Alpha is the learning-rate schedule, Radius the neighborhood
	// radius schedule. Decay optionally pulls prototypes toward the
	// component means after every full pass; nil disables it.
	Alpha  *schedule.Schedule
	Radius *schedule.Schedule
	Decay  *schedule.Schedule

	// Kernel is the neighborhood function.
	Kernel kernel.Kernel

	// Epochs runs sequential passes over the dataset; Episodes runs
	// single seeded-random draws. Exactly one must be positive. The
	// training horizon is Epochs×len(dataset) or Episodes steps.
	Epochs   int
	Episodes int

	// Seed initializes the run's random number generator. Identical
	// seed, configuration and dataset reproduce the grid bit for bit.
	Seed int64

	// SampleInit seeds prototypes with drawn dataset rows instead of
	// uniform random values.
	SampleInit bool

	// LabelColumn optionally names a categorical column tallied on
	// each step's best matching unit, for visualization.
	LabelColumn string

	// SnapshotEvery emits a read-only grid snapshot to the snapshot
	// callback every so many steps. 0 disables snapshots.
	SnapshotEvery int

	// Workers bounds the per-unit update goroutines. 0 uses the
	// detected logical core count.
	Workers int
}

// ConfigError is a terminal configuration failure, reported before any
// training step executes.
type ConfigError struct {
	Param string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %q: %v", e.Param, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DataError is a terminal dataset failure: missing columns, shape
// mismatches against the declared layers, or an empty dataset.
type DataError struct {
	Row int // -1 when no row applies
	Err error
}

func (e *DataError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid data: %v", e.Err)
	}
	return fmt.Sprintf("invalid data at row %d: %v", e.Row, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

func configErrf(param, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Param: param, Err: fmt.Errorf(format, args...)}
}

func (cfg *Config) validate() error {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return configErrf("size", "grid dimensions must be positive, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if len(cfg.Layers) == 0 {
		return configErrf("layers", "at least one layer required")
	}
	for _, l := range cfg.Layers {
		if l.Weight() < 0 {
			return configErrf("weights", "layer %q has negative weight %v", l.Name(), l.Weight())
		}
	}
	if cfg.Alpha == nil {
		return configErrf("alpha", "schedule required")
	}
	if cfg.Radius == nil {
		return configErrf("radius", "schedule required")
	}
	if cfg.Kernel == nil {
		return configErrf("neigh", "neighborhood kernel required")
	}
	if (cfg.Epochs > 0) == (cfg.Episodes > 0) {
		return configErrf("epochs", "exactly one of epochs and episodes must be positive, got %d and %d", cfg.Epochs, cfg.Episodes)
	}
	if cfg.Epochs < 0 || cfg.Episodes < 0 {
		return configErrf("epochs", "negative horizon")
	}
	if cfg.SnapshotEvery < 0 {
		return configErrf("snapshot", "negative snapshot interval %d", cfg.SnapshotEvery)
	}
	return nil
}
