package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/neurlang/som/datasets"
	"github.com/neurlang/som/datasets/iris"
	"github.com/neurlang/som/grid"
	"github.com/neurlang/som/kernel"
	"github.com/neurlang/som/layer"
	"github.com/neurlang/som/schedule"
	"github.com/neurlang/som/trainer"
	"github.com/neurlang/som/viz"
)

func main() {
	file := flag.String("file", "", "training data CSV file; empty runs the embedded iris demo")
	rows := flag.Int("rows", 8, "grid rows")
	cols := flag.Int("cols", 8, "grid cols")
	epochs := flag.Int("epochs", 10, "number of sequential passes over the dataset")
	episodes := flag.Int("episodes", 0, "number of random single-sample steps; overrides -epochs")
	layerSpec := flag.String("layers", "", "layer column groups, groups separated by ';', columns by ','")
	categ := flag.String("categ", "", "comma list of categorical columns")
	weights := flag.String("weights", "", "per-layer weights separated by ';', default 1")
	norms := flag.String("norm", "", "per-layer normalizers (none|gauss|unit) separated by ';', default gauss")
	alpha := flag.String("alpha", "0.2,0.01,lin", "learning rate: start,end,curve")
	radius := flag.String("radius", "4,0.7,lin", "neighborhood radius: start,end,curve")
	decay := flag.String("decay", "", "optional weight decay toward the means: start,end,curve")
	neigh := flag.String("neigh", "gauss", "neighborhood kernel (gauss|bubble)")
	labels := flag.String("labels", "", "categorical column tallied per unit for the class map")
	seed := flag.Int64("seed", 1, "random seed")
	torus := flag.Bool("torus", false, "wrap grid distances around the edges")
	sampleInit := flag.Bool("sample-init", true, "seed prototypes from dataset rows")
	snapshot := flag.Int("snapshot", 0, "emit a heatmap frame every so many steps")
	noData := flag.String("no-data", "NA", "missing value token")
	delim := flag.String("delim", ",", "CSV delimiter")
	out := flag.String("out", "som", "output base path")
	workers := flag.Int("workers", 0, "update workers, 0 = all logical cores")
	flag.Parse()

	tab, lays, labelCol, err := loadData(*file, *layerSpec, *categ, *weights, *norms, *labels, *noData, *delim)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	cfg := trainer.Config{
		Rows:          *rows,
		Cols:          *cols,
		Torus:         *torus,
		Layers:        lays,
		Kernel:        nil,
		Epochs:        *epochs,
		Episodes:      *episodes,
		Seed:          *seed,
		SampleInit:    *sampleInit,
		LabelColumn:   labelCol,
		SnapshotEvery: *snapshot,
		Workers:       *workers,
	}
	if *episodes > 0 {
		cfg.Epochs = 0
	}
	if cfg.Alpha, err = parseSchedule(*alpha, "alpha"); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if cfg.Radius, err = parseSchedule(*radius, "radius"); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if *decay != "" {
		if cfg.Decay, err = parseSchedule(*decay, "decay"); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
	if cfg.Kernel, err = kernel.Parse(*neigh); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	t, err := trainer.New(cfg, tab)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if *snapshot > 0 {
		t.OnSnapshot(func(s *grid.Snapshot) {
			fmt.Printf("step %d of %d\n", s.Step, t.Horizon())
			frame := fmt.Sprintf("%s_frame_%06d.png", *out, s.Step)
			if err := viz.HeatmapPNG(frame, s, 0, fmt.Sprintf("step %d", s.Step)); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("training %dx%d map, %d steps, run %s\n", *rows, *cols, t.Horizon(), t.ID())
	if err := t.Train(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "training stopped:", err.Error())
	}

	m, err := t.Finalize()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := m.WriteCompressedToFile(*out + ".som"); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println("model written to", *out+".som")

	if err := writeCSV(*out+"_units.csv", func(f *os.File) error { return viz.WriteUnits(f, m) }); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := writeCSV(*out+"_nearest.csv", func(f *os.File) error { return viz.WriteNearest(f, m, tab) }); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println("unit and nearest-unit tables written")

	if err := viz.UMatrixPNG(*out+"_umatrix.png", m.Snapshot(), "u-matrix"); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Println("u-matrix written to", *out+"_umatrix.png")

	if labelCol != "" {
		if err := viz.ClassMapPNG(*out+"_classes.png", m.Snapshot(), 16); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println("class map written to", *out+"_classes.png")
	}
}

func writeCSV(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// loadData reads the dataset and assembles the layer definitions. With
// no -file it falls back to the embedded iris demo.
func loadData(file, layerSpec, categ, weights, norms, labels, noData, delim string) (*datasets.Table, []*layer.Layer, string, error) {
	if file == "" {
		lays := []*layer.Layer{
			layer.Cont("measurements",
				[]string{"sepal_length", "sepal_width", "petal_length", "petal_width"},
				1, layer.Gauss),
			layer.Cat("species", "species", 0.5),
		}
		return iris.Table(), lays, "species", nil
	}
	if layerSpec == "" {
		return nil, nil, "", fmt.Errorf("-layers is required with -file")
	}

	isCat := make(map[string]bool)
	for _, name := range splitList(categ, ",") {
		isCat[name] = true
	}

	groups := splitList(layerSpec, ";")
	weightList := splitList(weights, ";")
	normList := splitList(norms, ";")
	if len(weightList) > 0 && len(weightList) != len(groups) {
		return nil, nil, "", fmt.Errorf("%d weights for %d layers", len(weightList), len(groups))
	}
	if len(normList) > 0 && len(normList) != len(groups) {
		return nil, nil, "", fmt.Errorf("%d normalizers for %d layers", len(normList), len(groups))
	}

	var lays []*layer.Layer
	var catColumns []string
	for i, group := range groups {
		columns := splitList(group, ",")
		if len(columns) == 0 {
			return nil, nil, "", fmt.Errorf("layer %d is empty", i)
		}
		weight := 1.0
		if len(weightList) > 0 {
			w, err := strconv.ParseFloat(weightList[i], 64)
			if err != nil {
				return nil, nil, "", fmt.Errorf("weight of layer %d: %v", i, err)
			}
			weight = w
		}
		if isCat[columns[0]] {
			if len(columns) != 1 {
				return nil, nil, "", fmt.Errorf("categorical layer %d must have exactly one column", i)
			}
			lays = append(lays, layer.Cat(columns[0], columns[0], weight))
			catColumns = append(catColumns, columns[0])
			continue
		}
		norm := layer.Gauss
		if len(normList) > 0 {
			n, err := layer.ParseNorm(normList[i])
			if err != nil {
				return nil, nil, "", err
			}
			norm = n
		}
		lays = append(lays, layer.Cont(strings.Join(columns, "+"), columns, weight, norm))
	}
	if labels != "" {
		catColumns = append(catColumns, labels)
	}
	if delim == "" {
		delim = ","
	}

	tab, err := datasets.ReadCSVFile(file, datasets.CSVOptions{
		Delimiter:   rune(delim[0]),
		NoData:      noData,
		Categorical: catColumns,
	})
	if err != nil {
		return nil, nil, "", err
	}
	return tab, lays, labels, nil
}

func parseSchedule(str, name string) (*schedule.Schedule, error) {
	parts := splitList(str, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%s must be start,end,curve, got %q", name, str)
	}
	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%s start: %v", name, err)
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%s end: %v", name, err)
	}
	curve, err := schedule.ParseCurve(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}
	return schedule.New(start, end, curve)
}

func splitList(str, sep string) (o []string) {
	for _, part := range strings.Split(str, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			o = append(o, part)
		}
	}
	return
}
