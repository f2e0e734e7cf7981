package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/neurlang/som/datasets"
	"github.com/neurlang/som/model"
	"github.com/neurlang/som/viz"
)

func main() {
	modelPath := flag.String("model", "som.som", "trained model file")
	file := flag.String("file", "", "CSV file with rows to map onto the grid")
	noData := flag.String("no-data", "NA", "missing value token")
	delim := flag.String("delim", ",", "CSV delimiter")
	out := flag.String("out", "", "output CSV path, empty writes to stdout")
	flag.Parse()

	m, err := model.ReadCompressedFromFile(*modelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "no -file given")
		os.Exit(1)
	}
	info := m.Info()
	fmt.Fprintf(os.Stderr, "model %s: %dx%d grid, alpha %s, radius %s, kernel %s\n",
		m.ID(), m.Rows(), m.Cols(), info.Alpha, info.Radius, info.Kernel)

	var categ []string
	for _, l := range m.Layers() {
		if l.Categorical() {
			categ = append(categ, l.Columns()...)
		}
	}
	d := *delim
	if d == "" {
		d = ","
	}
	tab, err := datasets.ReadCSVFile(*file, datasets.CSVOptions{
		Delimiter:   rune(d[0]),
		NoData:      *noData,
		Categorical: categ,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	w := os.Stdout
	if *out != "" {
		w, err = os.Create(*out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer w.Close()
	}
	if err := viz.WriteNearest(w, m, tab); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
