// Package iris embeds a 30-row sample of Fisher's iris measurements,
// used by the demo commands and end-to-end tests.
package iris

import "github.com/neurlang/som/datasets"

var sepalLength = []float64{
	5.1, 4.9, 4.7, 4.6, 5.0, 5.4, 4.6, 5.0, 4.4, 4.9,
	7.0, 6.4, 6.9, 5.5, 6.5, 5.7, 6.3, 4.9, 6.6, 5.2,
	6.3, 5.8, 7.1, 6.3, 6.5, 7.6, 4.9, 7.3, 6.7, 7.2,
}

var sepalWidth = []float64{
	3.5, 3.0, 3.2, 3.1, 3.6, 3.9, 3.4, 3.4, 2.9, 3.1,
	3.2, 3.2, 3.1, 2.3, 2.8, 2.8, 3.3, 2.4, 2.9, 2.7,
	3.3, 2.7, 3.0, 2.9, 3.0, 3.0, 2.5, 2.9, 2.5, 3.6,
}

var petalLength = []float64{
	1.4, 1.4, 1.3, 1.5, 1.4, 1.7, 1.4, 1.5, 1.4, 1.5,
	4.7, 4.5, 4.9, 4.0, 4.6, 4.5, 4.7, 3.3, 4.6, 3.9,
	6.0, 5.1, 5.9, 5.6, 5.8, 6.6, 4.5, 6.3, 5.8, 6.1,
}

var petalWidth = []float64{
	0.2, 0.2, 0.2, 0.2, 0.2, 0.4, 0.3, 0.2, 0.2, 0.1,
	1.4, 1.5, 1.5, 1.3, 1.5, 1.3, 1.6, 1.0, 1.3, 1.4,
	2.5, 1.9, 2.1, 1.8, 2.2, 2.1, 1.7, 1.8, 1.8, 2.5,
}

var species = []string{
	"setosa", "setosa", "setosa", "setosa", "setosa",
	"setosa", "setosa", "setosa", "setosa", "setosa",
	"versicolor", "versicolor", "versicolor", "versicolor", "versicolor",
	"versicolor", "versicolor", "versicolor", "versicolor", "versicolor",
	"virginica", "virginica", "virginica", "virginica", "virginica",
	"virginica", "virginica", "virginica", "virginica", "virginica",
}

// Table returns the iris sample as a fresh dataset table.
func Table() *datasets.Table {
	tab := datasets.NewTable()
	must(tab.AddNumeric("sepal_length", append([]float64(nil), sepalLength...)))
	must(tab.AddNumeric("sepal_width", append([]float64(nil), sepalWidth...)))
	must(tab.AddNumeric("petal_length", append([]float64(nil), petalLength...)))
	must(tab.AddNumeric("petal_width", append([]float64(nil), petalWidth...)))
	must(tab.AddCategorical("species", append([]string(nil), species...)))
	return tab
}

func must(err error) {
	if err != nil {
		panic(err.Error())
	}
}
