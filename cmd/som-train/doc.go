// Package main provides the som-train command for fitting a
// self-organizing map to a CSV dataset. It accepts multiple weighted
// layers of numeric and categorical columns, trains over epochs or
// random episodes, and writes the finished model next to unit and
// nearest-unit tables, a u-matrix and, with -labels, a class map, plus
// optional heatmap frames during training.
package main
