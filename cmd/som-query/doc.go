// Package main provides the som-query command. It loads a model
// written by som-train and maps the rows of a CSV file onto the grid,
// printing the best matching unit for every row.
package main
