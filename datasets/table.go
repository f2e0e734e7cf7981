// Package datasets implements the in-memory tabular dataset consumed
// by the SOM trainer: ordered rows of named columns, each column
// tagged numeric or categorical.
package datasets

import "math"

import "github.com/pkg/errors"

// Table is a column-oriented dataset. Numeric cells use NaN for
// missing values, categorical cells use "".
type Table struct {
	n     int
	order []string
	num   map[string][]float64
	cat   map[string][]string
}

// Row is one raw input row, keyed by column name.
type Row struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		num: make(map[string][]float64),
		cat: make(map[string][]string),
	}
}

// AddNumeric adds a numeric column. All columns must have equal length.
func (t *Table) AddNumeric(name string, values []float64) error {
	if err := t.checkColumn(name, len(values)); err != nil {
		return err
	}
	t.num[name] = values
	t.order = append(t.order, name)
	return nil
}

// AddCategorical adds a categorical column.
func (t *Table) AddCategorical(name string, values []string) error {
	if err := t.checkColumn(name, len(values)); err != nil {
		return err
	}
	t.cat[name] = values
	t.order = append(t.order, name)
	return nil
}

func (t *Table) checkColumn(name string, length int) error {
	if _, ok := t.num[name]; ok {
		return errors.Errorf("duplicate column %q", name)
	}
	if _, ok := t.cat[name]; ok {
		return errors.Errorf("duplicate column %q", name)
	}
	if len(t.order) > 0 && length != t.n {
		return errors.Errorf("column %q has %d rows, table has %d", name, length, t.n)
	}
	t.n = length
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.n }

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string { return t.order }

// NumericColumn returns the named numeric column.
func (t *Table) NumericColumn(name string) ([]float64, bool) {
	c, ok := t.num[name]
	return c, ok
}

// CategoricalColumn returns the named categorical column.
func (t *Table) CategoricalColumn(name string) ([]string, bool) {
	c, ok := t.cat[name]
	return c, ok
}

// Row assembles the i-th raw row.
func (t *Table) Row(i int) Row {
	r := Row{
		Numeric:     make(map[string]float64, len(t.num)),
		Categorical: make(map[string]string, len(t.cat)),
	}
	for name, col := range t.num {
		if !math.IsNaN(col[i]) {
			r.Numeric[name] = col[i]
		}
	}
	for name, col := range t.cat {
		if col[i] != "" {
			r.Categorical[name] = col[i]
		}
	}
	return r
}
