package viz

import "encoding/csv"
import "io"
import "strconv"

import "github.com/pkg/errors"

import "github.com/neurlang/som/datasets"
import "github.com/neurlang/som/model"

// WriteUnits writes one CSV row per grid unit: index, grid coordinates,
// de-normalized numeric prototype values under their column names, and
// the winning class of each categorical layer under the layer name.
func WriteUnits(w io.Writer, m *model.Model) error {
	header := []string{"index", "row", "col"}
	for _, l := range m.Layers() {
		if l.Categorical() {
			header = append(header, l.Name())
		} else {
			header = append(header, l.Columns()...)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "writing units header")
	}
	for i := 0; i < m.Len(); i++ {
		row, col := m.Coords(i)
		record := []string{strconv.Itoa(i), strconv.Itoa(row), strconv.Itoa(col)}
		proto := m.Prototype(i)
		start := 0
		for _, l := range m.Layers() {
			end := start + l.Width()
			segment := proto[start:end]
			if l.Categorical() {
				record = append(record, l.Class(segment))
			} else {
				values := make([]float64, l.Width())
				l.Decode(segment, values)
				for _, v := range values {
					record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
				}
			}
			start = end
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "writing unit %d", i)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteNearest writes one CSV row per dataset row: the row index and
// the grid coordinates of its best matching unit.
func WriteNearest(w io.Writer, m *model.Model, tab *datasets.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"index", "row", "col"}); err != nil {
		return errors.Wrap(err, "writing nearest header")
	}
	for i := 0; i < tab.Len(); i++ {
		row, col, err := m.Query(tab.Row(i))
		if err != nil {
			return errors.Wrapf(err, "mapping row %d", i)
		}
		record := []string{strconv.Itoa(i), strconv.Itoa(row), strconv.Itoa(col)}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "writing row %d", i)
		}
	}
	writer.Flush()
	return writer.Error()
}
