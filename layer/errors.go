package layer

import "fmt"

// UnknownCategoryError reports a categorical value absent from the
// levels observed when the layer was fitted. Row is negative for
// queries outside a dataset.
type UnknownCategoryError struct {
	Layer string
	Value string
	Row   int
}

func (e *UnknownCategoryError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("layer %q: unknown category %q", e.Layer, e.Value)
	}
	return fmt.Sprintf("layer %q: unknown category %q in row %d", e.Layer, e.Value, e.Row)
}
