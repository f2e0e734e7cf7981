package layer

import "github.com/pkg/errors"

// Params is the serializable form of a fitted layer, used for model
// persistence.
type Params struct {
	Name        string      `json:"name"`
	Columns     []string    `json:"columns"`
	Weight      float64     `json:"weight"`
	Categorical bool        `json:"categorical"`
	Norm        string      `json:"norm,omitempty"`
	Transforms  []Transform `json:"transforms,omitempty"`
	Levels      []string    `json:"levels,omitempty"`
}

// Params returns the layer's serializable parameters.
func (l *Layer) Params() Params {
	p := Params{
		Name:        l.name,
		Columns:     l.columns,
		Weight:      l.weight,
		Categorical: l.categ,
	}
	if l.categ {
		p.Levels = l.levels
	} else {
		p.Norm = l.norm.String()
		p.Transforms = l.trans
	}
	return p
}

// FromParams reconstructs a fitted layer from its serialized form.
func FromParams(p Params) (*Layer, error) {
	if len(p.Columns) == 0 {
		return nil, errors.Errorf("layer %q: no columns", p.Name)
	}
	if p.Categorical {
		l := Cat(p.Name, p.Columns[0], p.Weight)
		l.levels = p.Levels
		l.index = make(map[string]int, len(p.Levels))
		for i, v := range p.Levels {
			l.index[v] = i
		}
		l.fitted = true
		return l, nil
	}
	norm, err := ParseNorm(p.Norm)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", p.Name)
	}
	if len(p.Transforms) != len(p.Columns) {
		return nil, errors.Errorf("layer %q: %d transforms for %d columns", p.Name, len(p.Transforms), len(p.Columns))
	}
	l := Cont(p.Name, p.Columns, p.Weight, norm)
	l.trans = p.Transforms
	l.fitted = true
	return l, nil
}
