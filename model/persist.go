package model

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

import "github.com/google/uuid"
import "github.com/pkg/errors"

import "github.com/neurlang/som/layer"

type modelJSON struct {
	ID     uuid.UUID      `json:"id"`
	Rows   int            `json:"rows"`
	Cols   int            `json:"cols"`
	Width  int            `json:"width"`
	Protos []float64      `json:"prototypes"`
	Labels []string       `json:"labels,omitempty"`
	Layers []layer.Params `json:"layers"`
	Info   Info           `json:"training"`
}

// WriteCompressed writes the model as lzw-compressed JSON.
func (m *Model) WriteCompressed(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	enc := modelJSON{
		ID:     m.id,
		Rows:   m.rows,
		Cols:   m.cols,
		Width:  m.width,
		Protos: m.protos,
		Labels: m.labels,
		Layers: make([]layer.Params, len(m.layers)),
		Info:   m.info,
	}
	for i, l := range m.layers {
		enc.Layers[i] = l.Params()
	}
	if err := json.NewEncoder(lw).Encode(&enc); err != nil {
		return errors.Wrap(err, "encoding model")
	}
	return lw.Close()
}

// WriteCompressedToFile writes the model to an lzw file.
func (m *Model) WriteCompressedToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = m.WriteCompressed(file)
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadCompressed reads a model written by WriteCompressed.
func ReadCompressed(r io.Reader) (*Model, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()
	var dec modelJSON
	if err := json.NewDecoder(lr).Decode(&dec); err != nil {
		return nil, errors.Wrap(err, "decoding model")
	}
	if dec.Rows <= 0 || dec.Cols <= 0 || dec.Width <= 0 {
		return nil, errors.Errorf("corrupt model: shape %dx%dx%d", dec.Rows, dec.Cols, dec.Width)
	}
	if len(dec.Protos) != dec.Rows*dec.Cols*dec.Width {
		return nil, errors.Errorf("corrupt model: %d prototype values for shape %dx%dx%d",
			len(dec.Protos), dec.Rows, dec.Cols, dec.Width)
	}
	m := &Model{
		id:     dec.ID,
		rows:   dec.Rows,
		cols:   dec.Cols,
		width:  dec.Width,
		protos: dec.Protos,
		labels: dec.Labels,
		layers: make([]*layer.Layer, len(dec.Layers)),
		info:   dec.Info,
	}
	if m.labels == nil {
		m.labels = make([]string, m.Len())
	}
	for i, p := range dec.Layers {
		l, err := layer.FromParams(p)
		if err != nil {
			return nil, err
		}
		m.layers[i] = l
	}
	if w := layer.TotalWidth(m.layers); w != m.width {
		return nil, errors.Errorf("corrupt model: layers encode %d columns, prototypes have %d", w, m.width)
	}
	return m, nil
}

// ReadCompressedFromFile reads a model from an lzw file.
func ReadCompressedFromFile(name string) (*Model, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCompressed(file)
}
