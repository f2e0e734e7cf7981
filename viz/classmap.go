package viz

import "image"
import "image/color"
import "image/png"
import "os"
import "sort"

import "github.com/lucasb-eyer/go-colorful"

import "github.com/neurlang/som/grid"

// ClassMapPNG renders the majority label of each unit as a colored
// cell, cell pixels square. Units without a tallied label stay gray.
func ClassMapPNG(path string, snap *grid.Snapshot, cell int) error {
	if cell <= 0 {
		cell = 16
	}
	seen := make(map[string]struct{})
	for _, lab := range snap.Labels {
		if lab != "" {
			seen[lab] = struct{}{}
		}
	}
	levels := make([]string, 0, len(seen))
	for lab := range seen {
		levels = append(levels, lab)
	}
	sort.Strings(levels)

	colors := map[string]color.Color{}
	if len(levels) > 0 {
		palette, err := colorful.HappyPalette(len(levels))
		if err != nil {
			return err
		}
		for i, lab := range levels {
			colors[lab] = palette[i]
		}
	}
	blank := color.Gray{Y: 0xcc}

	img := image.NewRGBA(image.Rect(0, 0, snap.Cols*cell, snap.Rows*cell))
	for row := 0; row < snap.Rows; row++ {
		for col := 0; col < snap.Cols; col++ {
			c, ok := colors[snap.Labels[snap.Index(row, col)]]
			if !ok {
				c = blank
			}
			for y := row * cell; y < (row+1)*cell; y++ {
				for x := col * cell; x < (col+1)*cell; x++ {
					img.Set(x, y, c)
				}
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
