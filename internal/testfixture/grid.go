// Package testfixture generates synthetic rectangle layouts for tests
// that need more than two or three hand-placed boxes: a deterministic
// row-major grid of same-size patterns at a fixed pitch, the same
// "canonical model" a topology generator in the graph-algorithms corpus
// uses for its own test graphs, adapted here from abstract vertices to
// placed rectangles.
package testfixture

import "github.com/litho-mpld/mpld/geom"

// GridLayout returns rows*cols boxes of the given size, placed in
// row-major order on a grid with the given pitch (center-to-center
// spacing) along both axes. Neighboring boxes in the same row or
// column are pitch-size apart; pitch <= size means neighbors touch or
// overlap, pitch > size leaves a gap, exercising both regimes with one
// generator.
func GridLayout(rows, cols int, pitch, size geom.Coord) []geom.Box {
	boxes := make([]geom.Box, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := geom.Coord(c) * pitch
			y := geom.Coord(r) * pitch
			boxes = append(boxes, geom.NewBox(x, y, x+size, y+size))
		}
	}

	return boxes
}
