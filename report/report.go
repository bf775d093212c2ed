// Package report tallies conflicts and stitches per component and
// globally, the reporting stage of spec §4.G, component G.
package report

import (
	"fmt"
	"io"

	"github.com/litho-mpld/mpld/component"
	"github.com/litho-mpld/mpld/conflictgraph"
	"github.com/litho-mpld/mpld/pattern"
)

// ComponentReport tallies one component's outcome.
type ComponentReport struct {
	CompID    int
	Size      int
	Conflicts int // color[u] == color[v] on a Conflict edge, both colored
	Uncolored int // Conflict edges touching at least one uncolored vertex
	Stitches  int // Stitch edges with color[u] != color[v] (split actually taken)
}

// Summary is the full report for one coloring pass.
type Summary struct {
	PerComponent []ComponentReport
	Conflicts    int
	Uncolored    int
	Stitches     int
}

// Build computes a Summary from the final pattern colors, the
// (possibly stitch-rebuilt) conflict graph, and the component
// decomposition that graph was colored against.
func Build(store *pattern.Store, graph *conflictgraph.Graph, decomp *component.Decomposition) *Summary {
	colors := make([]int, graph.N())
	for _, p := range store.All() {
		colors[p.ID] = p.Color
	}

	sum := &Summary{PerComponent: make([]ComponentReport, decomp.NumComponents())}

	compOf := make([]int, graph.N())
	for v, c := range decomp.CompID {
		compOf[v] = c
	}

	for c := 0; c < decomp.NumComponents(); c++ {
		sum.PerComponent[c] = ComponentReport{CompID: c, Size: decomp.Size(c)}
	}

	for _, e := range graph.Edges() {
		cr := &sum.PerComponent[compOf[e.U]]
		switch e.Kind {
		case conflictgraph.Conflict:
			if colors[e.U] == pattern.Uncolored || colors[e.V] == pattern.Uncolored {
				cr.Uncolored++
				sum.Uncolored++

				continue
			}
			if colors[e.U] == colors[e.V] {
				cr.Conflicts++
				sum.Conflicts++
			}
		case conflictgraph.Stitch:
			if colors[e.U] != colors[e.V] {
				cr.Stitches++
				sum.Stitches++
			}
		}
	}

	return sum
}

// String renders a one-line-per-component human-readable summary.
func (s *Summary) String() string {
	var b []byte
	_ = WriteText(writerFunc(func(p []byte) (int, error) {
		b = append(b, p...)

		return len(p), nil
	}), s)

	return string(b)
}

// WriteText renders s to w in the teacher's plain-text reporting idiom:
// one line per component, then a global totals line.
func WriteText(w io.Writer, s *Summary) error {
	for _, cr := range s.PerComponent {
		if _, err := fmt.Fprintf(w, "component %d: size=%d conflicts=%d uncolored=%d stitches=%d\n",
			cr.CompID, cr.Size, cr.Conflicts, cr.Uncolored, cr.Stitches); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "total: conflicts=%d uncolored=%d stitches=%d\n", s.Conflicts, s.Uncolored, s.Stitches)

	return err
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
