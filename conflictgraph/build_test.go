package conflictgraph

import (
	"testing"

	"github.com/litho-mpld/mpld/geom"
	"github.com/litho-mpld/mpld/ingest"
	"github.com/litho-mpld/mpld/pattern"
)

func storeOf(boxes ...geom.Box) *pattern.Store {
	s := pattern.NewStore()
	for _, b := range boxes {
		s.Add(b, 1, pattern.Uncolored)
	}
	s.BuildIndex()

	return s
}

// Scenario 1 (spec §8): gap 15 > distance 10, no edge.
func TestBuildNoEdgeBeyondDistance(t *testing.T) {
	s := storeOf(geom.NewBox(0, 0, 5, 5), geom.NewBox(20, 0, 25, 5))
	res := Build(s, nil, BuildConfig{ColoringDistance: 10})
	if res.ProximityEdges != 0 {
		t.Fatalf("ProximityEdges = %d, want 0", res.ProximityEdges)
	}
}

// Scenario 2: gap 7 < 10, one edge.
func TestBuildEdgeWithinDistance(t *testing.T) {
	s := storeOf(geom.NewBox(0, 0, 5, 5), geom.NewBox(12, 0, 17, 5))
	res := Build(s, nil, BuildConfig{ColoringDistance: 10})
	if res.ProximityEdges != 1 {
		t.Fatalf("ProximityEdges = %d, want 1", res.ProximityEdges)
	}
	if !res.Graph.HasEdge(0, 1) {
		t.Fatal("expected edge 0-1")
	}
}

// Scenario 3: triangle, 3 mutual edges.
func TestBuildTriangle(t *testing.T) {
	s := storeOf(
		geom.NewBox(0, 0, 5, 5),
		geom.NewBox(12, 0, 17, 5),
		geom.NewBox(6, 10, 11, 15),
	)
	res := Build(s, nil, BuildConfig{ColoringDistance: 10})
	if res.ProximityEdges != 3 {
		t.Fatalf("ProximityEdges = %d, want 3", res.ProximityEdges)
	}
}

func TestAdjacencySymmetricNoSelfLoopsNoDuplicates(t *testing.T) {
	s := storeOf(
		geom.NewBox(0, 0, 5, 5),
		geom.NewBox(12, 0, 17, 5),
		geom.NewBox(6, 10, 11, 15),
	)
	res := Build(s, nil, BuildConfig{ColoringDistance: 10})
	g := res.Graph
	for u := 0; u < g.N(); u++ {
		for _, e := range g.Neighbors(u) {
			other := e.U
			if other == u {
				other = e.V
			}
			if other == u {
				t.Fatalf("self-loop at %d", u)
			}
			if !g.HasEdge(other, u) {
				t.Fatalf("adjacency not symmetric for %d-%d", u, other)
			}
		}
	}
}

// Scenario 5: precolored pair with same color within distance is an
// edge (counted as unavoidable conflict later, not skipped here).
func TestPrecoloredSameColorStillGetsEdge(t *testing.T) {
	s := pattern.NewStore()
	s.Add(geom.NewBox(0, 0, 5, 5), 10, 0)
	s.Add(geom.NewBox(8, 0, 13, 5), 10, 0)
	s.BuildIndex()

	res := Build(s, nil, BuildConfig{ColoringDistance: 10})
	if !res.Graph.HasEdge(0, 1) {
		t.Fatal("expected edge between same-colored precolored patterns within distance")
	}
}

func TestPrecoloredDifferentColorsNeverConflict(t *testing.T) {
	s := pattern.NewStore()
	s.Add(geom.NewBox(0, 0, 5, 5), 10, 0)
	s.Add(geom.NewBox(8, 0, 13, 5), 11, 1)
	s.BuildIndex()

	res := Build(s, nil, BuildConfig{ColoringDistance: 10})
	if res.Graph.HasEdge(0, 1) {
		t.Fatal("precolored patterns with different colors must never get an edge")
	}
}

func TestPathHintEdge(t *testing.T) {
	s := storeOf(geom.NewBox(0, 0, 5, 5), geom.NewBox(20, 0, 25, 5))
	// A path segment whose endpoints fall inside each rectangle should
	// connect them even though they are far apart geometrically.
	hints := []pathSeg{{a: point{2, 2}, b: point{22, 2}}}
	res := Build(s, toIngestSegments(hints), BuildConfig{ColoringDistance: 10})
	if res.PathEdges != 1 {
		t.Fatalf("PathEdges = %d, want 1", res.PathEdges)
	}
	if !res.Graph.HasEdge(0, 1) {
		t.Fatal("expected path-hint edge 0-1")
	}
}

func TestIgnoredPathHintOutsideAnyPattern(t *testing.T) {
	s := storeOf(geom.NewBox(0, 0, 5, 5), geom.NewBox(20, 0, 25, 5))
	hints := []pathSeg{{a: point{2, 2}, b: point{50, 50}}}
	res := Build(s, toIngestSegments(hints), BuildConfig{ColoringDistance: 10})
	if res.IgnoredPathHints != 1 {
		t.Fatalf("IgnoredPathHints = %d, want 1", res.IgnoredPathHints)
	}
	if res.Graph.HasEdge(0, 1) {
		t.Fatal("expected no edge from a hint touching only one pattern")
	}
}

type point struct{ x, y int64 }
type pathSeg struct{ a, b point }

func toIngestSegments(hints []pathSeg) []ingest.Segment {
	out := make([]ingest.Segment, len(hints))
	for i, h := range hints {
		out[i] = ingest.Segment{
			A: ingest.Point{X: h.a.x, Y: h.a.y},
			B: ingest.Point{X: h.b.x, Y: h.b.y},
		}
	}

	return out
}
