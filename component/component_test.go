package component

import (
	"testing"

	"github.com/litho-mpld/mpld/conflictgraph"
)

func TestDecomposeConnectedAndDisconnected(t *testing.T) {
	g := conflictgraph.New(5)
	_ = g.AddEdge(0, 1, conflictgraph.Conflict, 1)
	_ = g.AddEdge(1, 2, conflictgraph.Conflict, 1)
	// 3,4 isolated from 0,1,2 and from each other.

	d := Decompose(g)
	if d.NumComponents() != 3 {
		t.Fatalf("NumComponents() = %d, want 3", d.NumComponents())
	}

	// every vertex has exactly one comp id
	for v := 0; v < g.N(); v++ {
		if c := d.CompID[v]; c < 0 || c >= d.NumComponents() {
			t.Fatalf("vertex %d has comp id %d, want one in [0, %d)", v, c, d.NumComponents())
		}
	}

	// vertices 0,1,2 share a comp id; 3 and 4 are singletons with
	// distinct ids.
	if d.CompID[0] != d.CompID[1] || d.CompID[1] != d.CompID[2] {
		t.Fatalf("expected 0,1,2 in same component: %v", d.CompID)
	}
	if d.CompID[3] == d.CompID[4] {
		t.Fatal("expected 3 and 4 in different components")
	}
	if d.SingletonCount != 2 {
		t.Fatalf("SingletonCount = %d, want 2", d.SingletonCount)
	}
}

func TestDecomposeOrderDescendingSize(t *testing.T) {
	g := conflictgraph.New(6)
	_ = g.AddEdge(0, 1, conflictgraph.Conflict, 1)
	_ = g.AddEdge(1, 2, conflictgraph.Conflict, 1)
	_ = g.AddEdge(2, 3, conflictgraph.Conflict, 1)
	// 4,5 singletons

	d := Decompose(g)
	prev := d.Size(d.Order[0])
	for _, c := range d.Order[1:] {
		sz := d.Size(c)
		if sz > prev {
			t.Fatalf("components not in descending size order: %v", d.Order)
		}
		prev = sz
	}
	if d.Size(d.Order[0]) != 4 {
		t.Fatalf("largest component size = %d, want 4", d.Size(d.Order[0]))
	}
}

func TestDecomposeVertexOrderIsDeterministicAcrossRuns(t *testing.T) {
	build := func() *conflictgraph.Graph {
		g := conflictgraph.New(6)
		_ = g.AddEdge(0, 5, conflictgraph.Conflict, 1)
		_ = g.AddEdge(0, 2, conflictgraph.Conflict, 1)
		_ = g.AddEdge(0, 4, conflictgraph.Conflict, 1)
		_ = g.AddEdge(0, 1, conflictgraph.Conflict, 1)
		_ = g.AddEdge(0, 3, conflictgraph.Conflict, 1)

		return g
	}

	first := Decompose(build()).VertexOrder
	for i := 0; i < 20; i++ {
		got := Decompose(build()).VertexOrder
		if len(got) != len(first) {
			t.Fatalf("run %d: VertexOrder length changed: %v vs %v", i, got, first)
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("run %d: VertexOrder is nondeterministic: %v vs %v", i, got, first)
			}
		}
	}
}

func TestMutualReachabilityWithinComponent(t *testing.T) {
	g := conflictgraph.New(4)
	_ = g.AddEdge(0, 1, conflictgraph.Conflict, 1)
	_ = g.AddEdge(2, 3, conflictgraph.Conflict, 1)

	d := Decompose(g)
	if d.CompID[0] != d.CompID[1] || d.CompID[2] != d.CompID[3] {
		t.Fatalf("vertices joined by an edge must share a component: %v", d.CompID)
	}
	for c := 0; c < d.NumComponents(); c++ {
		verts := d.Vertices(c)
		first := d.CompID[verts[0]]
		for _, v := range verts {
			if d.CompID[v] != first {
				t.Fatalf("component %d vertex %d has mismatched comp id", c, v)
			}
		}
	}
}
