package conflictgraph

import "testing"

func TestNeighborsReturnsSortedByOtherEndpoint(t *testing.T) {
	g := New(5)
	_ = g.AddEdge(2, 4, Conflict, 1)
	_ = g.AddEdge(2, 0, Conflict, 1)
	_ = g.AddEdge(2, 3, Conflict, 1)
	_ = g.AddEdge(2, 1, Conflict, 1)

	for i := 0; i < 20; i++ {
		nb := g.Neighbors(2)
		if len(nb) != 4 {
			t.Fatalf("len(Neighbors(2)) = %d, want 4", len(nb))
		}
		for j := 1; j < len(nb); j++ {
			prev := otherEndpoint(nb[j-1], 2)
			cur := otherEndpoint(nb[j], 2)
			if prev >= cur {
				t.Fatalf("Neighbors(2) not sorted ascending by other endpoint: %v", nb)
			}
		}
	}
}

func TestEdgesOrderedByEndpoints(t *testing.T) {
	g := New(4)
	_ = g.AddEdge(3, 1, Conflict, 1)
	_ = g.AddEdge(0, 2, Conflict, 1)
	_ = g.AddEdge(1, 2, Conflict, 1)

	edges := g.Edges()
	if len(edges) != 3 {
		t.Fatalf("len(Edges()) = %d, want 3", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i-1].U > edges[i].U || (edges[i-1].U == edges[i].U && edges[i-1].V > edges[i].V) {
			t.Fatalf("Edges() not ordered by (U,V): %v", edges)
		}
	}
}

func TestSetEdgeOverridesConflictDominance(t *testing.T) {
	g := New(2)
	_ = g.AddEdge(0, 1, Conflict, 1)
	if err := g.SetEdge(0, 1, Stitch, -1); err != nil {
		t.Fatal(err)
	}
	nb := g.Neighbors(0)
	if len(nb) != 1 || nb[0].Kind != Stitch || nb[0].Weight != -1 {
		t.Fatalf("SetEdge did not override the edge: %+v", nb)
	}
}

func TestSetEdgeCreatesMissingEdge(t *testing.T) {
	g := New(2)
	if err := g.SetEdge(0, 1, Stitch, -3); err != nil {
		t.Fatal(err)
	}
	if !g.HasEdge(0, 1) {
		t.Fatal("expected SetEdge to create the edge")
	}
}
