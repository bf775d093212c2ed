package coloring

import (
	"github.com/litho-mpld/mpld/conflictgraph"
	"github.com/litho-mpld/mpld/pattern"
)

// localGraph is a component's conflict graph remapped to dense local
// ids [0, len(global)) for the solver, plus the reverse mapping back
// to global pattern ids (spec §4.E step 1-2).
type localGraph struct {
	global   []int // local id -> global pattern id
	globalOf map[int]int
	n        int
	edges    []edgeRef
}

type edgeRef struct {
	u, v   int // local ids
	kind   conflictgraph.EdgeKind
	weight int64
}

// buildLocal remaps component vertices to dense local ids and copies
// their induced edges.
func buildLocal(g *conflictgraph.Graph, globalIDs []int) *localGraph {
	lg := &localGraph{
		global:   append([]int(nil), globalIDs...),
		globalOf: make(map[int]int, len(globalIDs)),
	}
	for i, gid := range globalIDs {
		lg.globalOf[gid] = i
	}
	lg.n = len(globalIDs)

	seen := make(map[[2]int]bool)
	for _, gid := range globalIDs {
		u := lg.globalOf[gid]
		for _, e := range g.Neighbors(gid) {
			other := e.U
			if other == gid {
				other = e.V
			}
			v, ok := lg.globalOf[other]
			if !ok {
				continue
			}
			key := [2]int{minInt(u, v), maxInt(u, v)}
			if seen[key] {
				continue
			}
			seen[key] = true
			lg.edges = append(lg.edges, edgeRef{u: u, v: v, kind: e.Kind, weight: e.Weight})
		}
	}

	return lg
}

func (lg *localGraph) adjacency() [][]edgeRef {
	adj := make([][]edgeRef, lg.n)
	for _, e := range lg.edges {
		adj[e.u] = append(adj[e.u], e)
		adj[e.v] = append(adj[e.v], edgeRef{u: e.v, v: e.u, kind: e.kind, weight: e.weight})
	}

	return adj
}

// hiddenVertex records one vertex removed by the hide-small-degree
// reduction: its local id, and the (at most one) neighbor/edge that
// justified hiding it, in the order vertices were hidden. Recovering
// colors walks this slice in reverse (spec §4.E step 4 "Lift back...
// in reverse").
type hiddenVertex struct {
	v          int
	hasNeighbor bool
	neighbor   int
	kind       conflictgraph.EdgeKind
}

// hideSmallDegree iteratively removes degree<=1 vertices from lg,
// returning the reduced adjacency (as a live/dead mask) and the
// ordered hide trace. This is simplification level 1: such vertices
// never need the full solver — once every other vertex is colored, a
// degree-0 vertex may take any color and a degree-1 vertex need only
// avoid (conflict) or match (stitch-preferred) its sole neighbor.
func hideSmallDegree(lg *localGraph) (alive []bool, trace []hiddenVertex) {
	adj := lg.adjacency()
	degree := make([]int, lg.n)
	alive = make([]bool, lg.n)
	for i := range alive {
		alive[i] = true
		degree[i] = len(adj[i])
	}

	queue := make([]int, 0, lg.n)
	for v := 0; v < lg.n; v++ {
		if degree[v] <= 1 {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if !alive[v] || degree[v] > 1 {
			continue
		}

		hv := hiddenVertex{v: v}
		for _, e := range adj[v] {
			if alive[e.v] {
				hv.hasNeighbor = true
				hv.neighbor = e.v
				hv.kind = e.kind
				degree[e.v]--
				if alive[e.v] && degree[e.v] <= 1 {
					queue = append(queue, e.v)
				}

				break // degree<=1 means at most one live neighbor
			}
		}
		alive[v] = false
		trace = append(trace, hv)
	}

	return alive, trace
}

// recoverHidden assigns a color to every vertex in trace, processing
// it in reverse (last-hidden-first), given the already-decided colors
// of the core subgraph. A vertex that already carries a color (a
// precolor) keeps it. Otherwise a degree-0 vertex (hasNeighbor ==
// false) takes color 0, and a degree-1 vertex avoids its neighbor's
// color for a Conflict edge, or matches it for a Stitch edge (no
// penalty to pay).
func recoverHidden(colors []int, k int, trace []hiddenVertex) {
	for i := len(trace) - 1; i >= 0; i-- {
		hv := trace[i]
		if colors[hv.v] != pattern.Uncolored {
			continue
		}
		if !hv.hasNeighbor {
			colors[hv.v] = 0

			continue
		}
		nc := colors[hv.neighbor]
		if hv.kind == conflictgraph.Stitch {
			colors[hv.v] = nc

			continue
		}
		for c := 0; c < k; c++ {
			if c != nc {
				colors[hv.v] = c

				break
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
