// Package component decomposes a conflictgraph.Graph into connected
// components, tagging each vertex with a comp_id and listing its
// vertices in DFS insertion order, per spec §4.D. It is adapted from
// the teacher library's dfs.DFS traversal (rewritten with an explicit
// stack, see dfsVisit) and gridgraph's flood-fill-to-components loop
// (iterate every unvisited vertex, grow one component at a time),
// generalized from grid cells to arbitrary graph vertices.
package component

import "github.com/litho-mpld/mpld/conflictgraph"

// Decomposition is the output of Decompose: every vertex's comp_id,
// the vertices of every component laid out contiguously, and the
// component boundaries into that layout.
type Decomposition struct {
	// CompID maps each vertex id to its component id.
	CompID []int
	// VertexOrder lists every vertex, grouped by component, in DFS
	// insertion order within each component.
	VertexOrder []int
	// CompBegin holds len(Components)+1 offsets into VertexOrder:
	// component c's vertices are VertexOrder[CompBegin[c]:CompBegin[c+1]].
	CompBegin []int
	// Order lists component ids by descending vertex count — largest
	// first, feeding the coloring pipeline's worker-pool policy
	// directly (spec §4.E "largest first — reduces tail latency").
	Order []int
	// SingletonCount is the number of |V|=1 components.
	SingletonCount int
}

// Size returns the number of vertices in component c.
func (d *Decomposition) Size(c int) int {
	return d.CompBegin[c+1] - d.CompBegin[c]
}

// Vertices returns component c's vertex ids, in DFS insertion order.
func (d *Decomposition) Vertices(c int) []int {
	return d.VertexOrder[d.CompBegin[c]:d.CompBegin[c+1]]
}

// NumComponents returns the number of components found.
func (d *Decomposition) NumComponents() int {
	return len(d.CompBegin) - 1
}

// Decompose runs a DFS forest over g, assigning each of the n vertices
// exactly one comp_id and recording insertion order.
func Decompose(g *conflictgraph.Graph) *Decomposition {
	n := g.N()
	compID := make([]int, n)
	for i := range compID {
		compID[i] = -1
	}

	var order []int
	var begin []int
	var sizes []int

	for v := 0; v < n; v++ {
		if compID[v] != -1 {
			continue
		}
		cid := len(begin)
		begin = append(begin, len(order))
		start := len(order)
		dfsVisit(g, v, cid, compID, &order)
		sizes = append(sizes, len(order)-start)
	}
	begin = append(begin, len(order))

	compOrder := make([]int, len(sizes))
	for i := range compOrder {
		compOrder[i] = i
	}
	sortByDescendingSize(compOrder, sizes)

	singletons := 0
	for _, sz := range sizes {
		if sz == 1 {
			singletons++
		}
	}

	return &Decomposition{
		CompID:         compID,
		VertexOrder:    order,
		CompBegin:      begin,
		Order:          compOrder,
		SingletonCount: singletons,
	}
}

// dfsVisit performs an explicit-stack depth-first traversal from root,
// tagging every reachable unvisited vertex with cid and appending it
// to order in discovery order. An explicit stack (rather than
// recursion, which the teacher's dfs.DFS uses) avoids recursion-depth
// limits on the long path-shaped components dense layouts produce.
func dfsVisit(g *conflictgraph.Graph, root, cid int, compID []int, order *[]int) {
	stack := []int{root}
	compID[root] = cid
	*order = append(*order, root)

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range g.Neighbors(u) {
			nb := e.U
			if nb == u {
				nb = e.V
			}
			if compID[nb] == -1 {
				compID[nb] = cid
				*order = append(*order, nb)
				stack = append(stack, nb)
			}
		}
	}
}

// sortByDescendingSize reorders ids so that sizes[ids[i]] is
// non-increasing. Insertion sort is intentional: component counts are
// typically small relative to vertex counts, and this keeps the
// ordering a stable, dependency-free helper.
func sortByDescendingSize(ids []int, sizes []int) {
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && sizes[ids[j-1]] < sizes[ids[j]] {
			ids[j-1], ids[j] = ids[j], ids[j-1]
			j--
		}
	}
}
