// Package rtree is a bulk-loaded bounding-box spatial index.
//
// The layout database builds this index exactly once, after ingestion
// and deduplication have finalized the pattern vector (see spec §4.A):
// bulk construction from a fixed set of rectangles is measurably faster
// than incremental insertion at the scale this system targets (millions
// of rectangles), so there is no Insert/Delete API — only Build and
// Search. If patterns are added later (stitch insertion splits one
// pattern into two), the caller rebuilds the whole index.
//
// Build packs leaves at a fixed fanout of 16, following the node
// fanout the source pins for its R*-tree ("bgi::rtree<..., rstar<16>>"
// in the original; see DESIGN.md for why a hand-rolled packer was
// chosen over an external R-tree library). Packing follows the
// sort-tile-recursive (STR) method: sort by one axis, slice into
// groups, sort each slice by the other axis, pack into leaves — this
// yields a tree close to an R*-tree's balance without its incremental
// split heuristics, which bulk construction never exercises anyway.
package rtree

import (
	"math"
	"sort"

	"github.com/litho-mpld/mpld/geom"
)

// Fanout is the maximum number of children per node, fixed per spec.
const Fanout = 16

// Item binds an opaque integer id (the pattern id) to its bounding box.
type Item struct {
	ID  int
	Box geom.Box
}

// node is either a leaf (Items set, Children nil) or an internal node
// (Children set, Items nil). Bounds is the union of its contents.
type node struct {
	Bounds   geom.Box
	Items    []Item
	Children []*node
}

// Index is an immutable, bulk-built spatial index over a fixed item set.
type Index struct {
	root  *node
	count int
}

// Build packs items into a new Index. Build never mutates items beyond
// sorting a private copy.
func Build(items []Item) *Index {
	if len(items) == 0 {
		return &Index{root: &node{}, count: 0}
	}

	buf := make([]Item, len(items))
	copy(buf, items)

	return &Index{root: buildSTR(buf, Fanout), count: len(items)}
}

// Len reports the number of items indexed.
func (ix *Index) Len() int { return ix.count }

// Search invokes visit for every item whose box intersects probe.
// visit may be called in any order; returning is the only way to stop
// early is via a sentinel the caller checks inside visit (kept simple:
// this index never holds enough nodes to need a stop signal in mpld's
// usage, every probe result set is bounded by local pattern density).
func (ix *Index) Search(probe geom.Box, visit func(Item)) {
	if ix.root == nil {
		return
	}
	searchNode(ix.root, probe, visit)
}

func searchNode(n *node, probe geom.Box, visit func(Item)) {
	if n == nil {
		return
	}
	if len(n.Items) > 0 {
		for _, it := range n.Items {
			if it.Box.Intersects(probe) {
				visit(it)
			}
		}

		return
	}
	for _, c := range n.Children {
		if c.Bounds.Intersects(probe) {
			searchNode(c, probe, visit)
		}
	}
}

// buildSTR packs items into a balanced tree with the given fanout using
// the sort-tile-recursive heuristic.
func buildSTR(items []Item, fanout int) *node {
	leaves := packLeaves(items, fanout)
	level := leaves
	for len(level) > 1 {
		level = packInternal(level, fanout)
	}

	return level[0]
}

// packLeaves slices items (sorted by x, then tiled by y within each
// vertical strip) into leaf nodes of at most fanout items each.
func packLeaves(items []Item, fanout int) []*node {
	n := len(items)
	numLeaves := ceilDiv(n, fanout)
	numSlices := int(math.Ceil(math.Sqrt(float64(numLeaves))))
	if numSlices < 1 {
		numSlices = 1
	}
	sliceCap := numSlices * fanout

	sort.Slice(items, func(i, j int) bool { return centerX(items[i].Box) < centerX(items[j].Box) })

	leaves := make([]*node, 0, numLeaves)
	for lo := 0; lo < n; lo += sliceCap {
		hi := lo + sliceCap
		if hi > n {
			hi = n
		}
		slice := items[lo:hi]
		sort.Slice(slice, func(i, j int) bool { return centerY(slice[i].Box) < centerY(slice[j].Box) })

		for j := 0; j < len(slice); j += fanout {
			k := j + fanout
			if k > len(slice) {
				k = len(slice)
			}
			leaves = append(leaves, newLeaf(slice[j:k]))
		}
	}

	return leaves
}

// packInternal groups the given nodes into parent nodes of at most
// fanout children each, by their center coordinates, one level up.
func packInternal(level []*node, fanout int) []*node {
	n := len(level)
	numParents := ceilDiv(n, fanout)
	numSlices := int(math.Ceil(math.Sqrt(float64(numParents))))
	if numSlices < 1 {
		numSlices = 1
	}
	sliceCap := numSlices * fanout

	sort.Slice(level, func(i, j int) bool { return centerX(level[i].Bounds) < centerX(level[j].Bounds) })

	parents := make([]*node, 0, numParents)
	for lo := 0; lo < n; lo += sliceCap {
		hi := lo + sliceCap
		if hi > n {
			hi = n
		}
		slice := level[lo:hi]
		sort.Slice(slice, func(i, j int) bool { return centerY(slice[i].Bounds) < centerY(slice[j].Bounds) })

		for j := 0; j < len(slice); j += fanout {
			k := j + fanout
			if k > len(slice) {
				k = len(slice)
			}
			parents = append(parents, newInternal(slice[j:k]))
		}
	}

	return parents
}

func newLeaf(items []Item) *node {
	leaf := &node{Items: append([]Item(nil), items...)}
	leaf.Bounds = items[0].Box
	for _, it := range items[1:] {
		leaf.Bounds = leaf.Bounds.Encompass(it.Box)
	}

	return leaf
}

func newInternal(children []*node) *node {
	parent := &node{Children: append([]*node(nil), children...)}
	parent.Bounds = children[0].Bounds
	for _, c := range children[1:] {
		parent.Bounds = parent.Bounds.Encompass(c.Bounds)
	}

	return parent
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}

	return (a + b - 1) / b
}

func centerX(b geom.Box) float64 { return float64(b.XL+b.XH) / 2 }
func centerY(b geom.Box) float64 { return float64(b.YL+b.YH) / 2 }
