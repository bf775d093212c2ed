// Package stitch decides, per uncolored pattern with a nearby
// neighbor, whether splitting it into two or more sub-rectangles can
// resolve a conflict more cheaply than leaving it whole — the
// projection/stitch engine of spec §4.F, component F. It runs before
// coloring: candidates are found from the conflict graph component
// already built, and the conflict graph is rebuilt afterward over the
// renumbered pattern set.
package stitch

import (
	"sort"

	"github.com/litho-mpld/mpld/conflictgraph"
	"github.com/litho-mpld/mpld/geom"
	"github.com/litho-mpld/mpld/ingest"
	"github.com/litho-mpld/mpld/pattern"
)

// Method selects the split-position selection rule.
type Method string

const (
	// Bei greedily picks the minimum cut set placing non-overlapping
	// clusters of neighbor projections in distinct sub-intervals (the
	// default, spec §4.F).
	Bei Method = "BEI"
	// Jian picks every maximum-coverage-run boundary, capped at
	// floor(log2(neighborCount))+1, for patterns with many neighbors.
	Jian Method = "JIAN"
)

// Config governs one stitch pass.
type Config struct {
	// ColoringDistance matches the conflictgraph build distance: it is
	// both the proximity test and the minimum sub-rectangle length.
	ColoringDistance geom.Coord
	// Method is the default selection rule when NeighborCount does not
	// exceed JianThreshold.
	Method Method
	// JianThreshold: a candidate with more neighbors than this always
	// uses the Jian method regardless of Method (spec §4.F "used when
	// neighbor count exceeds a configurable threshold").
	JianThreshold int
	// StitchWeight is the magnitude of the negative weight attached to
	// new stitch edges. Zero defaults to 1.
	StitchWeight int64
}

// Bookkeeping is the stitch relation tracking spec §3 "Stitch
// bookkeeping" requires.
type Bookkeeping struct {
	NewToOriginal  map[int]int
	OriginalToNew  map[int][]int
	StitchRelation map[int][]int // new_id -> abutting new_ids, lower-indexed side only
}

func newBookkeeping() Bookkeeping {
	return Bookkeeping{
		NewToOriginal:  map[int]int{},
		OriginalToNew:  map[int][]int{},
		StitchRelation: map[int][]int{},
	}
}

// Stats tallies what Run did.
type Stats struct {
	SplitsAttempted   int
	SplitsAccepted    int
	RejectedMinLength int
}

type pendingSplit struct {
	original pattern.Pattern
	boxes    []geom.Box
}

// Run finds split candidates in store using graph for proximity
// neighbors, applies the configured selection method, replaces store
// with the post-split pattern set, rebuilds its spatial index, and
// rebuilds the conflict graph (segs re-feeds the original path hints
// so they are not lost across the renumbering). It returns the
// rebuilt graph, the stitch bookkeeping, and Stats.
func Run(store *pattern.Store, graph *conflictgraph.Graph, segs []ingest.Segment, cfg Config, buildCfg conflictgraph.BuildConfig) (*conflictgraph.Graph, Bookkeeping, Stats, error) {
	weight := cfg.StitchWeight
	if weight == 0 {
		weight = 1
	}

	patterns := store.All()
	split := map[int]bool{}
	var pending []pendingSplit
	var stats Stats

	for _, p := range patterns {
		if p.Precolored() {
			continue
		}
		neighbors := graph.Neighbors(p.ID)
		if len(neighbors) == 0 {
			continue
		}

		boxes, attempted, rejected := planSplit(p, neighbors, patterns, cfg)
		if attempted {
			stats.SplitsAttempted++
		}
		if rejected {
			stats.RejectedMinLength++

			continue
		}
		if len(boxes) < 2 {
			continue
		}
		split[p.ID] = true
		stats.SplitsAccepted++
		pending = append(pending, pendingSplit{original: p, boxes: boxes})
	}

	if len(pending) == 0 {
		return graph, newBookkeeping(), stats, nil
	}

	book := newBookkeeping()
	final := make([]pattern.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if !split[p.ID] {
			final = append(final, p)
		}
	}

	// Stitch edges reference final (post-renumbering) ids, which equal
	// each sub-pattern's position in final at the moment it is
	// appended — Store.Replace renumbers in exactly this order.
	type abutment struct{ a, b int }
	var abutments []abutment

	for _, ps := range pending {
		var newIDs []int
		for _, b := range ps.boxes {
			id := len(final)
			final = append(final, pattern.Pattern{
				ID: id, Box: b, Layer: ps.original.Layer,
				Color: pattern.Uncolored, OriginPatternID: ps.original.ID,
			})
			newIDs = append(newIDs, id)
		}
		book.OriginalToNew[ps.original.ID] = newIDs
		for _, id := range newIDs {
			book.NewToOriginal[id] = ps.original.ID
		}
		for i := 0; i+1 < len(newIDs); i++ {
			abutments = append(abutments, abutment{a: newIDs[i], b: newIDs[i+1]})
		}
	}

	store.Replace(final)
	store.BuildIndex()

	rebuilt := conflictgraph.Build(store, segs, buildCfg)
	for _, ab := range abutments {
		// SetEdge (not AddEdge) so the sibling relation wins even though
		// the proximity rebuild above already saw these two touching
		// sub-patterns and logged an ordinary Conflict edge between them.
		if err := rebuilt.Graph.SetEdge(ab.a, ab.b, conflictgraph.Stitch, -weight); err != nil {
			continue
		}
		book.StitchRelation[ab.a] = append(book.StitchRelation[ab.a], ab.b)
	}

	return rebuilt.Graph, book, stats, nil
}

// planSplit decides whether p should split, given its proximity
// neighbors in the pre-split graph. It returns the sub-rectangle boxes
// (nil/len<2 means "do not split"), whether a split was attempted at
// all (p qualified as a candidate), and whether the only reason no
// split happened is the minimum-length rejection (so callers can tell
// "no conflict to resolve" apart from "resolution would be too small").
func planSplit(p pattern.Pattern, neighbors []*conflictgraph.Edge, all []pattern.Pattern, cfg Config) ([]geom.Box, bool, bool) {
	byID := make(map[int]pattern.Pattern, len(all))
	for _, q := range all {
		byID[q.ID] = q
	}

	horizontal := p.Box.Horizontal()
	lo, hi := p.Box.XL, p.Box.XH
	if !horizontal {
		lo, hi = p.Box.YL, p.Box.YH
	}

	var projs []projection
	for _, e := range neighbors {
		nb := e.U
		if nb == p.ID {
			nb = e.V
		}
		q, ok := byID[nb]
		if !ok {
			continue
		}
		qlo, qhi := q.Box.XL, q.Box.XH
		if !horizontal {
			qlo, qhi = q.Box.YL, q.Box.YH
		}
		pl := maxCoord(lo, qlo-cfg.ColoringDistance)
		ph := minCoord(hi, qhi+cfg.ColoringDistance)
		if pl < ph {
			projs = append(projs, projection{lo: pl, hi: ph})
		}
	}
	if len(projs) == 0 {
		return nil, false, false
	}

	method := cfg.Method
	if method == "" {
		method = Bei
	}
	if cfg.JianThreshold > 0 && len(neighbors) > cfg.JianThreshold {
		method = Jian
	}

	var cuts []geom.Coord
	if method == Jian {
		cuts = selectJian(lo, hi, projs, len(neighbors))
	} else {
		cuts = selectBei(lo, hi, projs, cfg.ColoringDistance)
	}
	if len(cuts) == 0 {
		return nil, true, false
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i] < cuts[j] })
	bounds := append([]geom.Coord{lo}, cuts...)
	bounds = append(bounds, hi)

	for i := 0; i+1 < len(bounds); i++ {
		if bounds[i+1]-bounds[i] < cfg.ColoringDistance {
			return nil, true, true
		}
	}

	boxes := make([]geom.Box, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		if horizontal {
			boxes = append(boxes, geom.NewBox(bounds[i], p.Box.YL, bounds[i+1], p.Box.YH))
		} else {
			boxes = append(boxes, geom.NewBox(p.Box.XL, bounds[i], p.Box.XH, bounds[i+1]))
		}
	}

	return boxes, true, false
}

func minCoord(a, b geom.Coord) geom.Coord {
	if a < b {
		return a
	}

	return b
}

func maxCoord(a, b geom.Coord) geom.Coord {
	if a > b {
		return a
	}

	return b
}
