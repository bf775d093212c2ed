package conflictgraph

import (
	"github.com/litho-mpld/mpld/geom"
	"github.com/litho-mpld/mpld/ingest"
	"github.com/litho-mpld/mpld/pattern"
)

// BuildConfig carries the parameters Build needs beyond the pattern
// store and path hints themselves.
type BuildConfig struct {
	// ColoringDistance is the minimum separation below which two
	// patterns must receive different colors (db units).
	ColoringDistance geom.Coord
}

// Result bundles the built graph with the edge-count diagnostics spec
// §4.C requires the builder to report.
type Result struct {
	Graph             *Graph
	ProximityEdges    int
	PathEdges         int
	IgnoredPathHints  int // path hints whose endpoints touched 0 or 1 patterns
}

// Build produces the conflict graph over store's current patterns:
// proximity edges from the spatial index, and path-hint edges from
// segs, exactly as spec §4.C describes.
//
// Proximity: for each pattern p, probe the index with p's box expanded
// by cfg.ColoringDistance. For each candidate q with q.ID > p.ID (to
// avoid double-counting), add an edge iff the L∞ gap is strictly less
// than the coloring distance, or the boxes touch/overlap (gap <= 0).
// Precolored/precolored pairs with different colors never conflict;
// same-colored precolored pairs still get an edge (counted later as an
// unavoidable conflict, per spec §9 open question 3).
//
// Path hints: each segment's two endpoints are probed against the
// index by point-in-box containment; a hint touching exactly two
// distinct patterns adds a conflict edge between them. Hints touching
// zero or one pattern are ignored (counted in Result.IgnoredPathHints).
func Build(store *pattern.Store, segs []ingest.Segment, cfg BuildConfig) Result {
	n := store.Len()
	g := New(n)
	res := Result{Graph: g}

	all := store.All()
	for _, p := range all {
		probe := p.Box.Expand(cfg.ColoringDistance)
		store.Query(probe, func(q pattern.Pattern) {
			if q.ID <= p.ID {
				return
			}
			if p.Precolored() && q.Precolored() && p.Color != q.Color {
				return
			}
			gap := p.Box.GapLInf(q.Box)
			if gap < cfg.ColoringDistance {
				if err := g.AddEdge(p.ID, q.ID, Conflict, 1); err == nil {
					res.ProximityEdges++
				}
			}
		})
	}

	for _, seg := range segs {
		hit := findEndpointPatterns(store, seg)
		if len(hit) != 2 {
			res.IgnoredPathHints++

			continue
		}
		if err := g.AddEdge(hit[0], hit[1], Conflict, 1); err == nil {
			res.PathEdges++
		}
	}

	return res
}

// findEndpointPatterns returns the distinct pattern ids containing
// seg's two endpoints (point-in-rectangle test), probing the index at
// each endpoint. At most two ids are returned even if multiple
// patterns overlap an endpoint: the first hit per endpoint wins, which
// is sufficient for Manhattan layouts where patterns on a path layer's
// host layer do not overlap.
func findEndpointPatterns(store *pattern.Store, seg ingest.Segment) []int {
	var ids []int
	seen := map[int]bool{}
	for _, pt := range []ingest.Point{seg.A, seg.B} {
		probe := geom.NewBox(pt.X, pt.Y, pt.X, pt.Y)
		var found = -1
		store.Query(probe, func(p pattern.Pattern) {
			if found == -1 && p.Box.ContainsPoint(pt.X, pt.Y) {
				found = p.ID
			}
		})
		if found != -1 && !seen[found] {
			seen[found] = true
			ids = append(ids, found)
		}
	}

	return ids
}
