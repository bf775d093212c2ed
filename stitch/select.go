package stitch

import (
	"math/bits"
	"sort"

	"github.com/litho-mpld/mpld/geom"
)

// projection is one neighbor's interval after projecting it onto the
// split candidate's long axis and clamping to the candidate's own
// span, per spec §4.F "Candidate split positions".
type projection struct {
	lo, hi geom.Coord
}

// candidatePositions collects the clamped endpoints of every
// projection strictly inside (lo, hi), deduplicated and sorted.
func candidatePositions(lo, hi geom.Coord, projs []projection) []geom.Coord {
	seen := map[geom.Coord]bool{}
	var out []geom.Coord
	add := func(x geom.Coord) {
		if x > lo && x < hi && !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for _, p := range projs {
		add(p.lo)
		add(p.hi)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// selectBei chooses the minimum cut set separating distinct neighbors
// into distinct sub-intervals (spec §4.F "no two neighbors end up
// projected onto the same sub-interval"). Overlapping or touching
// neighbor projections cannot be separated by any cut, so they are
// first merged into clusters; one cut is then placed at the midpoint
// of the gap between each pair of adjacent clusters, skipped where it
// would leave either side shorter than minLen.
func selectBei(lo, hi geom.Coord, projs []projection, minLen geom.Coord) []geom.Coord {
	if len(projs) < 2 {
		return nil
	}
	clusters := mergeOverlapping(projs)
	if len(clusters) < 2 {
		return nil
	}

	var cuts []geom.Coord
	lastCut := lo
	for i := 0; i+1 < len(clusters); i++ {
		gapLo, gapHi := clusters[i].hi, clusters[i+1].lo
		if gapLo >= gapHi {
			continue // clusters touch; no room for a separating cut
		}
		cut := gapLo + (gapHi-gapLo)/2
		if cut-lastCut >= minLen && hi-cut >= minLen {
			cuts = append(cuts, cut)
			lastCut = cut
		}
	}

	return cuts
}

// mergeOverlapping coalesces projections that overlap or touch into
// clusters, sorted by position.
func mergeOverlapping(projs []projection) []projection {
	ordered := append([]projection(nil), projs...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].lo < ordered[j].lo })

	var clusters []projection
	for _, p := range ordered {
		if len(clusters) > 0 && p.lo <= clusters[len(clusters)-1].hi {
			last := &clusters[len(clusters)-1]
			if p.hi > last.hi {
				last.hi = p.hi
			}

			continue
		}
		clusters = append(clusters, p)
	}

	return clusters
}

// selectJian chooses every candidate position sitting at the edge of a
// maximum-coverage run (a run of the pattern's span covered by the
// most overlapping projections at once — removing a cut there is what
// "strictly reduces the maximum neighbor-count" per spec §4.F), capped
// at floor(log2(neighborCount))+1 positions.
func selectJian(lo, hi geom.Coord, projs []projection, neighborCount int) []geom.Coord {
	positions := candidatePositions(lo, hi, projs)
	if len(positions) == 0 {
		return nil
	}

	bounds := append([]geom.Coord{lo}, positions...)
	bounds = append(bounds, hi)

	coverage := make([]int, len(bounds)-1)
	for i := range coverage {
		mid := bounds[i] + (bounds[i+1]-bounds[i])/2
		for _, p := range projs {
			if mid >= p.lo && mid < p.hi {
				coverage[i]++
			}
		}
	}

	maxCov := 0
	for _, c := range coverage {
		if c > maxCov {
			maxCov = c
		}
	}

	var picked []geom.Coord
	for i, c := range coverage {
		if c == maxCov {
			// bounds[i] is the cut opening this run, bounds[i+1] closing it.
			if bounds[i] != lo {
				picked = append(picked, bounds[i])
			}
			if bounds[i+1] != hi {
				picked = append(picked, bounds[i+1])
			}
		}
	}

	picked = dedupSorted(picked)

	capN := floorLog2(neighborCount) + 1
	if len(picked) > capN {
		picked = picked[:capN]
	}

	return picked
}

func dedupSorted(xs []geom.Coord) []geom.Coord {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	out := xs[:0:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}

	return out
}

func floorLog2(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n)) - 1
}
