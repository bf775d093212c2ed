// Package ingest classifies raw (layer, points) shapes into patterns or
// conflict-path hints, and removes exact geometric duplicates from the
// resulting pattern set.
//
// Classification (spec §4.B):
//
//	layer in PrecolorLayers -> pattern, color = layer - min(PrecolorLayers)
//	layer in UncolorLayers  -> pattern, color = Uncolored
//	layer in PathLayers     -> conflict-edge hint (not a pattern)
//	otherwise               -> discarded
//
// A 4-vertex boundary on a path layer is reinterpreted as a path when
// one pair of opposite sides is at least AspectRatio times longer than
// the other (default 10, the source's own magic constant — see
// DESIGN.md open question 2); the long-axis segment becomes the hint.
package ingest

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/litho-mpld/mpld/geom"
	"github.com/litho-mpld/mpld/pattern"
)

// Shape is the normalized external input form: a layer number and the
// closed-loop (polygon, 4 or 5 vertices) or polyline (path) points that
// describe one record.
type Shape struct {
	Layer  int
	Points []Point
}

// Point is a single GDSII-unit coordinate.
type Point struct{ X, Y geom.Coord }

// Segment is a two-endpoint conflict-path hint on one layer.
type Segment struct {
	Layer int
	A, B  Point
}

// Config controls classification. Zero value is invalid; use
// DefaultConfig and override fields as needed.
type Config struct {
	UncolorLayers  map[int]bool
	PrecolorLayers map[int]bool
	PathLayers     map[int]bool

	// AspectRatio is the "one pair of opposite sides >= AspectRatio
	// times the other" threshold for reinterpreting a 4-vertex
	// boundary on a path layer as a path (spec §9, open question 2).
	AspectRatio float64

	// StrictLayers, when true, makes an unrecognized layer a fatal
	// ingestion error instead of a silent discard (spec §7 kind 1).
	StrictLayers bool
}

// DefaultConfig returns a Config with AspectRatio 10 and no layers
// configured; callers must set at least one layer set.
func DefaultConfig() Config {
	return Config{
		UncolorLayers:  map[int]bool{},
		PrecolorLayers: map[int]bool{},
		PathLayers:     map[int]bool{},
		AspectRatio:    10,
	}
}

// Sentinel errors.
var (
	// ErrTooFewVertices indicates a polygon has fewer than 4 vertices.
	ErrTooFewVertices = errors.New("ingest: polygon has fewer than 4 vertices")
	// ErrTooManyVertices indicates a polygon has more than 5 vertices.
	ErrTooManyVertices = errors.New("ingest: polygon has more than 5 vertices")
	// ErrUnknownLayer indicates a layer outside every configured set
	// under StrictLayers.
	ErrUnknownLayer = errors.New("ingest: unrecognized layer")
)

// Stats tallies what Ingest did, for reporting.
type Stats struct {
	PatternsAccepted  int
	PathHints         int
	DuplicatesRemoved int
	Discarded         int
}

// Ingest classifies shapes into a fresh pattern.Store plus a flat list
// of path-hint segments, then deduplicates the resulting patterns.
// Returns a fatal error (wrapping ErrTooFewVertices/ErrTooManyVertices/
// ErrUnknownLayer, naming the offending shape's index) on malformed
// input, per spec §7 error kind 1.
func Ingest(shapes []Shape, cfg Config) (*pattern.Store, []Segment, Stats, error) {
	store := pattern.NewStore()
	var paths []Segment
	var stats Stats

	minPrecolor := minKey(cfg.PrecolorLayers)

	for i, sh := range shapes {
		switch {
		case cfg.PathLayers[sh.Layer]:
			segs, err := classifyPath(sh, cfg.AspectRatio)
			if err != nil {
				return nil, nil, stats, fmt.Errorf("ingest: shape %d: %w", i, err)
			}
			paths = append(paths, segs...)
			stats.PathHints += len(segs)

		case cfg.PrecolorLayers[sh.Layer] || cfg.UncolorLayers[sh.Layer]:
			if len(sh.Points) < 4 {
				return nil, nil, stats, fmt.Errorf("ingest: shape %d: %w", i, ErrTooFewVertices)
			}
			if len(sh.Points) > 5 {
				return nil, nil, stats, fmt.Errorf("ingest: shape %d: %w", i, ErrTooManyVertices)
			}
			box := boundingBox(sh.Points)
			color := pattern.Uncolored
			if cfg.PrecolorLayers[sh.Layer] {
				color = sh.Layer - minPrecolor
			}
			store.Add(box, sh.Layer, color)
			stats.PatternsAccepted++

		default:
			if cfg.StrictLayers {
				return nil, nil, stats, fmt.Errorf("ingest: shape %d: %w (layer %d)", i, ErrUnknownLayer, sh.Layer)
			}
			stats.Discarded++
		}
	}

	removed := dedup(store)
	stats.DuplicatesRemoved = removed

	return store, paths, stats, nil
}

// classifyPath turns a path-layer shape into one or more Segments. A
// 4-vertex boundary is reinterpreted as a single path when one pair of
// opposite sides is at least aspectRatio times longer than the other;
// otherwise (and for any other vertex count) each adjacent vertex pair
// contributes one segment.
func classifyPath(sh Shape, aspectRatio float64) ([]Segment, error) {
	if len(sh.Points) < 2 {
		return nil, nil
	}
	if len(sh.Points) == 4 {
		d0 := dist(sh.Points[0], sh.Points[1])
		d1 := dist(sh.Points[1], sh.Points[2])
		switch {
		case d0 >= aspectRatio*d1:
			return []Segment{{Layer: sh.Layer, A: sh.Points[0], B: sh.Points[1]}}, nil
		case d1 >= aspectRatio*d0:
			return []Segment{{Layer: sh.Layer, A: sh.Points[1], B: sh.Points[2]}}, nil
		}
	}

	segs := make([]Segment, 0, len(sh.Points)-1)
	for i := 1; i < len(sh.Points); i++ {
		segs = append(segs, Segment{Layer: sh.Layer, A: sh.Points[i-1], B: sh.Points[i]})
	}

	return segs, nil
}

func dist(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)

	return math.Hypot(dx, dy)
}

func boundingBox(pts []Point) geom.Box {
	box := geom.NewBox(pts[0].X, pts[0].Y, pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		box = box.Encompass(geom.NewBox(p.X, p.Y, p.X, p.Y))
	}

	return box
}

// dedup sorts patterns lexicographically by (xl,yl), marks any pattern
// geometrically equivalent to its immediate predecessor as invalid,
// compacts them out, and renumbers ids — the scanline approach from
// the source's remove_overlap, restricted to exact duplicates (see
// DESIGN.md open question 1). Returns the number removed.
func dedup(store *pattern.Store) int {
	all := store.All()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Box.XL != all[j].Box.XL {
			return all[i].Box.XL < all[j].Box.XL
		}

		return all[i].Box.YL < all[j].Box.YL
	})

	kept := all[:0:0]
	removed := 0
	for i, p := range all {
		if i > 0 && p.Box.Equivalent(all[i-1].Box) {
			removed++

			continue
		}
		kept = append(kept, p)
	}

	store.Replace(kept)

	return removed
}

func minKey(set map[int]bool) int {
	best := math.MaxInt64
	for k := range set {
		if k < best {
			best = k
		}
	}
	if best == math.MaxInt64 {
		return 0
	}

	return best
}
