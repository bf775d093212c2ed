// Package pattern owns the pattern vector, the dense id invariant, and
// the bounding-box spatial index over it. It is the sole owner of
// Pattern values; every other package (conflictgraph, component,
// coloring, stitch) holds borrowed references keyed by the dense
// pattern id, never a pointer into the vector (spec §5 "Resource
// discipline").
package pattern

import (
	"errors"

	"github.com/litho-mpld/mpld/geom"
	"github.com/litho-mpld/mpld/rtree"
)

// Uncolored is the sentinel color of a pattern that has not been
// assigned a color yet.
const Uncolored = -1

// Sentinel errors for Store operations.
var (
	// ErrPatternNotFound indicates a pattern id outside [0, len(vector)).
	ErrPatternNotFound = errors.New("pattern: id not found")
)

// Pattern is an axis-aligned rectangle with the attributes spec §3
// names: a stable dense id, its source layer, its color (Uncolored
// until assigned or precolored at ingestion), and — when produced by a
// stitch split — the id of the pattern it was split from.
type Pattern struct {
	ID              int
	Box             geom.Box
	Layer           int
	Color           int
	OriginPatternID int // -1 unless this pattern came from a split
}

// Bounds lets Pattern satisfy geom.Rect.
func (p Pattern) Bounds() geom.Box { return p.Box }

// Precolored reports whether p carries a fixed color from ingestion or
// a prior coloring pass.
func (p Pattern) Precolored() bool { return p.Color != Uncolored }

// Store owns the pattern vector and its spatial index. The invariant
// pattern_id == index_in_vector holds at all times after any mutation
// that adds or removes patterns (ingestion dedup, stitch splits) has
// finished renumbering — see Replace.
type Store struct {
	patterns []Pattern
	index    *rtree.Index
	bounds   geom.Box
	hasBound bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a new pattern at the tail of the vector, assigning it the
// next dense id, and returns that id. Add does not touch the spatial
// index; callers must call BuildIndex once all patterns are final.
func (s *Store) Add(box geom.Box, layer, color int) int {
	id := len(s.patterns)
	s.patterns = append(s.patterns, Pattern{ID: id, Box: box, Layer: layer, Color: color, OriginPatternID: -1})
	if !s.hasBound {
		s.bounds = box
		s.hasBound = true
	} else {
		s.bounds = s.bounds.Encompass(box)
	}

	return id
}

// Len returns the number of patterns currently stored.
func (s *Store) Len() int { return len(s.patterns) }

// Get returns the pattern with the given id.
func (s *Store) Get(id int) (Pattern, error) {
	if id < 0 || id >= len(s.patterns) {
		return Pattern{}, ErrPatternNotFound
	}

	return s.patterns[id], nil
}

// SetColor assigns color to the pattern with the given id. Precolored
// patterns may be written with their own existing color (a no-op in
// effect) but callers must never overwrite a precolor with a different
// value — coloring.Run enforces that invariant, not Store.
func (s *Store) SetColor(id, color int) error {
	if id < 0 || id >= len(s.patterns) {
		return ErrPatternNotFound
	}
	s.patterns[id].Color = color

	return nil
}

// All returns a read-only snapshot of every pattern, ordered by id.
// The returned slice shares no backing array with Store's internal
// vector mutations after this call.
func (s *Store) All() []Pattern {
	out := make([]Pattern, len(s.patterns))
	copy(out, s.patterns)

	return out
}

// BoundingBox returns the union of every pattern's box added so far.
func (s *Store) BoundingBox() geom.Box { return s.bounds }

// Replace discards the current pattern vector and installs newPatterns
// verbatim, renumbering ids to match their new index. Used by stitch
// insertion, which rebuilds the whole vector (original uncolored
// split candidates removed, their sub-patterns appended) and then
// rebuilds the index (spec §4.F "Rebuild the R-tree").
func (s *Store) Replace(newPatterns []Pattern) {
	s.patterns = make([]Pattern, len(newPatterns))
	copy(s.patterns, newPatterns)
	for i := range s.patterns {
		s.patterns[i].ID = i
	}
	s.hasBound = false
	for _, p := range s.patterns {
		if !s.hasBound {
			s.bounds = p.Box
			s.hasBound = true
		} else {
			s.bounds = s.bounds.Encompass(p.Box)
		}
	}
	s.index = nil
}

// BuildIndex bulk-constructs the spatial index over the current pattern
// vector. Must be called once after ingestion+dedup, and again after
// any Replace (stitch insertion), per spec §3 "Lifecycle".
func (s *Store) BuildIndex() {
	items := make([]rtree.Item, len(s.patterns))
	for i, p := range s.patterns {
		items[i] = rtree.Item{ID: p.ID, Box: p.Box}
	}
	s.index = rtree.Build(items)
}

// Query invokes visit for every pattern whose box intersects probe.
// Panics with a nil-pointer dereference if called before BuildIndex —
// that ordering requirement is deliberate (spec §3: "built once after
// ingestion+dedup... not mutated by coloring").
func (s *Store) Query(probe geom.Box, visit func(Pattern)) {
	s.index.Search(probe, func(it rtree.Item) {
		visit(s.patterns[it.ID])
	})
}
