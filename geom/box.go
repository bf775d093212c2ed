// Package geom defines the Manhattan rectangle primitives shared by the
// pattern store, the spatial index, and the stitch engine.
//
// The source this module is derived from templated its coordinate type
// and let Rectangle/Polygon inherit from a geometry library's concrete
// types. Here there is exactly one coordinate type (Coord, a signed
// 64-bit integer — large enough for any GDSII database-unit layout) and
// Box is a plain record, not a subclass: a thin Rect interface is the
// only abstraction, so callers never depend on a geometry library's
// base type.
package geom

import "fmt"

// Coord is the single coordinate type used throughout mpld. Layout
// coordinates are expressed in database units (the GDSII unit already
// applied by the external reader), so integer arithmetic is exact.
type Coord = int64

// Box is an axis-aligned Manhattan rectangle, inclusive of its edges.
// The zero Box is degenerate (a single point at the origin); callers
// that build boxes incrementally should start from the first corner.
type Box struct {
	XL, YL Coord // lower-left corner
	XH, YH Coord // upper-right corner
}

// NewBox normalizes two opposite corners into a Box with XL<=XH, YL<=YH.
func NewBox(x0, y0, x1, y1 Coord) Box {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	return Box{XL: x0, YL: y0, XH: x1, YH: y1}
}

// Rect is satisfied by anything with a bounding Box. The spatial index
// and pattern store depend only on this, never on a concrete geometry
// library type.
type Rect interface {
	Bounds() Box
}

// Bounds lets Box itself satisfy Rect.
func (b Box) Bounds() Box { return b }

// Width returns XH-XL.
func (b Box) Width() Coord { return b.XH - b.XL }

// Height returns YH-YL.
func (b Box) Height() Coord { return b.YH - b.YL }

// Horizontal reports whether b's width is at least its height, the
// orientation test the stitch engine uses to pick a split axis.
func (b Box) Horizontal() bool { return b.Width() >= b.Height() }

// Area returns the Manhattan area of b.
func (b Box) Area() int64 {
	return int64(b.Width()) * int64(b.Height())
}

// Encompass returns the smallest Box containing both b and other.
func (b Box) Encompass(other Box) Box {
	return Box{
		XL: minCoord(b.XL, other.XL),
		YL: minCoord(b.YL, other.YL),
		XH: maxCoord(b.XH, other.XH),
		YH: maxCoord(b.YH, other.YH),
	}
}

// Expand returns b bloated by d on every side. Used to turn a probe
// rectangle into a coloring-distance search window over the index.
func (b Box) Expand(d Coord) Box {
	return Box{XL: b.XL - d, YL: b.YL - d, XH: b.XH + d, YH: b.YH + d}
}

// Intersects reports whether b and other share at least a boundary
// point (touching counts as intersecting).
func (b Box) Intersects(other Box) bool {
	return b.XL <= other.XH && other.XL <= b.XH && b.YL <= other.YH && other.YL <= b.YH
}

// ContainsPoint reports whether (x,y) lies within b, boundary inclusive.
func (b Box) ContainsPoint(x, y Coord) bool {
	return x >= b.XL && x <= b.XH && y >= b.YL && y <= b.YH
}

// Equivalent reports geometric equality: same four corners. This is the
// predicate ingestion's dedup pass uses — exact duplicates only, not
// overlap (see DESIGN.md open question 1).
func (b Box) Equivalent(other Box) bool {
	return b.XL == other.XL && b.YL == other.YL && b.XH == other.XH && b.YH == other.YH
}

// GapLInf returns the L∞ gap between b and other: the largest of the
// horizontal and vertical separations, each zero or negative (the
// negated overlap depth) when the intervals touch or overlap on that
// axis. A result <= 0 means the rectangles
// touch or overlap; callers treat that as "within coloring distance"
// per spec (duplicate/overlap is tolerated as a conflict, not an error).
func (b Box) GapLInf(other Box) Coord {
	dx := axisGap(b.XL, b.XH, other.XL, other.XH)
	dy := axisGap(b.YL, b.YH, other.YL, other.YH)

	return maxCoord(dx, dy)
}

// axisGap returns the separation between intervals [aLo,aHi] and
// [bLo,bHi] on one axis: positive when disjoint, <=0 when overlapping.
func axisGap(aLo, aHi, bLo, bHi Coord) Coord {
	if aHi < bLo {
		return bLo - aHi
	}
	if bHi < aLo {
		return aLo - bHi
	}

	// Overlapping: report how deep, as a non-positive number, so the
	// caller's max() of both axes still prefers the overlapping axis
	// when the other axis is also non-positive.
	return -minCoord(aHi-bLo, bHi-aLo)
}

func (b Box) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", b.XL, b.YL, b.XH, b.YH)
}

func minCoord(a, b Coord) Coord {
	if a < b {
		return a
	}

	return b
}

func maxCoord(a, b Coord) Coord {
	if a > b {
		return a
	}

	return b
}
