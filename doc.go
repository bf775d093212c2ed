// Package mpld performs multiple patterning layout decomposition:
// assigning one of K colors (3 or 4) to each Manhattan rectangle on a
// mask layout so that patterns closer than a configured coloring
// distance never share a color, inserting stitches where no
// conflict-free assignment exists without a split.
//
// Everything is organized under single-purpose subpackages:
//
//	geom/          — rectangle primitives over one concrete coordinate type
//	rtree/         — bulk-loaded R*-tree spatial index
//	pattern/       — pattern store: ids, colors, bounding-box index
//	ingest/        — per-layer classification and duplicate removal
//	conflictgraph/ — undirected conflict graph over pattern ids
//	component/     — connected-component decomposition
//	solver/        — the external K-coloring contract + a reference backend
//	coloring/      — per-component simplify → solve → lift-back pipeline
//	stitch/        — pre-coloring pattern splitting
//	report/        — conflict/stitch tallies
//	config/        — the one recognized configuration struct
//	pipeline/      — top-level orchestration (Run)
//
// GDSII parsing/writing, command-line parsing, progress reporting, and
// the concrete ILP/LP/SDP/dancing-links solver backends are external
// collaborators; this module consumes and produces the normalized
// (layer, points) form and an abstract coloring-solver contract.
//
//	go get github.com/litho-mpld/mpld
package mpld
