// Package pipeline orchestrates ingest → conflictgraph → (optional
// stitch) → component → coloring → report, mirroring the run/solve
// sequencing of a traditional MPL main-loop. It is the module's single
// top-level entry point; GDSII I/O, CLI flag parsing, and progress
// reporting stay external (spec §1).
package pipeline

import (
	"context"
	"fmt"

	"github.com/projectdiscovery/gologger"

	"github.com/litho-mpld/mpld/coloring"
	"github.com/litho-mpld/mpld/component"
	"github.com/litho-mpld/mpld/config"
	"github.com/litho-mpld/mpld/conflictgraph"
	"github.com/litho-mpld/mpld/ingest"
	"github.com/litho-mpld/mpld/report"
	"github.com/litho-mpld/mpld/solver"
	"github.com/litho-mpld/mpld/stitch"
)

// LayerRecord is the normalized external input form spec §6 names: one
// raw shape on one layer, before classification.
type LayerRecord struct {
	Layer  int
	Points []ingest.Point
}

// Run executes one full decomposition pass over records under cfg,
// returning the final conflict/stitch report. stitchEnabled controls
// whether the stitch pre-pass runs at all — many real layouts never
// need it.
func Run(ctx context.Context, cfg config.Config, records []LayerRecord, stitchEnabled bool) (*report.Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	shapes := make([]ingest.Shape, len(records))
	for i, r := range records {
		shapes[i] = ingest.Shape{Layer: r.Layer, Points: r.Points}
	}

	icfg := ingest.Config{
		UncolorLayers:  cfg.UncolorLayerSet(),
		PrecolorLayers: cfg.PrecolorLayerSet(),
		PathLayers:     cfg.PathLayerSet(),
		AspectRatio:    cfg.PathAspectRatio,
		StrictLayers:   cfg.StrictLayers,
	}

	store, segs, istats, err := ingest.Ingest(shapes, icfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: ingest: %w", err)
	}
	store.BuildIndex()

	logVerbose(cfg, "ingested %d patterns (%d path hints, %d duplicates removed, %d discarded)",
		istats.PatternsAccepted, istats.PathHints, istats.DuplicatesRemoved, istats.Discarded)

	buildCfg := conflictgraph.BuildConfig{ColoringDistance: cfg.ColoringDistanceNM}
	cgResult := conflictgraph.Build(store, segs, buildCfg)
	graph := cgResult.Graph

	logVerbose(cfg, "conflict graph: %d vertices, %d proximity edges, %d path edges",
		graph.N(), cgResult.ProximityEdges, cgResult.PathEdges)

	if stitchEnabled {
		newGraph, _, sstats, err := stitch.Run(store, graph, segs, cfg.StitchConfig(), buildCfg)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stitch: %w", err)
		}
		graph = newGraph
		logVerbose(cfg, "stitch: %d attempted, %d accepted, %d rejected (min length)",
			sstats.SplitsAttempted, sstats.SplitsAccepted, sstats.RejectedMinLength)
	}

	decomp := component.Decompose(graph)
	logVerbose(cfg, "decomposed into %d components (%d singletons)", decomp.NumComponents(), decomp.SingletonCount)

	ccfg := coloring.Config{
		ColorNum:      cfg.ColorNum,
		SimplifyLevel: cfg.SimplifyLevel,
		ThreadNum:     cfg.ThreadNum,
		Algorithm:     solver.Algorithm(cfg.Algorithm),
	}
	cstats, err := coloring.Run(ctx, store, graph, ccfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline: coloring: %w", err)
	}
	logVerbose(cfg, "colored %d components (%d unresolved)", cstats.ComponentsColored, cstats.Unresolved)

	summary := report.Build(store, graph, decomp)

	return summary, nil
}

func logVerbose(cfg config.Config, format string, args ...any) {
	if !cfg.Verbose {
		return
	}
	gologger.Info().Msgf(format, args...)
}
