package ingest

import (
	"testing"

	"github.com/litho-mpld/mpld/pattern"
)

func rectShape(layer int, x0, y0, x1, y1 int64) Shape {
	return Shape{Layer: layer, Points: []Point{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}}}
}

func TestClassifyUncolorAndPrecolor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UncolorLayers[1] = true
	cfg.PrecolorLayers[10] = true
	cfg.PrecolorLayers[11] = true

	shapes := []Shape{
		rectShape(1, 0, 0, 5, 5),
		rectShape(11, 20, 20, 25, 25),
	}
	store, paths, stats, err := Ingest(shapes, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	if len(paths) != 0 {
		t.Fatalf("paths = %d, want 0", len(paths))
	}
	p0, _ := store.Get(0)
	if p0.Color != pattern.Uncolored {
		t.Fatalf("p0.Color = %d, want Uncolored", p0.Color)
	}
	p1, _ := store.Get(1)
	if p1.Color != 1 {
		t.Fatalf("p1.Color = %d, want 1 (layer 11 - min precolor 10)", p1.Color)
	}
	if stats.PatternsAccepted != 2 {
		t.Fatalf("PatternsAccepted = %d, want 2", stats.PatternsAccepted)
	}
}

func TestDedupRemovesExactDuplicates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UncolorLayers[1] = true
	shapes := []Shape{
		rectShape(1, 0, 0, 5, 5),
		rectShape(1, 0, 0, 5, 5),
		rectShape(1, 10, 10, 15, 15),
	}
	store, _, stats, err := Ingest(shapes, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	if stats.DuplicatesRemoved != 1 {
		t.Fatalf("DuplicatesRemoved = %d, want 1", stats.DuplicatesRemoved)
	}
	for i := 0; i < store.Len(); i++ {
		p, _ := store.Get(i)
		if p.ID != i {
			t.Fatalf("pattern %d has ID %d, want dense renumbering", i, p.ID)
		}
	}
}

func TestPathLayerAspectRatioReinterpretation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PathLayers[2] = true
	// Long horizontal rectangle-as-boundary: 100x1, long axis much
	// greater than short axis -> reinterpreted as a single segment.
	shapes := []Shape{rectShape(2, 0, 0, 100, 1)}
	_, paths, stats, err := Ingest(shapes, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Fatalf("paths = %d, want 1", len(paths))
	}
	if stats.PathHints != 1 {
		t.Fatalf("PathHints = %d, want 1", stats.PathHints)
	}
}

func TestStrictLayersRejectsUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictLayers = true
	shapes := []Shape{rectShape(99, 0, 0, 5, 5)}
	_, _, _, err := Ingest(shapes, cfg)
	if err == nil {
		t.Fatal("expected error for unknown layer under StrictLayers")
	}
}

func TestTooFewVerticesIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UncolorLayers[1] = true
	shapes := []Shape{{Layer: 1, Points: []Point{{0, 0}, {5, 5}}}}
	_, _, _, err := Ingest(shapes, cfg)
	if err == nil {
		t.Fatal("expected ErrTooFewVertices")
	}
}
