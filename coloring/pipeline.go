// Package coloring runs simplify→solve→lift-back over every component
// of a conflict graph, in parallel, writing the resulting colors back
// into the pattern store (spec §4.E, component E).
package coloring

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/litho-mpld/mpld/component"
	"github.com/litho-mpld/mpld/conflictgraph"
	"github.com/litho-mpld/mpld/pattern"
	"github.com/litho-mpld/mpld/solver"
)

// Config governs one coloring pass.
type Config struct {
	// ColorNum is K, the number of colors available (3 or 4).
	ColorNum int
	// SimplifyLevel is the starting simplification level (0, 1, or 2).
	// Nested fallback retries at level-1, level-2, ... down to 0 if the
	// solver declines a simplified subproblem.
	SimplifyLevel int
	// ThreadNum sizes the worker pool. Values <= 1 run sequentially.
	ThreadNum int
	// Algorithm selects the solver backend via solver.Factory.
	Algorithm solver.Algorithm
}

// ErrInvalidColorNum indicates Config.ColorNum is outside {3,4}.
var ErrInvalidColorNum = errors.New("coloring: color_num must be 3 or 4")

// Stats aggregates outcomes across every component of one Run.
type Stats struct {
	ComponentsColored int
	FellBackToLevel   map[int]int // simplification level actually used -> component count
	Unresolved        int         // components where even level 0 was refused
}

// Run colors every component of graph, writing colors into store via
// SetColor, and returns aggregate Stats. Patterns already precolored
// at ingestion keep their color; graph is read-only throughout (spec
// §5 "immutable during the coloring phase").
func Run(ctx context.Context, store *pattern.Store, graph *conflictgraph.Graph, cfg Config) (*Stats, error) {
	if cfg.ColorNum != 3 && cfg.ColorNum != 4 {
		return nil, ErrInvalidColorNum
	}
	algo, err := solver.Factory(cfg.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("coloring: %w", err)
	}

	decomp := component.Decompose(graph)
	patterns := store.All()

	var mu sync.Mutex
	stats := &Stats{FellBackToLevel: map[int]int{}}

	workers := cfg.ThreadNum
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	// Components are pulled in decomp.Order (largest first, spec §4.E
	// "largest first — reduces tail latency"); each task writes to its
	// own disjoint set of pattern ids, so no two tasks ever call
	// SetColor on the same id.
	for _, cid := range decomp.Order {
		cid := cid
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			verts := decomp.Vertices(cid)
			colors, usedLevel, resolved := colorComponent(verts, graph, patterns, cfg.ColorNum, cfg.SimplifyLevel, algo, int64(cid))

			for local, gid := range verts {
				if err := store.SetColor(gid, colors[local]); err != nil {
					return fmt.Errorf("coloring: component %d: %w", cid, err)
				}
			}

			mu.Lock()
			stats.ComponentsColored++
			stats.FellBackToLevel[usedLevel]++
			if !resolved {
				stats.Unresolved++
			}
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("coloring: %w", err)
	}

	return stats, nil
}

// colorComponent colors one component's vertices (global pattern ids,
// in decomp order), trying level down to 0 before giving up. It
// returns the color for each vertex (indexed the same as verts), the
// simplification level that finally produced a result, and whether
// the solver actually accepted (false only when every level, down to
// and including 0, was refused — spec §5 "Cancellation").
func colorComponent(verts []int, graph *conflictgraph.Graph, patterns []pattern.Pattern, k, level int, algo solver.Solver, seed int64) ([]int, int, bool) {
	lg := buildLocal(graph, verts)

	base := make([]int, lg.n)
	for i, gid := range verts {
		if patterns[gid].Precolored() {
			base[i] = patterns[gid].Color
		} else {
			base[i] = pattern.Uncolored
		}
	}

	for lvl := level; lvl >= 0; lvl-- {
		colors, ok := trySolveAtLevel(lg, base, k, lvl, algo, seed)
		if ok {
			return colors, lvl, true
		}
	}

	// Every level refused: best-effort fallback, precolors preserved,
	// everything else left at color 0 (spec §5 "Cancellation...
	// recorded with its current best-effort coloring").
	out := make([]int, lg.n)
	for i, c := range base {
		if c != pattern.Uncolored {
			out[i] = c
		}
	}

	return out, 0, false
}

// trySolveAtLevel applies the requested simplification level to lg and
// invokes algo on the reduced subproblem(s), lifting the result back
// to lg's local ids. It returns ok=false if the solver refused any
// subproblem it touched (solver.ErrUnavailable), signaling the caller
// to fall back to a lower level.
func trySolveAtLevel(lg *localGraph, base []int, k, level int, algo solver.Solver, seed int64) ([]int, bool) {
	alive := make([]bool, lg.n)
	for i := range alive {
		alive[i] = true
	}
	var hideTrace []hiddenVertex
	if level >= 1 {
		alive, hideTrace = hideSmallDegree(lg)
	}

	colors := make([]int, lg.n)
	copy(colors, base)

	var accepted bool
	if level >= 2 {
		colors, accepted = solveByBlocks(lg, alive, colors, k, algo, seed)
	} else {
		colors, accepted = solveSubgraph(lg, alive, colors, k, algo, seed)
	}
	if !accepted {
		return nil, false
	}

	recoverHidden(colors, k, hideTrace)

	return colors, true
}

// solveSubgraph solves the induced subgraph over alive vertices in one
// solver.Solve call, honoring any pre-existing colors in colors (both
// ingestion precolors and, for block sub-solves, colors already fixed
// by a sibling block) as a fixed precolor. It writes results back into
// colors in place and returns it.
func solveSubgraph(lg *localGraph, alive []bool, colors []int, k int, algo solver.Solver, seed int64) ([]int, bool) {
	var subLocal []int
	subIdx := make(map[int]int)
	for v := 0; v < lg.n; v++ {
		if alive[v] {
			subIdx[v] = len(subLocal)
			subLocal = append(subLocal, v)
		}
	}
	if len(subLocal) == 0 {
		return colors, true
	}

	var edges []solver.Edge
	seen := map[[2]int]bool{}
	for _, e := range lg.edges {
		if !alive[e.u] || !alive[e.v] {
			continue
		}
		key := [2]int{minInt(e.u, e.v), maxInt(e.u, e.v)}
		if seen[key] {
			continue
		}
		seen[key] = true
		// Weight already carries the sign convention from conflictgraph
		// (positive Conflict, negative Stitch); no kind-based
		// reinterpretation needed here.
		edges = append(edges, solver.Edge{U: subIdx[e.u], V: subIdx[e.v], Weight: e.weight})
	}

	precolor := make([]int, len(subLocal))
	for i, v := range subLocal {
		if colors[v] != pattern.Uncolored {
			precolor[i] = colors[v]
		} else {
			precolor[i] = -1
		}
	}

	res, err := algo.Solve(solver.Graph{N: len(subLocal), Edges: edges}, precolor, k, seed)
	if err != nil || !res.Accepted {
		return colors, false
	}
	for i, v := range subLocal {
		colors[v] = res.Colors[i]
	}

	return colors, true
}

// solveByBlocks implements simplification level 2: decompose the alive
// subgraph into biconnected blocks, solve the largest block first,
// then walk the block-cut tree (any block sharing an already-colored
// articulation vertex with a solved block) so every subsequent block's
// solver call sees that shared vertex as a precolor.
func solveByBlocks(lg *localGraph, alive []bool, colors []int, k int, algo solver.Solver, seed int64) ([]int, bool) {
	blocks := biconnectedBlocks(lg, alive)
	if len(blocks) <= 1 {
		return solveSubgraph(lg, alive, colors, k, algo, seed)
	}

	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && len(blocks[order[j-1]].vertices) < len(blocks[order[j]].vertices) {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}

	visited := make([]bool, len(blocks))
	queue := []int{order[0]}
	visited[order[0]] = true
	accepted := true

	for len(queue) > 0 {
		bi := queue[0]
		queue = queue[1:]

		blockAlive := make([]bool, lg.n)
		for _, v := range blocks[bi].vertices {
			blockAlive[v] = true
		}
		var ok bool
		colors, ok = solveSubgraph(lg, blockAlive, colors, k, algo, seed)
		accepted = accepted && ok

		for j, b := range blocks {
			if visited[j] {
				continue
			}
			if sharesVertex(blocks[bi].vertices, b.vertices) {
				visited[j] = true
				queue = append(queue, j)
			}
		}
	}

	// any block left unvisited (disconnected from the chosen root in
	// the block-adjacency, which cannot happen for a genuinely
	// connected alive subgraph, but guards against a malformed input)
	// is solved independently.
	for j, b := range blocks {
		if visited[j] {
			continue
		}
		blockAlive := make([]bool, lg.n)
		for _, v := range b.vertices {
			blockAlive[v] = true
		}
		var ok bool
		colors, ok = solveSubgraph(lg, blockAlive, colors, k, algo, seed)
		accepted = accepted && ok
	}

	return colors, accepted
}

func sharesVertex(a, b []int) bool {
	set := make(map[int]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return true
		}
	}

	return false
}
