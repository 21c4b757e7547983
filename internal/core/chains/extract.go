package chains

// Options tune a full extraction
type Options struct {
	CellSize        float64 // pixel size of one cell, defaults to 1
	Scale           float64 // draw scale applied on top of CellSize, defaults to 1
	MaxLoopVertices int     // cap per walk, defaults to DefaultMaxLoopVertices
	KeepColinear    bool    // keep every unit corner instead of collapsing straight runs
}

// Result holds the wound loops of one grid and the walk statistics
type Result struct {
	Loops []Loop
	Stats Stats
}

// Extract turns the solid cells of g into closed loops that keep solid
// material on their right. It never fails: an empty or degenerate grid just
// produces no loops.
func Extract(g Grid, opts Options) Result {
	cellSize := opts.CellSize
	if cellSize <= 0 {
		cellSize = 1
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	edges := ExtractBoundary(g)
	loops, stats := WalkLoops(edges, opts.MaxLoopVertices)

	for i, loop := range loops {
		FixWinding(loop, g, cellSize*scale)
		if !opts.KeepColinear {
			loops[i] = CollapseColinear(loop)
		}
	}

	return Result{Loops: loops, Stats: stats}
}

// Scaled converts every loop to space where one cell spans factor units
func (r Result) Scaled(factor float64) [][]Vec {
	out := make([][]Vec, len(r.Loops))
	for i, loop := range r.Loops {
		out[i] = loop.Scaled(factor)
	}
	return out
}
