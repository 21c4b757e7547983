// Package chains converts a grid of solid cells into closed boundary loops
// suitable for static physics chains.
//
// The pipeline runs once per tile layer:
//
//	edges := ExtractBoundary(grid)         // unit edges between solid and empty cells
//	loops, stats := WalkLoops(edges, cap) // closed polygons recovered by an edge walk
//	FixWinding(loop, grid, cellSize)      // solid material on the right of every edge
//
// Extract wires these steps together and is what level loading uses.
package chains

// GridPoint is an integer grid-corner coordinate. A W×H cell grid has
// (W+1)×(H+1) corners.
type GridPoint struct {
	X, Y int
}

// Less reports whether p sorts before q (X first, then Y)
func (p GridPoint) Less(q GridPoint) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Edge is an undirected unit boundary segment between two adjacent corners.
// A is always the lexicographically smaller point so equal edges compare equal
// regardless of the direction they were built from.
type Edge struct {
	A, B GridPoint
}

// MakeEdge returns the canonical edge between p and q
func MakeEdge(p, q GridPoint) Edge {
	if q.Less(p) {
		p, q = q, p
	}
	return Edge{A: p, B: q}
}

// SolidFunc reports whether the cell at (x, y) is solid
type SolidFunc func(x, y int) bool

// Grid is a rectangular cell grid with a solidity query.
type Grid struct {
	Width  int
	Height int
	Solid  SolidFunc
}

// NewGrid builds a grid from a row-major slice of flags. Missing trailing
// cells are treated as empty.
func NewGrid(width, height int, cells []bool) Grid {
	return Grid{
		Width:  width,
		Height: height,
		Solid: func(x, y int) bool {
			idx := y*width + x
			return idx < len(cells) && cells[idx]
		},
	}
}

// ParseGrid builds a grid from text rows where '#' marks a solid cell. Rows
// shorter than the widest row are padded with empty cells.
func ParseGrid(rows ...string) Grid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	cells := make([]bool, width*len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			cells[y*width+x] = row[x] == '#'
		}
	}

	return NewGrid(width, len(rows), cells)
}

// IsSolid reports whether (x, y) is a solid cell. Cells outside the grid are
// never solid, and neither is anything in a grid without a query.
func (g Grid) IsSolid(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	if g.Solid == nil {
		return false
	}
	return g.Solid(x, y)
}
