package chains

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeEdgeIsOrientationIndependent(t *testing.T) {
	p := GridPoint{2, 3}
	q := GridPoint{2, 4}

	assert.Equal(t, MakeEdge(p, q), MakeEdge(q, p))
	assert.Equal(t, p, MakeEdge(q, p).A)

	// X decides before Y
	e := MakeEdge(GridPoint{5, 0}, GridPoint{4, 9})
	assert.Equal(t, GridPoint{4, 9}, e.A)
}

func TestGridOutOfRangeIsEmpty(t *testing.T) {
	g := ParseGrid(
		"##",
		"##",
	)

	assert.True(t, g.IsSolid(0, 0))
	assert.True(t, g.IsSolid(1, 1))
	assert.False(t, g.IsSolid(-1, 0))
	assert.False(t, g.IsSolid(0, -1))
	assert.False(t, g.IsSolid(2, 0))
	assert.False(t, g.IsSolid(0, 2))

	var zero Grid
	assert.False(t, zero.IsSolid(0, 0))
}

func TestEdgeSetDeduplicates(t *testing.T) {
	s := NewEdgeSet()
	s.Add(GridPoint{0, 0}, GridPoint{1, 0})
	s.Add(GridPoint{1, 0}, GridPoint{0, 0})
	s.Add(GridPoint{1, 0}, GridPoint{1, 1})

	require.Equal(t, 2, s.Len())
	assert.True(t, s.Has(GridPoint{1, 0}, GridPoint{0, 0}))

	s.Remove(GridPoint{0, 0}, GridPoint{1, 0})
	assert.Equal(t, 1, s.Len())

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, MakeEdge(GridPoint{1, 0}, GridPoint{1, 1}), first)
	assert.Equal(t, []Edge{first}, s.Edges())
}

func TestExtractBoundaryEmptyGrid(t *testing.T) {
	g := ParseGrid(
		"....",
		"....",
		"....",
	)

	edges := ExtractBoundary(g)
	assert.Equal(t, 0, edges.Len())

	result := Extract(g, Options{})
	assert.Empty(t, result.Loops)
	assert.Equal(t, 0, result.Stats.BoundaryEdges)
}

func TestExtractBoundaryDegenerateDimensions(t *testing.T) {
	g := Grid{Width: -3, Height: 0, Solid: func(x, y int) bool { return true }}

	assert.Equal(t, 0, ExtractBoundary(g).Len())
	assert.Empty(t, Extract(g, Options{}).Loops)
}

func TestExtractBoundarySingleCell(t *testing.T) {
	g := ParseGrid("#")

	edges := ExtractBoundary(g)
	require.Equal(t, 4, edges.Len())
	assert.True(t, edges.Has(GridPoint{0, 0}, GridPoint{1, 0}))
	assert.True(t, edges.Has(GridPoint{0, 1}, GridPoint{1, 1}))
	assert.True(t, edges.Has(GridPoint{0, 0}, GridPoint{0, 1}))
	assert.True(t, edges.Has(GridPoint{1, 0}, GridPoint{1, 1}))
}

func TestExtractBoundarySkipsInteriorEdges(t *testing.T) {
	g := ParseGrid("##")

	edges := ExtractBoundary(g)
	assert.Equal(t, 6, edges.Len())
	assert.False(t, edges.Has(GridPoint{1, 0}, GridPoint{1, 1}), "shared side of two solid cells is not a boundary")
}

func TestSingleCellLoop(t *testing.T) {
	result := Extract(ParseGrid("#"), Options{})

	require.Len(t, result.Loops, 1)
	loop := result.Loops[0]
	assert.Equal(t, Loop{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, loop)
	assert.Equal(t, 1.0, loop.SignedArea())
	assert.Equal(t, Stats{BoundaryEdges: 4, ConsumedEdges: 4, Loops: 1}, result.Stats)
}

func TestSolidRectangleCollapsesToFourCorners(t *testing.T) {
	g := ParseGrid(
		".....",
		".###.",
		".###.",
		".....",
	)

	result := Extract(g, Options{})

	require.Len(t, result.Loops, 1)
	loop := result.Loops[0]
	require.Len(t, loop, 4)
	assert.ElementsMatch(t, []GridPoint{{1, 1}, {4, 1}, {4, 3}, {1, 3}}, loop)
	assert.Equal(t, 6.0, loop.SignedArea())
	assertSolidOnRight(t, g, loop)
}

func TestSolidRectangleKeepColinear(t *testing.T) {
	g := ParseGrid(
		"###",
		"###",
	)

	result := Extract(g, Options{KeepColinear: true})

	require.Len(t, result.Loops, 1)
	assert.Len(t, result.Loops[0], 10)
	assert.Equal(t, 6.0, result.Loops[0].SignedArea())
}

func TestDonutProducesOppositelyWoundLoops(t *testing.T) {
	g := ParseGrid(
		"###",
		"#.#",
		"###",
	)

	result := Extract(g, Options{})

	require.Len(t, result.Loops, 2)
	var outer, inner Loop
	for _, loop := range result.Loops {
		if loop.SignedArea() > 0 {
			outer = loop
		} else {
			inner = loop
		}
	}

	require.NotNil(t, outer)
	require.NotNil(t, inner)
	assert.Equal(t, 9.0, outer.SignedArea())
	assert.Equal(t, -1.0, inner.SignedArea())
	assert.ElementsMatch(t, []GridPoint{{0, 0}, {3, 0}, {3, 3}, {0, 3}}, outer)
	assert.ElementsMatch(t, []GridPoint{{1, 1}, {2, 1}, {2, 2}, {1, 2}}, inner)
	assertSolidOnRight(t, g, outer)
	assertSolidOnRight(t, g, inner)
}

func TestDiagonalTouchStillConsumesEveryEdge(t *testing.T) {
	g := ParseGrid(
		"#.",
		".#",
	)

	edges := ExtractBoundary(g)
	require.Equal(t, 8, edges.Len())

	loops, stats := WalkLoops(edges, 0)

	assert.Equal(t, 0, edges.Len())
	assert.Equal(t, stats.BoundaryEdges, stats.ConsumedEdges+stats.DroppedEdges)
	require.Len(t, loops, 2)
	for _, loop := range loops {
		assert.Len(t, loop, 4)
	}
}

func TestWalkOpenChain(t *testing.T) {
	edges := NewEdgeSet()
	edges.Add(GridPoint{0, 0}, GridPoint{1, 0})
	edges.Add(GridPoint{1, 0}, GridPoint{2, 0})
	edges.Add(GridPoint{2, 0}, GridPoint{2, 1})

	loops, stats := WalkLoops(edges, 0)

	require.Len(t, loops, 1)
	assert.Equal(t, Loop{{0, 0}, {1, 0}, {2, 0}, {2, 1}}, loops[0])
	assert.Equal(t, 1, stats.OpenChains)
	assert.Equal(t, 3, stats.ConsumedEdges)
	assert.Equal(t, 0, edges.Len())
}

func TestWalkDiscardsShortChains(t *testing.T) {
	edges := NewEdgeSet()
	edges.Add(GridPoint{5, 5}, GridPoint{5, 6})

	loops, stats := WalkLoops(edges, 0)

	assert.Empty(t, loops)
	assert.Equal(t, 1, stats.Discarded)
	assert.Equal(t, 1, stats.DroppedEdges)
	assert.Equal(t, stats.BoundaryEdges, stats.ConsumedEdges+stats.DroppedEdges)
}

func TestWalkVertexCapTruncates(t *testing.T) {
	g := ParseGrid(
		"####",
		"####",
		"####",
	)
	edges := ExtractBoundary(g)
	total := edges.Len()

	loops, stats := WalkLoops(edges, 4)

	assert.Equal(t, 0, edges.Len())
	assert.Positive(t, stats.Truncated)
	assert.Equal(t, total, stats.ConsumedEdges+stats.DroppedEdges)
	for _, loop := range loops {
		assert.LessOrEqual(t, len(loop), 5)
	}
}

func TestHasSolidOnRightIgnoresScale(t *testing.T) {
	g := ParseGrid(
		"..",
		".#",
	)
	clockwise := Loop{{1, 1}, {2, 1}, {2, 2}, {1, 2}}
	counter := Loop{{1, 2}, {2, 2}, {2, 1}, {1, 1}}

	for _, cellSize := range []float64{1, 16, 32 * 1.5} {
		assert.True(t, HasSolidOnRight(clockwise, g, cellSize))
		assert.False(t, HasSolidOnRight(counter, g, cellSize))
	}
}

func TestHasSolidOnRightSkipsDegenerateEdges(t *testing.T) {
	g := ParseGrid("#")

	loop := Loop{{0, 0}, {0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.True(t, HasSolidOnRight(loop, g, 1))

	assert.False(t, HasSolidOnRight(Loop{{0, 0}, {0, 0}, {0, 0}}, g, 1))
}

func TestFixWindingReverses(t *testing.T) {
	g := ParseGrid("#")
	loop := Loop{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	reversed := FixWinding(loop, g, 1)

	assert.True(t, reversed)
	assert.Equal(t, Loop{{1, 0}, {1, 1}, {0, 1}, {0, 0}}, loop)
	assert.False(t, FixWinding(loop, g, 1))
}

func TestCollapseColinear(t *testing.T) {
	loop := Loop{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {1, 1}, {0, 1}}
	assert.Equal(t, Loop{{0, 0}, {2, 0}, {2, 1}, {0, 1}}, CollapseColinear(loop))

	// Already minimal
	square := Loop{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assert.Equal(t, square, CollapseColinear(square))

	// Everything on one line would vanish, so the loop is left alone
	line := Loop{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	assert.Equal(t, line, CollapseColinear(line))
}

func TestLoopScaled(t *testing.T) {
	loop := Loop{{0, 0}, {2, 0}, {2, 1}}
	assert.Equal(t, []Vec{{0, 0}, {32, 0}, {32, 16}}, loop.Scaled(16))
}

func TestExtractIsReproducible(t *testing.T) {
	g := randomGrid(rand.New(rand.NewPCG(7, 11)), 24, 18, 0.45)

	first := Extract(g, Options{CellSize: 16, Scale: 2})
	second := Extract(g, Options{CellSize: 16, Scale: 2})

	assert.Equal(t, first, second)
}

func TestEdgeConservationOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 25; i++ {
		g := randomGrid(rng, 4+rng.IntN(20), 4+rng.IntN(20), rng.Float64())
		edges := ExtractBoundary(g)
		total := edges.Len()

		_, stats := WalkLoops(edges, 0)

		assert.Equal(t, 0, edges.Len())
		assert.Equal(t, total, stats.BoundaryEdges)
		assert.Equal(t, total, stats.ConsumedEdges+stats.DroppedEdges)
	}
}

func TestManifoldGridsProduceClosedSolidOnRightLoops(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 25; i++ {
		g := manifold(randomGrid(rng, 6+rng.IntN(16), 6+rng.IntN(16), 0.35))
		boundary := ExtractBoundary(g)

		result := Extract(g, Options{KeepColinear: true, CellSize: 8})
		assert.Zero(t, result.Stats.OpenChains)
		assert.Zero(t, result.Stats.Discarded)

		seen := make(map[Edge]bool)
		for _, loop := range result.Loops {
			n := len(loop)
			for j := range loop {
				e := MakeEdge(loop[j], loop[(j+1)%n])
				assert.True(t, boundary.Has(e.A, e.B), "loop edge %v is not a boundary edge", e)
				assert.False(t, seen[e], "edge %v visited twice", e)
				seen[e] = true
			}
			assertSolidOnRight(t, g, loop)
		}
		assert.Len(t, seen, boundary.Len())

		collapsed := Extract(g, Options{CellSize: 8})
		for _, loop := range collapsed.Loops {
			assertSolidOnRight(t, g, loop)
		}
	}
}

// assertSolidOnRight samples a quarter cell right of every edge midpoint
func assertSolidOnRight(t *testing.T, g Grid, loop Loop) {
	t.Helper()

	n := len(loop)
	for i := range loop {
		a := loop[i]
		b := loop[(i+1)%n]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		length := dx
		if length == 0 {
			length = dy
		}
		if length < 0 {
			length = -length
		}
		dx /= length
		dy /= length

		sx := (float64(a.X+b.X))/2 - dy*0.25
		sy := (float64(a.Y+b.Y))/2 + dx*0.25
		cx, cy := int(sx), int(sy)
		if sx < 0 {
			cx = -1
		}
		if sy < 0 {
			cy = -1
		}
		assert.True(t, g.IsSolid(cx, cy), "edge %v->%v has no solid on its right", a, b)
	}
}

func randomGrid(rng *rand.Rand, width, height int, density float64) Grid {
	cells := make([]bool, width*height)
	for i := range cells {
		cells[i] = rng.Float64() < density
	}
	return NewGrid(width, height, cells)
}

// manifold fills one cell of every diagonal-only 2x2 block until no corner is
// shared by two regions touching only at that corner.
func manifold(g Grid) Grid {
	cells := make([]bool, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cells[y*g.Width+x] = g.IsSolid(x, y)
		}
	}
	out := NewGrid(g.Width, g.Height, cells)

	for changed := true; changed; {
		changed = false
		for y := -1; y < g.Height; y++ {
			for x := -1; x < g.Width; x++ {
				tl := out.IsSolid(x, y)
				tr := out.IsSolid(x+1, y)
				bl := out.IsSolid(x, y+1)
				br := out.IsSolid(x+1, y+1)
				if tl == br && tr == bl && tl != tr {
					// fill an in-range empty cell of the block
					for _, c := range [][2]int{{x, y}, {x + 1, y}, {x, y + 1}, {x + 1, y + 1}} {
						if c[0] < 0 || c[1] < 0 || c[0] >= g.Width || c[1] >= g.Height {
							continue
						}
						if !cells[c[1]*g.Width+c[0]] {
							cells[c[1]*g.Width+c[0]] = true
							changed = true
							break
						}
					}
				}
			}
		}
	}

	return out
}
