package debugdraw

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/tilekit/internal/core/shadows"
	"chosenoffset.com/tilekit/internal/physics"
	"chosenoffset.com/tilekit/internal/render"
	"chosenoffset.com/tilekit/internal/render/rendertest"
)

func newDrawer() (*Drawer, *rendertest.Renderer, *physics.World) {
	world := physics.NewWorld(physics.Config{PixelsPerMeter: 32})
	r := &rendertest.Renderer{}
	return New(r, world, DefaultOptions()), r, world
}

func TestDrawChainsConvertsToPixels(t *testing.T) {
	d, r, world := newDrawer()
	square := []cp.Vector{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}}
	world.AddStaticChains("walls", [][]cp.Vector{square}, physics.DefaultMaterial())

	dst := rendertest.NewImage("screen", 100, 100)
	d.DrawChains(dst)

	require.Len(t, r.Lines, 4)
	assert.Equal(t, rendertest.Line{X0: 0, Y0: 0, X1: 64, Y1: 0, Color: DefaultOptions().Palette[0]}, r.Lines[0])
	assert.Equal(t, float32(0), r.Lines[3].X1, "the last edge closes the loop")
	assert.Equal(t, float32(0), r.Lines[3].Y1)

	require.Len(t, r.Circles, 4)
	assert.Equal(t, render.Point{X: 64, Y: 32}, r.Circles[2])
}

func TestDrawChainsCyclesPalette(t *testing.T) {
	world := physics.NewWorld(physics.Config{PixelsPerMeter: 32})
	r := &rendertest.Renderer{}
	opts := DefaultOptions()
	opts.VertexRadius = 0
	d := New(r, world, opts)

	tri := []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	for i := 0; i < len(opts.Palette)+1; i++ {
		world.AddStaticChains("layer", [][]cp.Vector{tri}, physics.DefaultMaterial())
	}

	d.DrawChains(rendertest.NewImage("screen", 10, 10))
	require.Len(t, r.Lines, 3*(len(opts.Palette)+1))
	assert.Empty(t, r.Circles)
	assert.Equal(t, opts.Palette[0], r.Lines[len(r.Lines)-1].Color)
	assert.Equal(t, opts.Palette[1], r.Lines[3].Color)
}

func TestDrawRayHit(t *testing.T) {
	d, r, _ := newDrawer()

	d.DrawRayHit(rendertest.NewImage("screen", 10, 10), cp.Vector{X: 0, Y: 50}, physics.RayHit{
		Point:  cp.Vector{X: 0, Y: 20},
		Normal: cp.Vector{X: 0, Y: 1},
	})

	require.Len(t, r.Lines, 2)
	assert.Equal(t, float32(20), r.Lines[0].Y1)
	assert.Equal(t, float32(32), r.Lines[1].Y1, "normal drawn from the hit point")
	assert.Len(t, r.Circles, 1)
}

func TestDrawVisibility(t *testing.T) {
	d, r, _ := newDrawer()
	dst := rendertest.NewImage("screen", 10, 10)

	d.DrawVisibility(dst, []shadows.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	assert.Empty(t, r.Polygons)

	d.DrawVisibility(dst, []shadows.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	require.Len(t, r.Polygons, 1)
	assert.Equal(t, render.Point{X: 10, Y: 10}, r.Polygons[0][2])
}

func TestDrawSegmentsAndText(t *testing.T) {
	d, r, _ := newDrawer()
	dst := rendertest.NewImage("screen", 10, 10)

	d.DrawSegments(dst, []shadows.Segment{{
		A:      shadows.Point{X: 0, Y: 10},
		B:      shadows.Point{X: 20, Y: 10},
		Normal: shadows.Point{X: 0, Y: -1},
	}})
	require.Len(t, r.Lines, 2)
	assert.Equal(t, float32(10), r.Lines[1].X0)
	assert.Equal(t, float32(4), r.Lines[1].Y1)

	d.DrawText(dst, "loops: 2", "edges: 8")
	assert.Equal(t, []string{"loops: 2", "edges: 8"}, r.Texts)
}
