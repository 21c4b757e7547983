package shadows

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/tilekit/internal/core/chains"
)

func scaledLoops(g chains.Grid, cellSize float64) [][]chains.Vec {
	return chains.Extract(g, chains.Options{CellSize: cellSize}).Scaled(cellSize)
}

func TestSegmentsFromLoopsFaceOpenSpace(t *testing.T) {
	g := chains.ParseGrid(
		"......",
		"......",
		"..##..",
		"..##..",
		"......",
		"......",
	)
	segments := SegmentsFromLoops(scaledLoops(g, 10))
	require.Len(t, segments, 4)

	types := map[string]Segment{}
	for _, seg := range segments {
		assert.Equal(t, 0, seg.Loop)
		assert.InDelta(t, 1.0, math.Hypot(seg.Normal.X, seg.Normal.Y), 1e-9)
		types[seg.EdgeType] = seg
	}
	require.Len(t, types, 4)

	top := types["top"]
	assert.Equal(t, 20.0, top.A.Y)
	assert.Equal(t, 20.0, top.B.Y)
	assert.True(t, IsFacingPoint(top, Point{X: 30, Y: 0}))
	assert.False(t, IsFacingPoint(top, Point{X: 30, Y: 30}))

	left := types["left"]
	assert.Equal(t, 20.0, left.A.X)
	assert.True(t, IsFacingPoint(left, Point{X: 0, Y: 30}))
	assert.False(t, IsFacingPoint(types["right"], Point{X: 0, Y: 30}))
}

func TestSegmentsFromLoopsSkipsDegenerate(t *testing.T) {
	loops := [][]chains.Vec{
		{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		{{X: 5, Y: 5}},
	}
	segments := SegmentsFromLoops(loops)
	require.Len(t, segments, 3)

	// The closing edge is slanted
	assert.Equal(t, "", segments[2].EdgeType)
	assert.Empty(t, SegmentsFromLoops(nil))
}

func roomWithPillar() []Segment {
	g := chains.ParseGrid(
		"########",
		"#......#",
		"#..##..#",
		"#..##..#",
		"#......#",
		"########",
	)
	return SegmentsFromLoops(scaledLoops(g, 10))
}

func TestVisibilityPolygonInRoom(t *testing.T) {
	segments := roomWithPillar()
	viewer := Point{X: 15, Y: 30}

	polygon := ComputeVisibilityPolygon(viewer, segments, 1000)
	require.NotEmpty(t, polygon)

	assert.True(t, PointInPolygon(Point{X: 20, Y: 12}, polygon), "open floor near the viewer")
	assert.True(t, PointInPolygon(Point{X: 35, Y: 12}, polygon), "over the pillar")
	assert.False(t, PointInPolygon(Point{X: 60, Y: 30}, polygon), "behind the pillar")

	// Nothing escapes the room
	for _, p := range polygon {
		assert.GreaterOrEqual(t, p.X, 10.0-1e-6)
		assert.LessOrEqual(t, p.X, 70.0+1e-6)
		assert.GreaterOrEqual(t, p.Y, 10.0-1e-6)
		assert.LessOrEqual(t, p.Y, 50.0+1e-6)
	}
}

func TestVisibilityPolygonWithoutWalls(t *testing.T) {
	assert.Empty(t, ComputeVisibilityPolygon(Point{}, nil, 100))
}

func TestRaySegmentIntersection(t *testing.T) {
	seg := Segment{A: Point{X: 5, Y: -1}, B: Point{X: 5, Y: 1}}

	dist, hit, ok := raySegmentIntersection(Point{}, 1, 0, seg)
	require.True(t, ok)
	assert.InDelta(t, 5.0, dist, 1e-9)
	assert.InDelta(t, 5.0, hit.X, 1e-9)
	assert.InDelta(t, 0.0, hit.Y, 1e-9)

	_, _, ok = raySegmentIntersection(Point{}, -1, 0, seg)
	assert.False(t, ok, "segment behind the ray")

	_, _, ok = raySegmentIntersection(Point{}, 0, 1, seg)
	assert.False(t, ok, "parallel")

	_, _, ok = raySegmentIntersection(Point{Y: 3}, 1, 0, seg)
	assert.False(t, ok, "passes beside the segment")
}

func TestPointInPolygonAndDistance(t *testing.T) {
	square := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	assert.True(t, PointInPolygon(Point{X: 5, Y: 5}, square))
	assert.False(t, PointInPolygon(Point{X: 15, Y: 5}, square))
	assert.False(t, PointInPolygon(Point{X: 5, Y: 5}, nil))

	assert.Equal(t, 5.0, Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}))
}
