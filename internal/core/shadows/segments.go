package shadows

import (
	"math"

	"chosenoffset.com/tilekit/internal/core/chains"
)

// SegmentsFromLoops turns wound loops into occluder segments, one per
// directed edge. Zero-length edges are skipped.
func SegmentsFromLoops(loops [][]chains.Vec) []Segment {
	var segments []Segment

	for li, loop := range loops {
		n := len(loop)
		if n < 2 {
			continue
		}

		for i := 0; i < n; i++ {
			a := loop[i]
			b := loop[(i+1)%n]
			if seg, ok := newSegment(a, b, li); ok {
				segments = append(segments, seg)
			}
		}
	}

	return segments
}

func newSegment(a, b chains.Vec, loop int) (Segment, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Segment{}, false
	}

	// Left normal in y-down space; the right one points into the wall
	normal := Point{X: dy / length, Y: -dx / length}

	return Segment{
		A:        Point{X: a.X, Y: a.Y},
		B:        Point{X: b.X, Y: b.Y},
		Normal:   normal,
		Loop:     loop,
		EdgeType: edgeType(normal),
	}, true
}

// edgeType names the side of the wall an axis-aligned segment bounds
func edgeType(normal Point) string {
	switch {
	case normal.X == 0 && normal.Y < 0:
		return "top"
	case normal.X == 0 && normal.Y > 0:
		return "bottom"
	case normal.Y == 0 && normal.X < 0:
		return "left"
	case normal.Y == 0 && normal.X > 0:
		return "right"
	}
	return ""
}
