package physics

import (
	"github.com/jakecoffman/cp"
)

// RayHit describes the first shape hit by a ray, in pixels
type RayHit struct {
	Shape    *cp.Shape
	Body     *cp.Body
	Point    cp.Vector // hit point in pixels
	Normal   cp.Vector // surface normal at the hit point
	Fraction float64   // 0 at the start of the ray, 1 at its end
}

// Raycast returns the closest shape between start and end (both in pixels)
func (w *World) Raycast(start, end cp.Vector) (RayHit, bool) {
	info := w.Space.SegmentQueryFirst(w.ToMeters(start), w.ToMeters(end), 0, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return RayHit{}, false
	}

	return RayHit{
		Shape:    info.Shape,
		Body:     info.Shape.Body(),
		Point:    w.ToPixels(info.Point),
		Normal:   info.Normal,
		Fraction: info.Alpha,
	}, true
}

// NearestHit is the closest shape to a query point, in pixels
type NearestHit struct {
	Shape    *cp.Shape
	Point    cp.Vector
	Distance float64
}

// Nearest finds the shape closest to point within maxDistance (both pixels)
func (w *World) Nearest(point cp.Vector, maxDistance float64) (NearestHit, bool) {
	info := w.Space.PointQueryNearest(w.ToMeters(point), w.LengthToMeters(maxDistance), cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return NearestHit{}, false
	}

	return NearestHit{
		Shape:    info.Shape,
		Point:    w.ToPixels(info.Point),
		Distance: w.LengthToPixels(info.Distance),
	}, true
}
