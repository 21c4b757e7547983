package shadows

import "math"

// IsFacingPoint reports whether point lies on the open side of the segment
func IsFacingPoint(seg Segment, point Point) bool {
	dx := point.X - seg.A.X
	dy := point.Y - seg.A.Y
	return dx*seg.Normal.X+dy*seg.Normal.Y > 0
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
