package shadows

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// angleEpsilon offsets the rays cast past each vertex so they slip around
// wall corners
const angleEpsilon = 0.0001

// ComputeVisibilityPolygon calculates what the viewer can see from their position.
// The polygon is ordered by angle; everything outside it is in shadow. Rays that
// hit nothing stop at maxDistance.
func ComputeVisibilityPolygon(viewerPos Point, segments []Segment, maxDistance float64) []Point {
	angles := castAngles(viewerPos, collectVertices(segments))

	visiblePoints := make([]Point, 0, len(angles))
	for _, angle := range angles {
		dx := math.Cos(angle)
		dy := math.Sin(angle)

		closestDist := maxDistance
		closestPoint := Point{
			X: viewerPos.X + dx*maxDistance,
			Y: viewerPos.Y + dy*maxDistance,
		}

		for _, seg := range segments {
			if dist, point, ok := raySegmentIntersection(viewerPos, dx, dy, seg); ok && dist < closestDist {
				closestDist = dist
				closestPoint = point
			}
		}

		visiblePoints = append(visiblePoints, closestPoint)
	}

	return visiblePoints
}

// castAngles returns the sorted, de-duplicated ray angles in [0, 2π): one
// straight at each vertex and one just either side of it.
func castAngles(viewerPos Point, vertices []Point) []float64 {
	seen := mapset.New[float64]()
	var angles []float64

	for _, vertex := range vertices {
		base := math.Atan2(vertex.Y-viewerPos.Y, vertex.X-viewerPos.X)
		for _, angle := range [3]float64{base - angleEpsilon, base, base + angleEpsilon} {
			normalized := math.Mod(angle, 2*math.Pi)
			if normalized < 0 {
				normalized += 2 * math.Pi
			}
			if seen.Has(normalized) {
				continue
			}
			seen.Put(normalized)
			angles = append(angles, normalized)
		}
	}

	slices.Sort(angles)
	return angles
}

// collectVertices extracts the unique segment endpoints
func collectVertices(segments []Segment) []Point {
	seen := mapset.New[Point]()
	var vertices []Point

	for _, seg := range segments {
		for _, p := range [2]Point{seg.A, seg.B} {
			if seen.Has(p) {
				continue
			}
			seen.Put(p)
			vertices = append(vertices, p)
		}
	}

	return vertices
}

// raySegmentIntersection intersects the ray origin + t*(dx, dy), t >= 0 with
// a segment and returns the distance along the ray and the hit point.
func raySegmentIntersection(origin Point, dx, dy float64, seg Segment) (float64, Point, bool) {
	segDX := seg.B.X - seg.A.X
	segDY := seg.B.Y - seg.A.Y

	denominator := dx*segDY - dy*segDX
	if math.Abs(denominator) < 1e-10 {
		// Parallel
		return 0, Point{}, false
	}

	diffX := seg.A.X - origin.X
	diffY := seg.A.Y - origin.Y

	t := (diffX*segDY - diffY*segDX) / denominator
	u := (diffX*dy - diffY*dx) / denominator

	if u < 0 || u > 1 || t < 0 {
		return 0, Point{}, false
	}

	return t, Point{X: origin.X + t*dx, Y: origin.Y + t*dy}, true
}
