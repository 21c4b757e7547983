package shadows

// Point represents a 2D point in pixel space
type Point struct {
	X, Y float64
}

// Segment is one directed edge of a wound boundary loop. Solid material lies
// on its right, so Normal points away from the wall into open space.
type Segment struct {
	A, B     Point
	Normal   Point  // Unit normal on the open side
	Loop     int    // Index of the loop the segment came from
	EdgeType string // "top", "bottom", "left", "right" or "" for slanted edges
}
