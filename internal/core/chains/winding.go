package chains

import "math"

// HasSolidOnRight samples the first non-degenerate edge of the loop a quarter
// cell to its right and reports whether that sample lands in a solid cell.
// cellSize is the world length of one cell (tile size times scale). A loop
// without any usable edge reports false.
func HasSolidOnRight(loop Loop, g Grid, cellSize float64) bool {
	if cellSize <= 0 {
		cellSize = 1
	}

	n := len(loop)
	for i := 0; i < n; i++ {
		a := loop[i]
		b := loop[(i+1)%n]
		if a == b {
			continue
		}

		ax := float64(a.X) * cellSize
		ay := float64(a.Y) * cellSize
		bx := float64(b.X) * cellSize
		by := float64(b.Y) * cellSize

		ex := bx - ax
		ey := by - ay
		length := math.Hypot(ex, ey)
		if length < 1e-4 {
			continue
		}
		ex /= length
		ey /= length

		// Right normal with y pointing down
		rx := -ey
		ry := ex

		mx := 0.5 * (ax + bx)
		my := 0.5 * (ay + by)

		offset := 0.25 * cellSize
		sx := mx + rx*offset
		sy := my + ry*offset

		gx := int(math.Floor(sx / cellSize))
		gy := int(math.Floor(sy / cellSize))

		return g.IsSolid(gx, gy)
	}

	return false
}

// FixWinding reverses the loop in place when solid material is not on its
// right and reports whether it did so.
func FixWinding(loop Loop, g Grid, cellSize float64) bool {
	if HasSolidOnRight(loop, g, cellSize) {
		return false
	}
	loop.Reverse()
	return true
}
