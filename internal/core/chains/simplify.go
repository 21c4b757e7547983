package chains

// CollapseColinear drops corners that sit in the middle of a straight run,
// so a rectangular region comes out as its four corners. Direction is kept.
// Loops that would fall below three corners are returned unchanged.
func CollapseColinear(loop Loop) Loop {
	n := len(loop)
	if n < 4 {
		return loop
	}

	reduced := make(Loop, 0, n)
	for i := 0; i < n; i++ {
		prev := loop[(i+n-1)%n]
		cur := loop[i]
		next := loop[(i+1)%n]
		if isStraightRun(prev, cur, next) {
			continue
		}
		reduced = append(reduced, cur)
	}

	if len(reduced) < 3 {
		return loop
	}
	return reduced
}

// isStraightRun reports whether cur continues the line from prev to next in
// the same direction. Spikes that fold back are kept.
func isStraightRun(prev, cur, next GridPoint) bool {
	dx1 := cur.X - prev.X
	dy1 := cur.Y - prev.Y
	dx2 := next.X - cur.X
	dy2 := next.Y - cur.Y

	cross := dx1*dy2 - dy1*dx2
	dot := dx1*dx2 + dy1*dy2
	return cross == 0 && dot > 0
}
