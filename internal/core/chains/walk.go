package chains

// DefaultMaxLoopVertices bounds a single walk so malformed adjacency can
// never spin forever.
const DefaultMaxLoopVertices = 100000

// Loop is an ordered ring of corners. Consecutive corners are joined by a
// boundary edge and the last corner connects back to the first.
type Loop []GridPoint

// Stats describes what a walk did with the boundary edges it was given.
// BoundaryEdges == ConsumedEdges + DroppedEdges once the walk is done.
type Stats struct {
	BoundaryEdges int `json:"boundary_edges"` // edges present before the walk
	ConsumedEdges int `json:"consumed_edges"` // edges that ended up in emitted loops
	DroppedEdges  int `json:"dropped_edges"`  // edges that belonged to discarded chains
	Loops         int `json:"loops"`          // emitted loops
	OpenChains    int `json:"open_chains"`    // emitted loops whose walk never returned to its start
	Truncated     int `json:"truncated"`      // walks stopped by the vertex cap
	Discarded     int `json:"discarded"`      // chains with fewer than 3 vertices
}

// WalkLoops consumes edges, recovering one polygon per iteration until the
// set is empty. At corners where more than two boundary edges meet the first
// unused neighbor in adjacency order wins. maxVertices <= 0 selects
// DefaultMaxLoopVertices.
func WalkLoops(edges *EdgeSet, maxVertices int) ([]Loop, Stats) {
	if maxVertices <= 0 {
		maxVertices = DefaultMaxLoopVertices
	}

	adj := BuildAdjacency(edges)
	stats := Stats{BoundaryEdges: edges.Len()}

	var loops []Loop
	for {
		first, ok := edges.First()
		if !ok {
			break
		}

		start := first.A
		prev, cur := start, first.B
		poly := Loop{start, cur}
		edges.Remove(start, cur)
		used := 1
		truncated := false

		for cur != start {
			next, found := nextCorner(adj, edges, prev, cur)
			if !found {
				// Dead end: the chain stays open
				break
			}

			prev, cur = cur, next
			poly = append(poly, cur)
			edges.Remove(prev, cur)
			used++

			if len(poly) > maxVertices {
				truncated = true
				break
			}
		}

		closed := poly[len(poly)-1] == poly[0]
		if closed {
			poly = poly[:len(poly)-1]
		}

		if len(poly) < 3 {
			stats.Discarded++
			stats.DroppedEdges += used
			continue
		}

		stats.Loops++
		stats.ConsumedEdges += used
		if !closed {
			stats.OpenChains++
		}
		if truncated {
			stats.Truncated++
		}
		loops = append(loops, poly)
	}

	return loops, stats
}

// nextCorner picks the continuation of a walk arriving at cur from prev
func nextCorner(adj Adjacency, edges *EdgeSet, prev, cur GridPoint) (GridPoint, bool) {
	for _, cand := range adj[cur] {
		if cand == prev {
			continue
		}
		if edges.Has(cur, cand) {
			return cand, true
		}
	}
	return GridPoint{}, false
}

// Reverse flips the direction of the loop in place
func (l Loop) Reverse() {
	for i, j := 0, len(l)-1; i < j; i, j = i+1, j-1 {
		l[i], l[j] = l[j], l[i]
	}
}

// SignedArea returns the shoelace area of the loop in cell units. With y
// pointing down, loops that keep solid material on their right have a
// positive area around a solid region and a negative one around a hole.
func (l Loop) SignedArea() float64 {
	sum := 0
	n := len(l)
	for i := 0; i < n; i++ {
		a := l[i]
		b := l[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return float64(sum) / 2
}

// Vec is a point in pixel or world space
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scaled maps the corners of the loop to space where one cell spans factor
// units.
func (l Loop) Scaled(factor float64) []Vec {
	verts := make([]Vec, len(l))
	for i, p := range l {
		verts[i] = Vec{X: float64(p.X) * factor, Y: float64(p.Y) * factor}
	}
	return verts
}
