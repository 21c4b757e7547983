package chains

import "github.com/zyedidia/generic/mapset"

// EdgeSet is the set of boundary edges of a layer. Membership lives in a
// hash set, while order keeps the insertion sequence so that walks pick
// their starting edges reproducibly.
type EdgeSet struct {
	set   mapset.Set[Edge]
	order []Edge
	next  int // first index in order that may still be present
}

// NewEdgeSet creates an empty edge set
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{set: mapset.New[Edge]()}
}

// Add inserts the canonical edge between p and q. Adding an edge that is
// already present is a no-op.
func (s *EdgeSet) Add(p, q GridPoint) {
	e := MakeEdge(p, q)
	if s.set.Has(e) {
		return
	}
	s.set.Put(e)
	s.order = append(s.order, e)
}

// Has reports whether the edge between p and q is still present
func (s *EdgeSet) Has(p, q GridPoint) bool {
	return s.set.Has(MakeEdge(p, q))
}

// Remove deletes the edge between p and q if present
func (s *EdgeSet) Remove(p, q GridPoint) {
	s.set.Remove(MakeEdge(p, q))
}

// Len returns the number of edges still present
func (s *EdgeSet) Len() int {
	return s.set.Size()
}

// Edges returns the remaining edges in insertion order
func (s *EdgeSet) Edges() []Edge {
	edges := make([]Edge, 0, s.Len())
	for _, e := range s.order[s.next:] {
		if s.set.Has(e) {
			edges = append(edges, e)
		}
	}
	return edges
}

// First returns the earliest inserted edge that has not been removed.
func (s *EdgeSet) First() (Edge, bool) {
	for s.next < len(s.order) {
		e := s.order[s.next]
		if s.set.Has(e) {
			return e, true
		}
		s.next++
	}
	return Edge{}, false
}

// Adjacency maps every corner to the corners it shares a boundary edge with,
// in edge insertion order. It is built once and only read during a walk.
type Adjacency map[GridPoint][]GridPoint

// BuildAdjacency derives the adjacency of all remaining edges in s
func BuildAdjacency(s *EdgeSet) Adjacency {
	adj := make(Adjacency, s.Len()*2)
	for _, e := range s.Edges() {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}
	return adj
}

// ExtractBoundary collects every unit segment that separates a solid cell
// from a non-solid one, including the outer border of the grid.
func ExtractBoundary(g Grid) *EdgeSet {
	edges := NewEdgeSet()

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsSolid(x, y) {
				continue
			}

			// Top
			if !g.IsSolid(x, y-1) {
				edges.Add(GridPoint{x, y}, GridPoint{x + 1, y})
			}
			// Bottom
			if !g.IsSolid(x, y+1) {
				edges.Add(GridPoint{x, y + 1}, GridPoint{x + 1, y + 1})
			}
			// Left
			if !g.IsSolid(x-1, y) {
				edges.Add(GridPoint{x, y}, GridPoint{x, y + 1})
			}
			// Right
			if !g.IsSolid(x+1, y) {
				edges.Add(GridPoint{x + 1, y}, GridPoint{x + 1, y + 1})
			}
		}
	}

	return edges
}
