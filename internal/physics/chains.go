package physics

import (
	"slices"

	"github.com/jakecoffman/cp"
)

// Material is the surface response of a static chain
type Material struct {
	Friction    float64
	Restitution float64
	Radius      float64 // segment thickness in meters
}

// DefaultMaterial matches the surface used for level collision
func DefaultMaterial() Material {
	return Material{Friction: 0.1, Restitution: 0.1}
}

// ChainBody is a static body carrying one closed chain per loop.
type ChainBody struct {
	Name   string
	Body   *cp.Body
	Loops  [][]cp.Vector // vertices in meters, one slice per chain
	Shapes []*cp.Shape
}

// AddStaticChains creates one static body and attaches a closed chain of
// segments for every loop. Vertices are in meters. Loops with fewer than 3
// vertices are skipped.
func (w *World) AddStaticChains(name string, loops [][]cp.Vector, mat Material) *ChainBody {
	body := cp.NewStaticBody()
	w.Space.AddBody(body)

	chain := &ChainBody{Name: name, Body: body}
	for _, loop := range loops {
		n := len(loop)
		if n < 3 {
			continue
		}

		for i := 0; i < n; i++ {
			a := loop[i]
			b := loop[(i+1)%n]

			shape := cp.NewSegment(body, a, b, mat.Radius)
			shape.SetFriction(mat.Friction)
			shape.SetElasticity(mat.Restitution)
			w.Space.AddShape(shape)
			chain.Shapes = append(chain.Shapes, shape)
		}

		chain.Loops = append(chain.Loops, loop)
	}

	w.chains = append(w.chains, chain)
	return chain
}

// RemoveChains takes a chain body and its shapes out of the space
func (w *World) RemoveChains(chain *ChainBody) {
	idx := slices.Index(w.chains, chain)
	if idx < 0 {
		return
	}

	for _, shape := range chain.Shapes {
		w.Space.RemoveShape(shape)
	}
	w.Space.RemoveBody(chain.Body)
	w.chains = slices.Delete(w.chains, idx, idx+1)
}
