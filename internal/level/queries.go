package level

import (
	"github.com/jakecoffman/cp"

	"chosenoffset.com/tilekit/internal/core/chains"
	"chosenoffset.com/tilekit/internal/core/shadows"
	"chosenoffset.com/tilekit/internal/world/maploader"
)

// LayerByName returns a layer of the loaded level by identifier
func (s *Service) LayerByName(name string) (*maploader.Layer, bool) {
	if s.level == nil {
		return nil, false
	}
	return s.level.LayerByName(name)
}

// Entities returns every entity of the level
func (s *Service) Entities() []maploader.EntityInstance {
	if s.level == nil {
		return nil
	}
	return s.level.Entities()
}

// EntitiesByName returns the entities with the given identifier
func (s *Service) EntitiesByName(name string) []maploader.EntityInstance {
	return s.filterEntities(func(e maploader.EntityInstance) bool { return e.Identifier == name })
}

// EntitiesByTag returns the entities carrying tag
func (s *Service) EntitiesByTag(tag string) []maploader.EntityInstance {
	return s.filterEntities(func(e maploader.EntityInstance) bool { return e.HasTag(tag) })
}

// EntityByName returns the first entity with the given identifier
func (s *Service) EntityByName(name string) (maploader.EntityInstance, bool) {
	return first(s.EntitiesByName(name))
}

// EntityByTag returns the first entity carrying tag
func (s *Service) EntityByTag(tag string) (maploader.EntityInstance, bool) {
	return first(s.EntitiesByTag(tag))
}

func (s *Service) filterEntities(keep func(maploader.EntityInstance) bool) []maploader.EntityInstance {
	var out []maploader.EntityInstance
	for _, e := range s.Entities() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func first(entities []maploader.EntityInstance) (maploader.EntityInstance, bool) {
	if len(entities) == 0 {
		return maploader.EntityInstance{}, false
	}
	return entities[0], true
}

// ToPixels converts a level pixel position to scaled screen pixels
func (s *Service) ToPixels(p maploader.IntPoint) cp.Vector {
	return cp.Vector{X: float64(p.X) * s.cfg.Scale, Y: float64(p.Y) * s.cfg.Scale}
}

// CellsToPixels converts a cell of layer to scaled screen pixels
func (s *Service) CellsToPixels(cell maploader.IntPoint, layer *maploader.Layer) cp.Vector {
	size := float64(layer.GridSize) * s.cfg.Scale
	return cp.Vector{X: float64(cell.X) * size, Y: float64(cell.Y) * size}
}

// ToMeters converts a level pixel position to physics meters
func (s *Service) ToMeters(p maploader.IntPoint) cp.Vector {
	if s.world == nil {
		return cp.Vector{}
	}
	return s.world.ToMeters(s.ToPixels(p))
}

// ToGrid converts scaled screen pixels back to level pixels
func (s *Service) ToGrid(pixels cp.Vector) maploader.IntPoint {
	return maploader.IntPoint{X: int(pixels.X / s.cfg.Scale), Y: int(pixels.Y / s.cfg.Scale)}
}

// MetersToGrid converts physics meters to level pixels
func (s *Service) MetersToGrid(meters cp.Vector) maploader.IntPoint {
	if s.world == nil {
		return maploader.IntPoint{}
	}
	return s.ToGrid(s.world.ToPixels(meters))
}

// Size returns the scaled level size in pixels
func (s *Service) Size() cp.Vector {
	if s.level == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: float64(s.level.PxWidth) * s.cfg.Scale, Y: float64(s.level.PxHeight) * s.cfg.Scale}
}

// Collisions returns the chain geometry of every collision layer, in layer order
func (s *Service) Collisions() []*Collision {
	return s.collisions
}

// Loops returns the wound loops of a collision layer in scaled pixels
func (s *Service) Loops(layer string) [][]chains.Vec {
	for _, c := range s.collisions {
		if c.Layer == layer {
			return c.Loops
		}
	}
	return nil
}

// Occluders returns every collision loop as line-of-sight segments
func (s *Service) Occluders() []shadows.Segment {
	var loops [][]chains.Vec
	for _, c := range s.collisions {
		loops = append(loops, c.Loops...)
	}
	return shadows.SegmentsFromLoops(loops)
}
