// Package level loads a level from a project file, turns its collision
// layers into static physics chains and prerenders its tile layers.
package level

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"

	"chosenoffset.com/tilekit/internal/core/chains"
	"chosenoffset.com/tilekit/internal/physics"
	"chosenoffset.com/tilekit/internal/render"
	"chosenoffset.com/tilekit/internal/world/atlas"
	"chosenoffset.com/tilekit/internal/world/maploader"
)

// Config selects the level to load and how to build it
type Config struct {
	ProjectFile    string   // Project JSON file
	LevelName      string   // Level identifier inside the project
	CollisionNames []string // Int grid names that count as solid
	Scale          float64  // Draw scale, defaults to 1
	KeepColinear   bool     // Keep every unit corner in collision chains
}

// Collision is the chain geometry built for one int grid layer
type Collision struct {
	Layer  string
	Result chains.Result
	Loops  [][]chains.Vec // wound loops in pixels
	Body   *physics.ChainBody
}

type layerImage struct {
	layer   *maploader.Layer
	image   render.Image
	visible bool
}

// Service owns a loaded level
type Service struct {
	cfg Config

	project *maploader.Project
	level   *maploader.Level
	world   *physics.World
	atlases *atlas.Manager

	images     []*layerImage
	collisions []*Collision
}

// NewService creates a level service. Nothing is loaded until Init.
func NewService(cfg Config) *Service {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	return &Service{cfg: cfg}
}

// Init loads the project and level, builds one static chain body per int
// grid layer when collision names are configured and prerenders tile layers.
// A nil renderer skips prerendering. Calling Init again replaces the previous
// level, and a failed Init leaves nothing behind.
func (s *Service) Init(world *physics.World, renderer render.Renderer, loader render.ResourceLoader) error {
	if world == nil {
		return fmt.Errorf("level service requires a physics world")
	}
	s.reset()
	s.world = world

	if err := s.load(renderer, loader); err != nil {
		s.reset()
		return err
	}

	log.Printf("Loaded level %s: %d layers, %d prerendered, %d collision layers",
		s.level.Identifier, len(s.level.Layers), len(s.images), len(s.collisions))

	return nil
}

// load reads the project and level, then builds every layer
func (s *Service) load(renderer render.Renderer, loader render.ResourceLoader) error {
	project, err := maploader.LoadProject(s.cfg.ProjectFile)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	s.project = project

	lvl, err := project.Level(s.cfg.LevelName)
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}
	s.level = lvl

	if renderer != nil && loader != nil {
		s.atlases = atlas.NewManager(loader)
		for _, rel := range project.Atlases {
			if err := s.atlases.LoadAtlasConfig(project.ResolvePath(rel)); err != nil {
				return fmt.Errorf("failed to load atlas %s: %w", rel, err)
			}
		}
	}

	for i := range lvl.Layers {
		layer := &lvl.Layers[i]

		switch layer.Type {
		case maploader.LayerTiles:
			if renderer == nil || s.atlases == nil {
				continue
			}
			if err := s.renderLayer(layer, renderer); err != nil {
				return fmt.Errorf("failed to render layer %s: %w", layer.Identifier, err)
			}
		case maploader.LayerIntGrid:
			if len(s.cfg.CollisionNames) > 0 {
				s.buildCollision(layer)
			}
		}
	}

	return nil
}

// renderLayer draws all tiles of a layer into an off-screen image the size
// of the level
func (s *Service) renderLayer(layer *maploader.Layer, renderer render.Renderer) error {
	a, ok := s.atlases.Resolve(layer.Tileset, layer.Identifier)
	if !ok {
		log.Printf("No atlas for tile layer %s (tileset %q), skipping", layer.Identifier, layer.Tileset)
		return nil
	}

	img := renderer.NewImage(s.level.PxWidth, s.level.PxHeight)
	for _, tile := range layer.Tiles {
		x := float64(tile.Px[0] + layer.OffsetX)
		y := float64(tile.Px[1] + layer.OffsetY)
		if err := a.DrawTile(img, tile.Tile, x, y, tile.FlipX(), tile.FlipY()); err != nil {
			img.Dispose()
			return err
		}
	}

	s.images = append(s.images, &layerImage{
		layer:   layer,
		image:   img,
		visible: layer.IsVisible(),
	})
	return nil
}

// buildCollision extracts the wound boundary loops of a layer and adds them
// to the world as one static chain body
func (s *Service) buildCollision(layer *maploader.Layer) {
	grid := layer.SolidGrid(s.cfg.CollisionNames)
	cellSize := float64(layer.GridSize)

	result := chains.Extract(grid, chains.Options{
		CellSize:     cellSize,
		Scale:        s.cfg.Scale,
		KeepColinear: s.cfg.KeepColinear,
	})
	pixels := result.Scaled(cellSize * s.cfg.Scale)

	meters := make([][]cp.Vector, len(pixels))
	for i, loop := range pixels {
		meters[i] = make([]cp.Vector, len(loop))
		for j, v := range loop {
			meters[i][j] = s.world.ToMeters(cp.Vector{X: v.X, Y: v.Y})
		}
	}

	body := s.world.AddStaticChains(layer.Identifier, meters, physics.DefaultMaterial())

	st := result.Stats
	log.Printf("Layer %s: %d loops from %d boundary edges (%d open, %d truncated, %d discarded, %d edges dropped)",
		layer.Identifier, st.Loops, st.BoundaryEdges, st.OpenChains, st.Truncated, st.Discarded, st.DroppedEdges)

	s.collisions = append(s.collisions, &Collision{
		Layer:  layer.Identifier,
		Result: result,
		Loops:  pixels,
		Body:   body,
	})
}

// Unload releases the prerendered layer images
func (s *Service) Unload() {
	for _, li := range s.images {
		li.image.Dispose()
	}
	s.images = nil
}

// reset drops the loaded level and takes its chain bodies out of the world
func (s *Service) reset() {
	s.Unload()
	if s.world != nil {
		for _, c := range s.collisions {
			s.world.RemoveChains(c.Body)
		}
	}
	s.collisions = nil
	s.atlases = nil
	s.level = nil
	s.project = nil
}

// Level returns the loaded level, or nil before Init
func (s *Service) Level() *maploader.Level {
	return s.level
}

// Project returns the loaded project, or nil before Init
func (s *Service) Project() *maploader.Project {
	return s.project
}

// Scale returns the draw scale
func (s *Service) Scale() float64 {
	return s.cfg.Scale
}

// Draw draws all visible prerendered layers, last layer first so the first
// layer of the file ends up on top
func (s *Service) Draw(dst render.Image) {
	for i := len(s.images) - 1; i >= 0; i-- {
		li := s.images[i]
		if !li.visible {
			continue
		}
		s.drawImage(dst, li.image)
	}
}

// DrawLayer draws one prerendered layer by IID or identifier, regardless of
// its visibility
func (s *Service) DrawLayer(dst render.Image, idOrName string) {
	if li := s.findImage(idOrName); li != nil {
		s.drawImage(dst, li.image)
	}
}

// SetLayerVisibility shows or hides a prerendered layer. It reports whether
// the layer was found.
func (s *Service) SetLayerVisibility(idOrName string, visible bool) bool {
	li := s.findImage(idOrName)
	if li == nil {
		return false
	}
	li.visible = visible
	return true
}

func (s *Service) drawImage(dst render.Image, img render.Image) {
	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Scale(s.cfg.Scale, s.cfg.Scale)
	dst.DrawImage(img, opts)
}

func (s *Service) findImage(idOrName string) *layerImage {
	if s.level == nil {
		return nil
	}
	layer, ok := s.level.LayerByIDOrName(idOrName)
	if !ok {
		return nil
	}
	for _, li := range s.images {
		if li.layer == layer {
			return li
		}
	}
	return nil
}
