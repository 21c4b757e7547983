// Package viewer is the interactive chain viewer: it draws a loaded level,
// its collision chains and the area visible from the cursor.
package viewer

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"

	"chosenoffset.com/tilekit/internal/config"
	"chosenoffset.com/tilekit/internal/core/shadows"
	"chosenoffset.com/tilekit/internal/level"
	"chosenoffset.com/tilekit/internal/physics"
	"chosenoffset.com/tilekit/internal/render"
	"chosenoffset.com/tilekit/internal/render/debugdraw"
)

// ErrQuit is returned from Update when the user closes the viewer
var ErrQuit = errors.New("viewer closed")

var background = color.RGBA{R: 30, G: 28, B: 25, A: 255}

// originStep is how far the ray origin moves per tick while an arrow key is held
const originStep = 2.0

// Viewer implements render.Game
type Viewer struct {
	level  *level.Service
	world  *physics.World
	input  render.InputManager
	debug  *debugdraw.Drawer
	width  int
	height int

	visibilityRange float64
	occluders       []shadows.Segment
	origin          cp.Vector // ray start, the spawn point when there is one

	ShowLevel      bool
	ShowChains     bool
	ShowVisibility bool
	ShowNormals    bool

	cursor     cp.Vector
	visibility []shadows.Point
	hit        *physics.RayHit
}

// New creates a viewer for an initialized level service
func New(svc *level.Service, world *physics.World, renderer render.Renderer, input render.InputManager, cfg *config.Config) *Viewer {
	v := &Viewer{
		level:           svc,
		world:           world,
		input:           input,
		debug:           debugdraw.New(renderer, world, debugdraw.DefaultOptions()),
		width:           cfg.Window.Width,
		height:          cfg.Window.Height,
		visibilityRange: cfg.Debug.VisibilityRange,
		occluders:       svc.Occluders(),
		ShowLevel:       true,
		ShowChains:      cfg.Debug.DrawChains,
		ShowVisibility:  cfg.Debug.DrawVisibility,
	}

	size := svc.Size()
	v.origin = cp.Vector{X: size.X / 2, Y: size.Y / 2}
	if spawn, ok := svc.EntityByTag("spawn"); ok {
		pos := spawn.Position()
		half := spawn.Size()
		v.origin = svc.ToPixels(pos).Add(svc.ToPixels(half).Mult(0.5))
	}

	return v
}

// Update handles input: toggles, the cursor position and ray casts
func (v *Viewer) Update() error {
	if v.input.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if v.input.IsKeyJustPressed(render.KeyL) {
		v.ShowLevel = !v.ShowLevel
	}
	if v.input.IsKeyJustPressed(render.KeyC) {
		v.ShowChains = !v.ShowChains
	}
	if v.input.IsKeyJustPressed(render.KeyV) {
		v.ShowVisibility = !v.ShowVisibility
	}
	if v.input.IsKeyJustPressed(render.KeyS) {
		v.ShowNormals = !v.ShowNormals
	}

	v.moveOrigin()

	x, y := v.input.GetCursorPosition()
	v.cursor = cp.Vector{X: float64(x), Y: float64(y)}

	if v.ShowVisibility {
		v.visibility = shadows.ComputeVisibilityPolygon(shadows.Point{X: v.cursor.X, Y: v.cursor.Y}, v.occluders, v.visibilityRange)
	} else {
		v.visibility = nil
	}

	v.hit = nil
	if v.input.IsMouseButtonPressed(render.MouseButtonLeft) || v.input.IsKeyPressed(render.KeySpace) {
		if hit, ok := v.world.Raycast(v.origin, v.cursor); ok {
			v.hit = &hit
		}
	}

	return nil
}

// moveOrigin nudges the ray origin with the arrow keys, keeping it inside
// the level
func (v *Viewer) moveOrigin() {
	if v.input.IsKeyPressed(render.KeyLeft) {
		v.origin.X -= originStep
	}
	if v.input.IsKeyPressed(render.KeyRight) {
		v.origin.X += originStep
	}
	if v.input.IsKeyPressed(render.KeyUp) {
		v.origin.Y -= originStep
	}
	if v.input.IsKeyPressed(render.KeyDown) {
		v.origin.Y += originStep
	}

	size := v.level.Size()
	v.origin.X = min(max(v.origin.X, 0), size.X)
	v.origin.Y = min(max(v.origin.Y, 0), size.Y)
}

// Draw renders the level and the enabled overlays
func (v *Viewer) Draw(screen render.Image) {
	screen.Fill(background)

	if v.ShowLevel {
		v.level.Draw(screen)
	}
	if v.ShowVisibility {
		v.debug.DrawVisibility(screen, v.visibility)
	}
	if v.ShowChains {
		v.debug.DrawChains(screen)
	}
	if v.ShowNormals {
		v.debug.DrawSegments(screen, v.occluders)
	}
	if v.hit != nil {
		v.debug.DrawRayHit(screen, v.origin, *v.hit)
	}

	v.debug.DrawText(screen, v.statusLines()...)
}

// Layout returns the configured window size
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

func (v *Viewer) statusLines() []string {
	loops, edges := 0, 0
	for _, c := range v.level.Collisions() {
		loops += c.Result.Stats.Loops
		edges += c.Result.Stats.BoundaryEdges
	}

	lines := []string{
		fmt.Sprintf("loops: %d  boundary edges: %d  segments: %d", loops, edges, len(v.occluders)),
		fmt.Sprintf("cursor: %.0f,%.0f  [L]evel [C]hains [V]isibility [S]egments", v.cursor.X, v.cursor.Y),
		fmt.Sprintf("origin: %.0f,%.0f  arrows move, space or click casts", v.origin.X, v.origin.Y),
	}
	if v.hit != nil {
		lines = append(lines, fmt.Sprintf("hit: %.1f,%.1f  fraction %.2f", v.hit.Point.X, v.hit.Point.Y, v.hit.Fraction))
	}
	return lines
}
