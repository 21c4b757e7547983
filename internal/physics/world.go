// Package physics owns the Chipmunk2D space and the static collision chains
// built from level geometry. Callers work in pixels; the space works in
// meters.
package physics

import (
	"github.com/jakecoffman/cp"
)

// Config holds the physics world settings
type Config struct {
	GravityX       float64 // m/s², x component
	GravityY       float64 // m/s², y component (positive is down)
	PixelsPerMeter float64 // conversion between screen and physics units
}

// DefaultConfig returns the settings used when nothing else is configured
func DefaultConfig() Config {
	return Config{
		GravityX:       0,
		GravityY:       10,
		PixelsPerMeter: 30,
	}
}

// World wraps a cp.Space with pixel/meter conversion helpers.
type World struct {
	Space *cp.Space

	metersToPixels float64
	pixelsToMeters float64
	chains         []*ChainBody
}

// NewWorld creates a physics world. A non-positive PixelsPerMeter falls back
// to the default.
func NewWorld(cfg Config) *World {
	ppm := cfg.PixelsPerMeter
	if ppm <= 0 {
		ppm = DefaultConfig().PixelsPerMeter
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: cfg.GravityX, Y: cfg.GravityY})

	return &World{
		Space:          space,
		metersToPixels: ppm,
		pixelsToMeters: 1.0 / ppm,
	}
}

// PixelsPerMeter returns the conversion factor in use
func (w *World) PixelsPerMeter() float64 {
	return w.metersToPixels
}

// ToPixels converts a vector in meters to pixels
func (w *World) ToPixels(meters cp.Vector) cp.Vector {
	return cp.Vector{X: meters.X * w.metersToPixels, Y: meters.Y * w.metersToPixels}
}

// ToMeters converts a vector in pixels to meters
func (w *World) ToMeters(pixels cp.Vector) cp.Vector {
	return cp.Vector{X: pixels.X * w.pixelsToMeters, Y: pixels.Y * w.pixelsToMeters}
}

// LengthToPixels converts a length in meters to pixels
func (w *World) LengthToPixels(meters float64) float64 {
	return meters * w.metersToPixels
}

// LengthToMeters converts a length in pixels to meters
func (w *World) LengthToMeters(pixels float64) float64 {
	return pixels * w.pixelsToMeters
}

// Chains returns every static chain body added so far
func (w *World) Chains() []*ChainBody {
	return w.chains
}
