// Package config loads the tool settings: window, physics world, level
// selection and debug overlays. Every field has a default so a partial file
// only overrides what it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/tilekit/internal/level"
	"chosenoffset.com/tilekit/internal/physics"
)

// Config holds all settings
type Config struct {
	Window  WindowConfig  `json:"window"`
	Physics PhysicsConfig `json:"physics"`
	Level   LevelConfig   `json:"level"`
	Debug   DebugConfig   `json:"debug"`
}

// WindowConfig sizes the viewer window
type WindowConfig struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`  // Window width in pixels
	Height int    `json:"height"` // Window height in pixels
}

// PhysicsConfig defines the physics world
type PhysicsConfig struct {
	GravityX       float64 `json:"gravity_x"`        // m/s²
	GravityY       float64 `json:"gravity_y"`        // m/s², positive is down
	PixelsPerMeter float64 `json:"pixels_per_meter"` // Screen to physics scale
}

// LevelConfig selects the level and how collision is built from it
type LevelConfig struct {
	DataDir        string   `json:"data_dir"`        // Directory scanned for projects
	ProjectFile    string   `json:"project_file"`    // Project to open, empty means the first one found
	LevelName      string   `json:"level_name"`      // Level identifier, empty means the first level
	CollisionNames []string `json:"collision_names"` // Int grid names that are solid
	Scale          float64  `json:"scale"`           // Draw scale
	KeepColinear   bool     `json:"keep_colinear"`   // Keep every unit corner in chains
}

// DebugConfig toggles overlays in the viewer
type DebugConfig struct {
	DrawChains      bool    `json:"draw_chains"`
	DrawVisibility  bool    `json:"draw_visibility"`
	VisibilityRange float64 `json:"visibility_range"` // Ray length in pixels
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() *Config {
	p := physics.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:  "tilekit chain viewer",
			Width:  1280,
			Height: 720,
		},
		Physics: PhysicsConfig{
			GravityX:       p.GravityX,
			GravityY:       p.GravityY,
			PixelsPerMeter: p.PixelsPerMeter,
		},
		Level: LevelConfig{
			DataDir:        "data",
			CollisionNames: []string{"wall"},
			Scale:          1,
		},
		Debug: DebugConfig{
			DrawChains:      true,
			DrawVisibility:  true,
			VisibilityRange: 2000,
		},
	}
}

// LoadConfig loads config from a JSON file on top of the defaults. A missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate rejects settings no component can work with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Physics.PixelsPerMeter <= 0 {
		return fmt.Errorf("pixels_per_meter must be positive, got %g", c.Physics.PixelsPerMeter)
	}
	if c.Level.Scale <= 0 {
		return fmt.Errorf("level scale must be positive, got %g", c.Level.Scale)
	}
	return nil
}

// PhysicsWorldConfig returns the settings for physics.NewWorld
func (c *Config) PhysicsWorldConfig() physics.Config {
	return physics.Config{
		GravityX:       c.Physics.GravityX,
		GravityY:       c.Physics.GravityY,
		PixelsPerMeter: c.Physics.PixelsPerMeter,
	}
}

// LevelServiceConfig returns the settings for level.NewService, with the
// project and level resolved by the caller
func (c *Config) LevelServiceConfig(projectFile, levelName string) level.Config {
	return level.Config{
		ProjectFile:    projectFile,
		LevelName:      levelName,
		CollisionNames: c.Level.CollisionNames,
		Scale:          c.Level.Scale,
		KeepColinear:   c.Level.KeepColinear,
	}
}
