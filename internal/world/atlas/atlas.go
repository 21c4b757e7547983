package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/tilekit/internal/render"
)

// TileDefinition defines a single tile within an atlas
type TileDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "stone_wall")
	AtlasX     int                    `json:"atlas_x"`    // X position in atlas (in tiles)
	AtlasY     int                    `json:"atlas_y"`    // Y position in atlas (in tiles)
	Properties map[string]interface{} `json:"properties"` // Custom properties (type, friction, etc.)
}

// AtlasConfig defines the JSON configuration for a sprite atlas
type AtlasConfig struct {
	Name       string           `json:"name"`        // Atlas name, referenced by tile layers
	Layer      string           `json:"layer"`       // Layer this atlas belongs to (e.g., "ground", "decor")
	ImagePath  string           `json:"image_path"`  // Path to the atlas image, relative to the config file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`       // Array of tile definitions
}

// Atlas represents a loaded sprite atlas
type Atlas struct {
	Config      *AtlasConfig
	Image       render.Image
	TilesByName map[string]*TileDefinition // Quick lookup by name
}

// ParseAtlasConfig decodes and validates an atlas configuration
func ParseAtlasConfig(data []byte) (*AtlasConfig, error) {
	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config: %w", err)
	}

	if config.TileWidth <= 0 || config.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", config.TileWidth, config.TileHeight)
	}

	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}

	return &config, nil
}

// LoadAtlas loads a sprite atlas from a JSON configuration file. The image
// path is resolved relative to the configuration file.
func LoadAtlas(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	config, err := ParseAtlasConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid atlas config %s: %w", configPath, err)
	}

	imagePath := config.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(configPath), imagePath)
	}

	img, err := loader.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imagePath, err)
	}

	return NewAtlas(config, img), nil
}

// NewAtlas builds an atlas from an already decoded config and image
func NewAtlas(config *AtlasConfig, img render.Image) *Atlas {
	tilesByName := make(map[string]*TileDefinition)
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		if tile.Name != "" {
			tilesByName[tile.Name] = tile
		}
	}

	return &Atlas{
		Config:      config,
		Image:       img,
		TilesByName: tilesByName,
	}
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// TileRect returns the source rectangle of a tile inside the atlas image
func (a *Atlas) TileRect(tile *TileDefinition) image.Rectangle {
	x := tile.AtlasX * a.Config.TileWidth
	y := tile.AtlasY * a.Config.TileHeight
	return image.Rect(x, y, x+a.Config.TileWidth, y+a.Config.TileHeight)
}

// GetTileSubImage returns the sub-image for a specific tile
func (a *Atlas) GetTileSubImage(tile *TileDefinition) render.Image {
	return a.Image.SubImage(a.TileRect(tile))
}

// DrawTile draws a tile at the given position, mirrored as requested
func (a *Atlas) DrawTile(dst render.Image, tileName string, x, y float64, flipX, flipY bool) error {
	tile, ok := a.GetTile(tileName)
	if !ok {
		return fmt.Errorf("tile not found: %s", tileName)
	}

	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	sx, sy := 1.0, 1.0
	if flipX {
		sx = -1
	}
	if flipY {
		sy = -1
	}
	// Mirror around the tile center so the tile stays in its cell
	opts.GeoM.Translate(-float64(a.Config.TileWidth)/2, -float64(a.Config.TileHeight)/2)
	opts.GeoM.Scale(sx, sy)
	opts.GeoM.Translate(x+float64(a.Config.TileWidth)/2, y+float64(a.Config.TileHeight)/2)

	dst.DrawImage(a.GetTileSubImage(tile), opts)
	return nil
}

// GetTileProperty retrieves a property from a tile definition
func (td *TileDefinition) GetTileProperty(key string) (interface{}, bool) {
	if td.Properties == nil {
		return nil, false
	}
	val, ok := td.Properties[key]
	return val, ok
}

// GetTilePropertyBool retrieves a boolean property
func (td *TileDefinition) GetTilePropertyBool(key string, defaultVal bool) bool {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if boolVal, ok := val.(bool); ok {
		return boolVal
	}
	return defaultVal
}

// GetTilePropertyString retrieves a string property
func (td *TileDefinition) GetTilePropertyString(key string, defaultVal string) string {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return defaultVal
}

// GetTilePropertyInt retrieves an integer property
func (td *TileDefinition) GetTilePropertyInt(key string, defaultVal int) int {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	// JSON numbers are float64
	if floatVal, ok := val.(float64); ok {
		return int(floatVal)
	}
	return defaultVal
}
