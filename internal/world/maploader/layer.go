package maploader

import (
	"slices"

	"chosenoffset.com/tilekit/internal/core/chains"
)

// Layer is one grid of a level. Which fields are used depends on Type.
type Layer struct {
	Identifier string `json:"identifier"`
	IID        string `json:"iid"`
	Type       string `json:"type"`                  // intgrid, tiles or entities
	GridSize   int    `json:"grid_size"`             // Cell size in pixels (project tile size when omitted)
	Width      int    `json:"c_wid"`                 // Width in cells
	Height     int    `json:"c_hei"`                 // Height in cells
	OffsetX    int    `json:"px_offset_x"`           // Pixel offset applied when drawing
	OffsetY    int    `json:"px_offset_y"`           // Pixel offset applied when drawing
	Visible    *bool  `json:"visible,omitempty"`     // Defaults to true
	Tileset    string `json:"tileset,omitempty"`     // Atlas name for tile layers

	// intgrid
	Values  []IntGridValue `json:"values,omitempty"`
	IntGrid []int          `json:"int_grid_csv,omitempty"` // Row-major cell values, 0 = empty

	// tiles
	Tiles []TileInstance `json:"tiles,omitempty"`

	// entities
	Entities []EntityInstance `json:"entities,omitempty"`
}

// IntGridValue names one int grid value (e.g. 1 = "wall")
type IntGridValue struct {
	Value      int    `json:"value"`
	Identifier string `json:"identifier"`
}

// TileInstance places an atlas tile at a pixel position
type TileInstance struct {
	Tile string `json:"tile"` // Atlas tile name
	Px   [2]int `json:"px"`   // Top-left position in pixels
	F    int    `json:"f"`    // Flip bits: 1 = X, 2 = Y
}

// FlipX reports whether the tile is mirrored horizontally
func (t TileInstance) FlipX() bool { return t.F&1 != 0 }

// FlipY reports whether the tile is mirrored vertically
func (t TileInstance) FlipY() bool { return t.F&2 != 0 }

// IsVisible reports whether the layer should be drawn
func (ly *Layer) IsVisible() bool {
	return ly.Visible == nil || *ly.Visible
}

// IntGridValueAt returns the raw value of a cell, or 0 outside the layer
func (ly *Layer) IntGridValueAt(x, y int) int {
	if x < 0 || y < 0 || x >= ly.Width || y >= ly.Height {
		return 0
	}
	idx := y*ly.Width + x
	if idx >= len(ly.IntGrid) {
		return 0
	}
	return ly.IntGrid[idx]
}

// IntGridName returns the classification name of a cell. Empty and unknown
// values have no name.
func (ly *Layer) IntGridName(x, y int) string {
	value := ly.IntGridValueAt(x, y)
	if value == 0 {
		return ""
	}
	for _, def := range ly.Values {
		if def.Value == value {
			return def.Identifier
		}
	}
	return ""
}

// SolidGrid exposes the layer as a solidity grid: a cell is solid when its
// classification name is one of collisionNames.
func (ly *Layer) SolidGrid(collisionNames []string) chains.Grid {
	return chains.Grid{
		Width:  ly.Width,
		Height: ly.Height,
		Solid: func(x, y int) bool {
			name := ly.IntGridName(x, y)
			return name != "" && slices.Contains(collisionNames, name)
		},
	}
}
