// Package procgen generates cave levels from layered simplex noise and the
// placeholder tileset they are drawn with.
package procgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"

	"chosenoffset.com/tilekit/internal/world/maploader"
)

// Int grid values and names written into generated levels
const (
	EmptyValue = 0
	WallValue  = 1
	WallName   = "wall"
)

// CaveOptions shape the generated caves
type CaveOptions struct {
	Width     int     // Level width in cells
	Height    int     // Level height in cells
	TileSize  int     // Cell size in pixels
	Seed      int64   // Noise and tile variation seed
	Octaves   int     // Noise layers summed together
	Frequency float64 // Frequency of the first octave, per cell
	Threshold float64 // Cells whose noise exceeds this are solid, in [-1, 1]
	Border    int     // Thickness of the solid frame around the level
}

// DefaultCaveOptions returns settings that give open, connected-looking caves
func DefaultCaveOptions() CaveOptions {
	return CaveOptions{
		Width:     48,
		Height:    32,
		TileSize:  16,
		Seed:      1,
		Octaves:   3,
		Frequency: 0.08,
		Threshold: 0.15,
		Border:    1,
	}
}

// Validate rejects options that cannot produce a level
func (o CaveOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid level size: %dx%d", o.Width, o.Height)
	}
	if o.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %d", o.TileSize)
	}
	if o.Octaves <= 0 {
		return fmt.Errorf("octaves must be positive, got %d", o.Octaves)
	}
	if o.Border < 0 {
		return fmt.Errorf("border must not be negative, got %d", o.Border)
	}
	return nil
}

// GenerateCells returns the row-major solidity of a cave
func GenerateCells(opts CaveOptions) []bool {
	noises := make([]opensimplex.Noise, opts.Octaves)
	for i := range noises {
		noises[i] = opensimplex.New(opts.Seed + int64(i))
	}

	cells := make([]bool, opts.Width*opts.Height)
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			if inBorder(x, y, opts) {
				cells[y*opts.Width+x] = true
				continue
			}
			cells[y*opts.Width+x] = sample(noises, float64(x), float64(y), opts.Frequency) > opts.Threshold
		}
	}

	return cells
}

// sample sums the octaves, halving the amplitude and doubling the frequency
// each time, normalized back to [-1, 1]
func sample(noises []opensimplex.Noise, x, y, frequency float64) float64 {
	sum, total := 0.0, 0.0
	amplitude := 1.0
	for _, n := range noises {
		sum += amplitude * n.Eval2(x*frequency, y*frequency)
		total += amplitude
		amplitude /= 2
		frequency *= 2
	}
	return sum / total
}

func inBorder(x, y int, opts CaveOptions) bool {
	b := opts.Border
	return x < b || y < b || x >= opts.Width-b || y >= opts.Height-b
}

// GenerateLevel builds a complete level: entities, wall tiles, the
// collision int grid and floor tiles, top to bottom. A player spawn is
// placed on the open cell closest to the center.
func GenerateLevel(identifier string, opts CaveOptions) (maploader.Level, error) {
	if err := opts.Validate(); err != nil {
		return maploader.Level{}, err
	}

	cells := GenerateCells(opts)
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 0x7117e))

	intGrid := make([]int, len(cells))
	var walls, floor []maploader.TileInstance
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			px := [2]int{x * opts.TileSize, y * opts.TileSize}
			floor = append(floor, maploader.TileInstance{Tile: FloorTile, Px: px, F: rng.IntN(4)})

			if cells[y*opts.Width+x] {
				intGrid[y*opts.Width+x] = WallValue
				walls = append(walls, maploader.TileInstance{Tile: WallTile, Px: px})
			}
		}
	}

	hidden := false
	level := maploader.Level{
		Identifier: identifier,
		IID:        identifier,
		PxWidth:    opts.Width * opts.TileSize,
		PxHeight:   opts.Height * opts.TileSize,
		Layers: []maploader.Layer{
			{
				Identifier: "Entities",
				IID:        identifier + "-entities",
				Type:       maploader.LayerEntities,
				GridSize:   opts.TileSize,
				Entities:   spawnEntities(cells, opts),
			},
			{
				Identifier: "Walls",
				IID:        identifier + "-walls",
				Type:       maploader.LayerTiles,
				GridSize:   opts.TileSize,
				Width:      opts.Width,
				Height:     opts.Height,
				Tileset:    TilesetName,
				Tiles:      walls,
			},
			{
				Identifier: "Collisions",
				IID:        identifier + "-collisions",
				Type:       maploader.LayerIntGrid,
				GridSize:   opts.TileSize,
				Width:      opts.Width,
				Height:     opts.Height,
				Visible:    &hidden,
				Values:     []maploader.IntGridValue{{Value: WallValue, Identifier: WallName}},
				IntGrid:    intGrid,
			},
			{
				Identifier: "Ground",
				IID:        identifier + "-ground",
				Type:       maploader.LayerTiles,
				GridSize:   opts.TileSize,
				Width:      opts.Width,
				Height:     opts.Height,
				Tileset:    TilesetName,
				Tiles:      floor,
			},
		},
	}

	return level, nil
}

func spawnEntities(cells []bool, opts CaveOptions) []maploader.EntityInstance {
	cx, cy := opts.Width/2, opts.Height/2
	best, bestDist := -1, 0
	for i, solid := range cells {
		if solid {
			continue
		}
		dx := i%opts.Width - cx
		dy := i/opts.Width - cy
		if d := dx*dx + dy*dy; best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil
	}

	x, y := best%opts.Width, best/opts.Width
	return []maploader.EntityInstance{{
		Identifier: "Player",
		IID:        "player",
		Px:         [2]int{x * opts.TileSize, y * opts.TileSize},
		Width:      opts.TileSize,
		Height:     opts.TileSize,
		Tags:       []string{"spawn"},
		Fields: map[string]interface{}{
			"cell": map[string]interface{}{"cx": float64(x), "cy": float64(y)},
		},
	}}
}
