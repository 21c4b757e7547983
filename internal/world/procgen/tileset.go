package procgen

import (
	"image"
	"image/color"
	"image/draw"

	"chosenoffset.com/tilekit/internal/world/atlas"
)

// Names used by the generated tileset
const (
	TilesetName  = "cave"
	TilesetLayer = "Ground"
	FloorTile    = "floor"
	WallTile     = "wall"
)

// Palette of the placeholder tiles
var Palette = struct {
	Floor       color.RGBA
	FloorDots   color.RGBA
	Wall        color.RGBA
	WallOutline color.RGBA
}{
	Floor:       color.RGBA{70, 65, 60, 255},   // Dark stone gray
	FloorDots:   color.RGBA{55, 50, 45, 255},   // Darker pebbles
	Wall:        color.RGBA{130, 125, 115, 255}, // Lighter stone for walls
	WallOutline: color.RGBA{90, 85, 78, 255},
}

// GenerateTileset draws the floor and wall tiles side by side and returns
// the image together with its atlas config. The config points at imagePath.
func GenerateTileset(tileSize int, imagePath string) (*image.RGBA, *atlas.AtlasConfig) {
	tiles := []*image.RGBA{
		dottedTile(tileSize, Palette.Floor, Palette.FloorDots),
		borderedTile(tileSize, Palette.Wall, Palette.WallOutline, max(1, tileSize/16)),
	}

	config := &atlas.AtlasConfig{
		Name:       TilesetName,
		Layer:      TilesetLayer,
		ImagePath:  imagePath,
		TileWidth:  tileSize,
		TileHeight: tileSize,
		Tiles: []atlas.TileDefinition{
			{Name: FloorTile, AtlasX: 0, AtlasY: 0, Properties: map[string]interface{}{"walkable": true}},
			{Name: WallTile, AtlasX: 1, AtlasY: 0, Properties: map[string]interface{}{"walkable": false}},
		},
	}

	return packTiles(tiles, tileSize, len(tiles)), config
}

func solidTile(size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

func borderedTile(size int, fill, border color.RGBA, width int) *image.RGBA {
	img := solidTile(size, fill)
	for i := 0; i < width; i++ {
		for j := 0; j < size; j++ {
			img.Set(j, i, border)
			img.Set(j, size-1-i, border)
			img.Set(i, j, border)
			img.Set(size-1-i, j, border)
		}
	}
	return img
}

// dottedTile places four pebbles off-center so flipped copies look different
func dottedTile(size int, base, dots color.RGBA) *image.RGBA {
	img := solidTile(size, base)
	quarter := size / 4
	dotSize := max(1, size/16)
	for _, p := range []image.Point{{quarter, quarter}, {3 * quarter, quarter / 2}, {quarter / 2, 3 * quarter}, {2 * quarter, 2 * quarter}} {
		for dy := 0; dy < dotSize; dy++ {
			for dx := 0; dx < dotSize; dx++ {
				img.Set(p.X+dx, p.Y+dy, dots)
			}
		}
	}
	return img
}

// packTiles lays tiles out row by row on a transparent sheet
func packTiles(tiles []*image.RGBA, size, columns int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	sheet := image.NewRGBA(image.Rect(0, 0, columns*size, rows*size))

	for i, tile := range tiles {
		x := (i % columns) * size
		y := (i / columns) * size
		draw.Draw(sheet, image.Rect(x, y, x+size, y+size), tile, image.Point{}, draw.Src)
	}

	return sheet
}
