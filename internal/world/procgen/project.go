package procgen

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"chosenoffset.com/tilekit/internal/world/maploader"
)

// ProjectOptions describe a generated project
type ProjectOptions struct {
	Name   string
	Levels int // Number of levels, each with its own seed
	Cave   CaveOptions
}

// GenerateProject builds a project with Levels caves. Level i uses seed
// Cave.Seed+i and is named Level_i.
func GenerateProject(opts ProjectOptions) (*maploader.Project, error) {
	if opts.Levels <= 0 {
		return nil, fmt.Errorf("level count must be positive, got %d", opts.Levels)
	}

	project := &maploader.Project{
		Name:     opts.Name,
		TileSize: opts.Cave.TileSize,
		Atlases:  []string{TilesetName + ".json"},
	}

	for i := 0; i < opts.Levels; i++ {
		cave := opts.Cave
		cave.Seed += int64(i)
		level, err := GenerateLevel(fmt.Sprintf("Level_%d", i), cave)
		if err != nil {
			return nil, fmt.Errorf("failed to generate level %d: %w", i, err)
		}
		project.Levels = append(project.Levels, level)
	}

	return project, nil
}

// WriteProject writes the project file, its atlas config and the tileset
// image into dir and returns the project file path
func WriteProject(dir string, project *maploader.Project) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	img, config := GenerateTileset(project.TileSize, TilesetName+".png")

	if err := savePNG(filepath.Join(dir, config.ImagePath), img); err != nil {
		return "", fmt.Errorf("failed to save tileset image: %w", err)
	}
	if err := saveJSON(filepath.Join(dir, TilesetName+".json"), config); err != nil {
		return "", fmt.Errorf("failed to save atlas config: %w", err)
	}

	path := filepath.Join(dir, project.Name+".json")
	if err := saveJSON(path, project); err != nil {
		return "", fmt.Errorf("failed to save project: %w", err)
	}
	project.Path = path

	return path, nil
}

func savePNG(path string, img *image.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

func saveJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
