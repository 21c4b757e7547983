package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Layer types understood by the loader
const (
	LayerIntGrid  = "intgrid"
	LayerTiles    = "tiles"
	LayerEntities = "entities"
)

// Project is a level project file: shared settings plus its levels
type Project struct {
	Path     string   `json:"-"`         // File the project was loaded from
	Name     string   `json:"name"`      // Project name
	TileSize int      `json:"tile_size"` // Default grid size for layers that omit one
	Atlases  []string `json:"atlases"`   // Atlas configs, relative to the project file
	Levels   []Level  `json:"levels"`
}

// Level is one playable level made of stacked layers
type Level struct {
	Identifier string  `json:"identifier"`
	IID        string  `json:"iid"`
	PxWidth    int     `json:"width_px"`           // Level width in pixels
	PxHeight   int     `json:"height_px"`          // Level height in pixels
	External   string  `json:"external,omitempty"` // Separate level file, relative to the project
	Layers     []Layer `json:"layers"`

	loaded bool // external file already read
}

// LoadProject loads and validates a project file
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	project, err := ParseProject(data)
	if err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	project.Path = path

	return project, nil
}

// ParseProject decodes a project from JSON. Inline levels are validated
// right away, external ones when they are loaded.
func ParseProject(data []byte) (*Project, error) {
	var project Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}

	if project.TileSize < 0 {
		return nil, fmt.Errorf("invalid tile size: %d", project.TileSize)
	}

	for i := range project.Levels {
		level := &project.Levels[i]
		if level.Identifier == "" {
			return nil, fmt.Errorf("level %d has no identifier", i)
		}
		if level.External != "" && len(level.Layers) == 0 {
			continue
		}
		if err := project.prepareLevel(level); err != nil {
			return nil, fmt.Errorf("level %s: %w", level.Identifier, err)
		}
	}

	return &project, nil
}

// ResolvePath resolves a path relative to the project file
func (p *Project) ResolvePath(rel string) string {
	if filepath.IsAbs(rel) || p.Path == "" {
		return rel
	}
	return filepath.Join(filepath.Dir(p.Path), rel)
}

// Level returns the level with the given identifier, loading it from its
// external file the first time when the project only references it.
func (p *Project) Level(identifier string) (*Level, error) {
	for i := range p.Levels {
		level := &p.Levels[i]
		if level.Identifier != identifier {
			continue
		}

		if level.External == "" || level.loaded || len(level.Layers) > 0 {
			return level, nil
		}

		external, err := p.loadExternalLevel(level.External)
		if err != nil {
			return nil, err
		}
		if external.Identifier == "" {
			external.Identifier = identifier
		}
		if external.Identifier != identifier {
			return nil, fmt.Errorf("level file %s declares level %q, expected %q", level.External, external.Identifier, identifier)
		}
		if external.IID == "" {
			external.IID = level.IID
		}
		external.External = level.External
		external.loaded = true

		*level = *external
		return level, nil
	}

	return nil, fmt.Errorf("level not found: %s", identifier)
}

// LevelNames returns the identifiers of all levels in file order
func (p *Project) LevelNames() []string {
	names := make([]string, len(p.Levels))
	for i, level := range p.Levels {
		names[i] = level.Identifier
	}
	return names
}

func (p *Project) loadExternalLevel(rel string) (*Level, error) {
	path := p.ResolvePath(rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}

	var level Level
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, fmt.Errorf("failed to parse level file %s: %w", path, err)
	}

	if err := p.prepareLevel(&level); err != nil {
		return nil, fmt.Errorf("invalid level file %s: %w", path, err)
	}

	return &level, nil
}

// prepareLevel fills project defaults into the layers and validates them
func (p *Project) prepareLevel(level *Level) error {
	for i := range level.Layers {
		layer := &level.Layers[i]
		if layer.GridSize == 0 {
			layer.GridSize = p.TileSize
		}
		if err := validateLayer(layer); err != nil {
			return fmt.Errorf("layer %q: %w", layer.Identifier, err)
		}
	}

	if level.PxWidth <= 0 || level.PxHeight <= 0 {
		level.PxWidth, level.PxHeight = level.extent()
	}

	return nil
}

// extent derives the pixel size of a level from its grid layers
func (l *Level) extent() (int, int) {
	w, h := 0, 0
	for _, layer := range l.Layers {
		if layer.Type == LayerEntities {
			continue
		}
		w = max(w, layer.Width*layer.GridSize)
		h = max(h, layer.Height*layer.GridSize)
	}
	return w, h
}

// validateLayer checks the layer data against its declared type and size
func validateLayer(layer *Layer) error {
	switch layer.Type {
	case LayerIntGrid:
		if layer.Width <= 0 || layer.Height <= 0 {
			return fmt.Errorf("invalid grid dimensions: %dx%d", layer.Width, layer.Height)
		}
		if layer.GridSize <= 0 {
			return fmt.Errorf("invalid grid size: %d", layer.GridSize)
		}
		if len(layer.IntGrid) != layer.Width*layer.Height {
			return fmt.Errorf("int grid size mismatch: expected %d values, got %d", layer.Width*layer.Height, len(layer.IntGrid))
		}
		for _, def := range layer.Values {
			if def.Value == 0 {
				return fmt.Errorf("int grid value 0 is reserved for empty cells (%s)", def.Identifier)
			}
		}
	case LayerTiles:
		if layer.GridSize <= 0 {
			return fmt.Errorf("invalid grid size: %d", layer.GridSize)
		}
	case LayerEntities:
	default:
		return fmt.Errorf("unknown layer type: %q", layer.Type)
	}

	return nil
}

// LayerByName returns the first layer with the given identifier
func (l *Level) LayerByName(name string) (*Layer, bool) {
	for i := range l.Layers {
		if l.Layers[i].Identifier == name {
			return &l.Layers[i], true
		}
	}
	return nil, false
}

// LayerByIDOrName matches a layer by IID first, then by identifier
func (l *Level) LayerByIDOrName(idOrName string) (*Layer, bool) {
	for i := range l.Layers {
		if l.Layers[i].IID != "" && l.Layers[i].IID == idOrName {
			return &l.Layers[i], true
		}
	}
	return l.LayerByName(idOrName)
}

// Entities returns every entity of every entity layer, in layer order
func (l *Level) Entities() []EntityInstance {
	var entities []EntityInstance
	for _, layer := range l.Layers {
		if layer.Type != LayerEntities {
			continue
		}
		entities = append(entities, layer.Entities...)
	}
	return entities
}
