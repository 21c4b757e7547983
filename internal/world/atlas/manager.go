package atlas

import (
	"fmt"
	"sort"

	"chosenoffset.com/tilekit/internal/render"
)

// Manager manages multiple sprite atlases organized by layer
type Manager struct {
	loader         render.ResourceLoader
	atlasesByLayer map[string]*Atlas // Atlases organized by layer name
	atlasesByName  map[string]*Atlas // Atlases organized by atlas name
}

// NewManager creates a new atlas manager loading images through loader
func NewManager(loader render.ResourceLoader) *Manager {
	return &Manager{
		loader:         loader,
		atlasesByLayer: make(map[string]*Atlas),
		atlasesByName:  make(map[string]*Atlas),
	}
}

// LoadAtlasConfig loads an atlas from a config file and registers it
func (m *Manager) LoadAtlasConfig(configPath string) error {
	atlas, err := LoadAtlas(configPath, m.loader)
	if err != nil {
		return err
	}

	return m.RegisterAtlas(atlas)
}

// RegisterAtlas registers a loaded atlas with the manager
func (m *Manager) RegisterAtlas(atlas *Atlas) error {
	if atlas.Config.Layer == "" {
		return fmt.Errorf("atlas layer cannot be empty")
	}

	if atlas.Config.Name == "" {
		return fmt.Errorf("atlas name cannot be empty")
	}

	// Check for duplicate layer (one atlas per layer)
	if existing, exists := m.atlasesByLayer[atlas.Config.Layer]; exists {
		return fmt.Errorf("layer %s already has an atlas registered: %s", atlas.Config.Layer, existing.Config.Name)
	}

	m.atlasesByLayer[atlas.Config.Layer] = atlas
	m.atlasesByName[atlas.Config.Name] = atlas

	return nil
}

// GetAtlasByLayer returns the atlas for a specific layer
func (m *Manager) GetAtlasByLayer(layer string) (*Atlas, bool) {
	atlas, ok := m.atlasesByLayer[layer]
	return atlas, ok
}

// GetAtlasByName returns an atlas by its name
func (m *Manager) GetAtlasByName(name string) (*Atlas, bool) {
	atlas, ok := m.atlasesByName[name]
	return atlas, ok
}

// Resolve finds the atlas for a tile layer: by atlas name first, then by
// layer name
func (m *Manager) Resolve(tileset, layer string) (*Atlas, bool) {
	if tileset != "" {
		if atlas, ok := m.GetAtlasByName(tileset); ok {
			return atlas, true
		}
	}
	return m.GetAtlasByLayer(layer)
}

// GetLayers returns all registered layer names, sorted
func (m *Manager) GetLayers() []string {
	layers := make([]string, 0, len(m.atlasesByLayer))
	for layer := range m.atlasesByLayer {
		layers = append(layers, layer)
	}
	sort.Strings(layers)
	return layers
}
