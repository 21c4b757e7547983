package maploader

import "slices"

// IntPoint is an integer pixel or cell position
type IntPoint struct {
	X, Y int
}

// EntityInstance is an entity placed in an entity layer
type EntityInstance struct {
	Identifier string                 `json:"identifier"`
	IID        string                 `json:"iid"`
	Px         [2]int                 `json:"px"` // Position in pixels
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Tags       []string               `json:"tags,omitempty"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

// Position returns the entity position in pixels
func (e EntityInstance) Position() IntPoint {
	return IntPoint{X: e.Px[0], Y: e.Px[1]}
}

// Size returns the entity size in pixels
func (e EntityInstance) Size() IntPoint {
	return IntPoint{X: e.Width, Y: e.Height}
}

// HasTag reports whether the entity carries tag
func (e EntityInstance) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Field returns a custom field. Cell references stored as {"cx": .., "cy": ..}
// come back as an IntPoint.
func (e EntityInstance) Field(name string) (interface{}, bool) {
	value, ok := e.Fields[name]
	if !ok {
		return nil, false
	}

	if m, isMap := value.(map[string]interface{}); isMap {
		cx, okX := m["cx"].(float64)
		cy, okY := m["cy"].(float64)
		if okX && okY {
			return IntPoint{X: int(cx), Y: int(cy)}, true
		}
	}

	return value, true
}
