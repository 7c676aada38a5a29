// Package diagram defines the serialization format for computed genogram
// layouts.
//
// A Layout is the stable interchange contract between the layout engine and
// every rendering sink: it carries positioned person shapes and resolved
// connector draw requests, nothing derivable and nothing engine-internal.
// The same document is used for API responses, file artifacts and caching.
package diagram

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/genogram/pkg/genogram"
)

// Shape is one positioned person box.
type Shape struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Gender string  `json:"gender"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DisplayLabel returns the label if set, otherwise the id.
func (s *Shape) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// Connector is one serialized connector draw request.
type Connector struct {
	Kind   string           `json:"kind"`
	Points []genogram.Point `json:"points"`
	Color  string           `json:"color,omitempty"`
	Width  float64          `json:"width,omitempty"`
	Dashed bool             `json:"dashed,omitempty"`
}

// Layout is the complete serialized result of one layout pass.
type Layout struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation string      `json:"orientation"`
	Shapes      []Shape     `json:"shapes"`
	Connectors  []Connector `json:"connectors,omitempty"`
}

// Capture runs a layout and routing pass over the engine and captures the
// result. labels maps person ids to display labels and may be nil.
func Capture[E any](e *genogram.Engine[E], labels map[string]string) Layout {
	placements, connections := e.Compute()
	opts := e.Options()

	genders := make(map[string]genogram.Gender, len(placements))
	for _, n := range e.Nodes() {
		genders[n.ID] = n.Gender
	}

	l := Layout{
		Orientation: opts.Orientation.String(),
		Shapes:      make([]Shape, len(placements)),
		Connectors:  make([]Connector, len(connections)),
	}
	l.Width, l.Height = e.Bounds()

	for i, p := range placements {
		l.Shapes[i] = Shape{
			ID:     p.ID,
			Label:  labels[p.ID],
			Gender: genders[p.ID].String(),
			X:      p.X,
			Y:      p.Y,
			Width:  opts.BoxWidth,
			Height: opts.BoxHeight,
		}
	}
	for i, c := range connections {
		l.Connectors[i] = Connector{
			Kind:   c.Kind.String(),
			Points: c.Points,
			Color:  c.Color,
			Width:  c.Width,
			Dashed: c.Dashed,
		}
	}
	return l
}

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and checks that the
// document carries shapes.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Shapes) == 0 {
		return Layout{}, fmt.Errorf("layout must contain shapes")
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file with 0644 permissions.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
