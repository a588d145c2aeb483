// Package scene reads photo descriptions for offline label layout: image
// size, optional crop and the face regions with names.
package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/kozaktomas/photo-labels/internal/geometry"
	"github.com/kozaktomas/photo-labels/internal/labels"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScene is returned when a scene fails validation.
var ErrInvalidScene = errors.New("invalid scene")

// Scene describes one photo. Persons keep their order; it decides the
// order labels are searched in.
type Scene struct {
	Image   string          `yaml:"image,omitempty" json:"image,omitempty"` // optional, relative to the scene file
	Width   int             `yaml:"width" json:"width"`
	Height  int             `yaml:"height" json:"height"`
	Margin  int             `yaml:"margin,omitempty" json:"margin,omitempty"`
	Crop    *geometry.Rect  `yaml:"crop,omitempty" json:"crop,omitempty"`
	Persons []labels.Person `yaml:"persons" json:"persons"`
}

// Parse decodes a YAML or JSON scene and validates it.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("could not parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("could not read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks image size, crop and face regions.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	if s.Margin < 0 {
		return fmt.Errorf("%w: negative margin %d", ErrInvalidScene, s.Margin)
	}
	image := geometry.Rect{W: s.Width, H: s.Height}
	if s.Crop != nil {
		c := *s.Crop
		if c.Area() == 0 || c.X < 0 || c.Y < 0 || c.Right() > image.Right() || c.Bottom() > image.Bottom() {
			return fmt.Errorf("%w: crop %v outside image %v", ErrInvalidScene, c, image)
		}
	}
	for i, p := range s.Persons {
		if p.Rect.Area() == 0 {
			return fmt.Errorf("%w: person %d (%q) has an empty face region", ErrInvalidScene, i, p.Name)
		}
	}
	return nil
}

// Input converts the scene into layout input.
func (s *Scene) Input() labels.Input {
	return labels.Input{
		Photo: labels.PhotoContext{
			Width:  s.Width,
			Height: s.Height,
			Crop:   s.Crop,
			Margin: s.Margin,
		},
		Persons: s.Persons,
	}
}
