package composite

import (
	"fmt"
	"image/color"

	"github.com/kozaktomas/photo-labels/internal/config"
	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/lucasb-eyer/go-colorful"
)

// Style holds the parsed rendering options.
type Style struct {
	Font        string
	Color       color.Color
	StrokeColor color.Color
	StrokeWidth int

	Outlines     bool
	OutlineColor color.Color
	OutlineWidth int

	Obfuscate   bool
	JPEGQuality int
}

// NewStyle parses the colours of cfg. Colours are hex strings ("#rrggbb" or
// "#rgb").
func NewStyle(cfg config.LabelsConfig) (Style, error) {
	s := Style{
		Font:         cfg.Font.Family,
		StrokeWidth:  max(cfg.Font.StrokeWidth, 0),
		Outlines:     cfg.Render.Outlines,
		OutlineWidth: max(cfg.Render.OutlineWidth, 1),
		Obfuscate:    cfg.Render.Obfuscate,
		JPEGQuality:  cfg.Render.JPEGQuality,
	}
	if s.JPEGQuality <= 0 || s.JPEGQuality > 100 {
		s.JPEGQuality = constants.DefaultJPEGQuality
	}

	var err error
	if s.Color, err = parseColor(cfg.Font.Color, "font.color"); err != nil {
		return Style{}, err
	}
	if s.StrokeColor, err = parseColor(cfg.Font.StrokeColor, "font.stroke_color"); err != nil {
		return Style{}, err
	}
	if s.OutlineColor, err = parseColor(cfg.Render.OutlineColor, "render.outline_color"); err != nil {
		return Style{}, err
	}
	return s, nil
}

func parseColor(hex, field string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q for %s: %w", hex, field, err)
	}
	return c.Clamped(), nil
}
