package labels

import (
	"fmt"
	"strings"

	"github.com/kozaktomas/photo-labels/internal/geometry"
	"github.com/kozaktomas/photo-labels/internal/textmetrics"
)

// Calculator turns a label's position, rows and font size into a rect.
type Calculator struct {
	Photo       PhotoContext
	Persons     []Person
	Measurer    textmetrics.Measurer
	Font        string
	StrokeWidth int
}

// Compute returns the clamped rect, alignment and wrapped lines for l
// without modifying it.
func (c *Calculator) Compute(l *Label) (geometry.Rect, Alignment, []string, error) {
	lines := Wrap(l.Text, l.NumRows)
	size, err := c.Measurer.MeasureText(strings.Join(lines, "\n"), c.Font, l.FontSize, c.StrokeWidth)
	if err != nil {
		return geometry.Rect{}, AlignCenter, nil, fmt.Errorf("measure label %d: %w", l.ID, err)
	}

	r, align := anchor(c.Persons[l.Person].Rect, l.Position, size)
	return geometry.Clamp(r, c.Photo.Usable()), align, lines, nil
}

// Place recomputes l's rect if it is stale. When measuring fails the label
// keeps its previous rect and the error is returned.
func (c *Calculator) Place(l *Label) error {
	if !l.dirty && l.placed {
		return nil
	}

	r, align, lines, err := c.Compute(l)
	l.dirty = false
	if err != nil {
		return err
	}

	l.rect = r
	l.align = align
	l.lines = lines
	l.placed = true
	return nil
}

// anchor positions a label of the given size next to face.
func anchor(face geometry.Rect, pos Position, size textmetrics.Size) (geometry.Rect, Alignment) {
	r := geometry.Rect{W: size.W, H: size.H}

	switch pos {
	case PositionBelow:
		r.X = face.CenterX() - size.W/2
		r.Y = face.Bottom()
		return r, AlignCenter
	case PositionAbove:
		r.X = face.CenterX() - size.W/2
		r.Y = face.Y - size.H
		return r, AlignCenter
	case PositionLeft:
		r.X = face.X - size.W
		r.Y = face.CenterY() - size.H/2
		return r, AlignRight
	case PositionRight:
		r.X = face.Right()
		r.Y = face.CenterY() - size.H/2
		return r, AlignLeft
	}

	// Unreachable for parsed positions; fall back to below.
	return anchor(face, PositionBelow, size)
}
