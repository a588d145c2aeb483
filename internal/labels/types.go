// Package labels places name labels next to face regions of a photo.
//
// Every named person gets one label. Labels start at the configured default
// placement; when they clash with each other, with faces or with the image
// border, a bounded depth-first search over placement axes (position, row
// count, global font scale) looks for a clash-free layout and falls back to
// the least overlapping one it has seen.
package labels

import (
	"fmt"
	"strings"

	"github.com/kozaktomas/photo-labels/internal/geometry"
)

// Position is where a label sits relative to its face.
type Position int

const (
	PositionBelow Position = iota
	PositionAbove
	PositionLeft
	PositionRight
)

var positionNames = [...]string{
	PositionBelow: "below",
	PositionAbove: "above",
	PositionLeft:  "left",
	PositionRight: "right",
}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// ParsePosition parses a position name (case-insensitive).
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range positionNames {
		if n == name {
			return Position(i), nil
		}
	}
	return 0, fmt.Errorf("%w: position %q", ErrUnknownValue, s)
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Alignment is the horizontal alignment of label lines inside the label rect.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ClashState is the result of the last clash test of a label.
type ClashState int

const (
	ClashUnknown ClashState = iota
	ClashClear
	ClashFound
)

// PhotoContext describes the photo being labelled. Immutable per photo.
type PhotoContext struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Crop   *geometry.Rect `json:"crop,omitempty"` // optional; labels must stay inside it
	Margin int            `json:"margin"`
}

// Bounds returns the crop rect, or the whole image when there is no crop.
func (p PhotoContext) Bounds() geometry.Rect {
	if p.Crop != nil {
		return *p.Crop
	}
	return geometry.Rect{W: p.Width, H: p.Height}
}

// Usable returns the area labels are clamped into.
func (p PhotoContext) Usable() geometry.Rect {
	return p.Bounds().Inset(p.Margin)
}

// Person is a face region with an optional name, in absolute pixels.
type Person struct {
	Name string        `json:"name"`
	Rect geometry.Rect `json:"rect"`
}

// Label is the mutable layout state of one person's name.
// Changing position, rows or font size invalidates the rect; it is
// recomputed by the placement calculator before the next clash test.
type Label struct {
	ID       int
	Person   int // index into the person list
	Text     string
	Position Position
	NumRows  int
	FontSize int

	Clash     ClashState
	ClashArea int

	rect   geometry.Rect
	align  Alignment
	lines  []string
	placed bool
	dirty  bool
}

func newLabel(id, person int, text string, pos Position, rows int) *Label {
	return &Label{ID: id, Person: person, Text: text, Position: pos, NumRows: max(rows, 1), dirty: true}
}

// SetPosition changes the position and invalidates the rect.
func (l *Label) SetPosition(p Position) {
	if l.Position != p {
		l.Position = p
		l.dirty = true
	}
}

// SetNumRows changes the row count and invalidates the rect.
func (l *Label) SetNumRows(rows int) {
	rows = max(rows, 1)
	if l.NumRows != rows {
		l.NumRows = rows
		l.dirty = true
	}
}

// SetFontSize changes the font size and invalidates the rect.
func (l *Label) SetFontSize(size int) {
	if l.FontSize != size {
		l.FontSize = size
		l.dirty = true
	}
}

// Rect returns the last computed rect.
func (l *Label) Rect() geometry.Rect { return l.rect }

// Alignment returns the last computed alignment.
func (l *Label) Alignment() Alignment { return l.align }

// Lines returns the wrapped text lines of the last computed rect.
func (l *Label) Lines() []string { return l.lines }

// Placed is a finished label handed to the compositing step.
type Placed struct {
	Person    int           `json:"person"`
	Text      string        `json:"text"`
	Lines     []string      `json:"lines"`
	Rect      geometry.Rect `json:"rect"`
	Alignment Alignment     `json:"alignment"`
	Position  Position      `json:"position"`
	NumRows   int           `json:"num_rows"`
	FontSize  int           `json:"font_size"`
	Clash     bool          `json:"clash"`
}

func (l *Label) placedCopy() Placed {
	return Placed{
		Person:    l.Person,
		Text:      l.Text,
		Lines:     append([]string(nil), l.lines...),
		Rect:      l.rect,
		Alignment: l.align,
		Position:  l.Position,
		NumRows:   l.NumRows,
		FontSize:  l.FontSize,
		Clash:     l.Clash == ClashFound,
	}
}
