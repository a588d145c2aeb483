package labels

import (
	"fmt"
	"slices"
	"strings"
)

// Axis is a search axis of the layout optimizer.
type Axis int

const (
	AxisPosition Axis = iota
	AxisNumRows
	AxisFontSize
)

func (a Axis) String() string {
	switch a {
	case AxisPosition:
		return "position"
	case AxisNumRows:
		return "num_rows"
	case AxisFontSize:
		return "font_size"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis parses an axis name as used in the experiments config.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "position":
		return AxisPosition, nil
	case "num_rows", "rows":
		return AxisNumRows, nil
	case "font_size":
		return AxisFontSize, nil
	}
	return 0, fmt.Errorf("%w: axis %q", ErrUnknownValue, s)
}

// Dimension is one axis of the experiment space. Exactly one option slice
// is used, selected by Axis. Label is the owning label id, or -1 for the
// global font size dimension. Option 0 is always the value in effect when
// the dimension was built.
type Dimension struct {
	Axis      Axis
	Label     int
	Positions []Position
	Rows      []int
	Scales    []float64
}

// Len returns the number of options.
func (d Dimension) Len() int {
	switch d.Axis {
	case AxisPosition:
		return len(d.Positions)
	case AxisNumRows:
		return len(d.Rows)
	case AxisFontSize:
		return len(d.Scales)
	}
	return 0
}

// Global reports whether the dimension applies to every label.
func (d Dimension) Global() bool { return d.Label < 0 }

// Space is the set of dimensions one search level iterates over, driven by a
// single odometer. Per-label dimensions come first in label order (position
// before rows); the global font size dimension, if any, is the highest digit.
type Space struct {
	Dimensions []Dimension
	odometer   *Odometer
}

// BuildSpace builds the experiment space for the given labels. withGlobal
// adds the font size dimension seeded with the current scale. Axes that are
// disabled or have a single option are left out.
func BuildSpace(labels []*Label, owned []int, s Settings, scale float64, withGlobal bool) *Space {
	var dims []Dimension

	for _, id := range owned {
		l := labels[id]
		if opts := seeded(l.Position, s.Positions); len(opts) > 1 {
			dims = append(dims, Dimension{Axis: AxisPosition, Label: id, Positions: opts})
		}
		if opts := seeded(l.NumRows, usefulRows(l.Text, s.RowCounts)); len(opts) > 1 {
			dims = append(dims, Dimension{Axis: AxisNumRows, Label: id, Rows: opts})
		}
	}
	if withGlobal && len(owned) > 0 {
		if opts := seeded(scale, s.Scales); len(opts) > 1 {
			dims = append(dims, Dimension{Axis: AxisFontSize, Label: -1, Scales: opts})
		}
	}

	radices := make([]int, len(dims))
	for i, d := range dims {
		radices[i] = d.Len()
	}
	return &Space{Dimensions: dims, odometer: NewOdometer(radices)}
}

// usefulRows drops row counts larger than the word count of text, which
// would wrap exactly like the word count itself.
func usefulRows(text string, rows []int) []int {
	words := len(strings.Fields(text))
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		if r <= words {
			out = append(out, r)
		}
	}
	return out
}

// seeded returns options with current first. A disabled axis (no options)
// yields nil.
func seeded[T comparable](current T, options []T) []T {
	if len(options) == 0 {
		return nil
	}
	out := make([]T, 0, len(options)+1)
	out = append(out, current)
	for _, o := range options {
		if !slices.Contains(out, o) {
			out = append(out, o)
		}
	}
	return out
}

// Empty reports whether there is nothing to try.
func (s *Space) Empty() bool { return len(s.Dimensions) == 0 }

// Index returns the current option index of dimension i.
func (s *Space) Index(i int) int { return s.odometer.Digit(i) }

// Combinations returns the total number of combinations in the space.
func (s *Space) Combinations() int {
	n := 1
	for _, d := range s.Dimensions {
		n *= d.Len()
	}
	return n
}

// Advance moves to the next combination and returns the dimensions whose
// option changed. When the space is exhausted it wraps back to option 0
// everywhere (the values it was seeded with) and ok is false.
func (s *Space) Advance() (changed []int, ok bool) {
	return s.odometer.Increment()
}

// Reset moves every dimension back to option 0 and returns the dimensions
// whose option changed.
func (s *Space) Reset() (changed []int) {
	return s.odometer.Reset()
}
