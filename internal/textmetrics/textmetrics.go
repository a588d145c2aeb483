// Package textmetrics measures rendered text. The layout core only sees the
// Measurer interface; OpenType implements it with golang.org/x/image fonts.
package textmetrics

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFont is returned when a font family has not been registered.
var ErrUnknownFont = errors.New("unknown font family")

// ErrInvalidSize is returned for non-positive point sizes.
var ErrInvalidSize = errors.New("invalid point size")

// Size is a rendered text extent in pixels.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Measurer returns the rendered size of text. Lines are separated by "\n";
// the width is that of the widest line. Stroke adds its width on every side.
type Measurer interface {
	MeasureText(text, family string, pointSize, strokeWidth int) (Size, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text, family string, pointSize, strokeWidth int) (Size, error)

func (f MeasurerFunc) MeasureText(text, family string, pointSize, strokeWidth int) (Size, error) {
	return f(text, family, pointSize, strokeWidth)
}

type cacheKey struct {
	text        string
	family      string
	pointSize   int
	strokeWidth int
}

// Cache memoizes measurements of the wrapped Measurer. It is meant to live
// for one photo and is not safe for concurrent use.
type Cache struct {
	next    Measurer
	entries map[cacheKey]Size
	misses  int
}

// NewCache wraps next with a memoizing cache.
func NewCache(next Measurer) *Cache {
	return &Cache{next: next, entries: make(map[cacheKey]Size)}
}

// MeasureText returns a cached size or asks the wrapped Measurer.
// Failed measurements are not cached.
func (c *Cache) MeasureText(text, family string, pointSize, strokeWidth int) (Size, error) {
	key := cacheKey{text: text, family: family, pointSize: pointSize, strokeWidth: strokeWidth}
	if size, ok := c.entries[key]; ok {
		return size, nil
	}

	c.misses++
	size, err := c.next.MeasureText(text, family, pointSize, strokeWidth)
	if err != nil {
		return Size{}, err
	}
	c.entries[key] = size
	return size, nil
}

// Misses returns how many calls reached the wrapped Measurer.
func (c *Cache) Misses() int {
	return c.misses
}

// Monospace is a synthetic Measurer where every rune is CharWidth × pointSize
// pixels wide and every line is LineHeight × pointSize pixels tall. It needs
// no font files, which makes layouts reproducible in tests and dry runs.
type Monospace struct {
	CharWidth  float64
	LineHeight float64
}

// MeasureText implements Measurer.
func (m Monospace) MeasureText(text, _ string, pointSize, strokeWidth int) (Size, error) {
	if pointSize <= 0 {
		return Size{}, fmt.Errorf("%w: %d", ErrInvalidSize, pointSize)
	}

	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, len([]rune(line)))
	}

	w := int(float64(widest)*m.CharWidth*float64(pointSize) + 0.5)
	h := int(float64(len(lines))*m.LineHeight*float64(pointSize) + 0.5)
	return Size{W: w + 2*strokeWidth, H: h + 2*strokeWidth}, nil
}
