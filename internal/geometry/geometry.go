// Package geometry provides the integer pixel rectangles used by label layout.
package geometry

import "fmt"

// Rect is an axis-aligned rectangle in absolute pixel coordinates.
// X and Y are the top-left corner, W and H the size.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// String returns the rect as "x,y wxh".
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Area returns W*H, or 0 for degenerate rects.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// CenterX returns the horizontal center (rounded down).
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the vertical center (rounded down).
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Overlap tests two rects for overlap and returns the overlapping area.
// Rects that only touch along an edge do not overlap.
func Overlap(a, b Rect) (bool, int) {
	dx := min(a.Right(), b.Right()) - max(a.X, b.X)
	dy := min(a.Bottom(), b.Bottom()) - max(a.Y, b.Y)

	if dx <= 0 || dy <= 0 {
		return false, 0 // Separated on at least one axis
	}

	return true, dx * dy
}

// Inset shrinks r by margin on every side.
func (r Rect) Inset(margin int) Rect {
	return Rect{X: r.X + margin, Y: r.Y + margin, W: r.W - 2*margin, H: r.H - 2*margin}
}

// Clamp shifts r so that it lies inside bounds, axis by axis.
// Size is never changed. When r is larger than bounds on an axis, it is
// aligned to the bounds' leading edge and still overflows the trailing one.
func Clamp(r, bounds Rect) Rect {
	r.X = clampAxis(r.X, r.W, bounds.X, bounds.Right())
	r.Y = clampAxis(r.Y, r.H, bounds.Y, bounds.Bottom())
	return r
}

func clampAxis(pos, size, lo, hi int) int {
	if pos+size > hi {
		pos = hi - size
	}
	if pos < lo {
		pos = lo
	}
	return pos
}

// Fits reports whether r's size fits inside bounds' size.
func Fits(r, bounds Rect) bool {
	return r.W <= bounds.W && r.H <= bounds.H
}

// OutsideArea returns the part of r's area that lies outside bounds.
func OutsideArea(r, bounds Rect) int {
	_, inside := Overlap(r, bounds)
	return r.Area() - inside
}
