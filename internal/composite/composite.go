// Package composite draws finished label layouts onto photos.
package composite

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/kozaktomas/photo-labels/internal/geometry"
	"github.com/kozaktomas/photo-labels/internal/labels"
)

// FaceSource lends a font face for drawing. textmetrics.OpenType
// implements it.
type FaceSource interface {
	WithFace(family string, pointSize int, fn func(font.Face) error) error
}

// Renderer composes labels onto photos.
type Renderer struct {
	Style Style
	Faces FaceSource
}

// Decode reads an image and applies its EXIF orientation, so pixel
// coordinates match the display-space face regions.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Encode writes img as JPEG. Metadata of the source is not carried over.
func Encode(w io.Writer, img image.Image, quality int) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Render draws faces and labels onto a copy of img and crops the result to
// the photo's crop rect, if any.
func (r *Renderer) Render(img image.Image, photo labels.PhotoContext, persons []labels.Person, placed []labels.Placed) (image.Image, error) {
	dst := imaging.Clone(img)

	if r.Style.Obfuscate {
		for _, p := range persons {
			fade(dst, p.Rect)
		}
	}
	if r.Style.Outlines {
		for _, p := range persons {
			outline(dst, p.Rect, r.Style.OutlineWidth, r.Style.OutlineColor)
		}
	}
	for _, l := range placed {
		if err := r.drawLabel(dst, l); err != nil {
			return nil, fmt.Errorf("draw label %q: %w", l.Text, err)
		}
	}

	if photo.Crop != nil {
		c := photo.Crop
		return imaging.Crop(dst, image.Rect(c.X, c.Y, c.Right(), c.Bottom())), nil
	}
	return dst, nil
}

// fade blurs and lightens a face region so the person is not recognisable.
func fade(dst *image.NRGBA, rect geometry.Rect) {
	area := image.Rect(rect.X, rect.Y, rect.Right(), rect.Bottom()).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	region := imaging.Crop(dst, area)
	region = imaging.Blur(region, float64(max(area.Dx(), area.Dy()))/8)
	region = imaging.AdjustBrightness(region, 40)
	draw.Draw(dst, area, region, image.Point{}, draw.Src)
}

// outline draws a frame of the given width just inside rect.
func outline(dst *image.NRGBA, rect geometry.Rect, width int, c color.Color) {
	src := image.NewUniform(c)
	x0, y0, x1, y1 := rect.X, rect.Y, rect.Right(), rect.Bottom()
	for _, side := range []image.Rectangle{
		image.Rect(x0, y0, x1, y0+width),
		image.Rect(x0, y1-width, x1, y1),
		image.Rect(x0, y0, x0+width, y1),
		image.Rect(x1-width, y0, x1, y1),
	} {
		draw.Draw(dst, side.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
	}
}

// drawLabel draws the lines of l inside its rect, aligned per line. The
// stroke is drawn first by stamping the text around each glyph position.
func (r *Renderer) drawLabel(dst *image.NRGBA, l labels.Placed) error {
	return r.Faces.WithFace(r.Style.Font, l.FontSize, func(face font.Face) error {
		stroke := r.Style.StrokeWidth
		metrics := face.Metrics()
		lineHeight := metrics.Height.Ceil()
		ascent := metrics.Ascent.Ceil()

		d := &font.Drawer{Dst: dst, Face: face}
		for i, line := range l.Lines {
			width := font.MeasureString(face, line).Ceil()

			var x int
			switch l.Alignment {
			case labels.AlignLeft:
				x = l.Rect.X + stroke
			case labels.AlignRight:
				x = l.Rect.Right() - stroke - width
			default:
				x = l.Rect.X + (l.Rect.W-width)/2
			}
			y := l.Rect.Y + stroke + ascent + i*lineHeight

			if stroke > 0 {
				d.Src = image.NewUniform(r.Style.StrokeColor)
				for dy := -stroke; dy <= stroke; dy++ {
					for dx := -stroke; dx <= stroke; dx++ {
						if dx*dx+dy*dy > stroke*stroke {
							continue
						}
						d.Dot = fixed.P(x+dx, y+dy)
						d.DrawString(line)
					}
				}
			}

			d.Src = image.NewUniform(r.Style.Color)
			d.Dot = fixed.P(x, y)
			d.DrawString(line)
		}
		return nil
	})
}
