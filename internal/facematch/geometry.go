package facematch

import (
	"math"

	"github.com/kozaktomas/photo-labels/internal/geometry"
)

// ComputeIoU calculates Intersection over Union between two bounding boxes.
// bbox1 and bbox2 are [x1, y1, x2, y2] in the same coordinate system.
func ComputeIoU(bbox1, bbox2 []float64) float64 {
	if len(bbox1) != 4 || len(bbox2) != 4 {
		return 0
	}

	x1 := max(bbox1[0], bbox2[0])
	y1 := max(bbox1[1], bbox2[1])
	x2 := min(bbox1[2], bbox2[2])
	y2 := min(bbox1[3], bbox2[3])

	if x2 <= x1 || y2 <= y1 {
		return 0 // No intersection
	}

	intersection := (x2 - x1) * (y2 - y1)
	area1 := (bbox1[2] - bbox1[0]) * (bbox1[3] - bbox1[1])
	area2 := (bbox2[2] - bbox2[0]) * (bbox2[3] - bbox2[1])
	union := area1 + area2 - intersection

	if union <= 0 {
		return 0
	}
	return intersection / union
}

// MarkerToCornerBBox converts PhotoPrism marker (X, Y, W, H) to [x1, y1, x2, y2] corner format.
func MarkerToCornerBBox(x, y, w, h float64) []float64 {
	return []float64{x, y, x + w, y + h}
}

// DisplaySize returns the size of the photo as shown. PhotoPrism reports raw
// file dimensions, which are swapped for orientations 5-8 (90° rotations).
func DisplaySize(fileWidth, fileHeight, orientation int) (int, int) {
	if orientation >= 5 && orientation <= 8 {
		return fileHeight, fileWidth
	}
	return fileWidth, fileHeight
}

// MarkerRect converts relative display coordinates into an absolute pixel
// rect on a width x height display image.
func MarkerRect(x, y, w, h float64, width, height int) geometry.Rect {
	x1 := int(math.Round(x * float64(width)))
	y1 := int(math.Round(y * float64(height)))
	x2 := int(math.Round((x + w) * float64(width)))
	y2 := int(math.Round((y + h) * float64(height)))
	return geometry.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}
