package facematch

import (
	"math"
	"testing"

	"github.com/kozaktomas/photo-labels/internal/geometry"
)

func TestComputeIoU(t *testing.T) {
	tests := []struct {
		name     string
		bbox1    []float64
		bbox2    []float64
		expected float64
	}{
		{
			name:     "identical boxes",
			bbox1:    []float64{0, 0, 10, 10},
			bbox2:    []float64{0, 0, 10, 10},
			expected: 1.0,
		},
		{
			name:     "no overlap",
			bbox1:    []float64{0, 0, 10, 10},
			bbox2:    []float64{20, 20, 30, 30},
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			bbox1:    []float64{0, 0, 10, 10},
			bbox2:    []float64{5, 5, 15, 15},
			expected: 25.0 / 175.0, // intersection=25, union=100+100-25=175
		},
		{
			name:     "one inside other",
			bbox1:    []float64{0, 0, 20, 20},
			bbox2:    []float64{5, 5, 15, 15},
			expected: 100.0 / 400.0, // intersection=100, union=400 (larger box)
		},
		{
			name:     "invalid bbox1",
			bbox1:    []float64{0, 0, 10},
			bbox2:    []float64{0, 0, 10, 10},
			expected: 0.0,
		},
		{
			name:     "empty bboxes",
			bbox1:    []float64{},
			bbox2:    []float64{},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeIoU(tt.bbox1, tt.bbox2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("ComputeIoU(%v, %v) = %v, want %v", tt.bbox1, tt.bbox2, result, tt.expected)
			}
		})
	}
}

func TestDisplaySize(t *testing.T) {
	tests := []struct {
		orientation int
		w, h        int
	}{
		{0, 4000, 3000},
		{1, 4000, 3000},
		{3, 4000, 3000},
		{5, 3000, 4000},
		{6, 3000, 4000},
		{8, 3000, 4000},
		{9, 4000, 3000},
	}

	for _, tt := range tests {
		w, h := DisplaySize(4000, 3000, tt.orientation)
		if w != tt.w || h != tt.h {
			t.Errorf("DisplaySize(4000, 3000, %d) = %dx%d, want %dx%d", tt.orientation, w, h, tt.w, tt.h)
		}
	}
}

func TestMarkerRect(t *testing.T) {
	tests := []struct {
		name          string
		x, y, w, h    float64
		width, height int
		expected      geometry.Rect
	}{
		{
			name: "simple", x: 0.1, y: 0.2, w: 0.1, h: 0.1, width: 1000, height: 500,
			expected: geometry.Rect{X: 100, Y: 100, W: 100, H: 50},
		},
		{
			name: "full image", x: 0, y: 0, w: 1, h: 1, width: 1920, height: 1080,
			expected: geometry.Rect{X: 0, Y: 0, W: 1920, H: 1080},
		},
		{
			name: "rounding", x: 0.3333, y: 0.3333, w: 0.3333, h: 0.3333, width: 100, height: 100,
			expected: geometry.Rect{X: 33, Y: 33, W: 34, H: 34},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkerRect(tt.x, tt.y, tt.w, tt.h, tt.width, tt.height)
			if got != tt.expected {
				t.Errorf("MarkerRect() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMarkerToCornerBBox(t *testing.T) {
	got := MarkerToCornerBBox(0.1, 0.2, 0.3, 0.4)
	expected := []float64{0.1, 0.2, 0.4, 0.6}
	for i := range expected {
		if math.Abs(got[i]-expected[i]) > 1e-9 {
			t.Errorf("MarkerToCornerBBox()[%d] = %v, want %v", i, got[i], expected[i])
		}
	}
}
