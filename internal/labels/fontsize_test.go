package labels

import (
	"errors"
	"math"
	"testing"

	"github.com/kozaktomas/photo-labels/internal/constants"
)

// linearWidth renders every size as factor pixels per point.
func linearWidth(factor int, calls *int) WidthFunc {
	return func(_ string, size int) (int, error) {
		*calls++
		return size * factor, nil
	}
}

func TestSolveFontSize_Monotonic(t *testing.T) {
	tol := Tolerance{Step: 2, MaxSteps: 10}

	tests := []struct {
		name     string
		start    int
		target   int
		expected int
	}{
		{name: "grows from small start", start: 12, target: 500, expected: 100},
		{name: "exact hit while shrinking", start: 400, target: 500, expected: 100},
		{name: "already exact", start: 100, target: 500, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			size, err := SolveFontSize("Alice", tt.target, tt.start, linearWidth(5, &calls), tol)
			if err != nil {
				t.Fatalf("SolveFontSize failed: %v", err)
			}
			if size != tt.expected {
				t.Errorf("SolveFontSize() = %d, want %d", size, tt.expected)
			}
			// Coarse phase is logarithmic, refine phase is capped
			if calls > 20 {
				t.Errorf("expected at most 20 oracle calls, got %d", calls)
			}
		})
	}
}

func TestSolveFontSize_WithinTolerance(t *testing.T) {
	tol := Tolerance{Step: 2, MaxSteps: 10}

	for factor := 1; factor <= 7; factor++ {
		for target := 20; target <= 3000; target += 7 {
			ideal := float64(target) / float64(factor)
			if ideal < constants.MinFontSize || ideal > constants.MaxFontSize {
				continue
			}
			for _, start := range []int{4, 12, 24, 100} {
				calls := 0
				size, err := SolveFontSize("sample", target, start, linearWidth(factor, &calls), tol)
				if err != nil {
					t.Fatalf("SolveFontSize failed: %v", err)
				}
				if d := math.Abs(float64(size) - ideal); d >= float64(tol.Step) {
					t.Errorf("factor=%d target=%d start=%d: size %d is %.2f away from %.2f",
						factor, target, start, size, d, ideal)
				}
				if calls > 25 {
					t.Errorf("factor=%d target=%d start=%d: %d oracle calls", factor, target, start, calls)
				}
			}
		}
	}
}

func TestSolveFontSize_KeepsClosestMeasurement(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		target   int
		expected int
	}{
		// 100 is 1px off; the bracket walk down to 98 never does better.
		{name: "start one point over", start: 100, target: 99, expected: 100},
		// 24 is 1px off and measured before any refinement step.
		{name: "coarse step overshoots by one", start: 12, target: 23, expected: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			size, err := SolveFontSize("x", tt.target, tt.start, linearWidth(1, &calls), Tolerance{Step: 2, MaxSteps: 10})
			if err != nil {
				t.Fatalf("SolveFontSize failed: %v", err)
			}
			if size != tt.expected {
				t.Errorf("SolveFontSize() = %d, want %d", size, tt.expected)
			}
		})
	}
}

func TestSolveFontSize_MaxStepsCap(t *testing.T) {
	calls := 0
	size, err := SolveFontSize("x", 500, 12, linearWidth(1, &calls), Tolerance{Step: 1, MaxSteps: 2})
	if err != nil {
		t.Fatalf("SolveFontSize failed: %v", err)
	}
	// Coarse: 12,24,48,96,192,384,768; refine: 576, 480
	if calls != 7+2 {
		t.Errorf("expected 9 oracle calls with MaxSteps=2, got %d", calls)
	}
	if size != 480 {
		t.Errorf("expected size 480 after two refinement steps, got %d", size)
	}
}

func TestSolveFontSize_SizeLimit(t *testing.T) {
	calls := 0
	size, err := SolveFontSize("x", 5000, 12, linearWidth(1, &calls), Tolerance{Step: 2, MaxSteps: 10})
	if err != nil {
		t.Fatalf("SolveFontSize failed: %v", err)
	}
	if size != 1024 {
		t.Errorf("expected size clamped to 1024, got %d", size)
	}
}

func TestSolveFontSize_FirstCallFails(t *testing.T) {
	failing := func(string, int) (int, error) { return 0, errors.New("oracle down") }

	size, err := SolveFontSize("x", 100, 12, failing, Tolerance{Step: 2, MaxSteps: 10})
	if !errors.Is(err, ErrNoFontSize) {
		t.Errorf("expected ErrNoFontSize, got %v", err)
	}
	if size != 0 {
		t.Errorf("expected size 0, got %d", size)
	}
}

func TestSolveFontSize_LaterCallFails(t *testing.T) {
	calls := 0
	flaky := func(_ string, size int) (int, error) {
		calls++
		if calls > 2 {
			return 0, errors.New("oracle down")
		}
		return size * 5, nil
	}

	size, err := SolveFontSize("x", 500, 12, flaky, Tolerance{Step: 2, MaxSteps: 10})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNoFontSize) {
		t.Error("later failure should not be ErrNoFontSize")
	}
	// 12 and 24 were measured; 48 failed
	if size != 24 {
		t.Errorf("expected closest good size 24, got %d", size)
	}
}

func TestTargetWidth(t *testing.T) {
	anchors := [2]Anchor{{RegionRatio: 0.1, LabelRatio: 0.1}, {RegionRatio: 0.3, LabelRatio: 0.3}}

	tests := []struct {
		name     string
		width    int
		face     float64
		expected int
	}{
		{"below first anchor", 1000, 50, 100},
		{"above second anchor", 1000, 500, 300},
		{"halfway", 1000, 200, 200},
		{"face wider than image clamps", 1000, 5000, 300},
		{"zero width", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TargetWidth(tt.width, tt.face, anchors)
			if result != tt.expected {
				t.Errorf("TargetWidth(%d, %v) = %d, want %d", tt.width, tt.face, result, tt.expected)
			}
		})
	}
}

func TestSampleText(t *testing.T) {
	texts := []string{"Bob", "Anna Maria Josefa Novakova", "Alice Liddell"}

	if got := SampleText(texts, 1); got != "Anna Maria Josefa Novakova" {
		t.Errorf("SampleText(rows=1) = %q", got)
	}
	if got := SampleText(texts, 2); got != "Josefa Novakova" {
		t.Errorf("SampleText(rows=2) = %q", got)
	}
	if got := SampleText(nil, 1); got != "" {
		t.Errorf("SampleText(nil) = %q", got)
	}
}
