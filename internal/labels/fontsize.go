package labels

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kozaktomas/photo-labels/internal/constants"
)

// ErrNoFontSize is returned when not even the first measurement succeeded,
// so no font size could be established for the photo.
var ErrNoFontSize = errors.New("no font size could be established")

// WidthFunc returns the rendered width of sample at the given font size.
type WidthFunc func(sample string, size int) (int, error)

// Tolerance bounds the refinement phase of the font size search.
type Tolerance struct {
	Step     int // stop once the bracket is at most this many points wide
	MaxSteps int // stop after this many refinement steps
}

// SolveFontSize searches for the font size at which sample renders target
// pixels wide. The coarse phase doubles or halves the size until the width
// crosses the target; the refine phase then bisects between the two sizes
// that bracket it. The measured size whose width is closest to target wins;
// ties keep the earlier measurement.
//
// When a measurement fails the best size measured so far is returned
// together with the error. If the very first measurement fails the size is
// zero and the error wraps ErrNoFontSize.
func SolveFontSize(sample string, target, start int, measure WidthFunc, tol Tolerance) (int, error) {
	size := min(max(start, constants.MinFontSize), constants.MaxFontSize)

	w, err := measure(sample, size)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoFontSize, err)
	}
	best, bestDiff := size, abs(w-target)
	track := func(size, w int) {
		if d := abs(w - target); d < bestDiff {
			best, bestDiff = size, d
		}
	}
	if w == target {
		return size, nil
	}

	// Coarse: double while under target, halve while over.
	up := w < target
	prev := size
	for {
		next := size / 2
		if up {
			next = size * 2
		}
		next = min(max(next, constants.MinFontSize), constants.MaxFontSize)
		if next == size {
			return best, nil // hit the size limits
		}

		prev, size = size, next
		if w, err = measure(sample, size); err != nil {
			return best, fmt.Errorf("measure at size %d: %w", size, err)
		}
		track(size, w)
		if w == target {
			return size, nil
		}
		if (w < target) != up {
			break
		}
	}

	// Refine: lo renders under target, hi over it.
	lo, hi := min(prev, size), max(prev, size)
	minStep := max(tol.Step, 1)
	for range tol.MaxSteps {
		if hi-lo <= minStep {
			break
		}

		mid := lo + (hi-lo)/2
		if w, err = measure(sample, mid); err != nil {
			return best, fmt.Errorf("measure at size %d: %w", mid, err)
		}
		track(mid, w)
		switch {
		case w == target:
			return mid, nil
		case w < target:
			lo = mid
		default:
			hi = mid
		}
	}

	return best, nil
}

// TargetWidth interpolates the desired label width for a photo. The face to
// image width ratio is clamped to [0,1] and mapped through the two anchors
// piecewise-linearly (flat outside them); the resulting label ratio is
// multiplied by the image width.
func TargetWidth(imageWidth int, avgFaceWidth float64, anchors [2]Anchor) int {
	if imageWidth <= 0 {
		return 0
	}

	r := clamp01(avgFaceWidth / float64(imageWidth))
	lo, hi := anchors[0], anchors[1]

	var ratio float64
	switch {
	case r <= lo.RegionRatio:
		ratio = lo.LabelRatio
	case r >= hi.RegionRatio:
		ratio = hi.LabelRatio
	default:
		t := (r - lo.RegionRatio) / (hi.RegionRatio - lo.RegionRatio)
		ratio = lo.LabelRatio + t*(hi.LabelRatio-lo.LabelRatio)
	}

	return int(clamp01(ratio)*float64(imageWidth) + 0.5)
}

// SampleText picks the string the font size is solved for: the widest line
// (in runes) of any label text wrapped at rows.
func SampleText(texts []string, rows int) string {
	sample := ""
	for _, text := range texts {
		for _, line := range Wrap(text, rows) {
			if utf8.RuneCountInString(line) > utf8.RuneCountInString(sample) {
				sample = line
			}
		}
	}
	return strings.TrimSpace(sample)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
