// Package facematch turns PhotoPrism face markers into the persons that
// get labelled.
package facematch

import (
	"strings"

	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/kozaktomas/photo-labels/internal/labels"
	"github.com/kozaktomas/photo-labels/internal/photoprism"
)

// Options controls how marker names become label text.
type Options struct {
	ASCIINames bool // strip diacritics
	Obfuscate  bool // replace names with stable pseudo-random ones
}

// Photo returns the display-space photo context of a primary file.
func Photo(file *photoprism.File, margin int) labels.PhotoContext {
	w, h := DisplaySize(file.Width, file.Height, file.Orientation)
	return labels.PhotoContext{Width: w, Height: h, Margin: margin}
}

// Persons converts the markers of a primary file into persons in absolute
// display pixels. Invalid markers, non-face markers and empty regions are
// skipped. A marker that overlaps an earlier one of the same person by more
// than constants.IoUThreshold is a duplicate and dropped.
func Persons(file *photoprism.File, markers []photoprism.Marker, opts Options) []labels.Person {
	width, height := DisplaySize(file.Width, file.Height, file.Orientation)
	if width <= 0 || height <= 0 {
		return nil
	}

	type kept struct {
		name   string
		corner []float64
	}
	var seen []kept
	var persons []labels.Person

	for _, m := range markers {
		if m.Invalid || m.Type != "face" || m.W <= 0 || m.H <= 0 {
			continue
		}

		name := NormalizePersonName(m.Name)
		corner := MarkerToCornerBBox(m.X, m.Y, m.W, m.H)
		duplicate := false
		for _, s := range seen {
			if s.name == name && ComputeIoU(s.corner, corner) > constants.IoUThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		seen = append(seen, kept{name: name, corner: corner})

		persons = append(persons, labels.Person{
			Name: LabelText(m.Name, opts),
			Rect: MarkerRect(m.X, m.Y, m.W, m.H, width, height),
		})
	}
	return persons
}

// LabelText returns the text shown for a marker name.
func LabelText(name string, opts Options) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if opts.Obfuscate {
		name = ObfuscateName(name)
	}
	if opts.ASCIINames {
		name = RemoveDiacritics(name)
	}
	return name
}
