package labels

import "github.com/kozaktomas/photo-labels/internal/geometry"

// Detector tests labels against each other, the faces and the usable area.
type Detector struct {
	Photo   PhotoContext
	Persons []Person
}

// Clash reports whether labels[i] clashes with anything and the summed
// overlap area. A label larger than the usable area always clashes, and the
// part of it outside the usable area counts towards the score.
func (d *Detector) Clash(labels []*Label, i int) (bool, int) {
	r := labels[i].Rect()
	usable := d.Photo.Usable()

	clash := false
	total := 0

	if !geometry.Fits(r, usable) {
		clash = true
		total += geometry.OutsideArea(r, usable)
	}

	for j, other := range labels {
		if j == i {
			continue
		}
		if ok, area := geometry.Overlap(r, other.Rect()); ok {
			clash = true
			total += area
		}
	}

	for _, p := range d.Persons {
		if ok, area := geometry.Overlap(r, p.Rect); ok {
			clash = true
			total += area
		}
	}

	return clash, total
}
