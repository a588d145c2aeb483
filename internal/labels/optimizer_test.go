package labels

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/kozaktomas/photo-labels/internal/geometry"
)

// newTestContext prepares an optimization context the way Layout does,
// without running the search.
func newTestContext(in Input, s Settings) *OptimizationContext {
	oc := &OptimizationContext{
		photo:    in.Photo,
		persons:  in.Persons,
		settings: s,
		logger:   log.New(io.Discard),
		baseSize: s.FontSize,
		scale:    1,
	}
	for i, p := range in.Persons {
		oc.labels = append(oc.labels, newLabel(i, i, p.Name, s.Position, s.Rows))
	}
	oc.calc = &Calculator{Photo: in.Photo, Persons: in.Persons, Measurer: mono, Font: s.Font}
	oc.detector = &Detector{Photo: in.Photo, Persons: in.Persons}
	oc.setScale(1)
	return oc
}

func TestSearch_DeadEndRestoresSeed(t *testing.T) {
	s := fixedSettings()
	s.Positions = []Position{PositionBelow, PositionAbove}
	in := Input{
		Photo: PhotoContext{Width: 200, Height: 300, Margin: 5},
		Persons: []Person{
			// Wider than the image wherever it goes.
			{Name: "Maximilian Alexander Longname", Rect: geometry.Rect{X: 80, Y: 80, W: 40, H: 40}},
			// At the bottom edge: below is clamped onto the face, above is clear.
			{Name: "Bo", Rect: geometry.Rect{X: 20, Y: 260, W: 30, H: 30}},
		},
	}
	oc := newTestContext(in, s)

	// The first label belongs to an outer level, so once Bo moves above
	// nothing is left for this level to resolve.
	res := oc.search(context.Background(), map[int]bool{0: true}, 1)
	if res != outcomeDeadEnd {
		t.Fatalf("search() = %v, want dead end", res)
	}
	if oc.iterations != 2 || oc.increments != 1 {
		t.Errorf("iterations/increments = %d/%d, want 2/1", oc.iterations, oc.increments)
	}
	if p := oc.labels[1].Position; p != PositionBelow {
		t.Errorf("Bo left at %v, want the seed position below", p)
	}
}
