package labels

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kozaktomas/photo-labels/internal/textmetrics"
)

// ErrInvalidPhoto is returned for a photo without usable dimensions.
var ErrInvalidPhoto = errors.New("invalid photo dimensions")

// Input is everything known about one photo before layout.
type Input struct {
	Photo   PhotoContext
	Persons []Person
}

// Result is the finished layout of one photo.
type Result struct {
	State      State    `json:"state"`
	Labels     []Placed `json:"labels"`
	FontSize   int      `json:"font_size"`
	Iterations int      `json:"iterations"`
	Increments int      `json:"increments"`
	Overlap    int      `json:"overlap"`
}

// OptimizationContext holds the state of one photo's layout run. It is
// created per call to Layout and never shared.
type OptimizationContext struct {
	photo    PhotoContext
	persons  []Person
	labels   []*Label
	settings Settings
	logger   *log.Logger

	calc     *Calculator
	detector *Detector

	baseSize int
	scale    float64

	iterations int
	increments int
	best       *BestConfig
}

// Layout places one label per named person and optimizes the layout until
// no label clashes, the search is exhausted, the iteration ceiling is hit or
// ctx is done. Only a failure to establish any font size, or to place a
// label at all, is returned as an error.
func Layout(ctx context.Context, in Input, s Settings, m textmetrics.Measurer, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if m == nil {
		return nil, errors.New("layout: no text measurer")
	}

	photo := in.Photo
	if photo.Width <= 0 || photo.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidPhoto, photo.Width, photo.Height)
	}
	if photo.Margin <= 0 {
		photo.Margin = s.Margin
	}

	oc := &OptimizationContext{
		photo:    photo,
		persons:  in.Persons,
		settings: s,
		logger:   logger,
		scale:    1,
	}
	for i, p := range in.Persons {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		oc.labels = append(oc.labels, newLabel(len(oc.labels), i, name, s.Position, s.Rows))
	}
	if len(oc.labels) == 0 {
		return &Result{State: StateFound, Labels: []Placed{}}, nil
	}

	measurer := textmetrics.NewCache(m)
	oc.calc = &Calculator{
		Photo:       photo,
		Persons:     in.Persons,
		Measurer:    measurer,
		Font:        s.Font,
		StrokeWidth: s.StrokeWidth,
	}
	oc.detector = &Detector{Photo: photo, Persons: in.Persons}

	size, err := oc.solveBaseSize(measurer)
	if err != nil {
		if size <= 0 {
			return nil, err
		}
		logger.Warn("font size search stopped early", "size", size, "err", err)
	}
	oc.baseSize = size
	oc.setScale(oc.scale)

	for _, l := range oc.labels {
		if err := oc.calc.Place(l); err != nil {
			return nil, fmt.Errorf("initial placement of %q: %w", l.Text, err)
		}
	}

	state := oc.optimize(ctx)

	res := &Result{
		State:      state,
		Labels:     make([]Placed, 0, len(oc.labels)),
		FontSize:   oc.scaledSize(),
		Iterations: oc.iterations,
		Increments: oc.increments,
	}
	for _, l := range oc.labels {
		res.Labels = append(res.Labels, l.placedCopy())
		res.Overlap += l.ClashArea
	}

	logger.Debug("label layout done", "state", state, "labels", len(res.Labels),
		"font_size", res.FontSize, "iterations", res.Iterations, "overlap", res.Overlap)
	return res, nil
}

// solveBaseSize returns the unscaled font size shared by every label.
func (oc *OptimizationContext) solveBaseSize(m textmetrics.Measurer) (int, error) {
	s := oc.settings
	if s.FixedSize {
		return s.FontSize, nil
	}

	texts := make([]string, len(oc.labels))
	faces := 0.0
	for i, l := range oc.labels {
		texts[i] = l.Text
		faces += float64(oc.persons[l.Person].Rect.W)
	}

	target := TargetWidth(oc.photo.Bounds().W, faces/float64(len(oc.labels)), s.Anchors)
	sample := SampleText(texts, s.Rows)
	if target <= 0 || sample == "" {
		return s.FontSize, nil
	}

	measure := func(sample string, size int) (int, error) {
		sz, err := m.MeasureText(sample, s.Font, size, s.StrokeWidth)
		return sz.W, err
	}
	size, err := SolveFontSize(sample, target, s.FontSize, measure, Tolerance{
		Step:     s.RefineTolerance,
		MaxSteps: s.RefineMaxSteps,
	})
	oc.logger.Debug("solved font size", "sample", sample, "target", target, "size", size)
	return size, err
}
