package labels

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kozaktomas/photo-labels/internal/config"
	"github.com/kozaktomas/photo-labels/internal/constants"
)

// ErrUnknownValue is returned for enum values that are not recognised.
var ErrUnknownValue = errors.New("unknown value")

// Anchor maps a face-width ratio to a label-width ratio, both relative to
// the image width.
type Anchor struct {
	RegionRatio float64
	LabelRatio  float64
}

// Settings is the validated layout configuration for one photo.
type Settings struct {
	Font        string
	StrokeWidth int

	Position Position
	Rows     int
	Margin   int

	FixedSize bool
	FontSize  int // fixed size, or start size of the search
	Anchors   [2]Anchor

	// Enabled experiment options; empty means the axis is disabled.
	Positions []Position
	RowCounts []int
	Scales    []float64

	MaxIterations   int
	RefineTolerance int
	RefineMaxSteps  int
}

// DefaultSettings returns settings built from the embedded default config.
func DefaultSettings() Settings {
	return NewSettings(config.DefaultLabels(), nil)
}

// NewSettings validates cfg. Unknown enum values and axis names are logged
// as errors and skipped; they never abort the layout.
func NewSettings(cfg config.LabelsConfig, logger *log.Logger) Settings {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := Settings{
		Font:            cfg.Font.Family,
		StrokeWidth:     max(cfg.Font.StrokeWidth, 0),
		Rows:            max(cfg.Label.Rows, 1),
		Margin:          max(cfg.Label.Margin, 0),
		FontSize:        cfg.FontSize.Size,
		MaxIterations:   cfg.Optimizer.MaxIterations,
		RefineTolerance: cfg.Optimizer.RefineTolerance,
		RefineMaxSteps:  cfg.Optimizer.RefineMaxSteps,
	}
	if s.Font == "" {
		s.Font = "goregular"
	}
	if s.FontSize <= 0 {
		s.FontSize = constants.DefaultFontSize
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = constants.DefaultMaxIterations
	}
	if s.RefineTolerance <= 0 {
		s.RefineTolerance = constants.RefineTolerance
	}
	if s.RefineMaxSteps <= 0 {
		s.RefineMaxSteps = constants.RefineMaxSteps
	}

	if pos, err := ParsePosition(cfg.Label.Position); err != nil {
		logger.Error("invalid default label position, using below", "err", err)
	} else {
		s.Position = pos
	}

	switch strings.ToLower(cfg.FontSize.Mode) {
	case "", "auto":
	case "fixed":
		s.FixedSize = true
	default:
		logger.Error("invalid font size mode, using auto", "mode", cfg.FontSize.Mode)
	}

	s.Anchors = [2]Anchor{{RegionRatio: 0.05, LabelRatio: 0.12}, {RegionRatio: 0.30, LabelRatio: 0.22}}
	if len(cfg.FontSize.Anchors) == 2 {
		a, b := cfg.FontSize.Anchors[0], cfg.FontSize.Anchors[1]
		if a.RegionRatio > b.RegionRatio {
			a, b = b, a
		}
		s.Anchors = [2]Anchor{
			{RegionRatio: a.RegionRatio, LabelRatio: a.LabelRatio},
			{RegionRatio: b.RegionRatio, LabelRatio: b.LabelRatio},
		}
	} else if len(cfg.FontSize.Anchors) != 0 {
		logger.Error("font size needs exactly two anchors, using defaults", "count", len(cfg.FontSize.Anchors))
	}

	for name, exp := range cfg.Experiments {
		axis, err := ParseAxis(name)
		if err != nil {
			logger.Error("ignoring experiment", "err", err)
			continue
		}
		if !exp.Enabled {
			continue
		}
		switch axis {
		case AxisPosition:
			s.Positions = parseOptions(exp.Options, ParsePosition, logger, name)
		case AxisNumRows:
			s.RowCounts = parseOptions(exp.Options, parseRows, logger, name)
		case AxisFontSize:
			s.Scales = parseOptions(exp.Options, parseScale, logger, name)
		}
	}

	return s
}

// parseOptions parses each option, logging and dropping bad values and duplicates.
func parseOptions[T comparable](raw []string, parse func(string) (T, error), logger *log.Logger, axis string) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		v, err := parse(r)
		if err != nil {
			logger.Error("ignoring experiment option", "axis", axis, "err", err)
			continue
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func parseRows(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: rows %q", ErrUnknownValue, s)
	}
	return n, nil
}

func parseScale(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%w: font scale %q", ErrUnknownValue, s)
	}
	return f, nil
}
