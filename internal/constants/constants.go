// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Pagination constants
const (
	// DefaultPageSize is the default number of items to fetch per API page
	DefaultPageSize = 1000
)

// Face region constants
const (
	// IoUThreshold is the minimum Intersection over Union for two markers
	// of the same person to be treated as duplicates of one face
	IoUThreshold = 0.5
)

// Font size search constants. These are empirically tuned and can be
// overridden in the optimizer section of the config.
const (
	// RefineTolerance stops the font size refinement once the bracket is this narrow (pt)
	RefineTolerance = 2

	// RefineMaxSteps caps the refinement phase to avoid rounding oscillation
	RefineMaxSteps = 10

	// MinFontSize is the smallest font size the solver will return
	MinFontSize = 4

	// MaxFontSize is the largest font size the solver will try
	MaxFontSize = 1024

	// DefaultFontSize is the start size when the config does not set one
	DefaultFontSize = 24
)

// Optimizer constants
const (
	// DefaultMaxIterations is the default iteration ceiling for one photo
	DefaultMaxIterations = 500
)

// Rendering constants
const (
	// DefaultDPI is the resolution used to convert point sizes to pixels
	DefaultDPI = 72

	// DefaultJPEGQuality is the quality of exported JPEG files
	DefaultJPEGQuality = 90

	// DefaultConcurrency is the default number of photos processed in parallel
	DefaultConcurrency = 5
)
