package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	PhotoPrism PhotoPrismConfig
	Server     ServerConfig
	Labels     LabelsConfig
}

type PhotoPrismConfig struct {
	URL      string
	Username string
	Password string
}

type ServerConfig struct {
	Host string // defaults to 127.0.0.1
	Port int    // defaults to 8085
}

// LabelsConfig is the per-photo configuration snapshot of the label layout.
// Values are kept as written in YAML; enums are validated when converted
// into layout settings so that bad values can be logged and skipped.
type LabelsConfig struct {
	Font        FontConfig                  `yaml:"font"`
	Label       LabelConfig                 `yaml:"label"`
	FontSize    FontSizeConfig              `yaml:"font_size"`
	Experiments map[string]ExperimentConfig `yaml:"experiments"`
	Optimizer   OptimizerConfig             `yaml:"optimizer"`
	Render      RenderConfig                `yaml:"render"`
}

type FontConfig struct {
	Family      string `yaml:"family"`
	File        string `yaml:"file"` // optional TTF/OTF file registered under Family
	Color       string `yaml:"color"`
	StrokeColor string `yaml:"stroke_color"`
	StrokeWidth int    `yaml:"stroke_width"`
}

type LabelConfig struct {
	Position string `yaml:"position"`
	Rows     int    `yaml:"rows"`
	Margin   int    `yaml:"margin"`
}

type FontSizeConfig struct {
	Mode    string         `yaml:"mode"` // auto or fixed
	Size    int            `yaml:"size"` // fixed size, or start size of the search
	Anchors []AnchorConfig `yaml:"anchors"`
}

// AnchorConfig maps a face-width/image-width ratio to a label-width/image-width ratio.
type AnchorConfig struct {
	RegionRatio float64 `yaml:"region_ratio"`
	LabelRatio  float64 `yaml:"label_ratio"`
}

type ExperimentConfig struct {
	Enabled bool     `yaml:"enabled"`
	Options []string `yaml:"options"`
}

type OptimizerConfig struct {
	MaxIterations   int `yaml:"max_iterations"`
	RefineTolerance int `yaml:"refine_tolerance"`
	RefineMaxSteps  int `yaml:"refine_max_steps"`
}

type RenderConfig struct {
	Outlines     bool   `yaml:"outlines"`
	OutlineColor string `yaml:"outline_color"`
	OutlineWidth int    `yaml:"outline_width"`
	Obfuscate    bool   `yaml:"obfuscate"`
	ASCIINames   bool   `yaml:"ascii_names"`
	JPEGQuality  int    `yaml:"jpeg_quality"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// DefaultLabels returns the embedded default label configuration.
func DefaultLabels() LabelsConfig {
	var labels LabelsConfig
	if err := yaml.Unmarshal(defaultsYAML, &labels); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}
	return labels
}

func Load() *Config {
	return &Config{
		PhotoPrism: PhotoPrismConfig{
			URL:      os.Getenv("PHOTOPRISM_URL"),
			Username: os.Getenv("PHOTOPRISM_USERNAME"),
			Password: os.Getenv("PHOTOPRISM_PASSWORD"),
		},
		Server: ServerConfig{
			Host: envString("LABELS_HOST", "127.0.0.1"),
			Port: envInt("LABELS_PORT", 8085),
		},
		Labels: DefaultLabels(),
	}
}

// LoadFile loads the config and overlays the YAML file at path on top of the
// embedded label defaults. An empty path falls back to LABELS_CONFIG.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		path = os.Getenv("LABELS_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := cfg.Labels.Overlay(data); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Overlay decodes YAML data on top of c. Fields missing from data keep their
// current values; an experiment axis present in data replaces the whole axis.
func (c *LabelsConfig) Overlay(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unmarshal labels config: %w", err)
	}
	return nil
}
