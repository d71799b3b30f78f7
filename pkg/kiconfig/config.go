package kiconfig

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level run profile: everything a pipeline caller can
// tune without touching the solver's own hard-coded constants.
type Config struct {
	// Tolerance controls point-match comparisons during dimension binding.
	Tolerance ToleranceCfg `yaml:"tolerance" json:"tolerance"`

	// Solve holds solve settings; they are validated but not read by the
	// pipeline.
	Solve SolveCfg `yaml:"solve" json:"solve"`

	// Render defaults the debug SVG renderer falls back to.
	Render RenderCfg `yaml:"render" json:"render"`
}

// ToleranceCfg groups tolerance knobs used outside the solver itself.
type ToleranceCfg struct {
	// PointMatch is the euclidean distance, in millimeters, within which
	// two points are considered the same location during dimension
	// registry construction (greater than 0, up to 1.0).
	PointMatch float64 `yaml:"pointMatch" json:"pointMatch"`
}

// SolveCfg holds the solve section of the profile. Nothing in the pipeline
// reads it: the CLI solves once, and the facade's iteration cap is its own
// constant.
type SolveCfg struct {
	// MaxIterations is a solve attempt count (1-10000); no caller retries a
	// solve based on it.
	MaxIterations int `yaml:"maxIterations" json:"maxIterations"`
}

// RenderCfg configures the debug SVG renderer.
type RenderCfg struct {
	// Width and Height are the SVG canvas dimensions in pixels (16-8192).
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// ScalePxPerMM converts sketch millimeters to SVG pixels (greater than
	// 0.1, up to 1000).
	ScalePxPerMM float64 `yaml:"scalePxPerMM" json:"scalePxPerMM"`

	// StrokeWidth is the default line stroke width in pixels (greater than
	// 0, up to 50).
	StrokeWidth float64 `yaml:"strokeWidth" json:"strokeWidth"`

	// GeometryColor is the SVG color string for solved entities.
	// DimensionColor is an SVG color string that is validated but not used:
	// the renderer draws no dimension annotations.
	GeometryColor  string `yaml:"geometryColor" json:"geometryColor"`
	DimensionColor string `yaml:"dimensionColor" json:"dimensionColor"`
}

// DefaultConfig returns a Config with the tolerances and defaults the CLI
// uses when no profile is supplied.
func DefaultConfig() Config {
	return Config{
		Tolerance: ToleranceCfg{PointMatch: 1e-4},
		Solve:     SolveCfg{MaxIterations: 1},
		Render: RenderCfg{
			Width:          800,
			Height:         600,
			ScalePxPerMM:   20,
			StrokeWidth:    1.5,
			GeometryColor:  "#1a1a1a",
			DimensionColor: "#2060c0",
		},
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates YAML configuration from memory.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints, returning the first
// failure encountered.
func (c *Config) Validate() error {
	if err := c.Tolerance.Validate(); err != nil {
		return fmt.Errorf("tolerance: %w", err)
	}
	if err := c.Solve.Validate(); err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	if err := c.Render.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Validate checks ToleranceCfg constraints.
func (t *ToleranceCfg) Validate() error {
	if t.PointMatch <= 0 || t.PointMatch > 1.0 {
		return fmt.Errorf("pointMatch must be in range (0.0, 1.0], got %f", t.PointMatch)
	}
	return nil
}

// Validate checks SolveCfg constraints.
func (s *SolveCfg) Validate() error {
	if s.MaxIterations < 1 || s.MaxIterations > 10000 {
		return fmt.Errorf("maxIterations must be in range [1, 10000], got %d", s.MaxIterations)
	}
	return nil
}

// Validate checks RenderCfg constraints.
func (r *RenderCfg) Validate() error {
	if r.Width < 16 || r.Width > 8192 {
		return fmt.Errorf("width must be in range [16, 8192], got %d", r.Width)
	}
	if r.Height < 16 || r.Height > 8192 {
		return fmt.Errorf("height must be in range [16, 8192], got %d", r.Height)
	}
	if r.ScalePxPerMM <= 0.1 || r.ScalePxPerMM > 1000 {
		return fmt.Errorf("scalePxPerMM must be in range (0.1, 1000], got %f", r.ScalePxPerMM)
	}
	if r.StrokeWidth <= 0 || r.StrokeWidth > 50 {
		return fmt.Errorf("strokeWidth must be in range (0.0, 50], got %f", r.StrokeWidth)
	}
	if r.GeometryColor == "" {
		return errors.New("geometryColor must not be empty")
	}
	if r.DimensionColor == "" {
		return errors.New("dimensionColor must not be empty")
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration's YAML encoding.
// The encoding follows the struct's field order, so reordering fields in
// code changes the digest.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", c))
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}
