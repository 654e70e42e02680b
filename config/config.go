// Package config provides configuration loading and validation for the overlay.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all overlay configuration parameters.
type Config struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Target  string        `yaml:"target"`
	Streaks StreaksConfig `yaml:"streaks"`
	Trail   TrailConfig   `yaml:"trail"`
	Impact  ImpactConfig  `yaml:"impact"`
	Render  RenderConfig  `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds host window settings for the demo binary.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// Range is a closed [Min, Max] interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// StreaksConfig holds per-streak motion parameters.
type StreaksConfig struct {
	Density          int     `yaml:"density"`           // Number of concurrent streaks
	FallSpeed        Range   `yaml:"fall_speed"`        // Vertical speed, units/second
	Wind             Range   `yaml:"wind"`              // Horizontal drift, units/second (signed)
	RespawnGap       Range   `yaml:"respawn_gap"`       // Idle seconds between melt and next fall
	TwinkleAmplitude float64 `yaml:"twinkle_amplitude"` // Opacity modulation depth
	TwinkleSpeed     float64 `yaml:"twinkle_speed"`     // Oscillator advance, radians/second
	BufferMargin     float64 `yaml:"buffer_margin"`     // Horizontal wrap margin beyond the edges
}

// TrailConfig holds trail segment geometry and fade parameters.
type TrailConfig struct {
	Length     int     `yaml:"length"`      // Segments per streak, head included
	Width      float64 `yaml:"width"`       // Capsule width
	HeadLength float64 `yaml:"head_length"` // Head capsule height
	BodyLength float64 `yaml:"body_length"` // Body capsule height
	Spacing    float64 `yaml:"spacing"`     // Vertical segment spacing (0 = body_length)
	HeadBoost  float64 `yaml:"head_boost"`  // Head opacity multiplier, clamped after boost
	DimFactor  float64 `yaml:"dim_factor"`  // Ensemble-wide opacity multiplier
}

// ImpactConfig holds landing flash and melt parameters.
type ImpactConfig struct {
	MeltZone       float64 `yaml:"melt_zone"`        // Fade band above the bottom edge, units
	FlashDuration  float64 `yaml:"flash_duration"`   // Seconds
	MeltDuration   float64 `yaml:"melt_duration"`    // Seconds
	FlashDotRadius float64 `yaml:"flash_dot_radius"` // Round dot at the landing point
	HaloRadius     float64 `yaml:"halo_radius"`      // Wide low-opacity flash halo
	PuddleRadius   float64 `yaml:"puddle_radius"`    // Melt puddle radius at full growth
}

// RenderConfig holds rendering options.
type RenderConfig struct {
	DPRCap    float64 `yaml:"dpr_cap"`    // Device pixel ratio cap
	Glow      bool    `yaml:"glow"`       // Soft radial glow under bright segments
	GlowFloor float64 `yaml:"glow_floor"` // Minimum segment opacity that still draws glow
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Spacing float64 // Effective segment spacing (Trail.Spacing or Trail.BodyLength)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Unknown fields in the
// file are ignored. The merged result is validated before being returned.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.ComputeDerived()
	return cfg, nil
}

// Validate checks the configuration for values the animation cannot run with.
func (c *Config) Validate() error {
	if c.Streaks.Density < 0 {
		return fmt.Errorf("%w: streaks.density %d is negative", ErrInvalid, c.Streaks.Density)
	}

	finite := map[string]float64{
		"streaks.fall_speed.min":    c.Streaks.FallSpeed.Min,
		"streaks.fall_speed.max":    c.Streaks.FallSpeed.Max,
		"streaks.wind.min":          c.Streaks.Wind.Min,
		"streaks.wind.max":          c.Streaks.Wind.Max,
		"streaks.respawn_gap.min":   c.Streaks.RespawnGap.Min,
		"streaks.respawn_gap.max":   c.Streaks.RespawnGap.Max,
		"streaks.twinkle_amplitude": c.Streaks.TwinkleAmplitude,
		"streaks.twinkle_speed":     c.Streaks.TwinkleSpeed,
		"streaks.buffer_margin":     c.Streaks.BufferMargin,
		"trail.width":               c.Trail.Width,
		"trail.head_length":         c.Trail.HeadLength,
		"trail.body_length":         c.Trail.BodyLength,
		"trail.spacing":             c.Trail.Spacing,
		"trail.head_boost":          c.Trail.HeadBoost,
		"trail.dim_factor":          c.Trail.DimFactor,
		"impact.melt_zone":          c.Impact.MeltZone,
		"impact.flash_duration":     c.Impact.FlashDuration,
		"impact.melt_duration":      c.Impact.MeltDuration,
		"impact.flash_dot_radius":   c.Impact.FlashDotRadius,
		"impact.halo_radius":        c.Impact.HaloRadius,
		"impact.puddle_radius":      c.Impact.PuddleRadius,
		"render.dpr_cap":            c.Render.DPRCap,
		"render.glow_floor":         c.Render.GlowFloor,
	}
	for name, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalid, name)
		}
	}

	ranges := map[string]Range{
		"streaks.fall_speed":  c.Streaks.FallSpeed,
		"streaks.wind":        c.Streaks.Wind,
		"streaks.respawn_gap": c.Streaks.RespawnGap,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return fmt.Errorf("%w: %s min %g > max %g", ErrInvalid, name, r.Min, r.Max)
		}
	}

	positive := map[string]float64{
		"trail.width":           c.Trail.Width,
		"trail.head_length":     c.Trail.HeadLength,
		"trail.body_length":     c.Trail.BodyLength,
		"impact.flash_duration": c.Impact.FlashDuration,
		"impact.melt_duration":  c.Impact.MeltDuration,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, name, v)
		}
	}

	if c.Trail.Length < 1 {
		return fmt.Errorf("%w: trail.length must be at least 1, got %d", ErrInvalid, c.Trail.Length)
	}
	if c.Trail.Spacing < 0 {
		return fmt.Errorf("%w: trail.spacing must not be negative, got %g", ErrInvalid, c.Trail.Spacing)
	}
	if c.Streaks.BufferMargin < 0 {
		return fmt.Errorf("%w: streaks.buffer_margin must not be negative, got %g", ErrInvalid, c.Streaks.BufferMargin)
	}
	if c.Impact.MeltZone < 0 {
		return fmt.Errorf("%w: impact.melt_zone must not be negative, got %g", ErrInvalid, c.Impact.MeltZone)
	}
	if c.Render.DPRCap < 1 {
		return fmt.Errorf("%w: render.dpr_cap must be at least 1, got %g", ErrInvalid, c.Render.DPRCap)
	}

	return nil
}

// ComputeDerived calculates values derived from loaded config.
func (c *Config) ComputeDerived() {
	c.Derived.Spacing = c.Trail.Spacing
	if c.Derived.Spacing == 0 {
		c.Derived.Spacing = c.Trail.BodyLength
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
