package config

import (
	"fmt"
	"math"
)

// Timing constants of the two-segment animation.
const (
	// ExplosionSpeed 爆炸阶段速度（像素/秒）：explosion duration = radius / ExplosionSpeed
	ExplosionSpeed = 1500.0
	// RainSpeed 下落阶段速度（像素/秒）：rain duration = (rainHeight + radius) / RainSpeed
	RainSpeed = 200.0
)

// Options are the user-facing construction parameters of a confetti cannon.
// Start from DefaultOptions and override what you need; NewBurstConfig validates them.
//
// The yaml tags are the keys used by preset files (see LoadPresets).
type Options struct {
	ParticleCount        int      `yaml:"particleCount"`
	Emojis               []string `yaml:"emojis"`
	IncludeDefaultShapes bool     `yaml:"includeDefaultShapes"`
	Colors               []Color  `yaml:"colors"`
	ParticleSize         float64  `yaml:"particleSize"`
	RainHeight           float64  `yaml:"rainHeight"`
	FadesOut             bool     `yaml:"fadesOut"`
	MaxOpacity           float64  `yaml:"maxOpacity"`
	OpeningAngle         float64  `yaml:"openingAngle"` // degrees
	ClosingAngle         float64  `yaml:"closingAngle"` // degrees
	Radius               float64  `yaml:"radius"`
	Repetitions          int      `yaml:"repetitions"`
	RepetitionInterval   float64  `yaml:"repetitionInterval"` // seconds
}

// DefaultOptions returns the default cannon parameters.
func DefaultOptions() Options {
	return Options{
		ParticleCount:        20,
		Emojis:               nil,
		IncludeDefaultShapes: false,
		Colors:               DefaultColors(),
		ParticleSize:         10.0,
		RainHeight:           600,
		FadesOut:             true,
		MaxOpacity:           1.0,
		OpeningAngle:         60,
		ClosingAngle:         120,
		Radius:               300,
		Repetitions:          0,
		RepetitionInterval:   1.0,
	}
}

// ConfigError reports an invalid construction parameter.
// A cannon built from invalid options never starts.
type ConfigError struct {
	Field  string // yaml key of the offending option
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid burst config: %s %s", e.Field, e.Reason)
}

// BurstConfig is the validated, immutable parameter bundle shared by every burst of a cannon.
// All fields are read-only after NewBurstConfig; the derived durations are computed once
// from radius and rainHeight.
type BurstConfig struct {
	particleCount      int
	shapes             []Shape
	colors             []Color
	particleSize       float64
	rainHeight         float64
	fadesOut           bool
	maxOpacity         float64
	openingAngle       float64
	closingAngle       float64
	radius             float64
	repetitions        int
	repetitionInterval float64

	// 派生时长（秒）
	explosionDuration float64
	rainDuration      float64
}

// NewBurstConfig resolves the shape set, validates opts and derives the phase durations.
// It returns a *ConfigError for any invalid parameter.
func NewBurstConfig(opts Options) (*BurstConfig, error) {
	shapes := ResolveShapes(opts.Emojis, opts.IncludeDefaultShapes)

	if err := opts.validate(shapes); err != nil {
		return nil, err
	}

	colors := make([]Color, len(opts.Colors))
	copy(colors, opts.Colors)

	return &BurstConfig{
		particleCount:      opts.ParticleCount,
		shapes:             shapes,
		colors:             colors,
		particleSize:       opts.ParticleSize,
		rainHeight:         opts.RainHeight,
		fadesOut:           opts.FadesOut,
		maxOpacity:         opts.MaxOpacity,
		openingAngle:       opts.OpeningAngle,
		closingAngle:       opts.ClosingAngle,
		radius:             opts.Radius,
		repetitions:        opts.Repetitions,
		repetitionInterval: opts.RepetitionInterval,
		explosionDuration:  opts.Radius / ExplosionSpeed,
		rainDuration:       (opts.RainHeight + opts.Radius) / RainSpeed,
	}, nil
}

// MustBurstConfig is like NewBurstConfig but panics on error.
// Intended for tests and package-level defaults built from constants.
func MustBurstConfig(opts Options) *BurstConfig {
	cfg, err := NewBurstConfig(opts)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (o Options) validate(shapes []Shape) error {
	if o.ParticleCount <= 0 {
		return &ConfigError{Field: "particleCount", Reason: fmt.Sprintf("must be > 0, got %d", o.ParticleCount)}
	}
	if !finite(o.Radius) || o.Radius <= 0 {
		return &ConfigError{Field: "radius", Reason: fmt.Sprintf("must be a finite value > 0, got %v", o.Radius)}
	}
	if len(shapes) == 0 {
		return &ConfigError{Field: "emojis", Reason: "resolve to an empty shape set"}
	}
	if len(o.Colors) == 0 {
		return &ConfigError{Field: "colors", Reason: "must not be empty"}
	}
	if !finite(o.ParticleSize) || o.ParticleSize <= 0 {
		return &ConfigError{Field: "particleSize", Reason: fmt.Sprintf("must be a finite value > 0, got %v", o.ParticleSize)}
	}
	if !finite(o.RainHeight) || o.RainHeight < 0 {
		return &ConfigError{Field: "rainHeight", Reason: fmt.Sprintf("must be a finite value >= 0, got %v", o.RainHeight)}
	}
	if math.IsNaN(o.MaxOpacity) || o.MaxOpacity < 0 || o.MaxOpacity > 1 {
		return &ConfigError{Field: "maxOpacity", Reason: fmt.Sprintf("must be within [0, 1], got %v", o.MaxOpacity)}
	}
	if !finite(o.OpeningAngle) {
		return &ConfigError{Field: "openingAngle", Reason: "must be finite"}
	}
	if !finite(o.ClosingAngle) {
		return &ConfigError{Field: "closingAngle", Reason: "must be finite"}
	}
	if o.Repetitions < 0 {
		return &ConfigError{Field: "repetitions", Reason: fmt.Sprintf("must be >= 0, got %d", o.Repetitions)}
	}
	if !finite(o.RepetitionInterval) || o.RepetitionInterval < 0 {
		return &ConfigError{Field: "repetitionInterval", Reason: fmt.Sprintf("must be a finite value >= 0, got %v", o.RepetitionInterval)}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParticleCount is the number of particles per burst.
func (c *BurstConfig) ParticleCount() int { return c.particleCount }

// ShapeCount is the size of the effective shape set (always > 0).
func (c *BurstConfig) ShapeCount() int { return len(c.shapes) }

// Shape returns the i-th shape of the effective shape set.
func (c *BurstConfig) Shape(i int) Shape { return c.shapes[i] }

// Shapes returns a copy of the effective shape set.
func (c *BurstConfig) Shapes() []Shape {
	out := make([]Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// ColorCount is the size of the color set (always > 0).
func (c *BurstConfig) ColorCount() int { return len(c.colors) }

// Color returns the i-th color.
func (c *BurstConfig) Color(i int) Color { return c.colors[i] }

// Colors returns a copy of the color set.
func (c *BurstConfig) Colors() []Color {
	out := make([]Color, len(c.colors))
	copy(out, c.colors)
	return out
}

// ParticleSize is the render scale of a particle in pixels.
func (c *BurstConfig) ParticleSize() float64 { return c.particleSize }

// RainHeight is the vertical distance covered during the rain phase.
func (c *BurstConfig) RainHeight() float64 { return c.rainHeight }

// FadesOut reports whether particles fade to transparent while raining.
func (c *BurstConfig) FadesOut() bool { return c.fadesOut }

// MaxOpacity is the peak opacity reached at the end of the explosion phase.
func (c *BurstConfig) MaxOpacity() float64 { return c.maxOpacity }

// OpeningAngle is the start of the explosion cone, in degrees.
func (c *BurstConfig) OpeningAngle() float64 { return c.openingAngle }

// ClosingAngle is the end of the explosion cone, in degrees.
func (c *BurstConfig) ClosingAngle() float64 { return c.closingAngle }

// OpeningAngleRad is OpeningAngle in radians.
func (c *BurstConfig) OpeningAngleRad() float64 { return c.openingAngle * math.Pi / 180 }

// ClosingAngleRad is ClosingAngle in radians.
func (c *BurstConfig) ClosingAngleRad() float64 { return c.closingAngle * math.Pi / 180 }

// Radius is the explosion radius.
func (c *BurstConfig) Radius() float64 { return c.radius }

// Repetitions is the number of extra bursts fired per trigger.
func (c *BurstConfig) Repetitions() int { return c.repetitions }

// RepetitionInterval is the spacing between repeated bursts, in seconds.
func (c *BurstConfig) RepetitionInterval() float64 { return c.repetitionInterval }

// ExplosionDuration = radius / 1500 seconds.
func (c *BurstConfig) ExplosionDuration() float64 { return c.explosionDuration }

// RainDuration = (rainHeight + radius) / 200 seconds.
func (c *BurstConfig) RainDuration() float64 { return c.rainDuration }

// TotalDuration is the lifetime of one burst: ExplosionDuration + RainDuration.
func (c *BurstConfig) TotalDuration() float64 { return c.explosionDuration + c.rainDuration }
