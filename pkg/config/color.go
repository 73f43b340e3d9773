package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGBA color applied to the built-in square and circle shapes.
// It implements color.Color so renderers can hand it straight to ebiten or tcell.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as "#RRGGBB", or "#RRGGBBAA" when not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Preset colors (系统预设色)
var (
	ColorBlue   = Color{R: 0, G: 122, B: 255, A: 255}
	ColorRed    = Color{R: 255, G: 59, B: 48, A: 255}
	ColorGreen  = Color{R: 52, G: 199, B: 89, A: 255}
	ColorYellow = Color{R: 255, G: 204, B: 0, A: 255}
	ColorPink   = Color{R: 255, G: 45, B: 85, A: 255}
	ColorPurple = Color{R: 175, G: 82, B: 222, A: 255}
	ColorOrange = Color{R: 255, G: 149, B: 0, A: 255}
)

// namedColors 允许在 YAML 中直接写颜色名
var namedColors = map[string]Color{
	"blue":   ColorBlue,
	"red":    ColorRed,
	"green":  ColorGreen,
	"yellow": ColorYellow,
	"pink":   ColorPink,
	"purple": ColorPurple,
	"orange": ColorOrange,
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"black":  {R: 0, G: 0, B: 0, A: 255},
}

// DefaultColors returns a fresh copy of the seven preset colors, in order.
func DefaultColors() []Color {
	return []Color{ColorBlue, ColorRed, ColorGreen, ColorYellow, ColorPink, ColorPurple, ColorOrange}
}

// ParseColor parses a color name ("blue") or a hex string ("#FF8800", "#FF880080", "F80").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		// 短格式 "F80" → "FF8800"
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected a name or #RRGGBB[AA]", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: color must be a string: %w", value.Line, err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}
