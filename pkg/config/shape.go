package config

import "fmt"

// ShapeKind enumerates the closed set of particle shapes.
type ShapeKind int

const (
	// ShapeSquare is the built-in filled square
	ShapeSquare ShapeKind = iota
	// ShapeCircle is the built-in filled circle
	ShapeCircle
	// ShapeGlyph is a text glyph, typically an emoji
	ShapeGlyph
)

// String implements fmt.Stringer.
func (k ShapeKind) String() string {
	switch k {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	case ShapeGlyph:
		return "glyph"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a tagged variant: Square, Circle, or Glyph(Text).
// Text is only meaningful when Kind == ShapeGlyph.
// Renderers decide how each variant is drawn; the engine only picks indices.
type Shape struct {
	Kind ShapeKind
	Text string
}

// Square returns the built-in square shape.
func Square() Shape { return Shape{Kind: ShapeSquare} }

// Circle returns the built-in circle shape.
func Circle() Shape { return Shape{Kind: ShapeCircle} }

// Glyph returns a text shape.
func Glyph(text string) Shape { return Shape{Kind: ShapeGlyph, Text: text} }

// Colored reports whether the burst color applies to this shape.
// Glyphs keep their own colors (emoji carry their own palette).
func (s Shape) Colored() bool {
	return s.Kind != ShapeGlyph
}

// String implements fmt.Stringer.
func (s Shape) String() string {
	if s.Kind == ShapeGlyph {
		return fmt.Sprintf("glyph(%s)", s.Text)
	}
	return s.Kind.String()
}

// ResolveShapes builds the effective shape set.
//
// Every non-empty emoji becomes a Glyph. The built-in Square and Circle are appended
// when includeDefaultShapes is set or when no glyph survived, so the result is never empty.
func ResolveShapes(emojis []string, includeDefaultShapes bool) []Shape {
	shapes := make([]Shape, 0, len(emojis)+2)
	for _, e := range emojis {
		if e == "" {
			continue
		}
		shapes = append(shapes, Glyph(e))
	}

	if includeDefaultShapes || len(shapes) == 0 {
		shapes = append(shapes, Square(), Circle())
	}
	return shapes
}
