package core

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Brush is a solid fill color with explicit 8-bit channels, decoupled
// from the terminal backend. The zero value is the transparent brush:
// nothing is drawn with it
type Brush struct {
	R, G, B uint8
	Solid   bool
}

// Predefined brushes
var (
	BrushTransparent = Brush{}
	BrushBlack       = NewBrush(0, 0, 0)
	BrushWhite       = NewBrush(255, 255, 255)
)

// NewBrush creates an opaque brush from 8-bit channels
func NewBrush(r, g, b uint8) Brush {
	return Brush{R: r, G: g, B: b, Solid: true}
}

// ParseBrush creates a brush from a hex string like "#1e2328"
// "none" and the empty string yield the transparent brush
func ParseBrush(s string) (Brush, error) {
	if s == "" || s == "none" {
		return BrushTransparent, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return BrushTransparent, err
	}
	return fromColorful(c), nil
}

// Hex returns the brush as a "#rrggbb" string, or "none" when transparent
func (b Brush) Hex() string {
	if !b.Solid {
		return "none"
	}
	return b.colorful().Hex()
}

// Lighten returns the brush with lightness raised by amount in [0,1]
func (b Brush) Lighten(amount float64) Brush {
	if !b.Solid {
		return b
	}
	h, s, l := b.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, clamp01(l+amount)))
}

// Darken returns the brush with lightness lowered by amount in [0,1]
func (b Brush) Darken(amount float64) Brush {
	return b.Lighten(-amount)
}

// Blend mixes the brush toward other in Lab space, t in [0,1]
// Lab keeps the midpoints perceptually even, unlike channel lerp
func (b Brush) Blend(other Brush, t float64) Brush {
	if !b.Solid {
		return other
	}
	if !other.Solid {
		return b
	}
	return fromColorful(b.colorful().BlendLab(other.colorful(), clamp01(t)).Clamped())
}

func (b Brush) colorful() colorful.Color {
	return colorful.Color{
		R: float64(b.R) / 255.0,
		G: float64(b.G) / 255.0,
		B: float64(b.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) Brush {
	c = c.Clamped()
	return Brush{
		R:     uint8(c.R*255.0 + 0.5),
		G:     uint8(c.G*255.0 + 0.5),
		B:     uint8(c.B*255.0 + 0.5),
		Solid: true,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
