package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple in [0,1], taken from hex as-is.
type Color struct {
	R, G, B float32
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// ParseColor accepts "#rgb" and "#rrggbb".
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, &ParamError{Field: "color", Value: hex, Rule: "must be #rgb or #rrggbb"}
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}, nil
}

// MustParseColor panics on malformed input. Meant for literals.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// UnmarshalYAML reads a hex string.
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// MixColor interpolates componentwise. Written as in*(1-t) + out*t so both
// ends of the range return the inputs bit for bit.
func MixColor(in, out mgl32.Vec3, t float32) mgl32.Vec3 {
	return in.Mul(1 - t).Add(out.Mul(t))
}
