package common

// Rgba is a normalized floating-point color. Components are conceptually in
// [0, 1]; values outside that range are passed through to the GPU unchanged.
type Rgba struct {
	R, G, B, A float32
}

// RgbaWhite is fully opaque white.
var RgbaWhite = Rgba{R: 1, G: 1, B: 1, A: 1}

// RgbaTransparent is fully transparent black.
var RgbaTransparent = Rgba{}

// NewRgba creates a color from normalized components.
//
// Parameters:
//   - r, g, b, a: color components, conceptually in [0, 1]
//
// Returns:
//   - Rgba: the color value
func NewRgba(r, g, b, a float32) Rgba {
	return Rgba{R: r, G: g, B: b, A: a}
}

// Rgba8 is a packed 8-bit-per-channel color, the in-memory layout used by
// vertex attributes declared as UByte4.
type Rgba8 struct {
	R, G, B, A uint8
}

// ToRgba8 converts a normalized color to its packed 8-bit form.
// Components are clamped to [0, 1] before quantization.
//
// Returns:
//   - Rgba8: the packed color
func (c Rgba) ToRgba8() Rgba8 {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return Rgba8{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// ToRgba converts a packed color back to normalized floating point.
//
// Returns:
//   - Rgba: the normalized color
func (c Rgba8) ToRgba() Rgba {
	return Rgba{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}
