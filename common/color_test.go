package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRgbaToRgba8(t *testing.T) {
	tests := []struct {
		name string
		in   Rgba
		want Rgba8
	}{
		{"white", RgbaWhite, Rgba8{255, 255, 255, 255}},
		{"transparent", RgbaTransparent, Rgba8{0, 0, 0, 0}},
		{"red", NewRgba(1, 0, 0, 1), Rgba8{255, 0, 0, 255}},
		{"half gray", NewRgba(0.5, 0.5, 0.5, 1), Rgba8{128, 128, 128, 255}},
		{"clamped above", NewRgba(2, 0, 0, 1.5), Rgba8{255, 0, 0, 255}},
		{"clamped below", NewRgba(-1, 0, 0, 0), Rgba8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ToRgba8())
		})
	}
}

func TestRgba8RoundTrip(t *testing.T) {
	c := Rgba8{R: 255, G: 0, B: 128, A: 64}
	back := c.ToRgba().ToRgba8()
	assert.Equal(t, c, back)
}
