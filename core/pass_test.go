package core

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"

	"github.com/dhardy/rgx/common"
)

func TestPassOpClear(t *testing.T) {
	op := Clear(common.NewRgba(0.25, 0.5, 0.75, 1.0))
	assert.Equal(t, wgpu.LoadOpClear, op.loadOp())
	assert.Equal(t, wgpu.Color{R: 0.25, G: 0.5, B: 0.75, A: 1.0}, op.clearValue())
}

func TestPassOpLoad(t *testing.T) {
	op := Load()
	assert.Equal(t, wgpu.LoadOpLoad, op.loadOp())
}

func TestRangeCount(t *testing.T) {
	assert.Equal(t, uint32(6), Range{Start: 0, End: 6}.Count())
	assert.Equal(t, uint32(4), Range{Start: 2, End: 6}.Count())
	assert.Equal(t, uint32(0), Range{}.Count())
}

func TestRowPadding(t *testing.T) {
	tests := []struct {
		name  string
		width uint32
		pitch uint32
	}{
		{"2px rows pad to alignment", 2, 256},
		{"4px rows pad to alignment", 4, 256},
		{"64px rows already aligned", 64, 256},
		{"100px rows pad up", 100, 512},
		{"128px rows already aligned", 128, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pitch, alignPitch(tt.width*4))
		})
	}
}

func TestPadUnpadRowsRoundTrip(t *testing.T) {
	const w, h = 3, 2
	texels := make([]byte, w*h*4)
	for i := range texels {
		texels[i] = byte(i + 1)
	}

	padded, pitch := padRows(texels, w, h)
	assert.Equal(t, uint32(256), pitch)
	assert.Len(t, padded, int(pitch*h))

	back := unpadRows(padded, w, h, pitch)
	assert.Equal(t, texels, back)
}

func TestPadRowsAlignedPassthrough(t *testing.T) {
	const w, h = 64, 2
	texels := make([]byte, w*h*4)
	padded, pitch := padRows(texels, w, h)
	assert.Equal(t, uint32(w*4), pitch)
	assert.Len(t, padded, len(texels))
}
