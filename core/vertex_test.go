package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexFormatByteSize(t *testing.T) {
	tests := []struct {
		format VertexFormat
		size   uint64
	}{
		{VertexFormatFloat, 4},
		{VertexFormatFloat2, 8},
		{VertexFormatFloat3, 12},
		{VertexFormatFloat4, 16},
		{VertexFormatUByte4, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.format.ByteSize())
	}
}

func TestVertexLayoutOffsets(t *testing.T) {
	tests := []struct {
		name    string
		formats []VertexFormat
		offsets []uint64
		stride  uint64
	}{
		{
			name:    "sprite layout",
			formats: []VertexFormat{VertexFormatFloat2, VertexFormatFloat2, VertexFormatUByte4, VertexFormatFloat},
			offsets: []uint64{0, 8, 16, 20},
			stride:  24,
		},
		{
			name:    "blit layout",
			formats: []VertexFormat{VertexFormatFloat2, VertexFormatFloat2},
			offsets: []uint64{0, 8},
			stride:  16,
		},
		{
			name:    "single attribute",
			formats: []VertexFormat{VertexFormatFloat3},
			offsets: []uint64{0},
			stride:  12,
		},
		{
			name:   "empty",
			stride: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vl := VertexLayoutOf(tt.formats...)
			assert.Equal(t, tt.stride, vl.Stride())
			assert.Equal(t, len(tt.formats), vl.Len())
			for i, want := range tt.offsets {
				assert.Equal(t, want, vl.Offset(i))
			}
		})
	}
}

func TestVertexLayoutMonotonicOffsets(t *testing.T) {
	vl := VertexLayoutOf(VertexFormatFloat4, VertexFormatUByte4, VertexFormatFloat2, VertexFormatFloat)
	var prev uint64
	for i := 0; i < vl.Len(); i++ {
		if i > 0 {
			assert.Greater(t, vl.Offset(i), prev)
		}
		prev = vl.Offset(i)
	}
	assert.Equal(t, prev+VertexFormatFloat.ByteSize(), vl.Stride())
}

func TestVertexLayoutBackendConversion(t *testing.T) {
	vl := VertexLayoutOf(VertexFormatFloat2, VertexFormatUByte4)
	layout := vl.wgpuLayout()
	assert.Equal(t, uint64(12), layout.ArrayStride)
	assert.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint32(0), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, uint32(1), layout.Attributes[1].ShaderLocation)
	assert.Equal(t, uint64(8), layout.Attributes[1].Offset)
}
