package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhardy/rgx/common"
)

// newTestRenderer creates a headless renderer, skipping the test when no GPU
// adapter is available (e.g. CI without a software rasterizer).
func newTestRenderer(t *testing.T) Renderer {
	t.Helper()
	var r Renderer
	func() {
		defer func() {
			if err := recover(); err != nil {
				t.Skipf("Need a GPU adapter: %v", err)
			}
		}()
		r = NewHeadlessRenderer()
	}()
	return r
}

func redTexels(w, h uint32) []byte {
	texels := make([]byte, w*h*4)
	for i := uint32(0); i < w*h; i++ {
		texels[i*4+0] = 255
		texels[i*4+3] = 255
	}
	return texels
}

func TestTextureCreationRect(t *testing.T) {
	r := newTestRenderer(t)

	tex := r.Texture(redTexels(2, 2), 2, 2)
	assert.Equal(t, common.NewRect[float32](0, 0, 2, 2), tex.Rect())

	tex = r.Texture(make([]byte, 7*3*4), 7, 3)
	assert.Equal(t, float32(7), tex.Rect().Width())
	assert.Equal(t, float32(3), tex.Rect().Height())
}

func TestTextureTexelLengthMismatchPanics(t *testing.T) {
	r := newTestRenderer(t)

	assert.Panics(t, func() {
		r.Texture(make([]byte, 15), 2, 2)
	})
	assert.Panics(t, func() {
		r.Texture(make([]byte, 17), 2, 2)
	})
	assert.Panics(t, func() {
		r.Framebuffer(make([]byte, 4), 2, 2)
	})
	assert.NotPanics(t, func() {
		r.Framebuffer(nil, 2, 2)
		r.Texture(make([]byte, 16), 2, 2)
	})
}

func TestBindingGroupSlotCount(t *testing.T) {
	r := newTestRenderer(t)
	dev := r.Device()

	layout := dev.CreateBindingGroupLayout(0, []Binding{
		{Binding: BindingTypeSampledTexture, Stage: ShaderStageFragment},
		{Binding: BindingTypeSampler, Stage: ShaderStageFragment},
	})
	assert.Equal(t, 2, layout.Size())

	tex := dev.CreateTexture(redTexels(2, 2), 2, 2)
	sampler := dev.CreateSampler(FilterNearest, FilterNearest)

	assert.Panics(t, func() {
		dev.CreateBindingGroup(layout, []Bind{tex})
	})
	assert.Panics(t, func() {
		dev.CreateBindingGroup(layout, []Bind{tex, sampler, sampler})
	})

	group := dev.CreateBindingGroup(layout, []Bind{tex, sampler})
	require.NotNil(t, group)
	assert.Equal(t, uint32(0), group.SetIndex())
}

func TestResizeIdempotent(t *testing.T) {
	r := newTestRenderer(t)

	r.Resize(64, 48)
	assert.Equal(t, uint32(64), r.Width())
	assert.Equal(t, uint32(48), r.Height())

	r.Resize(64, 48)
	assert.Equal(t, uint32(64), r.Width())
	assert.Equal(t, uint32(48), r.Height())
}

func TestFrameLifecycle(t *testing.T) {
	r := newTestRenderer(t)

	fb := r.Framebuffer(redTexels(4, 4), 4, 4)
	r.Prepare(fb)

	var order []int
	var lengths []int

	f := r.Frame()
	f.ReadAsync(fb, func(pixels []byte) {
		order = append(order, 1)
		lengths = append(lengths, len(pixels))
	})
	f.ReadAsync(fb, func(pixels []byte) {
		order = append(order, 2)
		lengths = append(lengths, len(pixels))
	})
	r.Submit(f)

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, []int{4 * 4 * 4, 4 * 4 * 4}, lengths)

	// A frame must not be submitted twice.
	assert.Panics(t, func() { r.Submit(f) })
	// A submitted frame must not record further work.
	assert.Panics(t, func() { f.ReadAsync(fb, func([]byte) {}) })
}

func TestOnlyOneFrameOpen(t *testing.T) {
	r := newTestRenderer(t)

	f := r.Frame()
	assert.Panics(t, func() { r.Frame() })
	r.Submit(f)

	// After submission a new frame may open again.
	f2 := r.Frame()
	r.Submit(f2)
}

func TestReadAsyncContentsPreserved(t *testing.T) {
	r := newTestRenderer(t)

	// Non-aligned width so the readback exercises row padding.
	const w, h = 3, 2
	texels := make([]byte, w*h*4)
	for i := range texels {
		texels[i] = byte(i * 7)
	}
	fb := r.Framebuffer(texels, w, h)
	r.Prepare(fb)

	var got []byte
	f := r.Frame()
	f.ReadAsync(fb, func(pixels []byte) {
		got = pixels
	})
	r.Submit(f)

	assert.Equal(t, texels, got)
}

func TestClearPassFillsTarget(t *testing.T) {
	r := newTestRenderer(t)

	fb := r.Framebuffer(nil, 4, 4)

	f := r.Frame()
	pass := f.Pass(Clear(common.NewRgba(1, 0, 0, 1)), fb)
	pass.End()

	var got []byte
	f.ReadAsync(fb, func(pixels []byte) {
		got = pixels
	})
	r.Submit(f)

	want := bytes.Repeat([]byte{255, 0, 0, 255}, 4*4)
	assert.Equal(t, want, got)
}

func TestUpdateUniformBuffer(t *testing.T) {
	r := newTestRenderer(t)

	initial := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	buf := r.UniformBuffer(initial)
	assert.Equal(t, uint64(16), buf.Size)

	next := bytes.Repeat([]byte{0xAB}, 16)
	f := r.Frame()
	f.UpdateUniformBuffer(buf, next)
	r.Submit(f)
}
