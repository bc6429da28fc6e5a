package sprite

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhardy/rgx/common"
	"github.com/dhardy/rgx/core"
)

// newTestRenderer creates a headless renderer, skipping the test when no GPU
// adapter is available.
func newTestRenderer(t *testing.T) core.Renderer {
	t.Helper()
	var r core.Renderer
	func() {
		defer func() {
			if err := recover(); err != nil {
				t.Skipf("Need a GPU adapter: %v", err)
			}
		}()
		r = core.NewHeadlessRenderer()
	}()
	return r
}

func TestBatchAddGeneratesSixVertices(t *testing.T) {
	b := NewBatch(16, 16)
	b.Add(common.RectOrigin[float32](16, 16), common.NewRect[float32](0, 0, 32, 32),
		common.RgbaTransparent, 1.0, RepeatDefault)

	require.Len(t, b.Vertices(), 6)
	assert.Equal(t, 1, b.Size())

	b.Add(common.NewRect[float32](0, 0, 8, 8), common.NewRect[float32](10, 10, 20, 20),
		common.RgbaWhite, 0.5, RepeatDefault)
	require.Len(t, b.Vertices(), 12)
	assert.Equal(t, 2, b.Size())
}

func TestBatchUVMapping(t *testing.T) {
	b := NewBatch(16, 16)
	b.Add(common.NewRect[float32](0, 0, 8, 8), common.NewRect[float32](0, 0, 8, 8),
		common.RgbaTransparent, 1.0, RepeatDefault)

	verts := b.Vertices()
	// First vertex is the lower-left destination corner with a V-flipped
	// texture coordinate.
	assert.Equal(t, [2]float32{0, 0}, verts[0].Position)
	assert.Equal(t, [2]float32{0, 0.5}, verts[0].UV)
	// Third vertex is the upper-right corner.
	assert.Equal(t, [2]float32{8, 8}, verts[2].Position)
	assert.Equal(t, [2]float32{0.5, 0}, verts[2].UV)
}

func TestBatchRepeatScalesUVs(t *testing.T) {
	b := NewBatch(4, 4)
	b.Add(common.RectOrigin[float32](4, 4), common.RectOrigin[float32](64, 64),
		common.RgbaTransparent, 1.0, Repeat{X: 3, Y: 2})

	verts := b.Vertices()
	assert.Equal(t, [2]float32{3, 0}, verts[2].UV)
	assert.Equal(t, [2]float32{0, 2}, verts[0].UV)
}

func TestBatchRepeatRequiresFullSource(t *testing.T) {
	b := NewBatch(16, 16)
	assert.Panics(t, func() {
		b.Add(common.NewRect[float32](0, 0, 8, 8), common.RectOrigin[float32](32, 32),
			common.RgbaTransparent, 1.0, Repeat{X: 2, Y: 2})
	})
	assert.NotPanics(t, func() {
		b.Add(common.RectOrigin[float32](16, 16), common.RectOrigin[float32](32, 32),
			common.RgbaTransparent, 1.0, Repeat{X: 2, Y: 2})
	})
}

func TestBatchOffsetClear(t *testing.T) {
	b := Singleton(8, 8, common.RectOrigin[float32](8, 8), common.NewRect[float32](0, 0, 8, 8),
		common.RgbaTransparent, 1.0, RepeatDefault)
	b.Offset(100, 50)
	assert.Equal(t, [2]float32{100, 50}, b.Vertices()[0].Position)

	b.Clear()
	assert.Empty(t, b.Vertices())
	assert.Equal(t, 0, b.Size())
	assert.Equal(t, uint32(8), b.W)
}

func TestPreparePayloadDeterministic(t *testing.T) {
	p := NewPipeline()

	var transform [16]float32
	common.Identity(transform[:])

	_, first, ok := p.Prepare(transform)
	require.True(t, ok)
	_, second, ok := p.Prepare(transform)
	require.True(t, ok)
	assert.Equal(t, first, second)
	assert.Len(t, first, 128)
}

func TestPrepareRejectsWrongContext(t *testing.T) {
	p := NewPipeline()
	assert.Panics(t, func() {
		p.Prepare("not a transform")
	})
}

func TestDrawRedTextureEndToEnd(t *testing.T) {
	r := newTestRenderer(t)

	const size = 64

	pip := NewPipeline()
	r.Pipeline(pip, size, size)

	red := bytes.Repeat([]byte{255, 0, 0, 255}, 2*2)
	tex := r.Texture(red, 2, 2)
	sampler := r.Sampler(core.FilterNearest, core.FilterNearest)
	binding := pip.Binding(r.Device(), tex, sampler)
	fb := r.Framebuffer(nil, size, size)

	r.Prepare(tex)

	batch := Singleton(2, 2, tex.Rect(), common.RectOrigin[float32](size, size),
		common.RgbaTransparent, 1.0, RepeatDefault)
	quad := batch.Finish(r)

	var got []byte
	f := r.Frame()
	pass := f.Pass(core.Clear(common.NewRgba(0, 0, 1, 1)), fb)
	pass.SetPipeline(pip)
	pass.Draw(quad, binding)
	pass.End()
	f.ReadAsync(fb, func(pixels []byte) {
		got = pixels
	})
	r.Submit(f)

	require.Len(t, got, size*size*4)
	want := bytes.Repeat([]byte{255, 0, 0, 255}, size*size)
	assert.Equal(t, want, got)
}
