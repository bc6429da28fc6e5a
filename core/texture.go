package core

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/dhardy/rgx/common"
)

// Filter selects the sampling filter used when a texture is minified or
// magnified.
type Filter int

const (
	// FilterNearest picks the nearest texel without interpolation.
	FilterNearest Filter = iota

	// FilterLinear interpolates linearly between neighboring texels.
	FilterLinear
)

func (f Filter) wgpuFilter() wgpu.FilterMode {
	if f == FilterLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

// RenderTarget is any image a render pass can draw into: a *Framebuffer or
// the frame's acquired swap-chain target.
type RenderTarget interface {
	renderView() *wgpu.TextureView
}

// Texture is a sampleable RGBA image plus a CPU-staging buffer holding its
// initial texels. The upload to the image itself is deferred to Prepare; the
// texture must be passed through Renderer.Prepare before its first use in a
// draw call.
type Texture struct {
	wgpuTexture *wgpu.Texture
	view        *wgpu.TextureView

	// W and H are the image dimensions in pixels.
	W, H uint32

	staging     *wgpu.Buffer
	paddedPitch uint32
}

// Rect returns the texture's pixel rectangle (0,0)..(w,h).
func (t *Texture) Rect() common.Rect[float32] {
	return common.RectOrigin(float32(t.W), float32(t.H))
}

// Prepare records the staging-buffer → image copy into the encoder.
// Implements Resource.
func (t *Texture) Prepare(encoder *wgpu.CommandEncoder) {
	if t.staging == nil {
		return
	}
	copyBufferToTexture(encoder, t.staging, t.paddedPitch, t.wgpuTexture, t.W, t.H)
}

func (t *Texture) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding:     index,
		TextureView: t.view,
	}
}

// Framebuffer is a renderable and sampleable RGBA image. It carries a staging
// buffer only when created with non-empty initial texels; otherwise it starts
// as a pure render target with undefined prior contents.
type Framebuffer struct {
	wgpuTexture *wgpu.Texture
	view        *wgpu.TextureView

	// W and H are the image dimensions in pixels.
	W, H uint32

	staging     *wgpu.Buffer
	paddedPitch uint32
}

// Rect returns the framebuffer's pixel rectangle (0,0)..(w,h).
func (f *Framebuffer) Rect() common.Rect[float32] {
	return common.RectOrigin(float32(f.W), float32(f.H))
}

// Prepare records the staging-buffer → image copy into the encoder, if the
// framebuffer was created with initial texels. Implements Resource.
func (f *Framebuffer) Prepare(encoder *wgpu.CommandEncoder) {
	if f.staging == nil {
		return
	}
	copyBufferToTexture(encoder, f.staging, f.paddedPitch, f.wgpuTexture, f.W, f.H)
}

func (f *Framebuffer) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding:     index,
		TextureView: f.view,
	}
}

func (f *Framebuffer) renderView() *wgpu.TextureView {
	return f.view
}

// Sampler is a texture filtering configuration with repeat-wrap addressing in
// all axes. Samplers are stateless and shareable across binding groups.
type Sampler struct {
	wgpuSampler *wgpu.Sampler
}

func (s *Sampler) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: index,
		Sampler: s.wgpuSampler,
	}
}

func copyBufferToTexture(encoder *wgpu.CommandEncoder, src *wgpu.Buffer, bytesPerRow uint32, dst *wgpu.Texture, w, h uint32) {
	encoder.CopyBufferToTexture(
		&wgpu.ImageCopyBuffer{
			Buffer: src,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  bytesPerRow,
				RowsPerImage: h,
			},
		},
		&wgpu.ImageCopyTexture{
			Texture:  dst,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
	)
}
