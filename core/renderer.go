package core

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer owns the Device and the presentable swap chain. It orchestrates
// surface resizing, pipeline compilation, one-shot resource preparation and
// the frame lifecycle. All operations must be issued from one logical thread;
// the renderer locks the calling goroutine to its OS thread at construction.
type Renderer interface {
	// Device returns the underlying resource factory, consumed mainly by
	// AbstractPipeline implementations during Setup.
	Device() Device

	// Resize reconfigures the presentable surface to the given pixel size.
	// Calling it twice with the same size is idempotent.
	//
	// Parameters:
	//   - w, h: new surface size in pixels
	Resize(w, h uint32)

	// Width returns the current swap target width in pixels.
	Width() uint32

	// Height returns the current swap target height in pixels.
	Height() uint32

	// Texture creates a sampleable texture; see Device.CreateTexture.
	Texture(texels []byte, w, h uint32) *Texture

	// Framebuffer creates an offscreen render target; see
	// Device.CreateFramebuffer.
	Framebuffer(texels []byte, w, h uint32) *Framebuffer

	// VertexBuffer creates a vertex buffer; see Device.CreateVertexBuffer.
	VertexBuffer(data []byte, count uint32) *VertexBuffer

	// IndexBuffer creates a 16-bit index buffer; see
	// Device.CreateIndexBuffer.
	IndexBuffer(indices []uint16) *IndexBuffer

	// UniformBuffer creates a uniform buffer; see
	// Device.CreateUniformBuffer.
	UniformBuffer(data []byte) *UniformBuffer

	// BindingGroup binds resources against a layout; see
	// Device.CreateBindingGroup.
	BindingGroup(layout *BindingGroupLayout, binds []Bind) *BindingGroup

	// Sampler creates a sampler; see Device.CreateSampler.
	Sampler(minFilter, magFilter Filter) *Sampler

	// Pipeline compiles the pipeline's description and runs its Setup
	// against the given viewport size.
	//
	// Parameters:
	//   - p: the pipeline variant to compile and set up
	//   - width, height: current viewport size in pixels
	Pipeline(p AbstractPipeline, width, height uint32)

	// UpdatePipeline runs the pipeline's Prepare with the given context
	// and records any resulting uniform upload into the frame.
	//
	// Parameters:
	//   - p: the pipeline to prepare
	//   - context: the pipeline's draw-time context value
	//   - f: the open frame to record the upload into
	UpdatePipeline(p AbstractPipeline, context any, f *Frame)

	// Prepare batches the staging uploads of the given resources into one
	// command buffer and submits it immediately. Textures and
	// framebuffers created with initial texels must pass through here
	// before their first use in a draw call.
	//
	// Parameters:
	//   - resources: resources with pending staging copies
	Prepare(resources ...Resource)

	// Frame acquires the next presentable image and opens a new command
	// encoder. Panics if a frame is already open.
	//
	// Returns:
	//   - *Frame: the open frame
	Frame() *Frame

	// Submit finalizes the frame: finishes and submits its encoder
	// exactly once, presents the acquired image, and drains the frame's
	// deferred readback callbacks in registration order.
	//
	// Parameters:
	//   - f: the frame to submit
	Submit(f *Frame)
}

// renderer is the wgpu-backed implementation of Renderer.
type renderer struct {
	dev           *device
	width, height uint32

	presentMode          wgpu.PresentMode
	forceFallbackAdapter bool
	frameOpen            bool
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer presenting to the given surface. Adapter or
// device acquisition failure is fatal.
//
// Parameters:
//   - surfaceDescriptor: the platform surface to present to
//   - w, h: initial surface size in pixels
//   - opts: optional configuration
//
// Returns:
//   - Renderer: the constructed renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, w, h uint32, opts ...RendererOption) Renderer {
	runtime.LockOSThread()
	r := &renderer{
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.dev = newDevice(surfaceDescriptor, r.forceFallbackAdapter)
	r.Resize(w, h)
	return r
}

// NewHeadlessRenderer creates a renderer without a presentable surface. Its
// frames carry no swap target: passes render into framebuffers only, which is
// sufficient for offscreen rendering and tests.
//
// Parameters:
//   - opts: optional configuration
//
// Returns:
//   - Renderer: the constructed renderer
func NewHeadlessRenderer(opts ...RendererOption) Renderer {
	runtime.LockOSThread()
	r := &renderer{
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.dev = newDevice(nil, r.forceFallbackAdapter)
	return r
}

func (r *renderer) Device() Device {
	return r.dev
}

func (r *renderer) Resize(w, h uint32) {
	r.width = w
	r.height = h
	if r.dev.surface == nil {
		return
	}
	capabilities := r.dev.surface.GetCapabilities(r.dev.adapter)
	r.dev.surface.Configure(r.dev.adapter, r.dev.handle, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      renderFormat,
		Width:       w,
		Height:      h,
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (r *renderer) Width() uint32 {
	return r.width
}

func (r *renderer) Height() uint32 {
	return r.height
}

func (r *renderer) Texture(texels []byte, w, h uint32) *Texture {
	return r.dev.CreateTexture(texels, w, h)
}

func (r *renderer) Framebuffer(texels []byte, w, h uint32) *Framebuffer {
	return r.dev.CreateFramebuffer(texels, w, h)
}

func (r *renderer) VertexBuffer(data []byte, count uint32) *VertexBuffer {
	return r.dev.CreateVertexBuffer(data, count)
}

func (r *renderer) IndexBuffer(indices []uint16) *IndexBuffer {
	return r.dev.CreateIndexBuffer(indices)
}

func (r *renderer) UniformBuffer(data []byte) *UniformBuffer {
	return r.dev.CreateUniformBuffer(data)
}

func (r *renderer) BindingGroup(layout *BindingGroupLayout, binds []Bind) *BindingGroup {
	return r.dev.CreateBindingGroup(layout, binds)
}

func (r *renderer) Sampler(minFilter, magFilter Filter) *Sampler {
	return r.dev.CreateSampler(minFilter, magFilter)
}

func (r *renderer) Pipeline(p AbstractPipeline, width, height uint32) {
	desc := p.Description()
	vs := r.dev.CreateShader("vertex shader", desc.VertexShader, ShaderStageVertex)
	fs := r.dev.CreateShader("fragment shader", desc.FragmentShader, ShaderStageFragment)
	layout := r.dev.CreatePipelineLayout(desc.PipelineLayout)
	compiled := r.dev.CreatePipeline(layout, desc.VertexLayout, vs, fs)
	p.Setup(compiled, r.dev, width, height)
}

func (r *renderer) UpdatePipeline(p AbstractPipeline, context any, f *Frame) {
	f.Prepare(p, context)
}

func (r *renderer) Prepare(resources ...Resource) {
	encoder := r.dev.createCommandEncoder()
	for _, res := range resources {
		res.Prepare(encoder)
	}
	cmd, err := encoder.Finish(nil)
	if err != nil {
		panic(fmt.Sprintf("renderer: prepare encoder finish failed: %v", err))
	}
	r.dev.queue.Submit(cmd)
	cmd.Release()
	encoder.Release()
}

func (r *renderer) Frame() *Frame {
	if r.frameOpen {
		panic("renderer: a frame is already open")
	}
	f := &Frame{dev: r.dev}
	if r.dev.surface != nil {
		surfaceTexture, err := r.dev.surface.GetCurrentTexture()
		if err != nil {
			panic(fmt.Sprintf("renderer: surface texture acquisition failed: %v", err))
		}
		view, err := surfaceTexture.CreateView(nil)
		if err != nil {
			surfaceTexture.Release()
			panic(fmt.Sprintf("renderer: surface view creation failed: %v", err))
		}
		f.surfaceTexture = surfaceTexture
		f.surfaceView = view
	}
	f.encoder = r.dev.createCommandEncoder()
	r.frameOpen = true
	return f
}

func (r *renderer) Submit(f *Frame) {
	f.finish()
	r.frameOpen = false
}
