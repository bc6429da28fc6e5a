package core

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// renderFormat is the fixed color format of every render target: the
// presentable surface, framebuffers, and the color target every pipeline is
// compiled against. Textures use the same four-byte RGBA layout, so texel
// buffers and readback buffers always hold 4*w*h bytes.
const renderFormat = wgpu.TextureFormatRGBA8Unorm

// copyRowAlignment is the backend's required alignment of BytesPerRow in
// buffer↔image copies. Staging and readback buffers pad each pixel row up to
// this alignment internally; callers always see tightly packed 4*w rows.
const copyRowAlignment = 256

// Device owns the GPU adapter, logical device and queue, and is the sole
// factory for every GPU resource and compiled pipeline. All resource-creation
// invariants are checked here: a violated precondition is a caller programming
// error and panics immediately with a diagnostic, it is never retried.
type Device interface {
	// CreateTexture allocates a sampleable image plus a staging buffer
	// holding the initial texels. The upload to the image itself is
	// deferred to the Resource prepare step. Panics if len(texels) is not
	// w*h*4.
	//
	// Parameters:
	//   - texels: initial contents, 4 bytes per pixel, tightly packed rows
	//   - w, h: image dimensions in pixels
	//
	// Returns:
	//   - *Texture: the created texture
	CreateTexture(texels []byte, w, h uint32) *Texture

	// CreateFramebuffer allocates a renderable and sampleable image. A
	// staging buffer is allocated only when texels is non-empty; an empty
	// framebuffer starts as a pure render target with undefined contents.
	// Panics if texels is non-empty and len(texels) is not w*h*4.
	//
	// Parameters:
	//   - texels: initial contents, or nil/empty for none
	//   - w, h: image dimensions in pixels
	//
	// Returns:
	//   - *Framebuffer: the created framebuffer
	CreateFramebuffer(texels []byte, w, h uint32) *Framebuffer

	// CreateVertexBuffer copies the given vertex data into a GPU buffer.
	// The buffer size is fixed at creation.
	//
	// Parameters:
	//   - data: raw vertex bytes matching the pipeline's VertexLayout
	//   - count: number of vertices in data
	//
	// Returns:
	//   - *VertexBuffer: the created buffer
	CreateVertexBuffer(data []byte, count uint32) *VertexBuffer

	// CreateIndexBuffer copies the given 16-bit indices into a GPU buffer.
	//
	// Parameters:
	//   - indices: index values
	//
	// Returns:
	//   - *IndexBuffer: the created buffer
	CreateIndexBuffer(indices []uint16) *IndexBuffer

	// CreateUniformBuffer copies the given bytes into a GPU uniform
	// buffer. The contents may later be fully overwritten through
	// Frame.UpdateUniformBuffer.
	//
	// Parameters:
	//   - data: initial uniform contents
	//
	// Returns:
	//   - *UniformBuffer: the created buffer
	CreateUniformBuffer(data []byte) *UniformBuffer

	// CreateBindingGroupLayout builds an ordered slot layout for the given
	// set index from a caller-declared list of (resource kind, visibility)
	// pairs. Slot index is the position in the list.
	//
	// Parameters:
	//   - index: the pipeline set index the layout belongs to
	//   - slots: the ordered slot declarations
	//
	// Returns:
	//   - *BindingGroupLayout: the created layout
	CreateBindingGroupLayout(index uint32, slots []Binding) *BindingGroupLayout

	// CreateBindingGroup binds concrete resources against a layout, in the
	// layout's declared slot order. Panics if len(binds) differs from the
	// layout's slot count.
	//
	// Parameters:
	//   - layout: the layout to bind against
	//   - binds: one bindable resource per layout slot, in order
	//
	// Returns:
	//   - *BindingGroup: the created group
	CreateBindingGroup(layout *BindingGroupLayout, binds []Bind) *BindingGroup

	// CreatePipelineLayout builds one binding group layout per declared
	// set, preserving set index.
	//
	// Parameters:
	//   - sets: the binding sets, in set-index order
	//
	// Returns:
	//   - *PipelineLayout: the created layout
	CreatePipelineLayout(sets []Set) *PipelineLayout

	// CreateShader compiles WGSL source into a stage-tagged module. A
	// compile failure is fatal and panics with the backend diagnostic.
	//
	// Parameters:
	//   - name: label used in diagnostics
	//   - source: WGSL source text
	//   - stage: the pipeline stage the shader is declared for
	//
	// Returns:
	//   - *Shader: the compiled module
	CreateShader(name, source string, stage ShaderStage) *Shader

	// CreatePipeline builds the full drawing configuration: standard alpha
	// blending, counter-clockwise front face, no culling, triangle-list
	// topology, 16-bit indices, no depth/stencil, bound to the fixed
	// target color format.
	//
	// Parameters:
	//   - layout: the pipeline's binding group layouts
	//   - vertexLayout: the vertex byte layout
	//   - vs: compiled vertex shader
	//   - fs: compiled fragment shader
	//
	// Returns:
	//   - *Pipeline: the compiled pipeline
	CreatePipeline(layout *PipelineLayout, vertexLayout VertexLayout, vs, fs *Shader) *Pipeline

	// CreateSampler creates a sampler with the given minification and
	// magnification filters and repeat-wrap addressing in all axes.
	//
	// Parameters:
	//   - minFilter: filter used when the texture is minified
	//   - magFilter: filter used when the texture is magnified
	//
	// Returns:
	//   - *Sampler: the created sampler
	CreateSampler(minFilter, magFilter Filter) *Sampler
}

// device is the wgpu-backed implementation of Device.
type device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	handle   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface // nil for headless devices
}

var _ Device = &device{}

// newDevice acquires the adapter and logical device. surfaceDescriptor may be
// nil, in which case the device is headless and can only render into
// framebuffers. Adapter or device acquisition failure is a fatal startup
// condition.
func newDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) *device {
	d := &device{
		instance: wgpu.CreateInstance(nil),
	}
	if surfaceDescriptor != nil {
		d.surface = d.instance.CreateSurface(surfaceDescriptor)
	}

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		panic(fmt.Sprintf("device: no suitable GPU adapter: %v", err))
	}
	d.adapter = a

	h, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "rgx device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("device: device request failed: %v", err))
	}
	d.handle = h
	d.queue = h.GetQueue()

	return d
}

func (d *device) CreateTexture(texels []byte, w, h uint32) *Texture {
	if uint32(len(texels)) != w*h*4 {
		panic(fmt.Sprintf("texture: wrong texture width or height given: have %d texel bytes, want %d", len(texels), w*h*4))
	}
	tex, view := d.createImage("texture", w, h, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
	staging, pitch := d.createStaging(texels, w, h)
	return &Texture{
		wgpuTexture: tex,
		view:        view,
		W:           w,
		H:           h,
		staging:     staging,
		paddedPitch: pitch,
	}
}

func (d *device) CreateFramebuffer(texels []byte, w, h uint32) *Framebuffer {
	if len(texels) != 0 && uint32(len(texels)) != w*h*4 {
		panic(fmt.Sprintf("framebuffer: wrong texture width or height given: have %d texel bytes, want %d", len(texels), w*h*4))
	}
	usage := wgpu.TextureUsageTextureBinding |
		wgpu.TextureUsageCopyDst |
		wgpu.TextureUsageCopySrc |
		wgpu.TextureUsageRenderAttachment
	tex, view := d.createImage("framebuffer", w, h, usage)

	fb := &Framebuffer{
		wgpuTexture: tex,
		view:        view,
		W:           w,
		H:           h,
	}
	if len(texels) != 0 {
		fb.staging, fb.paddedPitch = d.createStaging(texels, w, h)
	}
	return fb
}

func (d *device) CreateVertexBuffer(data []byte, count uint32) *VertexBuffer {
	buf, err := d.handle.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "vertex buffer",
		Contents: data,
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		panic(fmt.Sprintf("vertex buffer: %v", err))
	}
	return &VertexBuffer{wgpuBuffer: buf, Size: count}
}

func (d *device) CreateIndexBuffer(indices []uint16) *IndexBuffer {
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		data[i*2] = byte(idx)
		data[i*2+1] = byte(idx >> 8)
	}
	buf, err := d.handle.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "index buffer",
		Contents: data,
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		panic(fmt.Sprintf("index buffer: %v", err))
	}
	return &IndexBuffer{wgpuBuffer: buf, Size: uint32(len(indices))}
}

func (d *device) CreateUniformBuffer(data []byte) *UniformBuffer {
	buf, err := d.handle.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "uniform buffer",
		Contents: data,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(fmt.Sprintf("uniform buffer: %v", err))
	}
	return &UniformBuffer{wgpuBuffer: buf, Size: uint64(len(data))}
}

func (d *device) CreateBindingGroupLayout(index uint32, slots []Binding) *BindingGroupLayout {
	entries := make([]wgpu.BindGroupLayoutEntry, len(slots))
	for i, slot := range slots {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: slot.Stage.wgpuStage(),
		}
		switch slot.Binding {
		case BindingTypeUniformBuffer:
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case BindingTypeSampler:
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		case BindingTypeSampledTexture:
			entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
			entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		}
		entries[i] = entry
	}
	layout, err := d.handle.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "binding group layout",
		Entries: entries,
	})
	if err != nil {
		panic(fmt.Sprintf("binding group layout: %v", err))
	}
	return &BindingGroupLayout{
		wgpuLayout: layout,
		size:       len(slots),
		setIndex:   index,
	}
}

func (d *device) CreateBindingGroup(layout *BindingGroupLayout, binds []Bind) *BindingGroup {
	if len(binds) != layout.size {
		panic(fmt.Sprintf("binding group: layout slot count does not match bindings: have %d, want %d", len(binds), layout.size))
	}
	entries := make([]wgpu.BindGroupEntry, len(binds))
	for i, b := range binds {
		entries[i] = b.bindGroupEntry(uint32(i))
	}
	group, err := d.handle.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "binding group",
		Layout:  layout.wgpuLayout,
		Entries: entries,
	})
	if err != nil {
		panic(fmt.Sprintf("binding group: %v", err))
	}
	return &BindingGroup{
		wgpuGroup: group,
		setIndex:  layout.setIndex,
	}
}

func (d *device) CreatePipelineLayout(sets []Set) *PipelineLayout {
	layouts := make([]*BindingGroupLayout, len(sets))
	for i, set := range sets {
		layouts[i] = d.CreateBindingGroupLayout(uint32(i), set)
	}
	return &PipelineLayout{Sets: layouts}
}

func (d *device) CreateShader(name, source string, stage ShaderStage) *Shader {
	module, err := d.handle.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("shader %q failed to compile: %v", name, err))
	}
	return &Shader{module: module, name: name, stage: stage}
}

func (d *device) CreatePipeline(layout *PipelineLayout, vertexLayout VertexLayout, vs, fs *Shader) *Pipeline {
	bgls := make([]*wgpu.BindGroupLayout, len(layout.Sets))
	for i, set := range layout.Sets {
		bgls[i] = set.wgpuLayout
	}
	wgpuLayout, err := d.handle.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "pipeline layout",
		BindGroupLayouts: bgls,
	})
	if err != nil {
		panic(fmt.Sprintf("pipeline layout: %v", err))
	}

	// Standard alpha blending for both channels.
	blend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}

	pipeline, err := d.handle.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "render pipeline",
		Layout: wgpuLayout,
		Vertex: wgpu.VertexState{
			Module:     vs.module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout.wgpuLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    renderFormat,
					Blend:     blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: nil,
	})
	if err != nil {
		panic(fmt.Sprintf("render pipeline: %v", err))
	}
	return &Pipeline{
		wgpuPipeline: pipeline,
		Layout:       *layout,
		VertexLayout: vertexLayout,
	}
}

func (d *device) CreateSampler(minFilter, magFilter Filter) *Sampler {
	sampler, err := d.handle.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     magFilter.wgpuFilter(),
		MinFilter:     minFilter.wgpuFilter(),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   -100.0,
		LodMaxClamp:   100.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(fmt.Sprintf("sampler: %v", err))
	}
	return &Sampler{wgpuSampler: sampler}
}

// createImage allocates a 2D RGBA image and its default view.
func (d *device) createImage(label string, w, h uint32, usage wgpu.TextureUsage) (*wgpu.Texture, *wgpu.TextureView) {
	tex, err := d.handle.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        renderFormat,
		Usage:         usage,
	})
	if err != nil {
		panic(fmt.Sprintf("%s: %v", label, err))
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(fmt.Sprintf("%s view: %v", label, err))
	}
	return tex, view
}

// createStaging copies texels into a copy-source buffer with each pixel row
// padded to the backend's row alignment. Returns the buffer and the padded
// row pitch to use in the buffer → image copy.
func (d *device) createStaging(texels []byte, w, h uint32) (*wgpu.Buffer, uint32) {
	padded, pitch := padRows(texels, w, h)
	buf, err := d.handle.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "staging buffer",
		Contents: padded,
		Usage:    wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		panic(fmt.Sprintf("staging buffer: %v", err))
	}
	return buf, pitch
}

func (d *device) createCommandEncoder() *wgpu.CommandEncoder {
	encoder, err := d.handle.CreateCommandEncoder(nil)
	if err != nil {
		panic(fmt.Sprintf("command encoder: %v", err))
	}
	return encoder
}

// waitDone blocks until the device has finished all in-flight work,
// delivering any pending buffer-map callbacks.
func (d *device) waitDone() {
	d.handle.Poll(true, nil)
}

// alignPitch rounds a row byte size up to the backend's copy alignment.
func alignPitch(bytesPerRow uint32) uint32 {
	return (bytesPerRow + copyRowAlignment - 1) &^ (copyRowAlignment - 1)
}

// padRows re-packs tightly packed 4-byte-per-pixel rows into rows padded to
// the copy alignment. Returns the padded bytes and the padded row pitch. When
// the tight pitch is already aligned the input is returned as is.
func padRows(texels []byte, w, h uint32) ([]byte, uint32) {
	tight := w * 4
	pitch := alignPitch(tight)
	if pitch == tight {
		return texels, pitch
	}
	padded := make([]byte, pitch*h)
	for row := uint32(0); row < h; row++ {
		copy(padded[row*pitch:], texels[row*tight:(row+1)*tight])
	}
	return padded, pitch
}

// unpadRows is the inverse of padRows: extracts tightly packed rows from a
// mapped readback buffer with padded pitch.
func unpadRows(padded []byte, w, h, pitch uint32) []byte {
	tight := w * 4
	if pitch == tight {
		out := make([]byte, tight*h)
		copy(out, padded)
		return out
	}
	out := make([]byte, tight*h)
	for row := uint32(0); row < h; row++ {
		copy(out[row*tight:], padded[row*pitch:row*pitch+tight])
	}
	return out
}
