package core

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Frame represents one in-flight command encoder plus the acquired
// presentable surface image. A Frame is used exactly once: record passes and
// uploads into it, then hand it to Renderer.Submit, which finishes and
// submits the encoder, presents, and drains the deferred readback queue.
// Only one Frame may be open per Renderer at a time.
type Frame struct {
	dev     *device
	encoder *wgpu.CommandEncoder

	surfaceTexture *wgpu.Texture
	surfaceView    *wgpu.TextureView

	pass      *Pass
	staged    []*wgpu.Buffer
	reads     []deferredRead
	submitted bool
}

// deferredRead is one registered readback: the mappable destination buffer a
// texture copy was recorded into, and the callback to invoke with the tightly
// packed pixels after submission.
type deferredRead struct {
	buffer   *wgpu.Buffer
	w, h     uint32
	pitch    uint32
	callback func([]byte)
}

// swapTarget adapts the acquired surface image view to the RenderTarget
// interface.
type swapTarget struct {
	view *wgpu.TextureView
}

func (t *swapTarget) renderView() *wgpu.TextureView {
	return t.view
}

// Target returns the frame's presentable swap-chain image as a render
// target. Panics on a headless renderer, which has no presentable surface.
func (f *Frame) Target() RenderTarget {
	if f.surfaceView == nil {
		panic("frame: no presentable surface on a headless renderer")
	}
	return &swapTarget{view: f.surfaceView}
}

// Pass opens a render pass against the given target with the given clear
// behavior. Only one pass may be open at a time; end it with Pass.End before
// opening another or submitting the frame.
//
// Parameters:
//   - op: Clear to a color, or Load to keep the target's existing contents
//   - target: the swap-chain image (Frame.Target) or a *Framebuffer
//
// Returns:
//   - *Pass: the open render pass
func (f *Frame) Pass(op PassOp, target RenderTarget) *Pass {
	f.mustBeOpen()
	if f.pass != nil {
		panic("frame: a render pass is already open")
	}
	wgpuPass := f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.renderView(),
				LoadOp:     op.loadOp(),
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: op.clearValue(),
			},
		},
	})
	p := &Pass{wgpuPass: wgpuPass, frame: f}
	f.pass = p
	return p
}

// Prepare invokes the pipeline's Prepare with the given context and, if it
// returns a payload, records the uniform overwrite into the open encoder.
//
// Parameters:
//   - pipeline: the pipeline to prepare
//   - context: the pipeline's draw-time context value
func (f *Frame) Prepare(pipeline AbstractPipeline, context any) {
	if buf, data, ok := pipeline.Prepare(context); ok {
		f.UpdateUniformBuffer(buf, data)
	}
}

// UpdateUniformBuffer records a full overwrite of the uniform buffer into the
// open encoder. The copy executes in command order relative to the frame's
// passes, so a pass recorded after the update sees the new contents.
//
// Parameters:
//   - buf: the uniform buffer to overwrite
//   - data: the new contents
func (f *Frame) UpdateUniformBuffer(buf *UniformBuffer, data []byte) {
	f.mustBeOpen()
	staging, err := f.dev.handle.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "uniform staging",
		Contents: data,
		Usage:    wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		panic(fmt.Sprintf("uniform staging: %v", err))
	}
	f.encoder.CopyBufferToBuffer(staging, 0, buf.wgpuBuffer, 0, uint64(len(data)))
	f.staged = append(f.staged, staging)
}

// ReadAsync records a copy of the framebuffer's contents into a CPU-readable
// buffer and registers callback to run after the frame has been submitted and
// the copy has completed. The callback receives exactly 4*w*h tightly packed
// RGBA bytes. Callbacks fire in registration order; a failed map is fatal.
//
// Parameters:
//   - fb: the framebuffer to read
//   - callback: invoked once with the pixel bytes after submission
func (f *Frame) ReadAsync(fb *Framebuffer, callback func([]byte)) {
	f.mustBeOpen()
	pitch := alignPitch(fb.W * 4)
	size := uint64(pitch) * uint64(fb.H)
	dst, err := f.dev.handle.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "readback buffer",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(fmt.Sprintf("readback buffer: %v", err))
	}
	f.encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Texture:  fb.wgpuTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: dst,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  pitch,
				RowsPerImage: fb.H,
			},
		},
		&wgpu.Extent3D{
			Width:              fb.W,
			Height:             fb.H,
			DepthOrArrayLayers: 1,
		},
	)
	f.reads = append(f.reads, deferredRead{
		buffer:   dst,
		w:        fb.W,
		h:        fb.H,
		pitch:    pitch,
		callback: callback,
	})
}

// finish submits the frame exactly once: finish the encoder, submit to the
// queue, present the surface image if one was acquired, release the frame's
// transient buffers, and drain the deferred readback queue in registration
// order.
func (f *Frame) finish() {
	if f.submitted {
		panic("frame: already submitted")
	}
	if f.pass != nil {
		panic("frame: render pass still open at submission")
	}

	cmd, err := f.encoder.Finish(nil)
	if err != nil {
		panic(fmt.Sprintf("frame: encoder finish failed: %v", err))
	}
	f.dev.queue.Submit(cmd)
	cmd.Release()
	f.encoder.Release()
	f.encoder = nil
	f.submitted = true

	if f.surfaceTexture != nil {
		f.dev.surface.Present()
		f.surfaceView.Release()
		f.surfaceTexture.Release()
		f.surfaceView = nil
		f.surfaceTexture = nil
	}

	for _, staging := range f.staged {
		staging.Release()
	}
	f.staged = nil

	for _, read := range f.reads {
		read.run(f.dev)
	}
	f.reads = nil
}

// run maps the readback buffer, waits for the map to complete, and invokes
// the callback with tightly packed pixel rows.
func (r deferredRead) run(d *device) {
	size := uint64(r.pitch) * uint64(r.h)
	var status wgpu.BufferMapAsyncStatus
	err := r.buffer.MapAsync(wgpu.MapModeRead, 0, size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if err != nil {
		panic(fmt.Sprintf("frame: buffer map failed: %v", err))
	}
	d.waitDone()
	if status != wgpu.BufferMapAsyncStatusSuccess {
		panic(fmt.Sprintf("frame: buffer map failed with status %v", status))
	}
	mapped := r.buffer.GetMappedRange(0, uint(size))
	pixels := unpadRows(mapped, r.w, r.h, r.pitch)
	r.buffer.Unmap()
	r.buffer.Release()
	r.callback(pixels)
}

func (f *Frame) mustBeOpen() {
	if f.encoder == nil {
		panic("frame: used after submission")
	}
}
