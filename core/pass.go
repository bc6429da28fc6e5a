package core

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/dhardy/rgx/common"
)

// PassOp selects what happens to a render target's existing contents when a
// pass begins: clear to a color, or load what is already there.
type PassOp struct {
	load  bool
	color common.Rgba
}

// Clear begins the pass by clearing the target to the given color.
func Clear(color common.Rgba) PassOp {
	return PassOp{color: color}
}

// Load begins the pass with the target's existing contents.
func Load() PassOp {
	return PassOp{load: true}
}

func (op PassOp) loadOp() wgpu.LoadOp {
	if op.load {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func (op PassOp) clearValue() wgpu.Color {
	return wgpu.Color{
		R: float64(op.color.R),
		G: float64(op.color.G),
		B: float64(op.color.B),
		A: float64(op.color.A),
	}
}

// Range is a half-open [Start, End) interval of vertices, indices or
// instances.
type Range struct {
	Start, End uint32
}

// Count returns the number of elements in the range.
func (r Range) Count() uint32 {
	return r.End - r.Start
}

// Drawable is anything that can record its own draw call into a pass given a
// binding group. *VertexBuffer implements it.
type Drawable interface {
	Draw(binding *BindingGroup, pass *Pass)
}

// Pass is a scoped render-pass recording bound to one target image. It is
// valid only between Frame.Pass and End; it must not be held past frame
// submission.
type Pass struct {
	wgpuPass *wgpu.RenderPassEncoder
	frame    *Frame
}

// SetPipeline applies the given pipeline: the pipeline binds its compiled
// state and its own fixed binding groups into the pass.
func (p *Pass) SetPipeline(pipeline AbstractPipeline) {
	pipeline.Apply(p)
}

// ApplyPipeline binds a compiled pipeline object directly. Pipeline
// implementations call this from their Apply.
func (p *Pass) ApplyPipeline(pipeline *Pipeline) {
	p.wgpuPass.SetPipeline(pipeline.wgpuPipeline)
}

// SetBinding binds a binding group at its declared set index.
//
// Parameters:
//   - group: the binding group to bind
//   - offsets: dynamic offsets, or nil when the group has none
func (p *Pass) SetBinding(group *BindingGroup, offsets []uint32) {
	p.wgpuPass.SetBindGroup(group.setIndex, group.wgpuGroup, offsets)
}

// SetVertexBuffer binds the vertex buffer to slot 0.
func (p *Pass) SetVertexBuffer(buf *VertexBuffer) {
	p.wgpuPass.SetVertexBuffer(0, buf.wgpuBuffer, 0, wgpu.WholeSize)
}

// SetIndexBuffer binds the 16-bit index buffer.
func (p *Pass) SetIndexBuffer(buf *IndexBuffer) {
	p.wgpuPass.SetIndexBuffer(buf.wgpuBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
}

// Draw records the drawable's own draw call with the given binding group.
func (p *Pass) Draw(drawable Drawable, binding *BindingGroup) {
	drawable.Draw(binding, p)
}

// DrawBuffer records a non-indexed draw over the given vertex and instance
// ranges of the currently bound vertex buffer.
func (p *Pass) DrawBuffer(vertices, instances Range) {
	p.wgpuPass.Draw(vertices.Count(), instances.Count(), vertices.Start, instances.Start)
}

// DrawIndexed records an indexed draw over the given index and instance
// ranges of the currently bound buffers.
func (p *Pass) DrawIndexed(indices, instances Range) {
	p.wgpuPass.DrawIndexed(indices.Count(), instances.Count(), indices.Start, 0, instances.Start)
}

// End closes the render pass and returns the frame to its open state.
func (p *Pass) End() {
	p.wgpuPass.End()
	p.frame.pass = nil
}
