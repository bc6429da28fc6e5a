package core

import "github.com/cogentcore/webgpu/wgpu"

// VertexBuffer is a GPU-resident array of fixed-layout vertices. Its size is
// fixed at creation.
type VertexBuffer struct {
	wgpuBuffer *wgpu.Buffer

	// Size is the number of vertices in the buffer.
	Size uint32
}

// Draw binds the vertex buffer together with the given binding group into the
// pass and draws the whole buffer once. Implements Drawable.
//
// Parameters:
//   - binding: the binding group to apply before drawing
//   - pass: the open render pass to record into
func (b *VertexBuffer) Draw(binding *BindingGroup, pass *Pass) {
	pass.SetBinding(binding, nil)
	pass.SetVertexBuffer(b)
	pass.DrawBuffer(Range{Start: 0, End: b.Size}, Range{Start: 0, End: 1})
}

// IndexBuffer is a GPU-resident array of 16-bit indices.
type IndexBuffer struct {
	wgpuBuffer *wgpu.Buffer

	// Size is the number of indices in the buffer.
	Size uint32
}

// UniformBuffer is a GPU-resident uniform block. Unlike vertex and index
// buffers its contents may be fully overwritten per frame through
// Frame.UpdateUniformBuffer.
type UniformBuffer struct {
	wgpuBuffer *wgpu.Buffer

	// Size is the byte size of the buffer.
	Size uint64
}

func (b *UniformBuffer) bindGroupEntry(index uint32) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: index,
		Buffer:  b.wgpuBuffer,
		Offset:  0,
		Size:    b.Size,
	}
}
