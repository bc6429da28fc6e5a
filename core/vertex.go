package core

import "github.com/cogentcore/webgpu/wgpu"

// VertexFormat identifies the type of a single vertex attribute.
type VertexFormat int

const (
	// VertexFormatFloat is a single 32-bit float attribute.
	VertexFormatFloat VertexFormat = iota

	// VertexFormatFloat2 is a two-component 32-bit float attribute.
	VertexFormatFloat2

	// VertexFormatFloat3 is a three-component 32-bit float attribute.
	VertexFormatFloat3

	// VertexFormatFloat4 is a four-component 32-bit float attribute.
	VertexFormatFloat4

	// VertexFormatUByte4 is a four-component normalized unsigned byte
	// attribute, read by the shader as a vec4<f32> in [0, 1].
	VertexFormatUByte4
)

// ByteSize returns the size in bytes one attribute of this format occupies
// inside a vertex.
func (f VertexFormat) ByteSize() uint64 {
	switch f {
	case VertexFormatFloat:
		return 4
	case VertexFormatFloat2:
		return 8
	case VertexFormatFloat3:
		return 12
	case VertexFormatFloat4:
		return 16
	case VertexFormatUByte4:
		return 4
	default:
		return 0
	}
}

func (f VertexFormat) wgpuFormat() wgpu.VertexFormat {
	switch f {
	case VertexFormatFloat:
		return wgpu.VertexFormatFloat32
	case VertexFormatFloat2:
		return wgpu.VertexFormatFloat32x2
	case VertexFormatFloat3:
		return wgpu.VertexFormatFloat32x3
	case VertexFormatFloat4:
		return wgpu.VertexFormatFloat32x4
	case VertexFormatUByte4:
		return wgpu.VertexFormatUnorm8x4
	default:
		return wgpu.VertexFormatFloat32
	}
}

// vertexAttribute is one attribute slot of a VertexLayout: its format and its
// byte offset from the start of the vertex.
type vertexAttribute struct {
	format VertexFormat
	offset uint64
}

// VertexLayout describes the byte layout of a single vertex: an ordered list
// of attributes whose offsets increase monotonically by each format's byte
// size, plus the resulting total stride.
type VertexLayout struct {
	attributes []vertexAttribute
	stride     uint64
}

// VertexLayoutOf builds a VertexLayout from an ordered list of attribute
// formats. Attribute i is assigned shader location i and the byte offset
// accumulated from the formats preceding it.
//
// Parameters:
//   - formats: attribute formats in declaration order
//
// Returns:
//   - VertexLayout: the accumulated layout
func VertexLayoutOf(formats ...VertexFormat) VertexLayout {
	var vl VertexLayout
	for _, f := range formats {
		vl.attributes = append(vl.attributes, vertexAttribute{format: f, offset: vl.stride})
		vl.stride += f.ByteSize()
	}
	return vl
}

// Stride returns the total byte size of one vertex.
func (vl VertexLayout) Stride() uint64 {
	return vl.stride
}

// Len returns the number of attributes in the layout.
func (vl VertexLayout) Len() int {
	return len(vl.attributes)
}

// Offset returns the byte offset of attribute i.
func (vl VertexLayout) Offset(i int) uint64 {
	return vl.attributes[i].offset
}

// wgpuLayout converts the layout to the backend's vertex buffer layout.
// The attribute slice is materialized here so the conversion stays at the
// pipeline construction boundary.
func (vl VertexLayout) wgpuLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(vl.attributes))
	for i, a := range vl.attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         a.format.wgpuFormat(),
			Offset:         a.offset,
			ShaderLocation: uint32(i),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: vl.stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
