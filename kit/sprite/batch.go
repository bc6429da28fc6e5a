package sprite

import (
	"github.com/dhardy/rgx/common"
	"github.com/dhardy/rgx/core"
)

// Repeat tiles a sprite's texture coordinates across the destination
// rectangle. The default of (1, 1) draws the source rectangle once.
type Repeat struct {
	X, Y float32
}

// RepeatDefault is the non-tiling repeat value.
var RepeatDefault = Repeat{X: 1, Y: 1}

// Batch accumulates textured quads sampled from one texture into a vertex
// list. Each quad carries its own source and destination rectangles, color
// and opacity; Finish turns the accumulated vertices into a vertex buffer.
type Batch struct {
	// W and H are the dimensions of the texture the batch samples from.
	W, H uint32

	vertices []Vertex
	size     int
}

// NewBatch creates an empty batch for a texture of the given size.
//
// Parameters:
//   - w, h: texture dimensions in pixels
//
// Returns:
//   - *Batch: the empty batch
func NewBatch(w, h uint32) *Batch {
	return &Batch{W: w, H: h}
}

// Singleton creates a batch holding exactly one quad.
//
// Parameters:
//   - w, h: texture dimensions in pixels
//   - src: source rectangle in texture pixels
//   - dst: destination rectangle in target pixels
//   - color: vertex color mixed over the texel
//   - opacity: alpha multiplier in [0, 1]
//   - rep: texture tiling
//
// Returns:
//   - *Batch: a batch with the one quad added
func Singleton(w, h uint32, src, dst common.Rect[float32], color common.Rgba, opacity float32, rep Repeat) *Batch {
	b := NewBatch(w, h)
	b.Add(src, dst, color, opacity, rep)
	return b
}

// Add appends one quad to the batch as two counter-clockwise triangles with
// V-flipped texture coordinates. Tiling requires sampling the full texture:
// Add panics when rep is not the default and src is not the texture's full
// rectangle.
//
// Parameters:
//   - src: source rectangle in texture pixels
//   - dst: destination rectangle in target pixels
//   - color: vertex color mixed over the texel
//   - opacity: alpha multiplier in [0, 1]
//   - rep: texture tiling
func (b *Batch) Add(src, dst common.Rect[float32], color common.Rgba, opacity float32, rep Repeat) {
	if rep != RepeatDefault {
		full := common.RectOrigin(float32(b.W), float32(b.H))
		if src != full {
			panic("sprite: repeating texture coordinates require the full source rectangle")
		}
	}
	c := color.ToRgba8()

	// Relative texture coordinates, scaled by the tiling factor.
	rx1 := src.X1 / float32(b.W) * rep.X
	ry1 := src.Y1 / float32(b.H) * rep.Y
	rx2 := src.X2 / float32(b.W) * rep.X
	ry2 := src.Y2 / float32(b.H) * rep.Y

	b.vertices = append(b.vertices,
		Vertex{Position: [2]float32{dst.X1, dst.Y1}, UV: [2]float32{rx1, ry2}, Color: c, Opacity: opacity},
		Vertex{Position: [2]float32{dst.X2, dst.Y1}, UV: [2]float32{rx2, ry2}, Color: c, Opacity: opacity},
		Vertex{Position: [2]float32{dst.X2, dst.Y2}, UV: [2]float32{rx2, ry1}, Color: c, Opacity: opacity},
		Vertex{Position: [2]float32{dst.X1, dst.Y1}, UV: [2]float32{rx1, ry2}, Color: c, Opacity: opacity},
		Vertex{Position: [2]float32{dst.X1, dst.Y2}, UV: [2]float32{rx1, ry1}, Color: c, Opacity: opacity},
		Vertex{Position: [2]float32{dst.X2, dst.Y2}, UV: [2]float32{rx2, ry1}, Color: c, Opacity: opacity},
	)
	b.size++
}

// Vertices returns the accumulated vertex list.
func (b *Batch) Vertices() []Vertex {
	return b.vertices
}

// Size returns the number of quads in the batch.
func (b *Batch) Size() int {
	return b.size
}

// Offset translates every accumulated vertex by (x, y).
func (b *Batch) Offset(x, y float32) {
	for i := range b.vertices {
		b.vertices[i].Position[0] += x
		b.vertices[i].Position[1] += y
	}
}

// Clear removes all accumulated quads, keeping the texture dimensions.
func (b *Batch) Clear() {
	b.vertices = nil
	b.size = 0
}

// Finish uploads the accumulated vertices into a vertex buffer.
//
// Parameters:
//   - r: the renderer to create the buffer on
//
// Returns:
//   - *core.VertexBuffer: the uploaded batch
func (b *Batch) Finish(r core.Renderer) *core.VertexBuffer {
	return r.VertexBuffer(common.SliceToBytes(b.vertices), uint32(len(b.vertices)))
}
