// Package sprite provides a 2D sprite-batching pipeline built on the core
// rendering layer: a textured quad batch with per-vertex color and opacity,
// drawn through an orthographic projection.
package sprite

import (
	"fmt"

	"github.com/dhardy/rgx/common"
	"github.com/dhardy/rgx/core"
)

// Vertex is one sprite vertex as laid out in GPU memory: position and UV in
// pixels-to-clip floats, a packed byte color, and an opacity multiplier.
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    common.Rgba8
	Opacity  float32
}

// Uniforms is the global uniform block of the sprite pipeline: the
// orthographic projection and a whole-scene transform.
type Uniforms struct {
	Ortho     [16]float32
	Transform [16]float32
}

// Model is a per-model transform: a uniform buffer and its binding group at
// set 1, letting separate draws carry separate transforms under one pipeline.
type Model struct {
	buf     *core.UniformBuffer
	binding *core.BindingGroup
}

// NewModel creates a model with the given transform bound against the
// pipeline's model set.
//
// Parameters:
//   - dev: the device to create the uniform buffer and binding group on
//   - layout: the pipeline's set-1 layout (Pipeline.ModelLayout)
//   - transform: column-major 4x4 transform
//
// Returns:
//   - *Model: the created model
func NewModel(dev core.Device, layout *core.BindingGroupLayout, transform [16]float32) *Model {
	buf := dev.CreateUniformBuffer(common.StructToBytes(&transform))
	return &Model{
		buf:     buf,
		binding: dev.CreateBindingGroup(layout, []core.Bind{buf}),
	}
}

// Update records a transform overwrite for this model into the open frame.
func (m *Model) Update(f *core.Frame, transform [16]float32) {
	f.UpdateUniformBuffer(m.buf, common.StructToBytes(&transform))
}

// Pipeline is the sprite rendering pipeline. It implements
// core.AbstractPipeline with three binding sets: global uniforms (set 0), the
// model transform (set 1), and the sprite texture plus sampler (set 2).
type Pipeline struct {
	pipeline *core.Pipeline
	bindings *core.BindingGroup
	buf      *core.UniformBuffer
	model    *Model

	ortho         [16]float32
	width, height uint32
}

var _ core.AbstractPipeline = &Pipeline{}

// NewPipeline creates an unset-up sprite pipeline. Pass it to
// Renderer.Pipeline to compile and set it up.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Description declares the sprite vertex layout, the three binding sets and
// the WGSL shader pair.
func (p *Pipeline) Description() core.PipelineDescription {
	return core.PipelineDescription{
		VertexLayout: core.VertexLayoutOf(
			core.VertexFormatFloat2,
			core.VertexFormatFloat2,
			core.VertexFormatUByte4,
			core.VertexFormatFloat,
		),
		PipelineLayout: []core.Set{
			{
				{Binding: core.BindingTypeUniformBuffer, Stage: core.ShaderStageVertex},
			},
			{
				{Binding: core.BindingTypeUniformBuffer, Stage: core.ShaderStageVertex},
			},
			{
				{Binding: core.BindingTypeSampledTexture, Stage: core.ShaderStageFragment},
				{Binding: core.BindingTypeSampler, Stage: core.ShaderStageFragment},
			},
		},
		VertexShader:   shaderSource,
		FragmentShader: shaderSource,
	}
}

// Setup builds the pipeline's own uniform buffer, global binding group and
// identity model against the compiled pipeline object.
func (p *Pipeline) Setup(pipeline *core.Pipeline, dev core.Device, width, height uint32) {
	var transform [16]float32
	common.Identity(transform[:])
	common.Ortho(p.ortho[:], float32(width), float32(height))

	u := Uniforms{Ortho: p.ortho, Transform: transform}
	p.pipeline = pipeline
	p.width = width
	p.height = height
	p.buf = dev.CreateUniformBuffer(common.StructToBytes(&u))
	p.bindings = dev.CreateBindingGroup(pipeline.Layout.Sets[0], []core.Bind{p.buf})
	p.model = NewModel(dev, pipeline.Layout.Sets[1], transform)
}

// Apply binds the compiled pipeline, the global uniforms and the model
// transform into the pass. The texture binding (set 2) is supplied per draw.
func (p *Pipeline) Apply(pass *core.Pass) {
	pass.ApplyPipeline(p.pipeline)
	pass.SetBinding(p.bindings, nil)
	pass.SetBinding(p.model.binding, nil)
}

// Resize recomputes the orthographic projection for the new viewport size.
// The new projection reaches the GPU on the next Prepare.
func (p *Pipeline) Resize(width, height uint32) {
	common.Ortho(p.ortho[:], float32(width), float32(height))
	p.width = width
	p.height = height
}

// Prepare produces the uniform payload for a whole-scene transform. The
// context must be a column-major [16]float32 matrix.
func (p *Pipeline) Prepare(context any) (*core.UniformBuffer, []byte, bool) {
	transform, ok := context.([16]float32)
	if !ok {
		panic(fmt.Sprintf("sprite: prepare context must be a [16]float32 transform, got %T", context))
	}
	u := Uniforms{Ortho: p.ortho, Transform: transform}
	return p.buf, common.StructToBytes(&u), true
}

// ModelLayout returns the pipeline's set-1 layout for creating additional
// models.
func (p *Pipeline) ModelLayout() *core.BindingGroupLayout {
	return p.pipeline.Layout.Sets[1]
}

// Binding creates the texture + sampler binding group (set 2) a batch is
// drawn with.
//
// Parameters:
//   - dev: the device to create the group on
//   - texture: the sprite sheet
//   - sampler: the sampler to read it with
//
// Returns:
//   - *core.BindingGroup: the created group
func (p *Pipeline) Binding(dev core.Device, texture *core.Texture, sampler *core.Sampler) *core.BindingGroup {
	return dev.CreateBindingGroup(p.pipeline.Layout.Sets[2], []core.Bind{texture, sampler})
}

const shaderSource = `
struct Globals {
	ortho: mat4x4<f32>,
	transform: mat4x4<f32>,
};

struct Model {
	transform: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> global: Globals;
@group(1) @binding(0) var<uniform> model: Model;
@group(2) @binding(0) var tex: texture_2d<f32>;
@group(2) @binding(1) var sam: sampler;

struct VertexOutput {
	@builtin(position) position: vec4<f32>,
	@location(0) uv: vec2<f32>,
	@location(1) color: vec4<f32>,
	@location(2) opacity: f32,
};

@vertex
fn vs_main(
	@location(0) position: vec2<f32>,
	@location(1) uv: vec2<f32>,
	@location(2) color: vec4<f32>,
	@location(3) opacity: f32,
) -> VertexOutput {
	var out: VertexOutput;
	out.uv = uv;
	out.color = color;
	out.opacity = opacity;
	out.position = global.ortho * global.transform * model.transform * vec4<f32>(position, 0.0, 1.0);
	return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
	let texel = textureSample(tex, sam, in.uv);
	let color = mix(texel, vec4<f32>(in.color.rgb, texel.a), in.color.a);
	return vec4<f32>(color.rgb, color.a * in.opacity);
}
`
