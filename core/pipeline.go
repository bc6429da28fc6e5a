package core

import "github.com/cogentcore/webgpu/wgpu"

// PipelineDescription declares everything a pipeline needs before device
// resources exist: its vertex attribute layout, its binding group layouts
// (one Set per binding group, in set-index order) and its two WGSL shader
// sources.
type PipelineDescription struct {
	// VertexLayout is the byte layout of one vertex.
	VertexLayout VertexLayout

	// PipelineLayout is the ordered list of binding sets, indexed by set.
	PipelineLayout []Set

	// VertexShader is the WGSL source of the vertex stage.
	VertexShader string

	// FragmentShader is the WGSL source of the fragment stage.
	FragmentShader string
}

// AbstractPipeline is the polymorphic contract every concrete rendering
// pipeline implements. It separates what a pipeline needs to draw (its fixed
// layout, compiled once via Description and Setup) from what varies per frame
// (its uniform contents, recomputed via Prepare), letting the Frame and
// Renderer drive uniform uploads generically across arbitrarily many pipeline
// variants.
type AbstractPipeline interface {
	// Description declares the pipeline's vertex layout, binding group
	// layouts and shader sources. Called once, before device resources
	// exist.
	//
	// Returns:
	//   - PipelineDescription: the static pipeline declaration
	Description() PipelineDescription

	// Setup receives the compiled pipeline object and constructs any
	// pipeline-specific uniform buffers and binding groups against the
	// given device and viewport size.
	//
	// Parameters:
	//   - pipeline: the compiled pipeline, including its binding group layouts
	//   - dev: the device to create pipeline-owned resources on
	//   - width, height: current viewport size in pixels
	Setup(pipeline *Pipeline, dev Device, width, height uint32)

	// Apply binds this pipeline and its own fixed binding groups into an
	// open render pass.
	//
	// Parameters:
	//   - pass: the open render pass to bind into
	Apply(pass *Pass)

	// Resize updates any width/height-dependent cached state, such as an
	// orthographic projection. It does not reallocate the compiled
	// pipeline.
	//
	// Parameters:
	//   - width, height: new viewport size in pixels
	Resize(width, height uint32)

	// Prepare optionally produces a new uniform payload for a draw-time
	// context value. The payload travels as raw bytes so callers can
	// upload it without knowing the pipeline's concrete uniform type.
	//
	// Parameters:
	//   - context: the pipeline-specific draw context (e.g. a transform or a color)
	//
	// Returns:
	//   - *UniformBuffer: the buffer to overwrite
	//   - []byte: the new uniform contents
	//   - bool: false if no update is needed this frame
	Prepare(context any) (*UniformBuffer, []byte, bool)
}

// Pipeline is a compiled draw configuration: the backend pipeline object plus
// the binding group layouts built from its description. It is created once
// per pipeline variant and reused across frames; resizing updates cached
// viewport state on the owning AbstractPipeline, never the compiled object.
type Pipeline struct {
	wgpuPipeline *wgpu.RenderPipeline

	// Layout holds the binding group layouts, in set-index order. Setup
	// implementations build their binding groups against these.
	Layout PipelineLayout

	// VertexLayout is the vertex byte layout the pipeline was compiled with.
	VertexLayout VertexLayout
}
