package core

import "github.com/cogentcore/webgpu/wgpu"

// ShaderStage identifies which pipeline stage a shader module or binding
// slot is visible to.
type ShaderStage int

const (
	// ShaderStageVertex is the vertex processing stage.
	ShaderStageVertex ShaderStage = iota

	// ShaderStageFragment is the fragment processing stage.
	ShaderStageFragment
)

func (s ShaderStage) wgpuStage() wgpu.ShaderStage {
	switch s {
	case ShaderStageVertex:
		return wgpu.ShaderStageVertex
	case ShaderStageFragment:
		return wgpu.ShaderStageFragment
	default:
		return wgpu.ShaderStageNone
	}
}

// BindingType identifies the kind of resource occupying a binding slot.
type BindingType int

const (
	// BindingTypeUniformBuffer is a uniform buffer slot.
	BindingTypeUniformBuffer BindingType = iota

	// BindingTypeSampler is a filtering sampler slot.
	BindingTypeSampler

	// BindingTypeSampledTexture is a sampleable texture slot.
	BindingTypeSampledTexture
)

// Binding declares one slot of a binding group layout: what kind of resource
// fills it and which shader stage reads it.
type Binding struct {
	// Binding is the resource kind occupying the slot.
	Binding BindingType

	// Stage is the shader stage the slot is visible to.
	Stage ShaderStage
}

// Set is the ordered slot list of one binding group, indexed by its position
// in a pipeline's layout declaration.
type Set []Binding

// BindingGroupLayout declares the shape of one binding set: a fixed, ordered
// list of resource slots created against a set index. The slot count is fixed
// at creation; binding groups built against the layout must match it exactly.
type BindingGroupLayout struct {
	wgpuLayout *wgpu.BindGroupLayout
	size       int
	setIndex   uint32
}

// Size returns the number of slots the layout declares.
func (l *BindingGroupLayout) Size() int {
	return l.size
}

// SetIndex returns the pipeline set index the layout was created for.
func (l *BindingGroupLayout) SetIndex() uint32 {
	return l.setIndex
}

// BindingGroup is a concrete set of resources bound against a
// BindingGroupLayout. It references GPU-resident handles without owning
// them; the bound resources must outlive the group.
type BindingGroup struct {
	wgpuGroup *wgpu.BindGroup
	setIndex  uint32
}

// SetIndex returns the pipeline set index the group binds to.
func (g *BindingGroup) SetIndex() uint32 {
	return g.setIndex
}

// PipelineLayout is the ordered list of binding group layouts of one
// pipeline, in set-index order.
type PipelineLayout struct {
	// Sets holds one layout per binding group, indexed by set.
	Sets []*BindingGroupLayout
}

// Bind is the capability that lets a resource describe how it occupies a
// binding slot. It is implemented by *UniformBuffer, *Sampler, *Texture and
// *Framebuffer; the backend entry conversion stays inside this package.
type Bind interface {
	bindGroupEntry(index uint32) wgpu.BindGroupEntry
}
