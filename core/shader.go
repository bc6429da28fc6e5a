package core

import "github.com/cogentcore/webgpu/wgpu"

// Shader is a stage-tagged compiled shader module.
type Shader struct {
	module *wgpu.ShaderModule
	name   string
	stage  ShaderStage
}

// Name returns the label the shader was compiled under.
func (s *Shader) Name() string {
	return s.name
}

// Stage returns the pipeline stage the shader was declared for.
func (s *Shader) Stage() ShaderStage {
	return s.stage
}
