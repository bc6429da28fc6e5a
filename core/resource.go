package core

import "github.com/cogentcore/webgpu/wgpu"

// Resource is the upload contract for resources created with initial CPU
// contents: Prepare records this resource's own staging copy into the given
// encoder. Renderer.Prepare batches these into one command buffer so that
// textures and framebuffers have their contents on the GPU before first use.
type Resource interface {
	Prepare(encoder *wgpu.CommandEncoder)
}
