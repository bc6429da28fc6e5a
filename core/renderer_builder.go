package core

import "github.com/cogentcore/webgpu/wgpu"

// PresentMode controls how finished frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes presentation with the display refresh.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as fast as frames are submitted.
	PresentModeUncapped
)

// RendererOption is a functional option applied to a renderer during
// construction via NewRenderer or NewHeadlessRenderer.
type RendererOption func(*renderer)

// WithPresentMode sets the surface present mode.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererOption {
	return func(r *renderer) {
		switch mode {
		case PresentModeUncapped:
			r.presentMode = wgpu.PresentModeImmediate
		default:
			r.presentMode = wgpu.PresentModeFifo
		}
	}
}

// WithForceSoftwareRenderer forces the fallback (software) adapter instead of
// hardware GPU acceleration. This requires a software implementation of the
// native graphics API to be installed on the system. Useful for CI and for
// environments without a GPU.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
