package window

// WindowOption is a functional option for configuring a window.
// Use the With* functions to create options.
type WindowOption func(w *appWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowOption: option function to apply
func WithTitle(title string) WindowOption {
	return func(w *appWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowOption: option function to apply
func WithSize(width, height int) WindowOption {
	return func(w *appWindow) {
		w.width = width
		w.height = height
	}
}
