package window

// WindowBuilderOption is a functional option applied to a window during construction via NewWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title displayed in the title bar
//
// Returns:
//   - WindowBuilderOption: a function that applies the title option to a window
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial client area width in pixels.
//
// Parameters:
//   - width: the width in pixels
//
// Returns:
//   - WindowBuilderOption: a function that applies the width option to a window
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial client area height in pixels.
//
// Parameters:
//   - height: the height in pixels
//
// Returns:
//   - WindowBuilderOption: a function that applies the height option to a window
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithResizable lets the user resize the window. Windows are fixed-size by default.
//
// Parameters:
//   - resizable: true to allow resizing
//
// Returns:
//   - WindowBuilderOption: a function that applies the resizable option to a window
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.resizable = resizable
	}
}

// WithSizeLimits bounds user resizing of a resizable window. A zero value leaves that side unbounded.
//
// Parameters:
//   - minWidth, minHeight: the smallest allowed size in pixels
//   - maxWidth, maxHeight: the largest allowed size in pixels
//
// Returns:
//   - WindowBuilderOption: a function that applies the size limits to a window
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
		w.minHeight = minHeight
		w.maxWidth = maxWidth
		w.maxHeight = maxHeight
	}
}

// WithCursorCaptured hides and locks the cursor so pointer motion is reported as unbounded
// relative positions. Enabled by default.
//
// Parameters:
//   - captured: false to leave the cursor free
//
// Returns:
//   - WindowBuilderOption: a function that applies the cursor option to a window
func WithCursorCaptured(captured bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.cursorCaptured = captured
	}
}
