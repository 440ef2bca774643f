package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the OS window the viewer renders into and receives input from.
// All methods must be called from the thread that created the window.
type Window interface {
	// SetUpdateCallback sets the function called once per iteration of ProcessMessages,
	// after pending events have been dispatched.
	//
	// Parameters:
	//   - callback: the update function
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the function called when a key is pressed or repeats.
	//
	// Parameters:
	//   - callback: receives the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function called when a key is released.
	//
	// Parameters:
	//   - callback: receives the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseMoveCallback sets the function called when the pointer moves. With a captured
	// cursor the coordinates are unbounded virtual positions.
	//
	// Parameters:
	//   - callback: receives the pointer position
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns the descriptor the renderer creates its surface from.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor, or nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and no close has been requested.
	//
	// Returns:
	//   - bool: true while the window is running
	IsRunning() bool

	// RequestClose asks the window to stop; ProcessMessages returns after the current iteration.
	RequestClose()

	// Close destroys the window and releases the platform library.
	//
	// Returns:
	//   - error: error if the window is not open
	Close() error

	// ProcessMessages polls events and runs the update callback until the window stops running.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// Title returns the window title.
	Title() string

	// CursorCaptured reports whether the cursor is hidden and locked to the window.
	CursorCaptured() bool
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width and height are the client area size in pixels.
	width, height int

	// resizable lets the user resize the window within the size limits.
	resizable bool

	// minWidth, minHeight, maxWidth and maxHeight bound user resizing. Zero means unbounded.
	minWidth, minHeight, maxWidth, maxHeight int

	// cursorCaptured hides the cursor and reports relative motion as unbounded positions.
	cursorCaptured bool

	// platform is nil until the OS window exists and again after Close.
	platform platform

	onUpdate    func()
	onResize    func(width, height int)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// platform is the OS windowing layer behind an engineWindow. Input arrives through the
// engineWindow's keyEvent, mouseEvent and resizeEvent during pollEvents.
type platform interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	shouldClose() bool
	requestClose()
	pollEvents()
	destroy()
}

// defaults applies the default configuration followed by options, without creating a platform window.
func defaults(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:          "My engine",
		width:          640,
		height:         480,
		cursorCaptured: true,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: error if the size is invalid or the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := defaults(options...)
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", w.width, w.height)
	}
	p, err := newGLFWPlatform(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	w.platform = p
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && !w.platform.shouldClose()
}

func (w *engineWindow) RequestClose() {
	if w.platform != nil {
		w.platform.requestClose()
	}
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return errors.New("window is not open")
	}
	w.platform.destroy()
	w.platform = nil
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.platform.pollEvents()
		if !w.IsRunning() {
			return
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

// keyEvent dispatches a key transition. Escape requests close instead of reaching the callbacks.
func (w *engineWindow) keyEvent(keyCode uint32, pressed bool) {
	if keyCode == common.KeyEsc {
		if pressed {
			common.Logger().Debug("escape pressed, closing window")
			w.RequestClose()
		}
		return
	}
	if pressed && w.onKeyDown != nil {
		w.onKeyDown(keyCode)
	}
	if !pressed && w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
}

func (w *engineWindow) mouseEvent(x, y int32) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}

func (w *engineWindow) resizeEvent(width, height int) {
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) CursorCaptured() bool {
	return w.cursorCaptured
}
