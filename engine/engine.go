package engine

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

// engine implements the Engine interface.
// Drives the frame callback from the window's message loop on the calling thread.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback  func(deltaTime float32) error
	resizeCallback func(width, height int)

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
	now        func() time.Time
	lastFrame  time.Time
	frames     uint64

	// err is the first frame error; it ends the loop and is returned by Run.
	err error
}

// Engine is the main entry point for the viewer.
// It runs a single-threaded loop: poll window events, then call the frame callback with the
// elapsed time, until the window closes, Quit is called or the frame callback fails.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called once per loop iteration.
	// A non-nil error stops the loop after the current iteration and is returned by Run.
	//
	// Parameters:
	//   - callback: receives the delta time in seconds since the previous frame
	SetFrameCallback(callback func(deltaTime float32) error)

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Frames returns how many loop iterations have completed.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run blocks running the loop until the window stops.
	//
	// Returns:
	//   - error: the frame callback's error, or nil after a normal quit
	Run() error

	// Quit asks the loop to stop after the current iteration. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		now: time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.now))
	}

	if e.window != nil && e.resizeCallback != nil {
		e.window.SetResizeCallback(e.resizeCallback)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32) error) {
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	if fps <= 0 {
		e.frameLimit = 0
		return
	}
	e.frameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.err = nil
	e.lastFrame = e.now()
	e.window.SetUpdateCallback(e.frame)

	common.Logger().Info("engine loop started")
	e.window.ProcessMessages()
	common.Logger().Info("engine loop stopped", "frames", e.frames, "error", e.err)

	return e.err
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}

// frame runs one loop iteration. The window has already dispatched pending input.
func (e *engine) frame() {
	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	if e.frameCallback != nil {
		if err := e.frameCallback(dt); err != nil {
			e.err = err
			e.window.RequestClose()
		}
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.frameLimit > 0 && e.err == nil {
		if remaining := e.frameLimit - e.now().Sub(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}
