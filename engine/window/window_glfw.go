package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var _ platform = &glfwPlatform{}

// glfwPlatform owns a GLFW window without a client API; WebGPU draws into it through a surface.
type glfwPlatform struct {
	win *glfw.Window
}

// newGLFWPlatform initialises GLFW, opens a window sized from w and routes its input into w.
// The calling goroutine stays locked to its OS thread for the lifetime of the window.
func newGLFWPlatform(w *engineWindow) (*glfwPlatform, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, boolHint(w.resizable))

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create glfw window: %w", err)
	}
	p := &glfwPlatform{win: win}

	if w.resizable {
		win.SetSizeLimits(limit(w.minWidth), limit(w.minHeight), limit(w.maxWidth), limit(w.maxHeight))
	}
	if w.cursorCaptured {
		p.captureCursor()
	}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.keyEvent(uint32(key), action != glfw.Release)
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.mouseEvent(int32(x), int32(y))
	})
	// The surface is sized in framebuffer pixels, which differ from screen coordinates on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resizeEvent(width, height)
	})

	w.width, w.height = win.GetFramebufferSize()
	common.Logger().Info("window created",
		"title", w.title,
		"width", w.width,
		"height", w.height,
		"cursor_captured", w.cursorCaptured,
	)
	return p, nil
}

// captureCursor hides the pointer and, where supported, switches to unaccelerated motion.
func (p *glfwPlatform) captureCursor() {
	p.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		p.win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
}

func (p *glfwPlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(p.win)
}

func (p *glfwPlatform) shouldClose() bool { return p.win.ShouldClose() }
func (p *glfwPlatform) requestClose()     { p.win.SetShouldClose(true) }
func (p *glfwPlatform) pollEvents()       { glfw.PollEvents() }

func (p *glfwPlatform) destroy() {
	p.win.Destroy()
	glfw.Terminate()
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// limit maps an unset size bound to glfw.DontCare.
func limit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}
