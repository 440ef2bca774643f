// Command viewer opens a window and renders a slowly spinning mesh that can be explored with a
// free-fly camera: WASD or the arrow keys move, the mouse turns, Esc quits.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/compositor"
	"github.com/Carmen-Shannon/oxy-viewer/engine/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/spf13/pflag"
)

const (
	pipelineKey       = "viewer"
	vertexShaderKey   = "viewer_vert"
	fragmentShaderKey = "viewer_frag"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.logLevel})))

	if err := run(opts); err != nil {
		common.Logger().Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(&cfg)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
		window.WithCursorCaptured(cfg.Window.CaptureCursor),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			common.Logger().Warn("failed to close window", "error", err)
		}
	}()

	l := loader.NewLoader(loader.WithWorkers(cfg.Shaders.Workers))
	if err := l.LoadShaders(
		loader.ShaderRequest{Key: vertexShaderKey, Type: shader.ShaderTypeVertex, Path: cfg.Shaders.Vertex},
		loader.ShaderRequest{Key: fragmentShaderKey, Type: shader.ShaderTypeFragment, Path: cfg.Shaders.Fragment},
	); err != nil {
		return fmt.Errorf("load shaders: %w", err)
	}
	common.Logger().Info("shaders loaded", "shaders", describeShaders(l.Shaders()))

	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithPipeline(pipeline.NewPipeline(pipelineKey,
			pipeline.WithVertexShader(l.Shader(vertexShaderKey)),
			pipeline.WithFragmentShader(l.Shader(fragmentShaderKey)),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithCullMode(wgpu.CullModeNone),
		)),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	mesh := model.NewViewerMesh()
	if err := mesh.Validate(); err != nil {
		return err
	}
	if err := r.InitMeshBuffers(mesh.MeshProvider(), mesh.VertexData(), mesh.IndexData(), mesh.IndexCount()); err != nil {
		return fmt.Errorf("upload mesh %q: %w", mesh.Name(), err)
	}
	defer mesh.MeshProvider().Release()

	prog, err := renderer.NewProgram(r, pipelineKey, mesh.MeshProvider())
	if err != nil {
		return err
	}
	defer prog.Release()

	cam := camera.NewCamera(camera.WithLookSensitivity(cfg.Camera.LookSensitivity))

	controllerOpts := []camera.CameraControllerOption{camera.WithMoveSpeed(cfg.Camera.MoveSpeed)}
	if cfg.Camera.TimeScaled {
		controllerOpts = append(controllerOpts, camera.WithTimeScaledMovement(cfg.Camera.MoveSpeed))
	}
	ctrl := camera.NewCameraController(controllerOpts...)

	compositorOpts := []compositor.FrameCompositorBuilderOption{
		compositor.WithViewport(win.Width(), win.Height()),
		compositor.WithFovY(cfg.Compositor.FovY),
		compositor.WithClipPlanes(cfg.Compositor.Near, cfg.Compositor.Far),
		compositor.WithModelOffset(cfg.Compositor.ModelOffset),
		compositor.WithModelScale(cfg.Compositor.ModelScale),
		compositor.WithRotationStep(cfg.Compositor.RotationStep),
	}
	if cfg.Compositor.TimeScaled {
		compositorOpts = append(compositorOpts, compositor.WithTimeScaledRotation(cfg.Compositor.RotationSpeed))
	}
	fc := compositor.NewFrameCompositor(compositorOpts...)

	win.SetKeyDownCallback(ctrl.KeyDown)
	win.SetKeyUpCallback(ctrl.KeyUp)
	win.SetMouseMoveCallback(ctrl.MouseMove)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithFrameLimit(cfg.Engine.FrameLimit),
		engine.WithResizeCallback(func(width, height int) {
			r.Resize(width, height)
			fc.SetViewport(width, height)
		}),
		engine.WithFrameCallback(func(deltaTime float32) error {
			ctrl.ApplyDelta(cam, deltaTime)
			return fc.Frame(deltaTime, cam, prog)
		}),
	)

	common.Logger().Info("viewer started",
		"vertex_shader", cfg.Shaders.Vertex,
		"fragment_shader", cfg.Shaders.Fragment,
		"time_scaled", cfg.Camera.TimeScaled || cfg.Compositor.TimeScaled,
	)
	return eng.Run()
}

// describeShaders lists loaded shaders as "key (stage, entry point)" sorted by key.
func describeShaders(shaders map[string]shader.Shader) []string {
	out := make([]string, 0, len(shaders))
	for _, key := range slices.Sorted(maps.Keys(shaders)) {
		s := shaders[key]
		out = append(out, fmt.Sprintf("%s (%s, %s)", key, s.ShaderType(), s.EntryPoint()))
	}
	return out
}
