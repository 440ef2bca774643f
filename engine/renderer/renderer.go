package renderer

import (
	"fmt"
	"maps"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer owns the GPU device behind a window surface. It caches built pipelines by key and
// records one render pass per frame through BeginFrame, DrawCall, EndFrame and Present.
type Renderer interface {
	// Pipeline looks up a registered pipeline.
	//
	// Parameters:
	//   - key: the PipelineKey it was registered under
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil when key is unknown
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a snapshot of the registered pipelines keyed by PipelineKey.
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines validates and builds each pipeline on the GPU and caches it. A key that is
	// already cached is left alone.
	//
	// Parameters:
	//   - pipelines: the descriptions to build
	//
	// Returns:
	//   - error: the first validation or build failure; pipelines before it stay registered
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new framebuffer size. Zero sizes, as reported for a
	// minimized window, are ignored.
	Resize(width, height int)

	// SetPresentMode picks vsync or uncapped presentation for the next surface configuration.
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers uploads a mesh once.
	//
	// Parameters:
	//   - provider: receives the vertex buffer, index buffer and index count
	//   - vertexData: interleaved vertex bytes
	//   - indexData: uint32 indices in host byte order
	//   - indexCount: how many indices indexData holds
	//
	// Returns:
	//   - error: an error if either buffer is empty or could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup backs every buffer binding of descriptor with a GPU buffer and builds the bind
	// group over them.
	//
	// Parameters:
	//   - provider: receives the layout, the buffers and the bind group
	//   - descriptor: a group layout parsed from WGSL
	//
	// Returns:
	//   - error: an error for texture or unsized bindings and for GPU failures
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues uniform uploads; they land before the next submitted frame.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires a surface texture and opens a render pass cleared to the clear color.
	//
	// Returns:
	//   - error: an error if the surface has no texture to give or a frame is already open
	BeginFrame() error

	// DrawCall records one indexed draw into the open pass.
	//
	// Parameters:
	//   - pipelineKey: a registered pipeline
	//   - meshProvider: holds the vertex and index buffers
	//   - instanceCount: instances to draw
	//   - bindGroups: set at group indices 0..n-1
	//
	// Returns:
	//   - error: an error if pipelineKey is not registered or the mesh was never uploaded
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame closes the pass and submits it.
	EndFrame()

	// Present shows the submitted frame.
	Present()

	// Release frees every cached pipeline and the GPU objects behind the renderer.
	Release()
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	pipelines   map[string]pipeline.Pipeline

	// collected by options before the backend exists
	forceFallbackAdapter bool
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
	pendingPresentMode   *PresentMode
	pendingPipelines     []pipeline.Pipeline
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the window's surface and registers the pipelines
// queued with WithPipeline.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - win: the window whose surface is rendered to
//   - options: functional options applied before the backend is created
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if no GPU is available, the surface cannot be configured or a queued
//     pipeline could not be registered
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType: backendType,
		pipelines:   map[string]pipeline.Pipeline{},
		sampleCount: MSAAOff,
		clearColor:  DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}
	if !r.sampleCount.Valid() {
		return nil, fmt.Errorf("unsupported MSAA sample count %d", r.sampleCount)
	}

	// wgpu is the only backend; unknown types fall back to it.
	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount, r.clearColor)
	if err != nil {
		return nil, err
	}
	r.backend = backend

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if err := r.backend.ConfigureSurface(win.Width(), win.Height()); err != nil {
		r.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}

	if err := r.RegisterPipelines(r.pendingPipelines...); err != nil {
		r.Release()
		return nil, err
	}
	r.pendingPipelines = nil
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		common.Logger().Error("surface resize failed", "width", width, "height", height, "error", err)
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.pipelines)
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, ok := r.pipelines[key]; ok {
			continue
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %q: %w", key, err)
		}
		r.pipelines[key] = p
		common.Logger().Debug("render pipeline registered", "key", key)
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	switch {
	case p == nil:
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	case !meshProvider.HasMeshBuffers():
		return fmt.Errorf("mesh %q has not been uploaded", meshProvider.Label())
	}

	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for _, p := range r.pipelines {
		p.Release()
	}
	clear(r.pipelines)
	r.mu.Unlock()

	r.backend.Release()
}
