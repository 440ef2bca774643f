package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain for a size and rebuilds the depth and MSAA
	// attachments to match.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//
	// Returns:
	//   - error: an error if an attachment could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode selects how frames reach the display. Applied by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles the pipeline's shaders, builds its layout from the merged
	// WGSL bind groups and stores the created render pipeline on p.
	//
	// Parameters:
	//   - p: the pipeline to build
	//
	// Returns:
	//   - error: an error naming the failing shader stage or layout, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index bytes once and stores the buffers on provider.
	//
	// Parameters:
	//   - provider: receives the vertex buffer, index buffer and index count
	//   - vertexData: interleaved vertex bytes
	//   - indexData: uint32 index bytes
	//   - indexCount: the number of indices in indexData
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates one buffer per entry of descriptor, sized by its MinBindingSize, and a
	// bind group over them.
	//
	// Parameters:
	//   - provider: receives the layout, buffers and bind group
	//   - descriptor: the bind group layout parsed from WGSL
	//
	// Returns:
	//   - error: an error for non-buffer entries, unsized entries or GPU failures
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues the writes on the device queue. Writes to bindings without a buffer are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and opens the clearing render pass.
	//
	// Returns:
	//   - error: an error if no surface texture is available or a frame is already open
	BeginFrame() error

	// DrawCall records one indexed draw of meshProvider into the open pass. No-op without an open pass.
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the pass and submits the recorded commands.
	EndFrame()

	// Present shows the submitted frame and drops the surface texture.
	Present()

	// Release frees the attachments, device, surface, adapter and instance.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	targets surfaceTargets
	frame   *frameState
}

// newWGPURendererBackend brings up the GPU for a window surface. The calling goroutine stays
// locked to its OS thread, as the GLFW surface requires.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clearColor wgpu.Color) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  clearColor,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = adapter

	info := adapter.GetInfo()
	common.Logger().Info("gpu adapter acquired",
		"name", info.Name,
		"driver", info.DriverDescription,
		"backend", info.BackendType,
		"adapter_type", info.AdapterType,
		"fallback", forceFallbackAdapter,
	)

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Viewer Device"})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	return b, nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.presentMode = mode.surfaceMode()
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frame.abandon()
	b.frame = nil
	b.targets.release()

	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.queue, b.device, b.surface, b.adapter, b.instance = nil, nil, nil, nil, nil
}
