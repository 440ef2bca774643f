package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// attachment is a render target texture together with its default view.
type attachment struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (a *attachment) release() {
	if a == nil {
		return
	}
	if a.view != nil {
		a.view.Release()
	}
	if a.texture != nil {
		a.texture.Release()
	}
}

// surfaceTargets holds everything that depends on the surface size.
type surfaceTargets struct {
	format wgpu.TextureFormat
	// configured is false until the first successful ConfigureSurface.
	configured bool
	// msaa is nil when the sample count is 1.
	msaa  *attachment
	depth *attachment
}

func (t *surfaceTargets) release() {
	t.msaa.release()
	t.depth.release()
	t.msaa, t.depth = nil, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	caps := b.surface.GetCapabilities(b.adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fmt.Errorf("surface is not compatible with adapter")
	}
	b.targets.release()
	b.targets.format = caps.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.targets.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})

	if b.sampleCount > MSAAOff {
		msaa, err := b.createAttachment("MSAA Target", b.targets.format, width, height)
		if err != nil {
			return err
		}
		b.targets.msaa = msaa
	}

	// depth must match the color attachment's sample count
	depth, err := b.createAttachment("Depth Target", depthFormat, width, height)
	if err != nil {
		b.targets.release()
		return err
	}
	b.targets.depth = depth
	b.targets.configured = true
	return nil
}

func (b *wgpuRendererBackendImpl) createAttachment(label string, format wgpu.TextureFormat, width, height int) (*attachment, error) {
	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   uint32(b.sampleCount),
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return &attachment{texture: texture, view: view}, nil
}

// passDescriptor describes the frame's render pass drawing into surfaceView. With MSAA the pass
// renders into the multisampled target and resolves into surfaceView.
func (b *wgpuRendererBackendImpl) passDescriptor(surfaceView *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	color := wgpu.RenderPassColorAttachment{
		View:       surfaceView,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.targets.msaa != nil {
		color.View = b.targets.msaa.view
		color.ResolveTarget = surfaceView
		color.StoreOp = wgpu.StoreOpDiscard
	}

	return &wgpu.RenderPassDescriptor{
		Label:            "Viewer Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.targets.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1,
		},
	}
}
