package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// frameState lives from BeginFrame to Present.
type frameState struct {
	surfaceTexture *wgpu.Texture
	surfaceView    *wgpu.TextureView
	encoder        *wgpu.CommandEncoder
	// pass is nil once EndFrame closed it.
	pass *wgpu.RenderPassEncoder
}

// abandon releases whatever the frame still holds without submitting or presenting.
func (f *frameState) abandon() {
	if f == nil {
		return
	}
	if f.pass != nil {
		f.pass.Release()
	}
	if f.encoder != nil {
		f.encoder.Release()
	}
	if f.surfaceView != nil {
		f.surfaceView.Release()
	}
	if f.surfaceTexture != nil {
		f.surfaceTexture.Release()
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame != nil {
		return errors.New("previous frame was not presented")
	}

	f := &frameState{}
	var err error
	if f.surfaceTexture, err = b.surface.GetCurrentTexture(); err != nil {
		return err
	}
	if f.surfaceView, err = f.surfaceTexture.CreateView(nil); err != nil {
		f.abandon()
		return err
	}
	if f.encoder, err = b.device.CreateCommandEncoder(nil); err != nil {
		f.abandon()
		return err
	}
	f.pass = f.encoder.BeginRenderPass(b.passDescriptor(f.surfaceView))

	b.frame = f
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil || b.frame.pass == nil {
		return
	}
	pass := b.frame.pass

	pass.SetPipeline(p.RenderPipeline())
	for group, provider := range bindGroups {
		pass.SetBindGroup(uint32(group), provider.BindGroup(), nil)
	}
	pass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(meshProvider.IndexCount()), instanceCount, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	f := b.frame
	if f == nil || f.pass == nil {
		return
	}
	f.pass.End()
	// the pass must be released before the encoder finishes
	f.pass.Release()
	f.pass = nil

	commands, err := f.encoder.Finish(nil)
	f.encoder.Release()
	f.encoder = nil
	if err != nil {
		common.Logger().Error("failed to finish frame commands", "error", err)
		f.abandon()
		b.frame = nil
		return
	}
	b.queue.Submit(commands)
	commands.Release()
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return
	}
	b.surface.Present()
	b.frame.abandon()
	b.frame = nil
}
