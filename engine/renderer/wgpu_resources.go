package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertices, err := b.upload(provider.Label()+" Vertices", wgpu.BufferUsageVertex, vertexData)
	if err != nil {
		return err
	}
	indices, err := b.upload(provider.Label()+" Indices", wgpu.BufferUsageIndex, indexData)
	if err != nil {
		vertices.Release()
		return err
	}

	provider.SetVertexBuffer(vertices)
	provider.SetIndexBuffer(indices)
	provider.SetIndexCount(indexCount)
	return nil
}

// upload creates a buffer holding data. WebGPU rejects zero-sized copies, so empty data is an error.
func (b *wgpuRendererBackendImpl) upload(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: no data", label)
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer: %w", label, err)
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("write %s buffer: %w", label, err)
	}
	return buf, nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	if len(descriptor.Entries) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make([]wgpu.BindGroupEntry, 0, len(descriptor.Entries))
	for _, layoutEntry := range descriptor.Entries {
		buf, err := b.bindingBuffer(provider, layoutEntry)
		if err != nil {
			return err
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: layoutEntry.Binding,
			Buffer:  buf,
			Size:    wgpu.WholeSize,
		})
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		if layout, err = b.device.CreateBindGroupLayout(&descriptor); err != nil {
			return fmt.Errorf("create layout for %q: %w", provider.Label(), err)
		}
		provider.SetBindGroupLayout(layout)
	}

	group, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("create bind group for %q: %w", provider.Label(), err)
	}
	provider.SetBindGroup(group)
	return nil
}

// bindingBuffer returns the provider's buffer for a layout entry, creating it on first use.
func (b *wgpuRendererBackendImpl) bindingBuffer(provider bind_group_provider.BindGroupProvider, entry wgpu.BindGroupLayoutEntry) (*wgpu.Buffer, error) {
	binding := int(entry.Binding)
	if buf := provider.Buffer(binding); buf != nil {
		return buf, nil
	}

	var usage wgpu.BufferUsage
	switch entry.Buffer.Type {
	case wgpu.BufferBindingTypeUniform:
		usage = wgpu.BufferUsageUniform
	case wgpu.BufferBindingTypeStorage, wgpu.BufferBindingTypeReadOnlyStorage:
		usage = wgpu.BufferUsageStorage
	default:
		return nil, fmt.Errorf("binding %d of %q is not a buffer binding", binding, provider.Label())
	}
	if entry.Buffer.MinBindingSize == 0 {
		return nil, fmt.Errorf("binding %d of %q has unknown size", binding, provider.Label())
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s Binding %d", provider.Label(), binding),
		Size:  entry.Buffer.MinBindingSize,
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer for binding %d of %q: %w", binding, provider.Label(), err)
	}
	provider.SetBuffer(binding, buf)
	return buf, nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		if err := b.queue.WriteBuffer(buf, w.Offset, w.Data); err != nil {
			common.Logger().Warn("buffer write failed", "provider", w.Provider.Label(), "binding", w.Binding, "error", err)
		}
	}
}
