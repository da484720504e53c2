// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package post

import (
	"encoding/binary"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

const (
	surfaceSize   = 16
	workgroupSize = 8
	gpuTimeout    = 5 * time.Second
)

// gpuProgram dispatches the compute variant of the glitch program on a
// headless wgpu device. It owns the device it opens.
type gpuProgram struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

// openGPU opens the first suitable adapter and builds the compute pipeline
// from SPIR-V. Any failure is reported wrapping ErrFallbackToCPU, with every
// resource created so far released.
func openGPU(spirv []byte) (*gpuProgram, error) {
	p := &gpuProgram{}
	if err := p.init(spirv); err != nil {
		p.close()
		return nil, fmt.Errorf("%w: %w", ErrFallbackToCPU, err)
	}
	return p, nil
}

func (p *gpuProgram) init(spirv []byte) error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	p.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	p.device = openDev.Device
	p.queue = openDev.Queue
	p.adapter = selected.Info.Name
	if err := p.createPipeline(spirvWords(spirv)); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	return nil
}

func (p *gpuProgram) createPipeline(code []uint32) error {
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glitch_compute",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	p.shader = shader

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glitch_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "glitch_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "glitch_pipeline", Layout: p.pipeLayout,
		Compute: hal.ComputeState{Module: p.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// name returns the adapter the program runs on.
func (p *gpuProgram) name() string {
	return p.adapter
}

// run shades dst from src in one compute pass and reads the result back.
// dst and src must already have matching, non-zero sizes.
func (p *gpuProgram) run(dst *image.RGBA, src *gg.Pixmap, u Uniforms, bgra bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pipeline == nil {
		return ErrFallbackToCPU
	}

	w, h := uint32(src.Width()), uint32(src.Height()) //nolint:gosec // dimensions always fit uint32
	n := int(w * h)
	pixelBufSize := uint64(n * 4)

	var buffers []hal.Buffer
	defer func() {
		for _, b := range buffers {
			p.device.DestroyBuffer(b)
		}
	}()
	newBuffer := func(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
		b, err := p.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: size, Usage: usage})
		if err != nil {
			return nil, fmt.Errorf("create %s buffer: %w", label, err)
		}
		buffers = append(buffers, b)
		return b, nil
	}

	uniformBuf, err := newBuffer("glitch_uniforms", UniformSize, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	surfaceBuf, err := newBuffer("glitch_surface", surfaceSize, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	srcBuf, err := newBuffer("glitch_src", pixelBufSize, gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	dstBuf, err := newBuffer("glitch_dst", pixelBufSize, gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc)
	if err != nil {
		return err
	}
	stagingBuf, err := newBuffer("glitch_staging", pixelBufSize, gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	p.queue.WriteBuffer(uniformBuf, 0, u.Bytes())
	p.queue.WriteBuffer(surfaceBuf, 0, surfaceBytes(w, h, bgra))
	p.queue.WriteBuffer(srcBuf, 0, packPixels(src.Data(), n))

	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "glitch_bind", Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: UniformSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: srcBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: dstBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			{Binding: 3, Resource: gputypes.BufferBinding{Buffer: surfaceBuf.NativeHandle(), Offset: 0, Size: surfaceSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer p.device.DestroyBindGroup(bg)

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "glitch_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glitch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "glitch_pass"})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch((w+workgroupSize-1)/workgroupSize, (h+workgroupSize-1)/workgroupSize, 1)
	pass.End()
	encoder.CopyBufferToBuffer(dstBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	fence, err := p.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer p.device.DestroyFence(fence)
	if err := p.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := p.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := p.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackRows(readback, dst, int(w), int(h))
	return nil
}

// close releases the pipeline, the device and the instance. It is safe to
// call on a partially initialized program and more than once.
func (p *gpuProgram) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.device != nil {
		if p.pipeline != nil {
			p.device.DestroyComputePipeline(p.pipeline)
		}
		if p.pipeLayout != nil {
			p.device.DestroyPipelineLayout(p.pipeLayout)
		}
		if p.bindLayout != nil {
			p.device.DestroyBindGroupLayout(p.bindLayout)
		}
		if p.shader != nil {
			p.device.DestroyShaderModule(p.shader)
		}
		p.device.Destroy()
	}
	if p.instance != nil {
		p.instance.Destroy()
	}
	p.pipeline, p.pipeLayout, p.bindLayout, p.shader = nil, nil, nil, nil
	p.device, p.queue, p.instance = nil, nil, nil
}

func surfaceBytes(w, h uint32, bgra bool) []byte {
	buf := make([]byte, surfaceSize)
	binary.LittleEndian.PutUint32(buf[0:], w)
	binary.LittleEndian.PutUint32(buf[4:], h)
	if bgra {
		binary.LittleEndian.PutUint32(buf[8:], 1)
	}
	return buf
}
