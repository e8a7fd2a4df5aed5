// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"sync"

	vk "github.com/goki/vulkan"
)

// MemSizeAlign returns size rounded up to the next multiple of align, e.g.
// MemSizeAlign(12, 16) == 16.
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}

// BufferPool is a bump allocator over one role of device buffer (vertex,
// index, or storage data for one of the registries). It is not a general
// suballocator: slots are never reused mid-lifetime, only reset wholesale
// via Reset, which matches how the registries actually use it (append new
// geometry/material/animation data, occasionally rebuild the whole buffer).
type BufferPool struct {
	mu     sync.Mutex
	Dev    vk.Device
	Buffer vk.Buffer
	Memory vk.DeviceMemory
	Align  int

	size int
}

// NewBufferPool returns an empty BufferPool aligning every allocation to
// align bytes (typically the device's minStorageBufferOffsetAlignment).
func NewBufferPool(align int) *BufferPool {
	if align <= 0 {
		align = 1
	}
	return &BufferPool{Align: align}
}

// Alloc reserves size bytes and returns the byte offset assigned to them.
func (p *BufferPool) Alloc(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	offset := p.size
	p.size += MemSizeAlign(size, p.Align)
	return offset
}

// Size returns the total number of bytes reserved so far.
func (p *BufferPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Reset releases every reservation, without touching the underlying device
// buffer; callers that shrink a registry back to empty use this before
// rebuilding it.
func (p *BufferPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.size = 0
}

// Destroy releases the device buffer and memory, if any were bound.
func (p *BufferPool) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Buffer != vk.NullBuffer {
		vk.DestroyBuffer(p.Dev, p.Buffer, nil)
		p.Buffer = vk.NullBuffer
	}
	if p.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(p.Dev, p.Memory, nil)
		p.Memory = vk.NullDeviceMemory
	}
	p.size = 0
}
